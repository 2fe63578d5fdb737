package catalog

import (
	"sort"
	"strings"

	"learnmart/models"
)

// SortMode selects the ordering of the filtered catalog list
type SortMode int

const (
	SortMostPopular SortMode = iota // review count, descending
	SortNewest                      // creation timestamp, descending
)

// DurationBucket is a named total-duration range in hours, inclusive at
// both ends.
type DurationBucket struct {
	Label    string
	MinHours float64
	MaxHours float64
}

// DefaultDurationBuckets are the buckets the catalog page offers
var DefaultDurationBuckets = []DurationBucket{
	{Label: "0-2 hours", MinHours: 0, MaxHours: 2},
	{Label: "3-6 hours", MinHours: 3, MaxHours: 6},
	{Label: "7-16 hours", MinHours: 7, MaxHours: 16},
	{Label: "17+ hours", MinHours: 17, MaxHours: 10000},
}

// PriceRange is an inclusive price filter
type PriceRange struct {
	Min float64
	Max float64
}

// Criteria is the full set of catalog filter inputs. Zero values mean "no
// filter" for every dimension: empty search, nil price range, no buckets,
// no levels, rating threshold 0.
type Criteria struct {
	SearchText string
	PriceRange *PriceRange
	Buckets    []DurationBucket
	Levels     []string
	MinRating  float64
	Sort       SortMode
}

// MergeSources concatenates the catalog page's course collections and
// dedupes them by course id, first occurrence winning.
func MergeSources(groups ...[]models.Course) []models.Course {
	seen := make(map[string]bool)
	var merged []models.Course
	for _, group := range groups {
		for _, course := range group {
			if seen[course.ID] {
				continue
			}
			seen[course.ID] = true
			merged = append(merged, course)
		}
	}
	return merged
}

// Apply filters and sorts courses per the criteria. It is a pure
// derivation: the input slice is left untouched and repeated calls with the
// same inputs produce the same output.
func Apply(courses []models.Course, c Criteria) []models.Course {
	var out []models.Course
	for _, course := range courses {
		if matches(&course, c) {
			out = append(out, course)
		}
	}

	// Stable sort keeps dedup-precedence order for tied keys
	switch c.Sort {
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return len(out[i].Reviews) > len(out[j].Reviews)
		})
	}

	return out
}

func matches(course *models.Course, c Criteria) bool {
	if c.SearchText != "" &&
		!strings.Contains(strings.ToLower(course.Name), strings.ToLower(c.SearchText)) {
		return false
	}

	if c.PriceRange != nil &&
		(course.Price < c.PriceRange.Min || course.Price > c.PriceRange.Max) {
		return false
	}

	if len(c.Buckets) > 0 && !inAnyBucket(course.TotalDurationHours(), c.Buckets) {
		return false
	}

	if len(c.Levels) > 0 && !containsString(c.Levels, course.Level) {
		return false
	}

	if c.MinRating > 0 {
		mean, ok := course.MeanRating()
		if !ok || mean < c.MinRating {
			return false
		}
	}

	return true
}

// inAnyBucket applies OR semantics across the selected buckets, with both
// bucket bounds inclusive.
func inAnyBucket(hours float64, buckets []DurationBucket) bool {
	for _, b := range buckets {
		if hours >= b.MinHours && hours <= b.MaxHours {
			return true
		}
	}
	return false
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
