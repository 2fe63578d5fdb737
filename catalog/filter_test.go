package catalog

import (
	"reflect"
	"testing"
	"time"

	"learnmart/models"
)

func lectures(minutes ...float64) []models.Lecture {
	out := make([]models.Lecture, len(minutes))
	for i, m := range minutes {
		out[i] = models.Lecture{Duration: m}
	}
	return out
}

func reviews(ratings ...int) []models.Review {
	out := make([]models.Review, len(ratings))
	for i, r := range ratings {
		out[i] = models.Review{Rating: r}
	}
	return out
}

func testCourses() []models.Course {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []models.Course{
		{
			ID: "go", Name: "Go for Backend", Price: 500, Level: models.LevelBeginner,
			Sections:  []models.Section{{Lectures: lectures(60, 60)}}, // exactly 2h
			Reviews:   reviews(5, 4, 5),
			CreatedAt: base,
		},
		{
			ID: "rust", Name: "Rust Systems", Price: 1500, Level: models.LevelAdvanced,
			Sections:  []models.Section{{Lectures: lectures(120, 120)}}, // 4h
			Reviews:   reviews(4),
			CreatedAt: base.AddDate(0, 1, 0),
		},
		{
			ID: "css", Name: "CSS Basics", Price: 0, Level: models.LevelBeginner,
			Sections:  []models.Section{{Lectures: lectures(30)}}, // 0.5h
			CreatedAt: base.AddDate(0, 2, 0),                      // newest, no reviews
		},
	}
}

func ids(courses []models.Course) []string {
	out := make([]string, len(courses))
	for i, c := range courses {
		out[i] = c.ID
	}
	return out
}

func TestMergeSources_DedupFirstWins(t *testing.T) {
	courses := testCourses()
	primary := []models.Course{courses[0], courses[1]}
	mostSold := []models.Course{courses[1], courses[2]}
	sibling := []models.Course{courses[2], courses[0]}

	merged := MergeSources(primary, mostSold, sibling)
	if got := ids(merged); !reflect.DeepEqual(got, []string{"go", "rust", "css"}) {
		t.Fatalf("unexpected merge order: %v", got)
	}
}

func TestApply_Deterministic(t *testing.T) {
	merged := MergeSources(testCourses())
	criteria := Criteria{Sort: SortMostPopular}

	first := Apply(merged, criteria)
	for i := 0; i < 5; i++ {
		again := Apply(merged, criteria)
		if !reflect.DeepEqual(ids(first), ids(again)) {
			t.Fatalf("filter output not deterministic: %v vs %v", ids(first), ids(again))
		}
	}
	// MostPopular: go (3 reviews), rust (1), css (0)
	if got := ids(first); !reflect.DeepEqual(got, []string{"go", "rust", "css"}) {
		t.Fatalf("unexpected popularity order: %v", got)
	}
}

func TestApply_SortNewest(t *testing.T) {
	out := Apply(testCourses(), Criteria{Sort: SortNewest})
	if got := ids(out); !reflect.DeepEqual(got, []string{"css", "rust", "go"}) {
		t.Fatalf("unexpected recency order: %v", got)
	}
}

func TestApply_SearchIsCaseInsensitive(t *testing.T) {
	out := Apply(testCourses(), Criteria{SearchText: "rUsT"})
	if got := ids(out); !reflect.DeepEqual(got, []string{"rust"}) {
		t.Fatalf("unexpected search result: %v", got)
	}
}

func TestApply_PriceRangeInclusive(t *testing.T) {
	out := Apply(testCourses(), Criteria{PriceRange: &PriceRange{Min: 500, Max: 1500}, Sort: SortMostPopular})
	if got := ids(out); !reflect.DeepEqual(got, []string{"go", "rust"}) {
		t.Fatalf("unexpected price filter result: %v", got)
	}
}

// A course totaling exactly 2.0 hours matches the "0-2 hours" bucket and
// not the "3-6 hours" one.
func TestApply_DurationBucketBoundaryInclusive(t *testing.T) {
	low := Apply(testCourses(), Criteria{Buckets: []DurationBucket{{Label: "0-2 hours", MinHours: 0, MaxHours: 2}}})
	if got := ids(low); !reflect.DeepEqual(got, []string{"go", "css"}) {
		t.Fatalf("expected go and css in 0-2 bucket, got %v", got)
	}

	mid := Apply(testCourses(), Criteria{Buckets: []DurationBucket{{Label: "3-6 hours", MinHours: 3, MaxHours: 6}}})
	if got := ids(mid); !reflect.DeepEqual(got, []string{"rust"}) {
		t.Fatalf("expected only rust in 3-6 bucket, got %v", got)
	}
}

func TestApply_BucketsUseOrSemantics(t *testing.T) {
	out := Apply(testCourses(), Criteria{Buckets: []DurationBucket{
		{Label: "0-2 hours", MinHours: 0, MaxHours: 2},
		{Label: "3-6 hours", MinHours: 3, MaxHours: 6},
	}})
	if len(out) != 3 {
		t.Fatalf("expected all three courses across both buckets, got %v", ids(out))
	}
}

func TestApply_LevelFilter(t *testing.T) {
	out := Apply(testCourses(), Criteria{Levels: []string{models.LevelAdvanced}})
	if got := ids(out); !reflect.DeepEqual(got, []string{"rust"}) {
		t.Fatalf("unexpected level filter result: %v", got)
	}
}

// A course with no numeric reviews never matches a nonzero rating
// threshold, but passes when the rating filter is off.
func TestApply_RatingThresholdSkipsUnrated(t *testing.T) {
	rated := Apply(testCourses(), Criteria{MinRating: 4})
	for _, c := range rated {
		if c.ID == "css" {
			t.Fatal("unrated course matched minRating=4")
		}
	}
	if len(rated) != 2 {
		t.Fatalf("expected go and rust at minRating=4, got %v", ids(rated))
	}

	all := Apply(testCourses(), Criteria{MinRating: 0})
	if len(all) != 3 {
		t.Fatalf("rating filter off must pass everything, got %v", ids(all))
	}
}

func TestApply_StableSortPreservesDedupPrecedence(t *testing.T) {
	base := time.Now()
	tied := []models.Course{
		{ID: "first", Reviews: reviews(5), CreatedAt: base},
		{ID: "second", Reviews: reviews(4), CreatedAt: base},
	}
	out := Apply(tied, Criteria{Sort: SortMostPopular})
	if got := ids(out); !reflect.DeepEqual(got, []string{"first", "second"}) {
		t.Fatalf("stable sort broke precedence order: %v", got)
	}
}

func TestApply_EmptyInput(t *testing.T) {
	if out := Apply(nil, Criteria{}); len(out) != 0 {
		t.Fatalf("empty input must yield empty output, got %v", out)
	}
}
