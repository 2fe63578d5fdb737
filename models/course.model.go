package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Course status values
const (
	StatusDraft     = "DRAFT"
	StatusPublished = "PUBLISHED"
)

// Skill levels a course can be tagged with
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
)

// Course represents a marketplace course. While it is being authored the
// status stays DRAFT; publishing flips it to PUBLISHED.
type Course struct {
	ID           string                      `json:"id" gorm:"primaryKey"`
	Status       string                      `json:"status" gorm:"default:'DRAFT'"` // DRAFT, PUBLISHED
	Name         string                      `json:"name"`
	Description  string                      `json:"description"`
	Instructor   string                      `json:"instructor"`
	Price        float64                     `json:"price" gorm:"default:0"`
	CategoryID   string                      `json:"category_id" gorm:"index"`
	Level        string                      `json:"level"` // Beginner, Intermediate, Advanced
	Tags         datatypes.JSONSlice[string] `json:"tags"`
	Benefits     string                      `json:"benefits"`
	ThumbnailURL string                      `json:"thumbnail_url"`
	Instructions datatypes.JSONSlice[string] `json:"instructions"`
	HasExam      bool                        `json:"has_exam" gorm:"default:false"`
	Exam         datatypes.JSON              `json:"exam,omitempty"`
	Sections     []Section                   `json:"sections" gorm:"foreignKey:CourseID"`
	Reviews      []Review                    `json:"reviews" gorm:"foreignKey:CourseID"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Publishable reports whether the course satisfies the publish invariant:
// at least one section, and no section without a lecture.
func (c *Course) Publishable() bool {
	if len(c.Sections) == 0 {
		return false
	}
	for _, s := range c.Sections {
		if len(s.Lectures) == 0 {
			return false
		}
	}
	return true
}

// TotalDurationHours sums every lecture's duration across all sections.
// Lecture durations are stored in minutes.
func (c *Course) TotalDurationHours() float64 {
	var minutes float64
	for _, s := range c.Sections {
		for _, l := range s.Lectures {
			minutes += l.Duration
		}
	}
	return minutes / 60
}

// MeanRating returns the arithmetic mean of the course's review ratings.
// The second return value is false when the course has no reviews.
func (c *Course) MeanRating() (float64, bool) {
	if len(c.Reviews) == 0 {
		return 0, false
	}
	var sum int
	for _, r := range c.Reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(c.Reviews)), true
}
