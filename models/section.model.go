package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Section represents a named, ordered group of lectures within a course
type Section struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	CourseID  string    `json:"course_id" gorm:"index;not null"`
	Name      string    `json:"name"`
	Position  int       `json:"position" gorm:"default:0"` // presentation order within the course
	Lectures  []Lecture `json:"lectures" gorm:"foreignKey:SectionID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Section) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
