package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lecture represents a single video unit within a section, with an
// optional supplementary document
type Lecture struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	SectionID     string    `json:"section_id" gorm:"index;not null"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	VideoURL      string    `json:"video_url"`
	Duration      float64   `json:"duration" gorm:"default:0"` // duration in minutes
	SupplementURL string    `json:"supplement_url"`
	Position      int       `json:"position" gorm:"default:0"` // presentation order within the section
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (l *Lecture) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
