package models

import "gorm.io/datatypes"

// PublishPayload is the full course payload sent when the authoring wizard
// reaches the final stage. Unlike the incremental patches used earlier in
// the flow, publish always carries every field.
type PublishPayload struct {
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Price         float64        `json:"price"`
	Benefits      string         `json:"benefits"`
	CategoryID    string         `json:"category_id"`
	Level         string         `json:"level"`
	Tags          []string       `json:"tags"`
	Instructions  []string       `json:"instructions"`
	Exam          datatypes.JSON `json:"exam,omitempty"`
	Status        string         `json:"status"` // DRAFT or PUBLISHED
	ThumbnailPath string         `json:"-"`      // local file to upload, empty to keep the stored one
}
