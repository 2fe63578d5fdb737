package validators

import (
	"strings"

	"learnmart/models"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// CourseMetadataForm is the typed payload for the Information stage of the
// authoring wizard. ThumbnailPath points at a local file to upload; it may
// stay empty when the draft already carries a thumbnail.
type CourseMetadataForm struct {
	Name          string  `validate:"required"`
	Description   string  `validate:"required"`
	Price         float64 `validate:"gte=0"`
	CategoryID    string  `validate:"required"`
	Level         string  `validate:"required"`
	Tags          []string
	Benefits      string `validate:"required"`
	Instructions  []string
	ThumbnailPath string
}

// LectureForm is the typed payload for creating a lecture. VideoPath is the
// local media file to upload; SupplementPath is optional.
type LectureForm struct {
	Title          string
	Description    string
	VideoPath      string
	SupplementPath string
	Duration       float64 // minutes
}

// ValidateCourseMetadata checks the Information-stage form and returns one
// message per failed field. hasStoredThumbnail relaxes the thumbnail rule
// when the draft already has one persisted.
func ValidateCourseMetadata(form CourseMetadataForm, hasStoredThumbnail bool) map[string]string {
	errors := make(map[string]string)

	if err := validate.Struct(form); err != nil {
		for _, fe := range err.(validator.ValidationErrors) {
			switch fe.Field() {
			case "Name":
				errors["name"] = "Course name is required!"
			case "Description":
				errors["description"] = "Course description is required!"
			case "Price":
				errors["price"] = "Price must not be negative!"
			case "CategoryID":
				errors["category"] = "Category is required!"
			case "Level":
				errors["level"] = "Skill level is required!"
			case "Benefits":
				errors["benefits"] = "Course benefits are required!"
			}
		}
	}

	if form.Level != "" && !ValidLevel(form.Level) {
		errors["level"] = "Skill level must be Beginner, Intermediate or Advanced!"
	}
	if len(form.Instructions) == 0 {
		errors["instructions"] = "Add at least one instruction!"
	} else {
		for _, in := range form.Instructions {
			if strings.TrimSpace(in) == "" {
				errors["instructions"] = "Instructions must not be empty!"
				break
			}
		}
	}
	if form.ThumbnailPath == "" && !hasStoredThumbnail {
		errors["thumbnail"] = "Course thumbnail is required!"
	}

	return errors
}

// ValidateSectionName enforces a non-empty section name
func ValidateSectionName(name string) map[string]string {
	errors := make(map[string]string)
	if strings.TrimSpace(name) == "" {
		errors["name"] = "Section name is required!"
	}
	return errors
}

// ValidateLecture checks a lecture creation form
func ValidateLecture(form LectureForm) map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(form.Title) == "" {
		errors["title"] = "Lecture title is required!"
	}
	if strings.TrimSpace(form.Description) == "" {
		errors["description"] = "Lecture description is required!"
	}
	if form.VideoPath == "" {
		errors["video"] = "Lecture video is required!"
	}
	if form.Duration < 0 {
		errors["duration"] = "Duration must not be negative!"
	}

	return errors
}

// ValidLevel reports whether level is one of the three skill levels
func ValidLevel(level string) bool {
	switch level {
	case models.LevelBeginner, models.LevelIntermediate, models.LevelAdvanced:
		return true
	}
	return false
}
