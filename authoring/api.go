package authoring

import (
	"encoding/json"

	"learnmart/models"
	"learnmart/validators"
)

// API is the remote collaborator the authoring session drives. The server
// is authoritative for ids and ordering: section-level mutations return the
// whole updated course, lecture-level mutations return the owning section,
// and the session replaces its local copy with whatever comes back.
type API interface {
	FetchCourse(id string) (*models.Course, error)
	CreateCourse(form validators.CourseMetadataForm) (*models.Course, error)
	PatchCourse(id string, changed map[string]interface{}) (*models.Course, error)

	CreateSection(courseID, name string) (*models.Course, error)
	RenameSection(sectionID, name string) (*models.Course, error)
	DeleteSection(sectionID, courseID string) (*models.Course, error)

	CreateLecture(sectionID string, form validators.LectureForm) (*models.Section, error)
	UpdateLecture(sectionID, lectureID string, changed map[string]interface{}) (*models.Section, error)
	DeleteLecture(lectureID, sectionID string) (*models.Section, error)

	SaveExam(courseID string, payload json.RawMessage) (*models.Course, error)
	PublishCourse(courseID string, payload models.PublishPayload) (*models.Course, error)
}
