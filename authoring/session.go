package authoring

import (
	"encoding/json"
	"errors"
	"fmt"

	"learnmart/apperrors"
	"learnmart/models"
	"learnmart/validators"

	"github.com/google/uuid"
)

// Stage is one of the four sequential phases of the authoring wizard
type Stage int

const (
	StageInformation Stage = iota + 1
	StageBuilder
	StageExam
	StagePublish
)

func (s Stage) String() string {
	switch s {
	case StageInformation:
		return "Information"
	case StageBuilder:
		return "Builder"
	case StageExam:
		return "Exam"
	case StagePublish:
		return "Publish"
	}
	return "Unknown"
}

// ErrNoSession is returned when an operation is invoked outside an active
// authoring session.
var ErrNoSession = errors.New("no active authoring session")

// Session drives a single course through the authoring wizard. Transitions
// are strictly forward on successful submits and freely backward; a failed
// submit keeps the current stage and returns a typed error. Publishing
// tears the session down.
//
// Sessions are not safe for concurrent use; the editing surface issues at
// most one mutation at a time.
type Session struct {
	api API

	id              string // liveness token, rotated on every start and teardown
	stage           Stage
	editingExisting bool
	draft           *models.Course
	active          bool
}

// NewSession returns an inactive session bound to the given API
func NewSession(api API) *Session {
	return &Session{api: api}
}

// StartNewDraft begins the create-new flow with an empty skeleton draft.
// Purely local; nothing is persisted until the Information stage submits.
func (s *Session) StartNewDraft() {
	s.id = uuid.NewString()
	s.stage = StageInformation
	s.editingExisting = false
	s.draft = &models.Course{Status: models.StatusDraft}
	s.active = true
}

// StartEditingDraft fetches an existing course and begins the edit flow.
// A failed fetch (including ErrNotFound) leaves the session untouched.
func (s *Session) StartEditingDraft(courseID string) error {
	if courseID == "" {
		return apperrors.ErrNotFound
	}
	course, err := s.api.FetchCourse(courseID)
	if err != nil {
		return err
	}

	s.id = uuid.NewString()
	s.stage = StageInformation
	s.editingExisting = true
	s.draft = course
	s.active = true
	return nil
}

// SubmitInformation validates the metadata form and persists it: a full
// create while the draft has no server record, a changed-fields-only patch
// once it does. A patch that changes nothing returns ErrNoChange and does
// not advance.
func (s *Session) SubmitInformation(form validators.CourseMetadataForm) error {
	if err := s.requireStage(StageInformation); err != nil {
		return err
	}

	hasStoredThumbnail := s.draft.ThumbnailURL != ""
	if fields := validators.ValidateCourseMetadata(form, hasStoredThumbnail); len(fields) > 0 {
		return apperrors.NewValidationError(fields)
	}

	token := s.id
	if s.draft.ID != "" {
		changed := metadataDiff(s.draft, form)
		if len(changed) == 0 {
			return apperrors.ErrNoChange
		}
		course, err := s.api.PatchCourse(s.draft.ID, changed)
		if err != nil {
			return err
		}
		if !s.alive(token) {
			return nil
		}
		s.draft = course
	} else {
		course, err := s.api.CreateCourse(form)
		if err != nil {
			return err
		}
		if !s.alive(token) {
			return nil
		}
		s.draft = course
	}

	s.stage = StageBuilder
	return nil
}

// AdvanceFromBuilder gates the Builder → Exam transition on the publishable
// invariant, reporting the missing-section and missing-lecture cases
// distinctly.
func (s *Session) AdvanceFromBuilder() error {
	if err := s.requireStage(StageBuilder); err != nil {
		return err
	}

	if len(s.draft.Sections) == 0 {
		return apperrors.ErrNeedsSection
	}
	for _, section := range s.draft.Sections {
		if len(section.Lectures) == 0 {
			return apperrors.ErrNeedsLecture
		}
	}

	s.stage = StageExam
	return nil
}

// GoToStage navigates backward. Forward jumps are rejected; any move back
// to Information after the draft has been persisted marks the session as
// editing an existing draft, so the next submit patches instead of
// creating.
func (s *Session) GoToStage(target Stage) error {
	if !s.active {
		return ErrNoSession
	}
	if target < StageInformation || target >= s.stage {
		return fmt.Errorf("can only navigate backward from stage %s", s.stage)
	}
	if target == StageInformation && s.draft.ID != "" {
		s.editingExisting = true
	}
	s.stage = target
	return nil
}

// SubmitExam stores the exam payload (opaque to the wizard) and advances to
// Publish. An empty payload on an exam-free draft skips the round trip.
func (s *Session) SubmitExam(payload json.RawMessage) error {
	if err := s.requireStage(StageExam); err != nil {
		return err
	}

	if len(payload) == 0 && !s.draft.HasExam {
		s.stage = StagePublish
		return nil
	}

	token := s.id
	course, err := s.api.SaveExam(s.draft.ID, payload)
	if err != nil {
		return err
	}
	if !s.alive(token) {
		return nil
	}
	s.draft = course
	s.stage = StagePublish
	return nil
}

// Publish submits the full course payload with the target status and tears
// the session down. Republishing to the status the course already has skips
// the network round trip entirely.
func (s *Session) Publish(thumbnailOverride string, makePublic bool) error {
	if err := s.requireStage(StagePublish); err != nil {
		return err
	}

	if thumbnailOverride == "" && s.draft.ThumbnailURL == "" {
		return apperrors.NewValidationError(map[string]string{
			"thumbnail": "Course thumbnail is required!",
		})
	}

	target := models.StatusDraft
	if makePublic {
		target = models.StatusPublished
	}

	if s.editingExisting && s.draft.Status == target {
		s.teardown()
		return nil
	}

	payload := models.PublishPayload{
		Name:          s.draft.Name,
		Description:   s.draft.Description,
		Price:         s.draft.Price,
		Benefits:      s.draft.Benefits,
		CategoryID:    s.draft.CategoryID,
		Level:         s.draft.Level,
		Tags:          s.draft.Tags,
		Instructions:  s.draft.Instructions,
		Status:        target,
		ThumbnailPath: thumbnailOverride,
	}
	if s.draft.HasExam {
		payload.Exam = s.draft.Exam
	}

	token := s.id
	if _, err := s.api.PublishCourse(s.draft.ID, payload); err != nil {
		return err
	}
	if !s.alive(token) {
		return nil
	}

	s.teardown()
	return nil
}

// Abandon tears the session down without publishing
func (s *Session) Abandon() {
	s.teardown()
}

// Accessors

func (s *Session) Active() bool          { return s.active }
func (s *Session) Stage() Stage          { return s.stage }
func (s *Session) EditingExisting() bool { return s.editingExisting }

// Draft returns the in-progress course, or nil outside an active session
func (s *Session) Draft() *models.Course { return s.draft }

func (s *Session) teardown() {
	s.id = ""
	s.stage = 0
	s.editingExisting = false
	s.draft = nil
	s.active = false
}

// alive guards against a response landing after the owning session was torn
// down or restarted; such responses are dropped.
func (s *Session) alive(token string) bool {
	return s.active && s.id == token
}

func (s *Session) requireStage(want Stage) error {
	if !s.active {
		return ErrNoSession
	}
	if s.stage != want {
		return fmt.Errorf("operation requires stage %s, current stage is %s", want, s.stage)
	}
	return nil
}

// metadataDiff collects only the fields that differ from the stored draft,
// so edits send incremental patches.
func metadataDiff(draft *models.Course, form validators.CourseMetadataForm) map[string]interface{} {
	changed := make(map[string]interface{})

	if form.Name != draft.Name {
		changed["name"] = form.Name
	}
	if form.Description != draft.Description {
		changed["description"] = form.Description
	}
	if form.Price != draft.Price {
		changed["price"] = form.Price
	}
	if form.CategoryID != draft.CategoryID {
		changed["category_id"] = form.CategoryID
	}
	if form.Level != draft.Level {
		changed["level"] = form.Level
	}
	if form.Benefits != draft.Benefits {
		changed["benefits"] = form.Benefits
	}
	if !equalStrings(form.Tags, draft.Tags) {
		changed["tags"] = form.Tags
	}
	if !equalStrings(form.Instructions, draft.Instructions) {
		changed["instructions"] = form.Instructions
	}
	if form.ThumbnailPath != "" {
		changed["thumbnail"] = form.ThumbnailPath
	}

	return changed
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
