package authoring

import (
	"learnmart/apperrors"
	"learnmart/models"
	"learnmart/validators"
)

// ConfirmFunc models the two-button confirmation shown before destructive
// tree operations. It receives the warning text and returns true to
// proceed, false to cancel.
type ConfirmFunc func(warning string) bool

// No optimistic updates anywhere in this file: the local tree changes only
// after the server confirms the mutation, and always by replacing the
// affected node with the server-returned copy. A failed round trip leaves
// the draft exactly as it was.

// CreateSection adds a section to the draft
func (s *Session) CreateSection(name string) error {
	if err := s.requireStage(StageBuilder); err != nil {
		return err
	}
	if fields := validators.ValidateSectionName(name); len(fields) > 0 {
		return apperrors.NewValidationError(fields)
	}

	token := s.id
	course, err := s.api.CreateSection(s.draft.ID, name)
	if err != nil {
		return err
	}
	if !s.alive(token) {
		return nil
	}
	s.draft.Sections = course.Sections
	return nil
}

// RenameSection renames a section
func (s *Session) RenameSection(sectionID, name string) error {
	if err := s.requireStage(StageBuilder); err != nil {
		return err
	}
	if fields := validators.ValidateSectionName(name); len(fields) > 0 {
		return apperrors.NewValidationError(fields)
	}

	token := s.id
	course, err := s.api.RenameSection(sectionID, name)
	if err != nil {
		return err
	}
	if !s.alive(token) {
		return nil
	}
	s.draft.Sections = course.Sections
	return nil
}

// DeleteSection removes a section and everything under it, after the caller
// confirms. Returns false when the user cancels.
func (s *Session) DeleteSection(sectionID string, confirm ConfirmFunc) (bool, error) {
	if err := s.requireStage(StageBuilder); err != nil {
		return false, err
	}
	if confirm == nil || !confirm("All the lectures in this section will be deleted") {
		return false, nil
	}

	token := s.id
	course, err := s.api.DeleteSection(sectionID, s.draft.ID)
	if err != nil {
		return false, err
	}
	if !s.alive(token) {
		return false, nil
	}
	s.draft.Sections = course.Sections
	return true, nil
}

// CreateLecture adds a lecture to a section. Title, description and video
// are required; the supplement is optional.
func (s *Session) CreateLecture(sectionID string, form validators.LectureForm) error {
	if err := s.requireStage(StageBuilder); err != nil {
		return err
	}
	if fields := validators.ValidateLecture(form); len(fields) > 0 {
		return apperrors.NewValidationError(fields)
	}

	token := s.id
	section, err := s.api.CreateLecture(sectionID, form)
	if err != nil {
		return err
	}
	if !s.alive(token) {
		return nil
	}
	s.replaceSection(section)
	return nil
}

// LecturePatch carries the editable lecture fields. Nil pointers mean
// "unchanged"; RemoveSupplement detaches the supplementary document without
// touching the video.
type LecturePatch struct {
	Title            *string
	Description      *string
	VideoPath        *string // new local video file to upload
	SupplementPath   *string // new local supplement file to upload
	RemoveSupplement bool
}

// UpdateLecture diffs the patch against the lecture's current values and
// sends only what changed. An empty diff returns ErrNoChange without any
// network call.
func (s *Session) UpdateLecture(sectionID, lectureID string, patch LecturePatch) error {
	if err := s.requireStage(StageBuilder); err != nil {
		return err
	}

	lecture := s.findLecture(sectionID, lectureID)
	if lecture == nil {
		return apperrors.ErrNotFound
	}

	changed := make(map[string]interface{})
	if patch.Title != nil && *patch.Title != lecture.Title {
		changed["title"] = *patch.Title
	}
	if patch.Description != nil && *patch.Description != lecture.Description {
		changed["description"] = *patch.Description
	}
	if patch.VideoPath != nil && *patch.VideoPath != "" {
		changed["video"] = *patch.VideoPath
	}
	if patch.SupplementPath != nil && *patch.SupplementPath != "" {
		changed["supplement"] = *patch.SupplementPath
	}
	if patch.RemoveSupplement && lecture.SupplementURL != "" {
		changed["removeSupplement"] = true
	}
	if len(changed) == 0 {
		return apperrors.ErrNoChange
	}

	token := s.id
	section, err := s.api.UpdateLecture(sectionID, lectureID, changed)
	if err != nil {
		return err
	}
	if !s.alive(token) {
		return nil
	}
	s.replaceSection(section)
	return nil
}

// DeleteLecture removes a lecture after the caller confirms. Returns false
// when the user cancels.
func (s *Session) DeleteLecture(sectionID, lectureID string, confirm ConfirmFunc) (bool, error) {
	if err := s.requireStage(StageBuilder); err != nil {
		return false, err
	}
	if confirm == nil || !confirm("This lecture will be deleted") {
		return false, nil
	}

	token := s.id
	section, err := s.api.DeleteLecture(lectureID, sectionID)
	if err != nil {
		return false, err
	}
	if !s.alive(token) {
		return false, nil
	}
	s.replaceSection(section)
	return true, nil
}

// replaceSection swaps in the server-returned copy of a section, keeping
// server ordering authoritative.
func (s *Session) replaceSection(updated *models.Section) {
	for i := range s.draft.Sections {
		if s.draft.Sections[i].ID == updated.ID {
			s.draft.Sections[i] = *updated
			return
		}
	}
}

func (s *Session) findLecture(sectionID, lectureID string) *models.Lecture {
	for i := range s.draft.Sections {
		if s.draft.Sections[i].ID != sectionID {
			continue
		}
		for j := range s.draft.Sections[i].Lectures {
			if s.draft.Sections[i].Lectures[j].ID == lectureID {
				return &s.draft.Sections[i].Lectures[j]
			}
		}
	}
	return nil
}
