package progress

import (
	"context"
	"fmt"

	"github.com/kmorley/bizenglish/internal/domain"
)

// GetLessonState returns the stored document for one lesson. A user
// who never touched the lesson gets the default (empty) document.
func (s *Service) GetLessonState(ctx context.Context, name string, lesson int) (domain.LessonState, error) {
	if err := s.checkLesson(lesson); err != nil {
		return domain.LessonState{}, err
	}

	state, err := s.users.GetLessonState(ctx, domain.NormalizeUsername(name), lesson)
	if err != nil {
		return domain.LessonState{}, fmt.Errorf("progress.GetLessonState: %w", err)
	}
	return state, nil
}

// SaveLessonField overwrites one field of a lesson document. Sibling
// fields are untouched, so concurrent saves of different fields never
// clobber each other.
func (s *Service) SaveLessonField(ctx context.Context, name string, lesson int, field string, value any) error {
	if err := s.checkLesson(lesson); err != nil {
		return err
	}
	if !domain.IsLessonField(field) {
		return domain.NewValidationError("field", fmt.Sprintf("unknown lesson field %q", field))
	}

	if err := s.users.SaveLessonField(ctx, domain.NormalizeUsername(name), lesson, field, value); err != nil {
		return fmt.Errorf("progress.SaveLessonField: %w", err)
	}
	return nil
}

// SaveNote overwrites one note slot of a lesson document.
func (s *Service) SaveNote(ctx context.Context, name string, lesson int, slot, text string) error {
	if err := s.checkLesson(lesson); err != nil {
		return err
	}
	if slot == "" {
		return domain.NewValidationError("slot", "must not be empty")
	}

	if err := s.users.SaveNote(ctx, domain.NormalizeUsername(name), lesson, slot, text); err != nil {
		return fmt.Errorf("progress.SaveNote: %w", err)
	}
	return nil
}
