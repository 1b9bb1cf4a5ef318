package progress

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/kmorley/bizenglish/internal/domain"
)

// GetCompletedLessons returns the user's completion set, sorted ascending.
func (s *Service) GetCompletedLessons(ctx context.Context, name string) ([]int, error) {
	user, err := s.users.GetByUsername(ctx, domain.NormalizeUsername(name))
	if err != nil {
		return nil, fmt.Errorf("progress.GetCompletedLessons: %w", err)
	}

	out := slices.Clone(user.CompletedLessons)
	slices.Sort(out)
	return out, nil
}

// MarkLessonComplete adds a lesson to the completion set. Marking an
// already-complete lesson is a no-op.
func (s *Service) MarkLessonComplete(ctx context.Context, name string, lesson int) error {
	if err := s.checkLesson(lesson); err != nil {
		return err
	}
	key := domain.NormalizeUsername(name)

	user, err := s.users.GetByUsername(ctx, key)
	if err != nil {
		return fmt.Errorf("progress.MarkLessonComplete: %w", err)
	}

	updated := domain.AddCompletedLesson(user.CompletedLessons, lesson)
	if slices.Equal(updated, user.CompletedLessons) {
		return nil
	}

	if err := s.users.SetCompletedLessons(ctx, key, updated); err != nil {
		return fmt.Errorf("progress.MarkLessonComplete: %w", err)
	}

	s.log.InfoContext(ctx, "lesson completed",
		slog.String("username", key), slog.Int("lesson", lesson))
	return nil
}

// MarkLessonIncomplete removes a lesson from the completion set.
// Removing an absent lesson is a no-op.
func (s *Service) MarkLessonIncomplete(ctx context.Context, name string, lesson int) error {
	if err := s.checkLesson(lesson); err != nil {
		return err
	}
	key := domain.NormalizeUsername(name)

	user, err := s.users.GetByUsername(ctx, key)
	if err != nil {
		return fmt.Errorf("progress.MarkLessonIncomplete: %w", err)
	}

	updated := domain.RemoveCompletedLesson(user.CompletedLessons, lesson)
	if slices.Equal(updated, user.CompletedLessons) {
		return nil
	}

	if err := s.users.SetCompletedLessons(ctx, key, updated); err != nil {
		return fmt.Errorf("progress.MarkLessonIncomplete: %w", err)
	}

	s.log.InfoContext(ctx, "lesson unmarked",
		slog.String("username", key), slog.Int("lesson", lesson))
	return nil
}

// ResetProgress clears the completion set and every saved lesson
// document, keeping the account.
func (s *Service) ResetProgress(ctx context.Context, name string) error {
	key := domain.NormalizeUsername(name)

	if err := s.users.ResetProgress(ctx, key); err != nil {
		return fmt.Errorf("progress.ResetProgress: %w", err)
	}

	s.log.InfoContext(ctx, "progress reset", slog.String("username", key))
	return nil
}
