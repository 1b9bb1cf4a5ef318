// Package progress implements course progress operations: accounts,
// lesson completion, and per-lesson activity state.
package progress

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/kmorley/bizenglish/internal/config"
	"github.com/kmorley/bizenglish/internal/domain"
)

// userRepo defines the repository interface needed by the progress service.
type userRepo interface {
	Create(ctx context.Context, username, displayName string) (*domain.UserRecord, error)
	GetByUsername(ctx context.Context, username string) (*domain.UserRecord, error)
	Exists(ctx context.Context, username string) (bool, error)
	Touch(ctx context.Context, username string) error
	SetCompletedLessons(ctx context.Context, username string, lessons []int) error
	GetLessonState(ctx context.Context, username string, lesson int) (domain.LessonState, error)
	SaveLessonField(ctx context.Context, username string, lesson int, field string, value any) error
	SaveNote(ctx context.Context, username string, lesson int, slot, text string) error
	ResetProgress(ctx context.Context, username string) error
}

// Service implements account and progress operations.
type Service struct {
	log   *slog.Logger
	users userRepo
	cfg   config.CourseConfig
}

// NewService creates a new progress service instance.
func NewService(logger *slog.Logger, users userRepo, cfg config.CourseConfig) *Service {
	return &Service{
		log:   logger.With("service", "progress"),
		users: users,
		cfg:   cfg,
	}
}

// normalizeName validates a typed name and returns the canonical key
// and the display form.
func (s *Service) normalizeName(name string) (key, display string, err error) {
	display = strings.TrimSpace(name)
	if utf8.RuneCountInString(display) < s.cfg.MinNameLength {
		return "", "", domain.NewValidationError("name",
			fmt.Sprintf("must be at least %d characters", s.cfg.MinNameLength))
	}
	return domain.NormalizeUsername(name), display, nil
}

// checkLesson validates a lesson number against the course size.
func (s *Service) checkLesson(lesson int) error {
	if lesson < 1 || lesson > s.cfg.TotalLessons {
		return domain.NewValidationError("lesson",
			fmt.Sprintf("must be between 1 and %d", s.cfg.TotalLessons))
	}
	return nil
}
