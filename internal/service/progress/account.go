package progress

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kmorley/bizenglish/internal/domain"
)

// Login resolves an existing account by name. It never creates one:
// an unknown name fails with ErrNotFound so the caller can steer the
// user to sign-up. A successful login records activity on the account.
func (s *Service) Login(ctx context.Context, name string) (*domain.UserRecord, error) {
	key, _, err := s.normalizeName(name)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByUsername(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("progress.Login: %w", err)
	}

	if err := s.users.Touch(ctx, key); err != nil {
		return nil, fmt.Errorf("progress.Login: %w", err)
	}

	s.log.InfoContext(ctx, "user logged in", slog.String("username", key))
	return user, nil
}

// SignUp creates a new account with empty progress. The name the user
// typed is kept as the display name; the account key is its normalized
// form. An already-taken name fails with ErrAlreadyExists.
func (s *Service) SignUp(ctx context.Context, name string) (*domain.UserRecord, error) {
	key, display, err := s.normalizeName(name)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, key, display)
	if err != nil {
		return nil, fmt.Errorf("progress.SignUp: %w", err)
	}

	s.log.InfoContext(ctx, "user signed up", slog.String("username", key))
	return user, nil
}

// UserExists reports whether an account exists for the given name.
func (s *Service) UserExists(ctx context.Context, name string) (bool, error) {
	key := domain.NormalizeUsername(name)
	if key == "" {
		return false, nil
	}

	ok, err := s.users.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("progress.UserExists: %w", err)
	}
	return ok, nil
}

// GetUser returns the full account record for the given name.
func (s *Service) GetUser(ctx context.Context, name string) (*domain.UserRecord, error) {
	user, err := s.users.GetByUsername(ctx, domain.NormalizeUsername(name))
	if err != nil {
		return nil, fmt.Errorf("progress.GetUser: %w", err)
	}
	return user, nil
}
