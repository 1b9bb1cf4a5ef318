// Package user implements user progress persistence backed by PostgreSQL.
package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kmorley/bizenglish/internal/adapter/postgres"
	"github.com/kmorley/bizenglish/internal/domain"
)

const table = "users"

var columns = []string{
	"id", "username", "display_name", "completed_lessons",
	"lesson_data", "created_at", "updated_at",
}

// Repo provides user and lesson progress persistence.
type Repo struct {
	q postgres.Querier
}

// New creates a new user repository.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

// userRow mirrors the users table for scany.
type userRow struct {
	ID               uuid.UUID `db:"id"`
	Username         string    `db:"username"`
	DisplayName      string    `db:"display_name"`
	CompletedLessons []int32   `db:"completed_lessons"`
	LessonData       []byte    `db:"lesson_data"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

// Create inserts a new user with empty progress.
func (r *Repo) Create(ctx context.Context, username, displayName string) (*domain.UserRecord, error) {
	now := time.Now().UTC()

	query := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(uuid.New(), username, displayName, []int32{}, []byte(`{}`), now, now).
		Suffix("RETURNING " + strings.Join(columns, ", "))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, mapError(err, username)
	}

	var row userRow
	if err := pgxscan.Get(ctx, r.q, &row, sql, args...); err != nil {
		return nil, mapError(err, username)
	}

	return toDomain(row)
}

// GetByUsername returns a user by normalized username.
func (r *Repo) GetByUsername(ctx context.Context, username string) (*domain.UserRecord, error) {
	query := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"username": username})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, mapError(err, username)
	}

	var row userRow
	if err := pgxscan.Get(ctx, r.q, &row, sql, args...); err != nil {
		return nil, mapError(err, username)
	}

	return toDomain(row)
}

// Exists reports whether a user with the given username exists.
func (r *Repo) Exists(ctx context.Context, username string) (bool, error) {
	query := postgres.Builder().
		Select().
		Column(squirrel.Expr("EXISTS (SELECT 1 FROM users WHERE username = ?)", username))

	sql, args, err := query.ToSql()
	if err != nil {
		return false, mapError(err, username)
	}

	var exists bool
	if err := pgxscan.Get(ctx, r.q, &exists, sql, args...); err != nil {
		return false, mapError(err, username)
	}

	return exists, nil
}

// Touch bumps updated_at, recording activity on login.
func (r *Repo) Touch(ctx context.Context, username string) error {
	query := postgres.Builder().
		Update(table).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"username": username})

	return r.exec(ctx, query, username)
}

// SetCompletedLessons replaces the completion set.
func (r *Repo) SetCompletedLessons(ctx context.Context, username string, lessons []int) error {
	arr := make([]int32, len(lessons))
	for i, l := range lessons {
		arr[i] = int32(l)
	}

	query := postgres.Builder().
		Update(table).
		Set("completed_lessons", arr).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"username": username})

	return r.exec(ctx, query, username)
}

// GetLessonState returns the stored document for one lesson, or the
// default document when the user has no saved state for it.
func (r *Repo) GetLessonState(ctx context.Context, username string, lesson int) (domain.LessonState, error) {
	key := domain.LessonKey(lesson)

	query := postgres.Builder().
		Select().
		Column(squirrel.Expr("lesson_data -> ?", key)).
		From(table).
		Where(squirrel.Eq{"username": username})

	sql, args, err := query.ToSql()
	if err != nil {
		return domain.LessonState{}, mapError(err, username)
	}

	var raw []byte
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&raw); err != nil {
		return domain.LessonState{}, mapError(err, username)
	}
	if len(raw) == 0 {
		return domain.DefaultLessonState(), nil
	}

	var state domain.LessonState
	if err := json.Unmarshal(raw, &state); err != nil {
		return domain.LessonState{}, fmt.Errorf("user %s: decode lesson %s: %w", username, key, err)
	}

	return state, nil
}

// SaveLessonField overwrites a single field inside one lesson document,
// leaving the document's other fields untouched. The lesson object is
// created on first write.
func (r *Repo) SaveLessonField(ctx context.Context, username string, lesson int, field string, value any) error {
	if !domain.IsLessonField(field) {
		return fmt.Errorf("user %s: field %q: %w", username, field, domain.ErrValidation)
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("user %s: encode %s: %w", username, field, err)
	}
	key := domain.LessonKey(lesson)

	query := postgres.Builder().
		Update(table).
		Set("lesson_data", squirrel.Expr(
			`jsonb_set(`+
				`jsonb_set(lesson_data, ARRAY[?::text], COALESCE(lesson_data -> ?, '{}'::jsonb), true),`+
				` ARRAY[?::text, ?::text], ?::jsonb, true)`,
			key, key, key, field, payload,
		)).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"username": username})

	return r.exec(ctx, query, username)
}

// SaveNote overwrites one note slot inside a lesson document. Parent
// objects are created as needed so the first note of a lesson works.
func (r *Repo) SaveNote(ctx context.Context, username string, lesson int, slot string, text string) error {
	key := domain.LessonKey(lesson)

	query := postgres.Builder().
		Update(table).
		Set("lesson_data", squirrel.Expr(
			`jsonb_set(`+
				`jsonb_set(`+
				`jsonb_set(lesson_data, ARRAY[?::text], COALESCE(lesson_data -> ?, '{}'::jsonb), true),`+
				` ARRAY[?::text, 'notes'], COALESCE(lesson_data -> ? -> 'notes', '{}'::jsonb), true),`+
				` ARRAY[?::text, 'notes', ?::text], to_jsonb(?::text), true)`,
			key, key, key, key, key, slot, text,
		)).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"username": username})

	return r.exec(ctx, query, username)
}

// ResetProgress clears the completion set and all lesson documents,
// keeping the account itself.
func (r *Repo) ResetProgress(ctx context.Context, username string) error {
	query := postgres.Builder().
		Update(table).
		Set("completed_lessons", []int32{}).
		Set("lesson_data", []byte(`{}`)).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"username": username})

	return r.exec(ctx, query, username)
}

// exec runs an update and maps a zero row count to ErrNotFound.
func (r *Repo) exec(ctx context.Context, query squirrel.UpdateBuilder, username string) error {
	sql, args, err := query.ToSql()
	if err != nil {
		return mapError(err, username)
	}

	tag, err := r.q.Exec(ctx, sql, args...)
	if err != nil {
		return mapError(err, username)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", username, domain.ErrNotFound)
	}

	return nil
}

// toDomain converts a userRow into a domain.UserRecord.
func toDomain(row userRow) (*domain.UserRecord, error) {
	completed := make([]int, len(row.CompletedLessons))
	for i, l := range row.CompletedLessons {
		completed[i] = int(l)
	}

	lessonData := map[string]domain.LessonState{}
	if len(row.LessonData) > 0 {
		if err := json.Unmarshal(row.LessonData, &lessonData); err != nil {
			return nil, fmt.Errorf("user %s: decode lesson_data: %w", row.Username, err)
		}
	}

	return &domain.UserRecord{
		ID:               row.ID,
		Username:         row.Username,
		DisplayName:      row.DisplayName,
		CompletedLessons: completed,
		LessonData:       lessonData,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}, nil
}

// mapError converts pgx/pgconn errors into domain errors.
func mapError(err error, username string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("user %s: %w", username, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("user %s: %w", username, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("user %s: %w", username, domain.ErrAlreadyExists)
		case "23514": // check_violation
			return fmt.Errorf("user %s: %w", username, domain.ErrValidation)
		}
	}

	return fmt.Errorf("user %s: %w", username, err)
}
