package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmorley/bizenglish/internal/config"
	"github.com/kmorley/bizenglish/internal/domain"
)

type serviceMock struct {
	loginFn          func(ctx context.Context, name string) (*domain.UserRecord, error)
	signUpFn         func(ctx context.Context, name string) (*domain.UserRecord, error)
	userExistsFn     func(ctx context.Context, name string) (bool, error)
	getUserFn        func(ctx context.Context, name string) (*domain.UserRecord, error)
	getCompletedFn   func(ctx context.Context, name string) ([]int, error)
	markCompleteFn   func(ctx context.Context, name string, lesson int) error
	markIncompleteFn func(ctx context.Context, name string, lesson int) error
	getStateFn       func(ctx context.Context, name string, lesson int) (domain.LessonState, error)
	saveFieldFn      func(ctx context.Context, name string, lesson int, field string, value any) error
	saveNoteFn       func(ctx context.Context, name string, lesson int, slot, text string) error
	resetFn          func(ctx context.Context, name string) error
}

func (m *serviceMock) Login(ctx context.Context, name string) (*domain.UserRecord, error) {
	return m.loginFn(ctx, name)
}

func (m *serviceMock) SignUp(ctx context.Context, name string) (*domain.UserRecord, error) {
	return m.signUpFn(ctx, name)
}

func (m *serviceMock) UserExists(ctx context.Context, name string) (bool, error) {
	return m.userExistsFn(ctx, name)
}

func (m *serviceMock) GetUser(ctx context.Context, name string) (*domain.UserRecord, error) {
	return m.getUserFn(ctx, name)
}

func (m *serviceMock) GetCompletedLessons(ctx context.Context, name string) ([]int, error) {
	return m.getCompletedFn(ctx, name)
}

func (m *serviceMock) MarkLessonComplete(ctx context.Context, name string, lesson int) error {
	return m.markCompleteFn(ctx, name, lesson)
}

func (m *serviceMock) MarkLessonIncomplete(ctx context.Context, name string, lesson int) error {
	return m.markIncompleteFn(ctx, name, lesson)
}

func (m *serviceMock) GetLessonState(ctx context.Context, name string, lesson int) (domain.LessonState, error) {
	return m.getStateFn(ctx, name, lesson)
}

func (m *serviceMock) SaveLessonField(ctx context.Context, name string, lesson int, field string, value any) error {
	return m.saveFieldFn(ctx, name, lesson, field, value)
}

func (m *serviceMock) SaveNote(ctx context.Context, name string, lesson int, slot, text string) error {
	return m.saveNoteFn(ctx, name, lesson, slot, text)
}

func (m *serviceMock) ResetProgress(ctx context.Context, name string) error {
	return m.resetFn(ctx, name)
}

func newTestRouter(svc *serviceMock) http.Handler {
	logger := slog.New(slog.DiscardHandler)
	return NewRouter(logger, config.CORSConfig{AllowedOrigins: "*"}, svc, &dbPingerMock{})
}

type dbPingerMock struct {
	err error
}

func (m *dbPingerMock) Ping(_ context.Context) error { return m.err }

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

func TestLogin(t *testing.T) {
	t.Parallel()

	svc := &serviceMock{
		loginFn: func(_ context.Context, name string) (*domain.UserRecord, error) {
			assert.Equal(t, "Sarah", name)
			return &domain.UserRecord{
				Username:         "sarah",
				DisplayName:      "Sarah",
				CompletedLessons: []int{1, 3},
			}, nil
		},
	}
	rec := do(t, newTestRouter(svc), http.MethodPost, "/api/auth/login", `{"name":"Sarah"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp userResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "sarah", resp.Username)
	assert.Equal(t, "Sarah", resp.DisplayName)
	assert.Equal(t, []int{1, 3}, resp.CompletedLessons)
}

func TestLogin_UnknownUser(t *testing.T) {
	t.Parallel()

	svc := &serviceMock{
		loginFn: func(_ context.Context, _ string) (*domain.UserRecord, error) {
			return nil, domain.ErrNotFound
		},
	}
	rec := do(t, newTestRouter(svc), http.MethodPost, "/api/auth/login", `{"name":"nobody"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLogin_ValidationError(t *testing.T) {
	t.Parallel()

	svc := &serviceMock{
		loginFn: func(_ context.Context, _ string) (*domain.UserRecord, error) {
			return nil, domain.NewValidationError("name", "must be at least 2 characters")
		},
	}
	rec := do(t, newTestRouter(svc), http.MethodPost, "/api/auth/login", `{"name":"x"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "at least 2 characters")
}

func TestLogin_BadBody(t *testing.T) {
	t.Parallel()

	rec := do(t, newTestRouter(&serviceMock{}), http.MethodPost, "/api/auth/login", `{broken`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignUp_NameTaken(t *testing.T) {
	t.Parallel()

	svc := &serviceMock{
		signUpFn: func(_ context.Context, _ string) (*domain.UserRecord, error) {
			return nil, domain.ErrAlreadyExists
		},
	}
	rec := do(t, newTestRouter(svc), http.MethodPost, "/api/auth/signup", `{"name":"sarah"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSignUp_Created(t *testing.T) {
	t.Parallel()

	svc := &serviceMock{
		signUpFn: func(_ context.Context, name string) (*domain.UserRecord, error) {
			return &domain.UserRecord{Username: "sarah", DisplayName: name}, nil
		},
	}
	rec := do(t, newTestRouter(svc), http.MethodPost, "/api/auth/signup", `{"name":"Sarah"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp userResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, []int{}, resp.CompletedLessons, "fresh account serializes an empty set, not null")
}

func TestExists(t *testing.T) {
	t.Parallel()

	svc := &serviceMock{
		userExistsFn: func(_ context.Context, name string) (bool, error) {
			return name == "sarah", nil
		},
	}
	h := newTestRouter(svc)

	rec := do(t, h, http.MethodGet, "/api/users/sarah/exists", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"exists":true}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/users/bob/exists", "")
	assert.JSONEq(t, `{"exists":false}`, rec.Body.String())
}

func TestMarkComplete(t *testing.T) {
	t.Parallel()

	var gotName string
	var gotLesson int
	svc := &serviceMock{
		markCompleteFn: func(_ context.Context, name string, lesson int) error {
			gotName, gotLesson = name, lesson
			return nil
		},
	}
	rec := do(t, newTestRouter(svc), http.MethodPost, "/api/users/sarah/lessons/7/complete", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "sarah", gotName)
	assert.Equal(t, 7, gotLesson)
}

func TestMarkComplete_BadLessonNumber(t *testing.T) {
	t.Parallel()

	rec := do(t, newTestRouter(&serviceMock{}), http.MethodPost, "/api/users/sarah/lessons/seven/complete", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMarkIncomplete(t *testing.T) {
	t.Parallel()

	called := false
	svc := &serviceMock{
		markIncompleteFn: func(_ context.Context, _ string, _ int) error {
			called = true
			return nil
		},
	}
	rec := do(t, newTestRouter(svc), http.MethodDelete, "/api/users/sarah/lessons/7/complete", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, called)
}

func TestGetLessonState(t *testing.T) {
	t.Parallel()

	svc := &serviceMock{
		getStateFn: func(_ context.Context, _ string, _ int) (domain.LessonState, error) {
			return domain.LessonState{
				Notes:          map[string]string{"0": "hi"},
				RevealedTopics: []string{"Greetings"},
			}, nil
		},
	}
	rec := do(t, newTestRouter(svc), http.MethodGet, "/api/users/sarah/lessons/2/state", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"notes":{"0":"hi"},"revealedTopics":["Greetings"]}`, rec.Body.String())
}

func TestSaveField_PassesRawJSON(t *testing.T) {
	t.Parallel()

	var gotField string
	var gotValue any
	svc := &serviceMock{
		saveFieldFn: func(_ context.Context, _ string, _ int, field string, value any) error {
			gotField, gotValue = field, value
			return nil
		},
	}
	body := `{"formal":["Good morning"],"bank":[]}`
	rec := do(t, newTestRouter(svc), http.MethodPut, "/api/users/sarah/lessons/2/fields/sorting", body)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "sorting", gotField)
	raw, ok := gotValue.(json.RawMessage)
	require.True(t, ok, "field value forwarded without re-shaping")
	assert.JSONEq(t, body, string(raw))
}

func TestSaveNote(t *testing.T) {
	t.Parallel()

	var gotSlot, gotText string
	svc := &serviceMock{
		saveNoteFn: func(_ context.Context, _ string, _ int, slot, text string) error {
			gotSlot, gotText = slot, text
			return nil
		},
	}
	rec := do(t, newTestRouter(svc), http.MethodPut, "/api/users/sarah/lessons/2/notes/0", `{"text":"remember this"}`)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "0", gotSlot)
	assert.Equal(t, "remember this", gotText)
}

func TestReset(t *testing.T) {
	t.Parallel()

	var gotName string
	svc := &serviceMock{
		resetFn: func(_ context.Context, name string) error {
			gotName = name
			return nil
		},
	}
	rec := do(t, newTestRouter(svc), http.MethodPost, "/api/users/sarah/reset", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "sarah", gotName)
}

func TestRequestIDHeader(t *testing.T) {
	t.Parallel()

	rec := do(t, newTestRouter(&serviceMock{}), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodOptions, "/api/auth/login", nil)
	r.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	newTestRouter(&serviceMock{}).ServeHTTP(rec, r)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

// The field and note save endpoints are PUT, so the default method list
// must advertise PUT or browsers refuse the player's save traffic.
func TestCORSPreflight_DefaultsAllowSaves(t *testing.T) {
	t.Parallel()

	var cors config.CORSConfig
	require.NoError(t, cleanenv.ReadEnv(&cors))

	logger := slog.New(slog.DiscardHandler)
	h := NewRouter(logger, cors, &serviceMock{}, &dbPingerMock{})

	r := httptest.NewRequest(http.MethodOptions, "/api/users/sarah/lessons/2/fields/sorting", nil)
	r.Header.Set("Origin", "http://localhost:3000")
	r.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPut)
}
