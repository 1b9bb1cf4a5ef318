package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/kmorley/bizenglish/internal/domain"
)

// progressService defines the minimal interface needed by ProgressHandler.
type progressService interface {
	GetUser(ctx context.Context, name string) (*domain.UserRecord, error)
	GetCompletedLessons(ctx context.Context, name string) ([]int, error)
	MarkLessonComplete(ctx context.Context, name string, lesson int) error
	MarkLessonIncomplete(ctx context.Context, name string, lesson int) error
	GetLessonState(ctx context.Context, name string, lesson int) (domain.LessonState, error)
	SaveLessonField(ctx context.Context, name string, lesson int, field string, value any) error
	SaveNote(ctx context.Context, name string, lesson int, slot, text string) error
	ResetProgress(ctx context.Context, name string) error
}

// ProgressHandler serves the per-user progress REST endpoints.
type ProgressHandler struct {
	svc progressService
	log *slog.Logger
}

// NewProgressHandler creates a ProgressHandler.
func NewProgressHandler(svc progressService, logger *slog.Logger) *ProgressHandler {
	return &ProgressHandler{svc: svc, log: logger.With("handler", "progress")}
}

func lessonNumber(r *http.Request) (int, bool) {
	n, err := strconv.Atoi(r.PathValue("lesson"))
	return n, err == nil
}

// GetUser handles GET /api/users/{username}.
func (h *ProgressHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("username")

	user, err := h.svc.GetUser(r.Context(), name)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// GetCompleted handles GET /api/users/{username}/completed.
func (h *ProgressHandler) GetCompleted(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("username")

	completed, err := h.svc.GetCompletedLessons(r.Context(), name)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if completed == nil {
		completed = []int{}
	}

	writeJSON(w, http.StatusOK, map[string][]int{"completedLessons": completed})
}

// MarkComplete handles POST /api/users/{username}/lessons/{lesson}/complete.
func (h *ProgressHandler) MarkComplete(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("username")
	lesson, ok := lessonNumber(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid lesson number")
		return
	}

	if err := h.svc.MarkLessonComplete(r.Context(), name, lesson); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MarkIncomplete handles DELETE /api/users/{username}/lessons/{lesson}/complete.
func (h *ProgressHandler) MarkIncomplete(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("username")
	lesson, ok := lessonNumber(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid lesson number")
		return
	}

	if err := h.svc.MarkLessonIncomplete(r.Context(), name, lesson); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetLessonState handles GET /api/users/{username}/lessons/{lesson}/state.
func (h *ProgressHandler) GetLessonState(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("username")
	lesson, ok := lessonNumber(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid lesson number")
		return
	}

	state, err := h.svc.GetLessonState(r.Context(), name, lesson)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, state)
}

// SaveField handles PUT /api/users/{username}/lessons/{lesson}/fields/{field}.
// The body is the raw JSON value of the field; it is stored as-is.
func (h *ProgressHandler) SaveField(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("username")
	lesson, ok := lessonNumber(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid lesson number")
		return
	}

	var value json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&value); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.SaveLessonField(r.Context(), name, lesson, r.PathValue("field"), value); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type noteRequest struct {
	Text string `json:"text"`
}

// SaveNote handles PUT /api/users/{username}/lessons/{lesson}/notes/{slot}.
func (h *ProgressHandler) SaveNote(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("username")
	lesson, ok := lessonNumber(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid lesson number")
		return
	}

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.SaveNote(r.Context(), name, lesson, r.PathValue("slot"), req.Text); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reset handles POST /api/users/{username}/reset.
func (h *ProgressHandler) Reset(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("username")

	if err := h.svc.ResetProgress(r.Context(), name); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
