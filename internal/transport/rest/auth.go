package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/kmorley/bizenglish/internal/domain"
)

// accountService defines the minimal interface needed by AuthHandler.
type accountService interface {
	Login(ctx context.Context, name string) (*domain.UserRecord, error)
	SignUp(ctx context.Context, name string) (*domain.UserRecord, error)
	UserExists(ctx context.Context, name string) (bool, error)
}

// AuthHandler serves account REST endpoints.
type AuthHandler struct {
	svc accountService
	log *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc accountService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: logger.With("handler", "auth")}
}

type nameRequest struct {
	Name string `json:"name"`
}

type userResponse struct {
	Username         string `json:"username"`
	DisplayName      string `json:"displayName"`
	CompletedLessons []int  `json:"completedLessons"`
}

type existsResponse struct {
	Exists bool `json:"exists"`
}

func toUserResponse(user *domain.UserRecord) userResponse {
	completed := user.CompletedLessons
	if completed == nil {
		completed = []int{}
	}
	return userResponse{
		Username:         user.Username,
		DisplayName:      user.DisplayName,
		CompletedLessons: completed,
	}
}

// Login handles POST /api/auth/login. Unknown names come back 404 so
// the client can steer the user to sign-up instead.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.svc.Login(r.Context(), req.Name)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// SignUp handles POST /api/auth/signup.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.svc.SignUp(r.Context(), req.Name)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

// Exists handles GET /api/users/{username}/exists.
func (h *AuthHandler) Exists(w http.ResponseWriter, r *http.Request) {
	ok, err := h.svc.UserExists(r.Context(), r.PathValue("username"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, existsResponse{Exists: ok})
}
