// Package rest exposes the progress service over HTTP.
package rest

import (
	"log/slog"
	"net/http"

	"github.com/kmorley/bizenglish/internal/config"
	"github.com/kmorley/bizenglish/internal/transport/middleware"
)

// service is the full surface the router needs; the progress service
// implements all of it.
type service interface {
	accountService
	progressService
}

// NewRouter builds the HTTP handler tree with middleware applied.
func NewRouter(logger *slog.Logger, cfg config.CORSConfig, svc service, db dbPinger) http.Handler {
	auth := NewAuthHandler(svc, logger)
	progress := NewProgressHandler(svc, logger)
	health := NewHealthHandler(db)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", health.Live)
	mux.HandleFunc("GET /readyz", health.Ready)

	mux.HandleFunc("POST /api/auth/login", auth.Login)
	mux.HandleFunc("POST /api/auth/signup", auth.SignUp)

	mux.HandleFunc("GET /api/users/{username}", progress.GetUser)
	mux.HandleFunc("GET /api/users/{username}/exists", auth.Exists)
	mux.HandleFunc("GET /api/users/{username}/completed", progress.GetCompleted)
	mux.HandleFunc("POST /api/users/{username}/reset", progress.Reset)

	mux.HandleFunc("POST /api/users/{username}/lessons/{lesson}/complete", progress.MarkComplete)
	mux.HandleFunc("DELETE /api/users/{username}/lessons/{lesson}/complete", progress.MarkIncomplete)
	mux.HandleFunc("GET /api/users/{username}/lessons/{lesson}/state", progress.GetLessonState)
	mux.HandleFunc("PUT /api/users/{username}/lessons/{lesson}/fields/{field}", progress.SaveField)
	mux.HandleFunc("PUT /api/users/{username}/lessons/{lesson}/notes/{slot}", progress.SaveNote)

	chain := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.PathUsername,
		middleware.Logger(logger),
		middleware.CORS(cfg),
	)
	return chain(mux)
}
