package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/kmorley/bizenglish/internal/domain"
	"github.com/kmorley/bizenglish/pkg/ctxutil"
)

// PathUsername stashes the username segment of /api/users/{username}/...
// paths into the context. It runs outside the mux, before routing, so
// the request log sees the value.
func PathUsername(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if name, ok := usernameFromPath(r.URL.Path); ok {
			ctx := ctxutil.WithUsername(r.Context(), domain.NormalizeUsername(name))
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

func usernameFromPath(path string) (string, bool) {
	rest, ok := strings.CutPrefix(path, "/api/users/")
	if !ok {
		return "", false
	}
	name, _, _ := strings.Cut(rest, "/")
	if name == "" {
		return "", false
	}
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	return name, true
}
