package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
)

type contextKey string

const (
	UserContextKey  contextKey = "auth.user"
	EmailContextKey contextKey = "auth.email"
)

var (
	ErrMissingToken = errors.New("missing authorization header")
	ErrInvalidToken = errors.New("invalid authorization header")
)

type Provider interface {
	Authenticate(ctx context.Context, r *http.Request) (context.Context, error)
}

func BearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")

	if header == "" {
		return "", ErrMissingToken
	}

	token, ok := strings.CutPrefix(header, "Bearer ")

	if !ok || token == "" {
		return "", ErrInvalidToken
	}

	return token, nil
}

// Middleware accepts a request when any of the providers authenticates it.
// Without providers every request passes.
func Middleware(providers ...Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(providers) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			var result error

			for _, p := range providers {
				ctx, err := p.Authenticate(r.Context(), r)

				if err == nil {
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}

				result = errors.Join(result, err)
			}

			slog.DebugContext(r.Context(), "authentication failed", "path", r.URL.Path, "error", result)

			http.Error(w, "Unauthorized", http.StatusUnauthorized)
		})
	}
}
