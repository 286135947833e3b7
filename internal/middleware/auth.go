package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/listkeeper/listkeeper-go/internal/service"
)

type contextKey string

const usernameKey contextKey = "username"

// Auth returns middleware that rejects requests lacking a valid Bearer
// token before they reach the repository. An absent header and an
// invalid or expired token produce distinct error bodies.
func Auth(tokens *service.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeJSONError(w, http.StatusUnauthorized, "token missing")
				return
			}

			token, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || token == "" {
				writeJSONError(w, http.StatusUnauthorized, "token invalid")
				return
			}

			claims := tokens.Verify(token)
			if claims == nil {
				writeJSONError(w, http.StatusUnauthorized, "token invalid")
				return
			}

			ctx := context.WithValue(r.Context(), usernameKey, claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UsernameFromContext extracts the authenticated username from the
// request context.
func UsernameFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(usernameKey).(string)
	return name, ok
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
