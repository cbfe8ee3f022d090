// Package middleware wraps HTTP handlers with authentication and
// request logging.
package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/reflora/server/internal/model"
)

// Auth authenticates requests from a bearer access token and stores the
// caller's user ID on the request context.
type Auth struct {
	tokenManager   model.TokenManager
	contextManager model.ContextManager
}

// NewAuth creates an Auth middleware.
func NewAuth(tokenManager model.TokenManager, contextManager model.ContextManager) *Auth {
	return &Auth{
		tokenManager:   tokenManager,
		contextManager: contextManager,
	}
}

// Authenticate rejects requests without a valid bearer token.
func (m *Auth) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			unauthorized(w, "missing bearer token")
			return
		}

		userID, _, err := m.tokenManager.ParseAccessToken(token)
		if err != nil {
			unauthorized(w, "invalid access token")
			return
		}

		ctx := m.contextManager.SetUserIDToContext(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	return token, token != ""
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
