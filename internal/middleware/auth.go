package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// AdminAuth guards the submission browsing API with a static bearer token.
type AdminAuth struct {
	token string
}

// NewAdminAuth creates a new AdminAuth. An empty token rejects every request.
func NewAdminAuth(token string) *AdminAuth {
	return &AdminAuth{token: token}
}

// Enabled reports whether a token is configured.
func (m *AdminAuth) Enabled() bool {
	return m.token != ""
}

// Authenticate validates the Bearer token.
func (m *AdminAuth) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "missing authorization header", http.StatusUnauthorized)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			http.Error(w, "invalid authorization header format", http.StatusUnauthorized)
			return
		}

		token := parts[1]
		if token == "" || m.token == "" {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		if subtle.ConstantTimeCompare([]byte(token), []byte(m.token)) != 1 {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
