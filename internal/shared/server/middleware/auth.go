package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"agroadvisor-backend/internal/shared/server/respond"
)

const usernameKey = "username"

// TokenVerifier validates a session token and returns its subject.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Auth resolves the caller's identity from a Bearer token when one is
// present. Requests without a token pass through anonymously; a token that
// fails verification is rejected outright. Endpoints that need an identity
// additionally use RequireUser.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			c.Next()
			return
		}
		if !strings.HasPrefix(header, "Bearer ") {
			respond.Error(c, http.StatusUnauthorized, "invalid_token", "missing or invalid token", nil)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
		if token == "" {
			respond.Error(c, http.StatusUnauthorized, "invalid_token", "missing or invalid token", nil)
			return
		}

		username, err := verifier.Verify(token)
		if err != nil {
			respond.Error(c, http.StatusUnauthorized, "invalid_token", "invalid or expired token", nil)
			return
		}

		c.Set(usernameKey, username)
		c.Next()
	}
}

// RequireUser rejects requests that did not present a valid token.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UsernameFromContext(c) == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "login required", nil)
			return
		}
		c.Next()
	}
}

// UsernameFromContext fetches the username set by the Auth middleware.
// Empty means anonymous.
func UsernameFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(usernameKey)
	if name, ok := val.(string); ok {
		return name
	}
	return ""
}
