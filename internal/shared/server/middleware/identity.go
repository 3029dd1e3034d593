package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"careerlaunch-backend/internal/shared/auth"
	"careerlaunch-backend/internal/shared/telemetry"
)

const (
	userIDKey    = "userId"
	userEmailKey = "userEmail"
)

// TokenVerifier validates session tokens.
type TokenVerifier interface {
	Verify(raw string) (auth.Claims, error)
}

// Identity resolves an optional bearer token into the request context.
// Requests without a verifiable token pass through anonymously.
func Identity(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || verifier == nil {
			c.Next()
			return
		}
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			anonymous(c, "unsupported authorization scheme")
			return
		}
		claims, err := verifier.Verify(strings.TrimSpace(token))
		if err != nil {
			anonymous(c, err.Error())
			return
		}
		c.Set(userIDKey, claims.Subject)
		if claims.Email != "" {
			c.Set(userEmailKey, claims.Email)
		}
		c.Next()
	}
}

func anonymous(c *gin.Context, reason string) {
	telemetry.Warn("identity.ignored_token", map[string]any{
		"reason":     reason,
		"path":       c.Request.URL.Path,
		"request_id": c.GetString(requestIDKey),
	})
	c.Next()
}

// UserIDFromContext fetches the user ID set by the identity middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}
