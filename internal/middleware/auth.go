package middleware

import (
	"strings"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/shafina/squadgoals/internal/services"
)

const AuthUIDKey = "auth_uid"

// Auth verifies the bearer token and stashes the external auth uid it
// carries. Resolving the uid to a provisioned user row is left to handlers,
// so an unprovisioned user can still hit the provisioning endpoint.
func Auth(jwtService *services.JWTService) drift.HandlerFunc {
	return func(c *drift.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Unauthorized("missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.Unauthorized("invalid authorization header format")
			return
		}

		authUID, err := jwtService.ValidateToken(parts[1])
		if err != nil {
			c.Unauthorized("invalid or expired token")
			return
		}

		c.Set(AuthUIDKey, authUID)
		c.Next()
	}
}

func GetAuthUID(c *drift.Context) string {
	if uid, ok := c.Get(AuthUIDKey); ok {
		if s, ok := uid.(string); ok {
			return s
		}
	}
	return ""
}
