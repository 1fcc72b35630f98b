package middleware

import (
	"context"
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"bank_system/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
)

// ActorKey is the gin context key holding the authenticated domain.Actor
const ActorKey = "actor"

// PasswordChangePath is the only route open to a user who must rotate the password
const PasswordChangePath = "/user/password"

// Authenticator resolves a bearer token into an actor
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (domain.Actor, bool, error)
}

// JWTAuthMiddleware validates the bearer token and stores the actor in the context
func JWTAuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string
		actor, mustChange, err := auth.Authenticate(c.Request.Context(), tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		// Until the password is rotated only the change endpoint is reachable
		if mustChange && !(c.Request.Method == http.MethodPost && c.FullPath() == PasswordChangePath) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Password change required"})
			return
		}
		c.Set(ActorKey, actor) // Store actor in context
		c.Next()
	}
}

// ActorFrom returns the actor set by JWTAuthMiddleware, or the zero Actor
func ActorFrom(c *gin.Context) domain.Actor {
	if v, ok := c.Get(ActorKey); ok {
		if actor, ok := v.(domain.Actor); ok {
			return actor
		}
	}
	return domain.Actor{}
}
