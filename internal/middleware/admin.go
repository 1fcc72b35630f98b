package middleware

import (
	"context"
	"net/http" // HTTP status codes

	"bank_system/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// Auditor records access denials
type Auditor interface {
	Log(ctx context.Context, actor, action, details string)
}

// AdminOnlyMiddleware lets only administrators through. The role comes
// from the actor that JWTAuthMiddleware reloaded for this request.
func AdminOnlyMiddleware(audit Auditor) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := ActorFrom(c)
		if actor.Username == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if err := actor.Require(domain.RoleAdmin); err != nil {
			audit.Log(c.Request.Context(), actor.Username, domain.ActionAccessDenied, c.Request.Method+" "+c.FullPath())
			logrus.WithFields(logrus.Fields{
				"actor": actor.Username,
				"path":  c.FullPath(),
			}).Warn("Admin access denied")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}
