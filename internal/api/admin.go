package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"bank_system/internal/audit" // Audit journal

	"github.com/gin-gonic/gin" // Gin web framework
)

// ListAuditHandler returns the most recent audit entries, newest first
func ListAuditHandler(log *audit.Log) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := audit.DefaultRecent
		if l := c.Query("limit"); l != "" {
			v, err := strconv.Atoi(l)
			if err != nil {
				badRequest(c)
				return
			}
			limit = v
		}
		entries, err := log.GetRecent(c.Request.Context(), limit)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"entries": entries})
	}
}
