package middleware

import (
	"net/http"
	"strings"

	"github.com/bizledger/bizops_backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that should not be tracked
var pathsToSkip = map[string]bool{
	"/health": true,
}

// AnalyticsMiddleware creates a Gin middleware handler that tracks API events.
// Events are keyed by client IP since the API carries no user identity.
func AnalyticsMiddleware(analyticsClient *utils.AnalyticsClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if analyticsClient == nil || !analyticsClient.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		// Process request first
		c.Next()

		// Skip if there was an error processing the request
		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		// Create event name from route path (e.g., "/api/v1/ledger" -> "api_v1_ledger")
		eventName := strings.TrimPrefix(c.FullPath(), "/")
		eventName = strings.ReplaceAll(eventName, "/", "_")
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		}

		if len(c.Params) > 0 {
			params := make(map[string]string)
			for _, param := range c.Params {
				params[param.Key] = param.Value
			}
			props["params"] = params
		}

		analyticsClient.Enqueue(c.ClientIP(), eventName, props)
	}
}
