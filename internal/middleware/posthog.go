package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/general_ledger_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// Reads are not tracked, neither are streaming or infrastructure routes.
var pathsToSkip = map[string]bool{
	"/api/health":        true,
	"/api/ledger/events": true,
	"/metrics":           true,
}

var actionByMethod = map[string]string{
	http.MethodPost:   "created",
	http.MethodPut:    "updated",
	http.MethodDelete: "deleted",
}

// PosthogMiddleware reports successful ledger changes to PostHog under the caller's user id.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if posthogClient == nil || !posthogClient.IsInitialized() || pathsToSkip[c.FullPath()] {
			return
		}
		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		eventName := EventName(c.Request.Method, c.FullPath())
		if eventName == "" {
			return
		}
		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"route":       c.FullPath(),
			"status_code": c.Writer.Status(),
		}
		if id := c.Param("id"); id != "" {
			props["id"] = id
		}
		posthogClient.Enqueue(userID, eventName, props)
	}
}

// EventName maps a mutating request onto an event such as "journal_entries_created".
// It returns "" for reads and unmatched routes.
func EventName(method, route string) string {
	action, ok := actionByMethod[method]
	if !ok || route == "" {
		return ""
	}
	var parts []string
	for _, seg := range strings.Split(strings.TrimPrefix(route, "/api/"), "/") {
		if seg == "" || strings.HasPrefix(seg, ":") {
			continue
		}
		parts = append(parts, strings.ReplaceAll(seg, "-", "_"))
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "_") + "_" + action
}

// PosthogEvent sends a custom event for the authenticated user.
func PosthogEvent(c *gin.Context, posthogClient *utils.PosthogClientWrapper, eventName string, properties map[string]any) {
	if posthogClient == nil || !posthogClient.IsInitialized() {
		return
	}
	userID, exists := GetUserIDFromContext(c)
	if !exists {
		return
	}
	if properties == nil {
		properties = make(map[string]any)
	}
	properties["route"] = c.FullPath()
	posthogClient.Enqueue(userID, eventName, properties)
}
