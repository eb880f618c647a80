package shared

import (
	"github.com/tawseel-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middleware
const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
	ContextRole     = "role"
)

// CurrentUserID authenticated staff id; responds 401 and returns false when absent
func CurrentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(ContextUserID)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return 0, false
	}
	if id, ok := value.(uint); ok && id > 0 {
		return id, true
	}
	RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
	return 0, false
}

// CurrentRole role of the authenticated user, "" when absent
func CurrentRole(c *gin.Context) string {
	return c.GetString(ContextRole)
}

// DefaultSessionCookie cookie carrying the session token when none is configured
const DefaultSessionCookie = "session_token"
