package admin

import (
	"log/slog"
	"net/http"
	"strings"

	"metaads-dashboard/database"
	"metaads-dashboard/internal/app/http/middleware"
	"metaads-dashboard/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// bindChange enforces the admin mutation contract at the call-site boundary:
// no reason, no dispatch. It binds the structured change body first, so a
// missing reason rejects the request before the target is even looked up.
func bindChange(c *gin.Context, body any, reason *string) (users.User, bool) {
	if err := c.ShouldBindJSON(body); err != nil || strings.TrimSpace(*reason) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A reason is required for admin changes"})
		return users.User{}, false
	}

	var target users.User
	if err := database.DB.First(&target, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return users.User{}, false
	}
	return target, true
}

// audit records who did what to whom and why. Storage of the audit trail is
// owned by the log pipeline; the service only guarantees the entry is
// emitted with the request's correlation ID.
func audit(c *gin.Context, targetID uint, action, value, reason string) {
	slog.Info("admin_action",
		"request_id", middleware.RequestID(c),
		"admin", c.GetString("email"),
		"target_user", targetID,
		"action", action,
		"value", value,
		"reason", reason,
	)
}
