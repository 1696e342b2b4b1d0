package middleware

import (
	"metaads-dashboard/database"
	"metaads-dashboard/internal/domain/impersonation"
	"metaads-dashboard/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// Impersonate applies the admin "view as user" ticket, if present. The
// ticket only relabels the read view: the real principal set by SessionAuth
// stays untouched, and the header is silently ignored on anything that is
// not an admin-issued read. A ticket for a user that no longer resolves is
// dropped and the real identity is used.
func Impersonate() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(impersonation.Header)
		if raw == "" {
			c.Next()
			return
		}

		if c.GetString("role") != "admin" || !impersonation.IsReadOnly(c.Request.Method) {
			c.Next()
			return
		}

		ticket, ok := impersonation.FromHeader(raw)
		if !ok {
			c.Next()
			return
		}

		var target users.User
		if err := database.DB.First(&target, ticket.TargetUserID).Error; err != nil {
			// stale ticket — tell the client to clear it
			c.Header("X-Impersonation-Stale", "1")
			c.Next()
			return
		}

		c.Set("view_user_id", target.ID)
		c.Set("view_email", target.Email)
		c.Set("is_impersonated", true)
		c.Next()
	}
}

// ViewerID is the identity whose data the request reads: the impersonation
// target when a valid ticket is applied, the real user otherwise.
func ViewerID(c *gin.Context) uint {
	if c.GetBool("is_impersonated") {
		return c.GetUint("view_user_id")
	}
	return c.GetUint("user_id")
}
