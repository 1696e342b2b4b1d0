package session

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetContext serves GET /session/context. Every protected render re-fetches
// this; there is no long-lived client cache.
func GetContext(c *gin.Context) {
	sc := FromGin(c)
	if sc.UserID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, sc)
}
