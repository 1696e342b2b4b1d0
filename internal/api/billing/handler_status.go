package billing

import (
	"net/http"

	"metaads-dashboard/internal/app/http/middleware"
	"metaads-dashboard/internal/infra/billingstate"

	"github.com/gin-gonic/gin"
)

// GetStatus serves GET /billing/status — the authoritative state for the
// authenticated (or impersonated) identity, polled once per protected
// render.
func GetStatus(c *gin.Context) {
	st, err := billingstate.ForUser(c.Request.Context(), middleware.ViewerID(c))
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Billing state unavailable"})
		return
	}

	middleware.SetBlockCookie(c, st)
	c.JSON(http.StatusOK, st)
}
