package gate

import (
	"net/http"
	"strings"

	"metaads-dashboard/config"
	"metaads-dashboard/internal/app/http/middleware"
	"metaads-dashboard/internal/domain/access"
	"metaads-dashboard/internal/infra/billingstate"

	"github.com/gin-gonic/gin"
)

// GetDecision serves GET /gate/decision?path=... — the authority behind the
// browser's render-time gate. The client stays in its Loading state until
// this answers; on resolver failure it gets a neutral, explicitly degraded
// result rather than an error, and must not render protected content from
// it.
func GetDecision(c *gin.Context) {
	path := c.Query("path")
	if path == "" || !strings.HasPrefix(path, "/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid path"})
		return
	}

	st, err := billingstate.ForUser(c.Request.Context(), middleware.ViewerID(c))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"allowed":  true,
			"overlay":  access.OverlayNone,
			"degraded": true,
		})
		return
	}

	decision := access.Decide(st, path, config.GRACE_WARN_DAYS)
	middleware.SetBlockCookie(c, st)

	c.JSON(http.StatusOK, gin.H{
		"allowed":     decision.Allowed,
		"overlay":     decision.Overlay,
		"redirect_to": decision.RedirectTo,
		"billing":     st,
	})
}
