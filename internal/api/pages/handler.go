package pages

import (
	"net/http"

	"metaads-dashboard/database"
	"metaads-dashboard/internal/api/session"
	"metaads-dashboard/internal/app/http/middleware"
	"metaads-dashboard/internal/domain/plans"

	"github.com/gin-gonic/gin"
)

// Page payload endpoints: each protected render fetches its page context
// here after passing the route gate and the billing guard. The guard already
// decided allowed/overlay for this path, so handlers only echo the resolved
// context — no handler ever re-implements blocking.

func Dashboard(c *gin.Context) { renderPage(c, "dashboard") }
func Campaigns(c *gin.Context) { renderPage(c, "campaigns") }
func Reports(c *gin.Context)   { renderPage(c, "reports") }
func Settings(c *gin.Context)  { renderPage(c, "settings") }

func renderPage(c *gin.Context, name string) {
	c.JSON(http.StatusOK, gin.H{
		"page":    name,
		"session": session.FromGin(c),
		"billing": middleware.BillingStateFrom(c),
		"gate":    middleware.DecisionFrom(c),
	})
}

// Billing is allow-listed under a hard block; `upgrade=1` switches the
// upsell variant and includes the purchasable plans.
func Billing(c *gin.Context) {
	upsell := c.Query("upgrade") == "1"

	var planList []plans.Plan
	if err := database.DB.Order("price_eur ASC").Find(&planList).Error; err != nil {
		planList = nil
	}

	c.JSON(http.StatusOK, gin.H{
		"page":    "billing",
		"session": session.FromGin(c),
		"billing": middleware.BillingStateFrom(c),
		"gate":    middleware.DecisionFrom(c),
		"upsell":  upsell,
		"plans":   planList,
	})
}

// Login is public: it only needs the return path.
func Login(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"page": "login",
		"next": c.Query("next"),
	})
}
