package routes

import (
	adminapi "metaads-dashboard/internal/api/admin"
	authapi "metaads-dashboard/internal/api/auth"
	"metaads-dashboard/internal/api/billing"
	"metaads-dashboard/internal/api/gate"
	"metaads-dashboard/internal/api/pages"
	"metaads-dashboard/internal/api/plans"
	"metaads-dashboard/internal/api/session"
	stripewebhooks "metaads-dashboard/internal/api/stripewebhook"
	"metaads-dashboard/internal/app/http/middleware"
	"metaads-dashboard/internal/infra/billingstate"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// The route gate runs before everything: cheap cookie-presence filter
	// with its own exemption list. Authoritative billing enforcement happens
	// per-group below.
	r.Use(middleware.RequestLog(), middleware.RouteGate())

	r.POST("/webhook", stripewebhooks.StripeWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/plans", plans.ListPlans)

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.GET("/login", pages.Login)
	public.POST("/auth/login", authapi.Login)
	public.GET("/auth/verify", authapi.Verify)
	public.GET("/logout", authapi.Logout)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	// Authenticated API: identity + impersonation view, no billing block —
	// /session/context and /billing/status must answer even for hard-blocked
	// tenants, that is how the UI learns it is blocked.
	api := r.Group("/")
	api.Use(middleware.SessionAuth(), middleware.Impersonate())
	api.GET("/session/context", session.GetContext)
	api.GET("/billing/status", billing.GetStatus)
	api.GET("/gate/decision", gate.GetDecision)
	api.GET("/payments", billing.GetPaymentHistory)

	// Checkout stays reachable under a hard block: it is the upgrade path.
	api.POST("/create-checkout-session", billing.CreateCheckoutSession)
	api.POST("/billing-portal", billing.CreateBillingPortal)

	// Protected renders: the billing guard decides allowed/overlay per path
	// and redirects hard-blocked navigations before anything renders.
	app := r.Group("/")
	app.Use(middleware.SessionAuth(), middleware.Impersonate(), middleware.BillingGuard(billingstate.ForUser))
	app.GET("/dashboard", pages.Dashboard)
	app.GET("/campaigns", pages.Campaigns)
	app.GET("/reports", pages.Reports)
	app.GET("/settings", pages.Settings)
	app.GET("/billing", pages.Billing)

	// Admin console: role-gated, never billing-gated — operators are not
	// billing subjects of the tenants they administer.
	admin := r.Group("/admin")
	admin.Use(middleware.SessionAuth(), middleware.RequireRole("admin"), middleware.SanitizeAndCleanInputMiddleware())
	admin.GET("/users", adminapi.ListAllUsers)
	admin.GET("/user/:id", adminapi.GetUserDetails)
	admin.POST("/impersonate", adminapi.BeginImpersonation)
	admin.DELETE("/impersonate", adminapi.EndImpersonation)
	admin.POST("/users/:id/force-ai", adminapi.ForceAIToggle)
	admin.POST("/users/:id/reset", adminapi.ResetAI)
	admin.POST("/users/:id/settings", adminapi.UpdateUserSetting)
	admin.POST("/sync-plans", plans.SyncPlansFromStripe)
}
