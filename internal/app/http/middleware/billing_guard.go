package middleware

import (
	"context"
	"net/http"

	"metaads-dashboard/config"
	"metaads-dashboard/internal/domain/access"
	"metaads-dashboard/internal/domain/billing"
	"metaads-dashboard/internal/domain/impersonation"

	"github.com/gin-gonic/gin"
)

// StateResolver is the live billing-state lookup the guard runs on.
// Production wires billingstate.ForUser.
type StateResolver func(ctx context.Context, userID uint) (billing.State, error)

// BillingGuard is the authoritative gate run on every protected render. It
// resolves the live billing state, decides the block level for the current
// path, and refreshes the advisory block cookie. Denied navigations are
// redirected to the upgrade path before any protected payload is produced.
func BillingGuard(resolve StateResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		st, err := resolve(c.Request.Context(), ViewerID(c))
		if err != nil {
			// Fail open for reads with a neutral state, fail closed for
			// anything mutating. The cookie is left alone — a degraded
			// resolver must not overwrite a possibly-correct hint.
			if !impersonation.IsReadOnly(c.Request.Method) {
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
					"error": "Billing state unavailable",
				})
				return
			}
			c.Set("billing_state", billing.None())
			c.Set("gate_decision", access.Decision{Allowed: true, Overlay: access.OverlayNone})
			c.Next()
			return
		}

		decision := access.Decide(st, path, config.GRACE_WARN_DAYS)
		SetBlockCookie(c, st)

		if !decision.Allowed {
			if wantsHTML(c) {
				c.Redirect(http.StatusFound, decision.RedirectTo)
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusPaymentRequired, gin.H{
				"error":       "Subscription expired",
				"redirect_to": decision.RedirectTo,
			})
			return
		}

		c.Set("billing_state", st)
		c.Set("gate_decision", decision)
		c.Next()
	}
}

// SetBlockCookie refreshes the coarse block hint after an authoritative
// resolution. Not HttpOnly: the browser reads it for its fast path.
func SetBlockCookie(c *gin.Context, st billing.State) {
	c.SetCookie(BlockCookie, access.BlockLevel(st), config.BILLING_CACHE_TTL_SEC*10, "/", "", false, false)
}

// BillingStateFrom returns the state the guard resolved for this request.
func BillingStateFrom(c *gin.Context) billing.State {
	if v, ok := c.Get("billing_state"); ok {
		if st, ok := v.(billing.State); ok {
			return st
		}
	}
	return billing.None()
}

// DecisionFrom returns the guard's decision for this request.
func DecisionFrom(c *gin.Context) access.Decision {
	if v, ok := c.Get("gate_decision"); ok {
		if d, ok := v.(access.Decision); ok {
			return d
		}
	}
	return access.Decision{Allowed: true, Overlay: access.OverlayNone}
}
