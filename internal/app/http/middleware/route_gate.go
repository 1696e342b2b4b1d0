package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"metaads-dashboard/internal/domain/access"

	"github.com/gin-gonic/gin"
)

const (
	SessionCookie = "meta_ai_session"
	BlockCookie   = "meta_ai_block"
)

// Route-gate exemptions beyond the public path set: health, webhooks and
// static assets never need a session.
var gateExemptPrefixes = []string{
	"/health",
	"/webhook",
	"/static",
	"/assets",
	"/favicon.ico",
	"/plans",
}

// RouteGate is the cheap per-navigation filter: cookie presence only, no DB
// or billing round trip. It is fail-safe, not authoritative — the billing
// guard re-checks with live data before anything protected renders.
func RouteGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if isGateExempt(path) || access.IsPublic(path) {
			c.Next()
			return
		}

		if _, err := c.Cookie(SessionCookie); err != nil {
			RedirectToLogin(c, path)
			return
		}

		// The block cookie is an advisory hint only. It pre-warms the UI but
		// never enforces a hard block — it can be stale across billing
		// transitions.
		if hint, err := c.Cookie(BlockCookie); err == nil {
			c.Set("block_hint", hint)
		}

		c.Next()
	}
}

func isGateExempt(path string) bool {
	for _, p := range gateExemptPrefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// RedirectToLogin aborts the request: navigations get a 302 with a `next`
// return parameter, API calls get a 401.
func RedirectToLogin(c *gin.Context, next string) {
	if wantsHTML(c) {
		c.Redirect(http.StatusFound, access.LoginPath+"?next="+url.QueryEscape(next))
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": "Authentication required",
		"login": access.LoginPath + "?next=" + url.QueryEscape(next),
	})
}

func wantsHTML(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}
