package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"metaads-dashboard/config"
	"metaads-dashboard/internal/domain/access"
	"metaads-dashboard/internal/domain/billing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func fixedState(st billing.State) StateResolver {
	return func(context.Context, uint) (billing.State, error) { return st, nil }
}

func unreachableState(context.Context, uint) (billing.State, error) {
	return billing.State{}, assert.AnError
}

func guardRouter(resolve StateResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	config.GRACE_WARN_DAYS = 3
	config.BILLING_CACHE_TTL_SEC = 30

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", uint(7)) }, BillingGuard(resolve))
	render := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"rendered": true,
			"overlay":  DecisionFrom(c).Overlay,
			"billing":  BillingStateFrom(c),
		})
	}
	r.GET("/reports", render)
	r.GET("/billing", render)
	r.POST("/settings", render)
	return r
}

func guardGet(r *gin.Engine, path, accept string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func hardBlockedState() billing.State {
	return billing.State{Status: billing.StatusExpired, Block: billing.Block{HardBlock: true}}
}

// An expired tenant navigating to a protected page is redirected to the
// upgrade path before any protected payload is produced.
func TestBillingGuard_HardBlockRedirectsNavigation(t *testing.T) {
	r := guardRouter(fixedState(hardBlockedState()))

	w := guardGet(r, "/reports", "text/html")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/billing?upgrade=1", w.Header().Get("Location"))
	assert.NotContains(t, w.Body.String(), "rendered")
}

func TestBillingGuard_HardBlockAPIGets402(t *testing.T) {
	r := guardRouter(fixedState(hardBlockedState()))

	w := guardGet(r, "/reports", "application/json")

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Contains(t, w.Body.String(), `"redirect_to":"/billing?upgrade=1"`)
	assert.NotContains(t, w.Body.String(), "rendered")
}

func TestBillingGuard_HardBlockAllowListedPathRenders(t *testing.T) {
	r := guardRouter(fixedState(hardBlockedState()))

	w := guardGet(r, "/billing", "text/html")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"rendered":true`)
}

func TestBillingGuard_AllowedRenderRefreshesCookie(t *testing.T) {
	days := 2
	r := guardRouter(fixedState(billing.State{
		Status:        billing.StatusGrace,
		GraceDaysLeft: &days,
		Block:         billing.Block{SoftBlock: true},
	}))

	w := guardGet(r, "/reports", "text/html")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"overlay":"soft"`)

	cookies := w.Result().Cookies()
	var hint string
	for _, ck := range cookies {
		if ck.Name == BlockCookie {
			hint = ck.Value
		}
	}
	assert.Equal(t, "soft", hint)
}

// Resolver outage: reads fail open with a neutral state and the possibly-
// correct hint cookie is left alone.
func TestBillingGuard_DegradedReadFailsOpen(t *testing.T) {
	r := guardRouter(unreachableState)

	w := guardGet(r, "/reports", "text/html")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"rendered":true`)
	assert.Contains(t, w.Body.String(), `"status":"none"`)

	for _, ck := range w.Result().Cookies() {
		assert.NotEqual(t, BlockCookie, ck.Name)
	}
}

func TestBillingGuard_DegradedMutationFailsClosed(t *testing.T) {
	r := guardRouter(unreachableState)

	req := httptest.NewRequest(http.MethodPost, "/settings", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotContains(t, w.Body.String(), "rendered")
}

func TestBillingGuard_SoftBlockNeverDenies(t *testing.T) {
	days := 1
	r := guardRouter(fixedState(billing.State{
		Status:        billing.StatusGrace,
		GraceDaysLeft: &days,
		Block:         billing.Block{SoftBlock: true},
	}))

	for _, path := range []string{"/reports", "/billing"} {
		w := guardGet(r, path, "text/html")
		assert.Equal(t, http.StatusOK, w.Code, "path=%s", path)
	}
}

func TestBillingGuard_ContextHelpersDefaultNeutral(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Equal(t, billing.None(), BillingStateFrom(c))
	assert.Equal(t, access.Decision{Allowed: true, Overlay: access.OverlayNone}, DecisionFrom(c))
}
