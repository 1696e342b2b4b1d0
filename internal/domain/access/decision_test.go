package access

import (
	"testing"

	"metaads-dashboard/internal/domain/billing"

	"github.com/stretchr/testify/assert"
)

const warnDays = 3

func intPtr(n int) *int { return &n }

func trialState(daysLeft int) billing.State {
	return billing.State{Status: billing.StatusTrial, TrialDaysLeft: intPtr(daysLeft)}
}

func graceState(daysLeft int) billing.State {
	return billing.State{
		Status:        billing.StatusGrace,
		GraceDaysLeft: intPtr(daysLeft),
		Block:         billing.Block{SoftBlock: true},
	}
}

func expiredState() billing.State {
	return billing.State{Status: billing.StatusExpired, Block: billing.Block{HardBlock: true}}
}

func TestDecide_TrialOnDashboard(t *testing.T) {
	d := Decide(trialState(5), "/dashboard", warnDays)

	assert.True(t, d.Allowed)
	assert.Equal(t, OverlayNone, d.Overlay)
	assert.Empty(t, d.RedirectTo)
}

func TestDecide_GraceOnCampaigns(t *testing.T) {
	d := Decide(graceState(2), "/campaigns", warnDays)

	assert.True(t, d.Allowed)
	assert.Equal(t, OverlaySoft, d.Overlay)
}

func TestDecide_ExpiredOnReports(t *testing.T) {
	d := Decide(expiredState(), "/reports", warnDays)

	assert.False(t, d.Allowed)
	assert.Equal(t, OverlayHard, d.Overlay)
	assert.Equal(t, "/billing?upgrade=1", d.RedirectTo)
}

func TestDecide_ExpiredOnBillingAllowListed(t *testing.T) {
	d := Decide(expiredState(), "/billing", warnDays)

	assert.True(t, d.Allowed)
	assert.Empty(t, d.RedirectTo)
}

func TestDecide_AllowListBeatsHardBlock(t *testing.T) {
	statuses := []billing.State{
		{Status: billing.StatusNone},
		trialState(5),
		graceState(1),
		expiredState(),
		{Status: billing.StatusActive},
	}
	allowed := []string{"/billing", "/billing/history", "/logout", "/login", "/verify"}

	for _, st := range statuses {
		for _, path := range allowed {
			d := Decide(st, path, warnDays)
			assert.True(t, d.Allowed, "status=%s path=%s", st.Status, path)
		}
	}
}

func TestDecide_AllowListMatchesWholeSegments(t *testing.T) {
	d := Decide(expiredState(), "/billingx", warnDays)

	assert.False(t, d.Allowed)
}

func TestDecide_AdminNamespaceBypassesBilling(t *testing.T) {
	d := Decide(expiredState(), "/admin/users", warnDays)

	assert.True(t, d.Allowed)
	assert.Equal(t, OverlayNone, d.Overlay)
}

func TestDecide_PublicPathsIgnoreBilling(t *testing.T) {
	d := Decide(expiredState(), "/auth/verify", warnDays)

	assert.True(t, d.Allowed)
}

func TestDecide_HardBeatsSoft(t *testing.T) {
	// Not producible by the resolver, but the tie-break must hold anyway.
	st := billing.State{
		Status: billing.StatusGrace,
		Block:  billing.Block{SoftBlock: true, HardBlock: true},
	}

	d := Decide(st, "/dashboard", warnDays)

	assert.False(t, d.Allowed)
	assert.Equal(t, OverlayHard, d.Overlay)
}

func TestDecide_ActiveNearCliffWarnsSoft(t *testing.T) {
	// Canceled but paid through, 2 days left: allowed with a soft warning.
	st := billing.State{Status: billing.StatusActive, GraceDaysLeft: intPtr(2)}

	d := Decide(st, "/dashboard", warnDays)

	assert.True(t, d.Allowed)
	assert.Equal(t, OverlaySoft, d.Overlay)
}

func TestDecide_ActiveFarFromCliffNoOverlay(t *testing.T) {
	st := billing.State{Status: billing.StatusActive, GraceDaysLeft: intPtr(20)}

	d := Decide(st, "/dashboard", warnDays)

	assert.True(t, d.Allowed)
	assert.Equal(t, OverlayNone, d.Overlay)
}

func TestBlockLevel(t *testing.T) {
	assert.Equal(t, "none", BlockLevel(billing.State{Status: billing.StatusActive}))
	assert.Equal(t, "soft", BlockLevel(graceState(1)))
	assert.Equal(t, "hard", BlockLevel(expiredState()))
}
