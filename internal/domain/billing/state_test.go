package billing

import (
	"testing"
	"time"

	"metaads-dashboard/internal/domain/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const graceDays = 7

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string       { return &s }
func timePtr(t time.Time) *time.Time { return &t }

func subscribedUser(status string, periodEnd time.Time) users.User {
	return users.User{
		ID:                       1,
		Email:                    "tenant@example.com",
		SubscriptionId:           strPtr("sub_123"),
		StripeSubscriptionStatus: strPtr(status),
		CurrentPeriodEnd:         timePtr(periodEnd),
	}
}

func TestResolve_ActiveTrial(t *testing.T) {
	u := users.User{
		ID:           1,
		TrialStartAt: timePtr(now.AddDate(0, 0, -9)),
		TrialEndAt:   timePtr(now.Add(5*24*time.Hour + time.Hour)),
	}

	st := Resolve(now, u, graceDays)

	assert.Equal(t, StatusTrial, st.Status)
	require.NotNil(t, st.TrialDaysLeft)
	assert.Equal(t, 5, *st.TrialDaysLeft)
	assert.False(t, st.Block.SoftBlock)
	assert.False(t, st.Block.HardBlock)
}

func TestResolve_TrialOverNoSubscription(t *testing.T) {
	u := users.User{
		ID:         1,
		TrialEndAt: timePtr(now.AddDate(0, 0, -1)),
	}

	st := Resolve(now, u, graceDays)

	assert.Equal(t, StatusExpired, st.Status)
	assert.True(t, st.Block.HardBlock)
	assert.False(t, st.Block.SoftBlock)
}

func TestResolve_NeverProvisioned(t *testing.T) {
	// Operator accounts have no trial and no subscription: not a billing
	// subject, nothing to block.
	st := Resolve(now, users.User{ID: 1}, graceDays)

	assert.Equal(t, StatusNone, st.Status)
	assert.False(t, st.Block.SoftBlock)
	assert.False(t, st.Block.HardBlock)
}

func TestResolve_ActiveSubscription(t *testing.T) {
	st := Resolve(now, subscribedUser("active", now.AddDate(0, 1, 0)), graceDays)

	assert.Equal(t, StatusActive, st.Status)
	assert.False(t, st.Block.SoftBlock)
	assert.False(t, st.Block.HardBlock)
	assert.Nil(t, st.GraceDaysLeft)
}

func TestResolve_PastDueWithinGrace(t *testing.T) {
	// Period ended 5 days ago, 7-day grace window -> 2 days left.
	st := Resolve(now, subscribedUser("past_due", now.AddDate(0, 0, -5)), graceDays)

	assert.Equal(t, StatusGrace, st.Status)
	require.NotNil(t, st.GraceDaysLeft)
	assert.Equal(t, 2, *st.GraceDaysLeft)
	assert.True(t, st.Block.SoftBlock)
	assert.False(t, st.Block.HardBlock)
}

func TestResolve_PastDueBeyondGrace(t *testing.T) {
	st := Resolve(now, subscribedUser("past_due", now.AddDate(0, 0, -10)), graceDays)

	assert.Equal(t, StatusExpired, st.Status)
	assert.True(t, st.Block.HardBlock)
}

func TestResolve_CanceledButPaidThrough(t *testing.T) {
	st := Resolve(now, subscribedUser("canceled", now.AddDate(0, 0, 2)), graceDays)

	assert.Equal(t, StatusActive, st.Status)
	require.NotNil(t, st.GraceDaysLeft)
	assert.Equal(t, 2, *st.GraceDaysLeft)
	assert.False(t, st.Block.SoftBlock)
	assert.False(t, st.Block.HardBlock)
}

func TestResolve_CanceledPastPeriodEnd(t *testing.T) {
	st := Resolve(now, subscribedUser("canceled", now.AddDate(0, 0, -1)), graceDays)

	assert.Equal(t, StatusExpired, st.Status)
	assert.True(t, st.Block.HardBlock)
}

func TestResolve_UnknownStatusReadsRestrictive(t *testing.T) {
	st := Resolve(now, subscribedUser("incomplete", now.AddDate(0, 1, 0)), graceDays)

	assert.Equal(t, StatusExpired, st.Status)
	assert.True(t, st.Block.HardBlock)
}

// Block flags are mutually exclusive for every reachable state, expired
// always hard-blocks, and active never blocks.
func TestResolve_BlockInvariants(t *testing.T) {
	cases := []users.User{
		{},
		{TrialEndAt: timePtr(now.Add(time.Hour))},
		{TrialEndAt: timePtr(now.Add(-time.Hour))},
		subscribedUser("active", now.AddDate(0, 1, 0)),
		subscribedUser("trialing", now.AddDate(0, 1, 0)),
		subscribedUser("past_due", now.AddDate(0, 0, -2)),
		subscribedUser("past_due", now.AddDate(0, 0, -30)),
		subscribedUser("unpaid", now.AddDate(0, 0, -2)),
		subscribedUser("canceled", now.AddDate(0, 0, 3)),
		subscribedUser("canceled", now.AddDate(0, 0, -3)),
		subscribedUser("something_new", now),
	}

	for _, u := range cases {
		st := Resolve(now, u, graceDays)

		assert.False(t, st.Block.SoftBlock && st.Block.HardBlock,
			"soft and hard block both set for status %s", st.Status)
		if st.Status == StatusExpired {
			assert.True(t, st.Block.HardBlock)
		}
		if st.Status == StatusActive || st.Status == StatusTrial || st.Status == StatusNone {
			assert.False(t, st.Block.SoftBlock)
			assert.False(t, st.Block.HardBlock)
		}
		if st.TrialDaysLeft != nil {
			assert.GreaterOrEqual(t, *st.TrialDaysLeft, 0)
		}
		if st.GraceDaysLeft != nil {
			assert.GreaterOrEqual(t, *st.GraceDaysLeft, 0)
		}
	}
}
