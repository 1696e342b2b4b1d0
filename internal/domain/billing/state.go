package billing

import (
	"time"

	"metaads-dashboard/internal/domain/users"
	"metaads-dashboard/internal/infra/stripe"
)

type Status string

const (
	StatusNone    Status = "none"
	StatusTrial   Status = "trial"
	StatusGrace   Status = "grace"
	StatusExpired Status = "expired"
	StatusActive  Status = "active"
)

type Block struct {
	SoftBlock bool `json:"soft_block"`
	HardBlock bool `json:"hard_block"`
}

// State is the resolved access state the whole gate runs on.
// Invariants: at most one of the block flags is set; active carries none;
// expired always carries the hard flag.
type State struct {
	Status        Status `json:"status"`
	TrialDaysLeft *int   `json:"trial_days_left"`
	GraceDaysLeft *int   `json:"grace_days_left"`
	Block         Block  `json:"block"`
}

// None is the state for identities that are not billing subjects:
// operator accounts and unauthorized callers.
func None() State {
	return State{Status: StatusNone}
}

// Resolve derives the access state from the user's subscription record.
// Pure: all inputs are explicit, so the same record past its window reads as
// expired on every call — an ambiguous or stale record never resolves to a
// less restrictive state.
func Resolve(now time.Time, u users.User, graceDays int) State {
	// Active trial wins over everything else
	if u.TrialEndAt != nil && now.Before(*u.TrialEndAt) {
		d := daysLeft(now, *u.TrialEndAt)
		return State{Status: StatusTrial, TrialDaysLeft: &d}
	}

	// No subscription at all
	if u.SubscriptionId == nil || *u.SubscriptionId == "" {
		if u.TrialEndAt == nil {
			// never provisioned for billing
			return None()
		}
		return hardBlocked()
	}

	switch stripe.NormalizeStatus(u.StripeSubscriptionStatus) {
	case "active", "trialing":
		return State{Status: StatusActive}

	case "past_due":
		// Grace window counts from the end of the last paid period.
		if u.CurrentPeriodEnd == nil {
			return hardBlocked()
		}
		graceEnd := u.CurrentPeriodEnd.AddDate(0, 0, graceDays)
		if now.Before(graceEnd) {
			d := daysLeft(now, graceEnd)
			return State{Status: StatusGrace, GraceDaysLeft: &d, Block: Block{SoftBlock: true}}
		}
		return hardBlocked()

	case "canceled":
		// Canceled but paid through: full access with a countdown so the UI
		// can warn before the cliff.
		if u.CurrentPeriodEnd != nil && now.Before(*u.CurrentPeriodEnd) {
			d := daysLeft(now, *u.CurrentPeriodEnd)
			return State{Status: StatusActive, GraceDaysLeft: &d}
		}
		return hardBlocked()

	default:
		return hardBlocked()
	}
}

func hardBlocked() State {
	return State{Status: StatusExpired, Block: Block{HardBlock: true}}
}

func daysLeft(now, until time.Time) int {
	d := int(until.Sub(now).Hours() / 24)
	if d < 0 {
		d = 0
	}
	return d
}
