package access

import "metaads-dashboard/internal/domain/billing"

type Overlay string

const (
	OverlayNone Overlay = "none"
	OverlaySoft Overlay = "soft"
	OverlayHard Overlay = "hard"
)

type Decision struct {
	Allowed    bool    `json:"allowed"`
	Overlay    Overlay `json:"overlay"`
	RedirectTo string  `json:"redirect_to,omitempty"`
}

// Decide maps a resolved billing state and a request path to a gate outcome.
// Precedence: admin and public paths bypass billing entirely; the allow-list
// beats a hard block; hard beats soft.
func Decide(state billing.State, path string, warnDays int) Decision {
	if IsAdmin(path) || IsPublic(path) {
		return Decision{Allowed: true, Overlay: OverlayNone}
	}

	if state.Block.HardBlock || state.Status == billing.StatusExpired {
		if IsAllowListed(path) {
			return Decision{Allowed: true, Overlay: OverlayHard}
		}
		return Decision{Allowed: false, Overlay: OverlayHard, RedirectTo: UpgradePath}
	}

	if state.Block.SoftBlock || state.Status == billing.StatusGrace {
		return Decision{Allowed: true, Overlay: OverlaySoft}
	}

	// Active-but-ending (canceled, paid through): warn close to the cliff.
	if state.GraceDaysLeft != nil && *state.GraceDaysLeft <= warnDays {
		return Decision{Allowed: true, Overlay: OverlaySoft}
	}

	return Decision{Allowed: true, Overlay: OverlayNone}
}

// BlockLevel is the coarse value written to the advisory block cookie.
func BlockLevel(state billing.State) string {
	switch {
	case state.Block.HardBlock:
		return "hard"
	case state.Block.SoftBlock:
		return "soft"
	default:
		return "none"
	}
}
