package billingstate

import (
	"context"
	"errors"
	"time"

	"metaads-dashboard/config"
	"metaads-dashboard/database"
	"metaads-dashboard/internal/domain/billing"
	"metaads-dashboard/internal/domain/users"

	"gorm.io/gorm"
)

// ErrUnreachable signals that the live state could not be resolved. Callers
// fail open for reads and fail closed for mutations.
var ErrUnreachable = errors.New("billing state unreachable")

// ForUser resolves the authoritative billing state for a user, with a short
// Redis cache in front of the DB. A cached hard block is never trusted
// as-is: it is re-resolved from the DB so a payment made seconds ago lifts
// the block immediately.
func ForUser(ctx context.Context, userID uint) (billing.State, error) {
	if userID == 0 {
		return billing.None(), nil
	}

	if st, ok := cacheGet(ctx, userID); ok && !st.Block.HardBlock {
		return st, nil
	}

	var u users.User
	if err := database.DB.WithContext(ctx).First(&u, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return billing.None(), nil
		}
		return billing.State{}, ErrUnreachable
	}

	st := billing.Resolve(time.Now(), u, config.GRACE_PERIOD_DAYS)
	cacheSet(ctx, userID, st)
	return st, nil
}

// Invalidate drops the cached state, used after webhook-driven subscription
// changes so the next render sees them.
func Invalidate(ctx context.Context, userID uint) {
	cacheDel(ctx, userID)
}
