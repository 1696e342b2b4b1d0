package billingstate

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"metaads-dashboard/config"
	"metaads-dashboard/database"
	"metaads-dashboard/internal/domain/billing"
)

// Cache errors are swallowed on purpose: a broken cache is a miss, never an
// outage.

func cacheKey(userID uint) string {
	return fmt.Sprintf("billing:state:%d", userID)
}

func cacheGet(ctx context.Context, userID uint) (billing.State, bool) {
	if database.Redis == nil {
		return billing.State{}, false
	}
	raw, err := database.Redis.Get(ctx, cacheKey(userID)).Bytes()
	if err != nil {
		return billing.State{}, false
	}
	var st billing.State
	if err := json.Unmarshal(raw, &st); err != nil {
		return billing.State{}, false
	}
	return st, true
}

func cacheSet(ctx context.Context, userID uint, st billing.State) {
	if database.Redis == nil {
		return
	}
	raw, err := json.Marshal(st)
	if err != nil {
		return
	}
	ttl := time.Duration(config.BILLING_CACHE_TTL_SEC) * time.Second
	_ = database.Redis.Set(ctx, cacheKey(userID), raw, ttl).Err()
}

func cacheDel(ctx context.Context, userID uint) {
	if database.Redis == nil {
		return
	}
	_ = database.Redis.Del(ctx, cacheKey(userID)).Err()
}
