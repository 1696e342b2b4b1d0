package stripewebhooks

import (
	"fmt"
	"strconv"
	"time"

	"metaads-dashboard/database"
	"metaads-dashboard/internal/domain/users"
	"metaads-dashboard/internal/infra/billingstate"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
)

func handleSubscriptionUpdated(c *gin.Context, sub *stripe.Subscription) error {
	if sub.ID == "" {
		return fmt.Errorf("subscription missing id")
	}

	periodEnd := time.Unix(sub.CurrentPeriodEnd, 0)
	status := string(sub.Status)

	user, found := findSubscriptionUser(sub)
	if !found {
		// acknowledge to avoid Stripe retries if user deleted
		return nil
	}

	updates := map[string]interface{}{
		"subscription_id":            sub.ID,
		"subscription_end":           periodEnd,
		"current_period_end":         periodEnd,
		"stripe_subscription_status": status,
	}

	if err := database.DB.Model(&users.User{}).
		Where("id = ?", user.ID).
		Updates(updates).Error; err != nil {
		return err
	}

	billingstate.Invalidate(c.Request.Context(), user.ID)
	return nil
}

func findSubscriptionUser(sub *stripe.Subscription) (users.User, bool) {
	var user users.User

	if userID := userIDFromMetadata(sub.Metadata); userID != 0 {
		if err := database.DB.Where("id = ?", userID).First(&user).Error; err == nil {
			return user, true
		}
	}
	if err := database.DB.Where("subscription_id = ?", sub.ID).First(&user).Error; err == nil {
		return user, true
	}
	return users.User{}, false
}

func userIDFromMetadata(md map[string]string) uint {
	if md == nil {
		return 0
	}
	s := md["user_id"]
	if s == "" {
		return 0
	}
	uid, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return uint(uid)
}
