package stripewebhooks

import (
	"time"

	"metaads-dashboard/database"
	"metaads-dashboard/internal/domain/users"
	"metaads-dashboard/internal/infra/billingstate"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
)

func handleSubscriptionDeleted(c *gin.Context, sub *stripe.Subscription) error {
	if sub.ID == "" {
		return nil
	}

	user, found := findSubscriptionUser(sub)
	if !found {
		return nil
	}

	periodEnd := time.Unix(sub.CurrentPeriodEnd, 0)

	updates := map[string]interface{}{
		"stripe_subscription_status": string(sub.Status),
		"subscription_end":           periodEnd,
		"current_period_end":         periodEnd,
	}

	if err := database.DB.Model(&users.User{}).
		Where("id = ?", user.ID).
		Updates(updates).Error; err != nil {
		return err
	}

	billingstate.Invalidate(c.Request.Context(), user.ID)
	return nil
}
