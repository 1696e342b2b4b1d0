package billing

import (
	"time"

	"metaads-dashboard/internal/domain/plans"
	"metaads-dashboard/internal/domain/users"
)

type Payment struct {
	ID                   uint `gorm:"primaryKey"`
	UserID               uint `gorm:"index"`
	User                 users.User
	PlanID               *uint
	Plan                 *plans.Plan
	StripeSessionID      string `gorm:"uniqueIndex"`
	StripeSubscriptionID *string
	AmountEUR            float64
	Status               string
	InvoiceID            *string
	ReceiptURL           *string
	CreatedAt            time.Time
}
