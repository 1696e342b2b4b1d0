package users

import (
	"time"

	"metaads-dashboard/internal/domain/plans"
)

type User struct {
	ID           uint    `gorm:"primaryKey"`
	Name         string
	Email        string  `gorm:"not null;uniqueIndex:idx_users_email"`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'email'"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_users_google_sub"`
	Role         string
	IsVerified   bool

	PlanID *uint
	Plan   *plans.Plan

	SubscriptionStart        *time.Time
	SubscriptionEnd          *time.Time
	SubscriptionId           *string `gorm:"column:subscription_id;uniqueIndex:idx_users_subscription_id"`
	StripeCustomerID         *string `gorm:"column:stripe_customer_id;uniqueIndex:idx_users_stripe_customer_id"`
	CurrentPeriodEnd         *time.Time `gorm:"column:current_period_end"`
	StripeSubscriptionStatus *string    `gorm:"column:stripe_subscription_status"`

	TrialStartAt *time.Time `gorm:"column:trial_start_at"`
	TrialEndAt   *time.Time `gorm:"column:trial_end_at"`

	// Admin-managed product switches. ForceAIEnabled overrides the tenant's
	// own AI preference in either direction; nil means no override.
	ForceAIEnabled *bool      `gorm:"column:force_ai_enabled"`
	AutoReports    bool       `gorm:"column:auto_reports;default:true"`
	AIResetAt      *time.Time `gorm:"column:ai_reset_at"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
