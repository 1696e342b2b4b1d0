package users

import "time"

// LoginToken is a single-use magic-link token. Consumed (deleted) on first
// successful verification.
type LoginToken struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index"`
	User      User   `gorm:"constraint:OnDelete:CASCADE"`
	Token     string `gorm:"uniqueIndex"`
	Next      string
	ExpiresAt time.Time
	CreatedAt time.Time
}
