package users

import "time"

// Token types
const (
	TokenEmailVerification = "email_verification"
	TokenPasswordReset     = "password_reset"
	TokenInvitation        = "invitation"
)

type VerificationToken struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index"`
	User      User   `gorm:"constraint:OnDelete:CASCADE"`
	Token     string `gorm:"uniqueIndex"`
	Type      string `gorm:"index"`
	ExpiresAt time.Time
	CreatedAt time.Time
}
