package organizations

import (
	"time"

	"github.com/lib/pq"
)

const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
	StatusCancelled = "cancelled"
)

type Organization struct {
	ID      uint   `gorm:"primaryKey"`
	Name    string `gorm:"not null"`
	Slug    string `gorm:"not null;uniqueIndex:idx_organizations_slug"`
	OwnerID *uint  `gorm:"column:owner_id;index"`

	SubscriptionPlan      string     `gorm:"column:subscription_plan;not null;default:'starter'"`
	SubscriptionExpiresAt *time.Time `gorm:"column:subscription_expires_at"`
	Status                string     `gorm:"type:varchar(20);not null;default:'active'"`

	StorageUsed int64 `gorm:"column:storage_used;not null;default:0"` // bytes
	// EmployeeCount is loaded per request (see CountEmployees), never stored.
	EmployeeCount int64 `gorm:"-"`

	StripeCustomerID         *string `gorm:"column:stripe_customer_id;uniqueIndex:idx_organizations_stripe_customer_id"`
	StripeSubscriptionID     *string `gorm:"column:stripe_subscription_id;uniqueIndex:idx_organizations_stripe_subscription_id"`
	StripeSubscriptionStatus *string `gorm:"column:stripe_subscription_status"`

	WorkStartTime        string        `gorm:"column:work_start_time;type:varchar(8);not null;default:'09:00:00'"`
	WorkEndTime          string        `gorm:"column:work_end_time;type:varchar(8);not null;default:'17:00:00'"`
	LateThresholdMinutes int           `gorm:"column:late_threshold_minutes;not null;default:15"`
	WorkDays             pq.Int64Array `gorm:"column:work_days;type:integer[]"` // ISO weekdays, 1 = Monday

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsSubscriptionActive: status must be active and the expiry, if set, in the future.
func (o *Organization) IsSubscriptionActive(now time.Time) bool {
	if o == nil || o.Status != StatusActive {
		return false
	}
	if o.SubscriptionExpiresAt == nil {
		return true
	}
	return o.SubscriptionExpiresAt.After(now)
}
