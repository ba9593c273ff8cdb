package billing

import (
	"strings"
	"time"

	"staffms/internal/domain/organizations"

	"github.com/google/uuid"
)

const (
	PaymentPending = "pending"
	PaymentSuccess = "success"
	PaymentFailed  = "failed"
)

type Payment struct {
	ID                   uint `gorm:"primaryKey"`
	OrganizationID       uint `gorm:"index"`
	Organization         organizations.Organization
	Email                string
	Reference            string  `gorm:"not null;uniqueIndex"`
	Plan                 string  `gorm:"column:plan;not null"`
	Amount               int64   // minor currency units
	Currency             string  `gorm:"type:varchar(3)"`
	PaymentMethod        string  `gorm:"type:varchar(20);default:'stripe'"`
	Status               string  `gorm:"type:varchar(20);not null;default:'pending'"`
	StripeSessionID      *string `gorm:"uniqueIndex"`
	StripeSubscriptionID *string
	InvoiceID            *string
	PaidAt               *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (p Payment) IsPaid() bool    { return p.Status == PaymentSuccess }
func (p Payment) IsPending() bool { return p.Status == PaymentPending }

// NewReference returns a unique payment reference, e.g. "STAFFMS_9F1C...".
func NewReference() string {
	return "STAFFMS_" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
}
