package access

import (
	"time"

	"staffms/internal/domain/organizations"
	"staffms/internal/infra/stripe"
)

// ComputeAccessState derives the subscription state shown to the UI.
func ComputeAccessState(now time.Time, org *organizations.Organization) AccessState {
	if org == nil {
		return AccessNone
	}

	switch org.Status {
	case organizations.StatusSuspended, organizations.StatusCancelled:
		return AccessSuspended
	}

	// Stripe says the subscription is gone or unpaid.
	if org.StripeSubscriptionID != nil && *org.StripeSubscriptionID != "" {
		switch stripe.NormalizeStripeStatus(org.StripeSubscriptionStatus) {
		case "canceled", "past_due":
			if org.SubscriptionExpiresAt == nil || !now.Before(*org.SubscriptionExpiresAt) {
				return AccessExpired
			}
		}
	}

	if !org.IsSubscriptionActive(now) {
		return AccessExpired
	}
	return AccessActive
}
