package stripewebhooks

import (
	"time"

	"staffms/internal/domain/organizations"

	"github.com/stripe/stripe-go/v75"
)

func (h *Handler) handleSubscriptionDeleted(sub *stripe.Subscription) error {
	if sub.ID == "" {
		return nil
	}

	org, ok := h.findOrganization(sub)
	if !ok {
		return nil
	}

	// Keep the plan key; access ends with the status and expiry.
	updates := map[string]interface{}{
		"status":                     organizations.StatusCancelled,
		"stripe_subscription_status": string(sub.Status),
		"subscription_expires_at":    time.Unix(sub.CurrentPeriodEnd, 0),
	}

	return h.DB.Model(&organizations.Organization{}).
		Where("id = ?", org.ID).
		Updates(updates).Error
}
