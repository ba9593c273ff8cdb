package stripewebhooks

import (
	"errors"
	"fmt"
	"time"

	"staffms/internal/domain/organizations"
	infrastripe "staffms/internal/infra/stripe"

	"github.com/stripe/stripe-go/v75"
)

func (h *Handler) handleSubscriptionUpdated(sub *stripe.Subscription) error {
	if sub.ID == "" || sub.Items == nil || len(sub.Items.Data) == 0 || sub.Items.Data[0].Price == nil {
		return fmt.Errorf("subscription missing id/items/price")
	}

	org, ok := h.findOrganization(sub)
	if !ok {
		// Acknowledge so Stripe stops retrying for deleted organizations.
		return nil
	}

	planKey, err := h.planForPrice(sub.Items.Data[0].Price.ID, sub.Metadata)
	if errors.Is(err, errUnmappedPrice) {
		h.Log.Warn("subscription on unmapped price", "organization_id", org.ID, "price_id", sub.Items.Data[0].Price.ID)
		return nil
	}
	if err != nil {
		return err
	}

	status := string(sub.Status)
	return organizations.ApplyPlan(h.DB, h.Catalog, org.ID, planKey, map[string]interface{}{
		"subscription_expires_at":    time.Unix(sub.CurrentPeriodEnd, 0),
		"stripe_subscription_id":     sub.ID,
		"stripe_subscription_status": status,
		"status":                     infrastripe.OrganizationStatus(status),
	})
}

// findOrganization resolves the organization by metadata, then by subscription id.
func (h *Handler) findOrganization(sub *stripe.Subscription) (organizations.Organization, bool) {
	var org organizations.Organization
	if id := parseOrgID(sub.Metadata); id != 0 {
		if err := h.DB.Where("id = ?", id).First(&org).Error; err == nil {
			return org, true
		}
	}
	if err := h.DB.Where("stripe_subscription_id = ?", sub.ID).First(&org).Error; err == nil {
		return org, true
	}
	return org, false
}
