package stripewebhooks

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"staffms/internal/domain/billing"
	"staffms/internal/domain/organizations"
	infrastripe "staffms/internal/infra/stripe"

	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
	"github.com/stripe/stripe-go/v75/subscription"
)

func (h *Handler) handleCheckoutSessionCompleted(session *stripe.CheckoutSession) error {
	fullSession, err := checkoutsession.Get(session.ID, &stripe.CheckoutSessionParams{
		Params: stripe.Params{
			Expand: []*string{
				stripe.String("subscription"),
				stripe.String("customer"),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to fetch expanded checkout session: %w", err)
	}

	if fullSession.Subscription == nil || fullSession.Subscription.ID == "" {
		return errors.New("checkout session missing subscription")
	}
	subscriptionID := fullSession.Subscription.ID

	subData, err := subscription.Get(subscriptionID, nil)
	if err != nil || subData == nil || subData.Items == nil || len(subData.Items.Data) == 0 || subData.Items.Data[0].Price == nil {
		return fmt.Errorf("failed to fetch subscription items: %w", err)
	}

	orgID, err := orgIDFromMetadata(subData.Metadata, fullSession.Metadata)
	if err != nil {
		return err
	}

	planKey, err := h.planForPrice(subData.Items.Data[0].Price.ID, subData.Metadata)
	if err != nil {
		return err
	}

	var org organizations.Organization
	if err := h.DB.Where("id = ?", orgID).First(&org).Error; err != nil {
		return fmt.Errorf("organization %d not found: %w", orgID, err)
	}

	periodEnd := time.Unix(subData.CurrentPeriodEnd, 0)
	status := string(subData.Status)

	updates := map[string]interface{}{
		"subscription_expires_at":    periodEnd,
		"stripe_subscription_id":     subscriptionID,
		"stripe_subscription_status": status,
		"status":                     infrastripe.OrganizationStatus(status),
	}
	if fullSession.Customer != nil && fullSession.Customer.ID != "" {
		updates["stripe_customer_id"] = fullSession.Customer.ID
	}

	// A second checkout replaces the previous subscription.
	if org.StripeSubscriptionID != nil && *org.StripeSubscriptionID != "" && *org.StripeSubscriptionID != subscriptionID {
		if _, err := subscription.Cancel(*org.StripeSubscriptionID, nil); err != nil {
			h.Log.Warn("cancel previous subscription failed", "organization_id", org.ID, "subscription_id", *org.StripeSubscriptionID, "error", err)
		}
	}

	if err := organizations.ApplyPlan(h.DB, h.Catalog, org.ID, planKey, updates); err != nil {
		return fmt.Errorf("failed to update organization after checkout: %w", err)
	}

	return h.markPaymentPaid(fullSession, subscriptionID)
}

// markPaymentPaid settles the pending payment created with the checkout session.
// Sessions created outside the app have no payment row and are ignored.
func (h *Handler) markPaymentPaid(session *stripe.CheckoutSession, subscriptionID string) error {
	q := h.DB.Model(&billing.Payment{})
	switch {
	case session.ClientReferenceID != "":
		q = q.Where("reference = ?", session.ClientReferenceID)
	case session.ID != "":
		q = q.Where("stripe_session_id = ?", session.ID)
	default:
		return nil
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":                 billing.PaymentSuccess,
		"paid_at":                now,
		"stripe_subscription_id": subscriptionID,
	}
	if session.Invoice != nil && session.Invoice.ID != "" {
		updates["invoice_id"] = session.Invoice.ID
	}
	if session.AmountTotal > 0 {
		updates["amount"] = session.AmountTotal
	}

	if err := q.Where("status <> ?", billing.PaymentSuccess).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to mark payment paid: %w", err)
	}
	return nil
}

// orgIDFromMetadata prefers subscription metadata and falls back to the session's.
func orgIDFromMetadata(mds ...map[string]string) (uint, error) {
	for _, md := range mds {
		if id := parseOrgID(md); id != 0 {
			return id, nil
		}
	}
	return 0, errors.New("missing organization_id in subscription or session metadata")
}

func parseOrgID(md map[string]string) uint {
	if md == nil {
		return 0
	}
	s := md["organization_id"]
	if s == "" {
		return 0
	}
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}
