package stripe

import (
	"strings"

	"staffms/internal/domain/organizations"
)

// NormalizeStripeStatus collapses Stripe subscription statuses into
// none|active|trialing|past_due|canceled (unknown values pass through).
func NormalizeStripeStatus(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return "none"
	}
	switch v := strings.TrimSpace(*s); v {
	case "active", "trialing":
		return v
	case "past_due", "unpaid", "incomplete":
		return "past_due"
	case "canceled", "incomplete_expired":
		return "canceled"
	default:
		return v
	}
}

// OrganizationStatus maps a Stripe subscription status onto organization status.
// Past-due subscriptions stay active; expiry handles the grace period.
func OrganizationStatus(stripeStatus string) string {
	switch NormalizeStripeStatus(&stripeStatus) {
	case "canceled":
		return organizations.StatusCancelled
	default:
		return organizations.StatusActive
	}
}
