package stripe

import (
	"testing"

	"staffms/internal/domain/organizations"
)

func strPtr(s string) *string { return &s }

func TestNormalizeStripeStatus(t *testing.T) {
	cases := []struct {
		in   *string
		want string
	}{
		{nil, "none"},
		{strPtr("  "), "none"},
		{strPtr("active"), "active"},
		{strPtr("trialing"), "trialing"},
		{strPtr("unpaid"), "past_due"},
		{strPtr("incomplete_expired"), "canceled"},
		{strPtr("paused"), "paused"},
	}
	for _, tc := range cases {
		if got := NormalizeStripeStatus(tc.in); got != tc.want {
			t.Fatalf("NormalizeStripeStatus(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestOrganizationStatus(t *testing.T) {
	if got := OrganizationStatus("canceled"); got != organizations.StatusCancelled {
		t.Fatalf("expected cancelled, got %q", got)
	}
	if got := OrganizationStatus("past_due"); got != organizations.StatusActive {
		t.Fatalf("expected active for past_due, got %q", got)
	}
}
