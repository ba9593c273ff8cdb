package access

import (
	"testing"

	"staffms/internal/domain/organizations"
	"staffms/internal/domain/plans"
)

func newTestAdvisor() *Advisor {
	return NewAdvisor(plans.DefaultCatalog())
}

func TestShouldSuggestUpgradeEmployeesThreshold(t *testing.T) {
	a := newTestAdvisor()

	org := &organizations.Organization{SubscriptionPlan: plans.TierStarter, EmployeeCount: 8}
	s := a.ShouldSuggestUpgrade(org)
	got, ok := s[DimensionEmployees]
	if !ok {
		t.Fatalf("expected employees suggestion at 8/10")
	}
	if got.Percentage != 80 {
		t.Fatalf("expected 80%%, got %v", got.Percentage)
	}
	if got.Current != int64(8) || got.Limit != int64(10) {
		t.Fatalf("unexpected current/limit: %v/%v", got.Current, got.Limit)
	}
	if got.Message != "You're using 80% of your employee slots" {
		t.Fatalf("unexpected message: %q", got.Message)
	}

	org.EmployeeCount = 7
	if _, ok := a.ShouldSuggestUpgrade(org)[DimensionEmployees]; ok {
		t.Fatalf("7/10 should not suggest an upgrade")
	}
}

func TestShouldSuggestUpgradeOmitsUnlimited(t *testing.T) {
	a := newTestAdvisor()
	org := &organizations.Organization{
		SubscriptionPlan: plans.TierEnterprise,
		EmployeeCount:    100000,
		StorageUsed:      1 << 50,
	}
	if s := a.ShouldSuggestUpgrade(org); len(s) != 0 {
		t.Fatalf("enterprise should never get suggestions, got %v", s)
	}
}

func TestShouldSuggestUpgradeStorage(t *testing.T) {
	a := newTestAdvisor()
	org := &organizations.Organization{
		SubscriptionPlan: plans.TierStarter,
		StorageUsed:      4563402752, // 4.25 GB of 5 GB
	}
	s := a.ShouldSuggestUpgrade(org)
	if _, ok := s[DimensionEmployees]; ok {
		t.Fatalf("no employees entry expected")
	}
	got, ok := s[DimensionStorage]
	if !ok {
		t.Fatalf("expected storage suggestion")
	}
	if got.Percentage != 85 {
		t.Fatalf("expected 85%%, got %v", got.Percentage)
	}
	if got.Current != "4.25 GB" || got.Limit != "5 GB" {
		t.Fatalf("unexpected storage values: %v / %v", got.Current, got.Limit)
	}

	org.StorageUsed = 1 << 30
	if _, ok := a.ShouldSuggestUpgrade(org)[DimensionStorage]; ok {
		t.Fatalf("20%% storage should not suggest an upgrade")
	}
}

func TestShouldSuggestUpgradeStorageThreshold(t *testing.T) {
	a := newTestAdvisor()
	org := &organizations.Organization{
		SubscriptionPlan: plans.TierStarter,
		StorageUsed:      4294967296, // exactly 4 GB of 5 GB
	}
	got, ok := a.ShouldSuggestUpgrade(org)[DimensionStorage]
	if !ok {
		t.Fatalf("expected storage suggestion at exactly 80%%")
	}
	if got.Percentage != 80 || got.Message != "You're using 80% of your storage" {
		t.Fatalf("unexpected suggestion: %+v", got)
	}

	// 79.99999998% rounds to 80.00 for display but stays under the threshold.
	org.StorageUsed = 4294967295
	if _, ok := a.ShouldSuggestUpgrade(org)[DimensionStorage]; ok {
		t.Fatalf("just under 80%% storage should not suggest an upgrade")
	}
}

func TestShouldSuggestUpgradeUnknownPlan(t *testing.T) {
	a := newTestAdvisor()
	org := &organizations.Organization{SubscriptionPlan: "legacy", EmployeeCount: 1000}
	if s := a.ShouldSuggestUpgrade(org); len(s) != 0 {
		t.Fatalf("unknown plan should yield no suggestions, got %v", s)
	}
	if s := a.ShouldSuggestUpgrade(nil); s == nil || len(s) != 0 {
		t.Fatalf("nil organization should yield an empty map")
	}
}

func TestRecommendedUpgrade(t *testing.T) {
	a := newTestAdvisor()
	cases := []struct {
		plan string
		want string
		ok   bool
	}{
		{plans.TierStarter, plans.TierProfessional, true},
		{plans.TierProfessional, plans.TierEnterprise, true},
		{plans.TierEnterprise, "", false},
		{"legacy", "", false},
	}
	for _, tc := range cases {
		got, ok := a.RecommendedUpgrade(&organizations.Organization{SubscriptionPlan: tc.plan})
		if got != tc.want || ok != tc.ok {
			t.Fatalf("RecommendedUpgrade(%q) = %q, %v", tc.plan, got, ok)
		}
	}

	// Next tier missing from a custom catalog.
	small := NewAdvisor(plans.NewCatalog(plans.NewPlan(plans.TierStarter, "Starter", 1, 5, 100)))
	if _, ok := small.RecommendedUpgrade(&organizations.Organization{SubscriptionPlan: plans.TierStarter}); ok {
		t.Fatalf("recommendation must exist in the catalog")
	}
}

func TestEmployeeAndStorageHeadroom(t *testing.T) {
	a := newTestAdvisor()
	org := &organizations.Organization{SubscriptionPlan: plans.TierStarter, EmployeeCount: 10, StorageUsed: 5368709120}

	if a.CanAddEmployee(org) {
		t.Fatalf("starter at 10/10 should not add employees")
	}
	if got := a.RemainingEmployeeSlots(org); got != 0 {
		t.Fatalf("expected 0 remaining slots, got %d", got)
	}
	if a.HasStorageSpace(org, 1) {
		t.Fatalf("full storage should reject more bytes")
	}
	if !a.HasStorageSpace(org, 0) {
		t.Fatalf("exactly-full storage should accept zero bytes")
	}
	if got := a.StorageUsedPercentage(org); got != 100 {
		t.Fatalf("expected 100%%, got %v", got)
	}

	org.SubscriptionPlan = plans.TierEnterprise
	if !a.CanAddEmployee(org) || a.RemainingEmployeeSlots(org) != plans.Unlimited {
		t.Fatalf("enterprise should be unlimited")
	}
	if a.StorageUsedPercentage(org) != 0 {
		t.Fatalf("unlimited storage reports 0%%")
	}

	org.SubscriptionPlan = "legacy"
	if a.CanAddEmployee(org) || a.HasStorageSpace(org, 0) {
		t.Fatalf("unknown plan should have no headroom")
	}
}
