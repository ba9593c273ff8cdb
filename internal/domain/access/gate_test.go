package access

import (
	"testing"

	"staffms/internal/domain/organizations"
	"staffms/internal/domain/plans"
	"staffms/internal/domain/users"
)

var allFeatures = []string{
	plans.FeatureAttendanceTracking,
	plans.FeatureLeaveManagement,
	plans.FeatureBasicReports,
	plans.FeatureEmailSupport,
	plans.FeatureTaskManagement,
	plans.FeatureTeamMessaging,
	plans.FeatureAdvancedReports,
	plans.FeatureCustomIntegrations,
	plans.FeaturePerformanceReviews,
	plans.FeatureVideoCalls,
	plans.FeatureDedicatedSupport,
	plans.FeatureAPIAccess,
	"not_a_feature",
}

func newTestGate() *Gate {
	return NewGate(plans.DefaultCatalog(), DefaultModules())
}

func userOn(plan string) *users.User {
	return &users.User{
		ID:           1,
		Organization: &organizations.Organization{ID: 1, SubscriptionPlan: plan},
	}
}

func TestHasFeatureUnknownPlanDeniesEverything(t *testing.T) {
	g := newTestGate()
	org := &organizations.Organization{SubscriptionPlan: "platinum"}
	for _, f := range allFeatures {
		if g.HasFeature(org, f) {
			t.Fatalf("unknown plan granted %q", f)
		}
	}
	if g.HasFeature(nil, plans.FeatureAttendanceTracking) {
		t.Fatalf("nil organization granted a feature")
	}
}

func TestHasFeatureFollowsPlan(t *testing.T) {
	g := newTestGate()
	starter := &organizations.Organization{SubscriptionPlan: plans.TierStarter}

	if !g.HasFeature(starter, plans.FeatureAttendanceTracking) {
		t.Fatalf("starter should have attendance_tracking")
	}
	if g.HasFeature(starter, plans.FeatureTaskManagement) {
		t.Fatalf("starter should not have task_management")
	}
	// Not declared on starter at all.
	if g.HasFeature(starter, plans.FeatureAPIAccess) {
		t.Fatalf("missing feature key must be false")
	}
}

func TestCanAccessModuleMatchesMappedFeature(t *testing.T) {
	g := newTestGate()
	for _, plan := range []string{plans.TierStarter, plans.TierProfessional, plans.TierEnterprise, "legacy"} {
		u := userOn(plan)
		for module, feature := range DefaultModules() {
			if got, want := g.CanAccessModule(u, module), g.HasFeature(u.Organization, feature); got != want {
				t.Fatalf("plan %s module %s: CanAccessModule=%v HasFeature=%v", plan, module, got, want)
			}
		}
	}
}

func TestCanAccessModuleUnmappedIsAllowed(t *testing.T) {
	g := newTestGate()
	for _, u := range []*users.User{nil, {ID: 2}, userOn("legacy"), userOn(plans.TierStarter)} {
		for _, module := range []string{"dashboard", "profile", ""} {
			if !g.CanAccessModule(u, module) {
				t.Fatalf("unmapped module %q should be allowed", module)
			}
		}
	}
}

func TestUserWithoutOrganizationIsDeniedMappedModules(t *testing.T) {
	g := newTestGate()
	u := &users.User{ID: 3}
	if g.CanAccessModule(u, ModuleAttendance) {
		t.Fatalf("user without organization should not access attendance")
	}
	if g.UserHasFeature(nil, plans.FeatureAttendanceTracking) {
		t.Fatalf("nil user should have no features")
	}
}

func TestNewGateCopiesModuleTable(t *testing.T) {
	table := DefaultModules()
	g := NewGate(plans.DefaultCatalog(), table)
	delete(table, ModuleAPI)

	if _, ok := g.FeatureFor(ModuleAPI); !ok {
		t.Fatalf("gate module table changed after construction")
	}
}

func TestModuleAccessAndEnabledFeatures(t *testing.T) {
	g := newTestGate()
	u := userOn(plans.TierProfessional)

	access := g.ModuleAccess(u)
	if !access[ModuleTasks] || access[ModuleAPI] || access[ModuleIntegrations] {
		t.Fatalf("unexpected professional module access: %v", access)
	}
	if len(access) != len(g.Modules()) {
		t.Fatalf("module access should cover every mapped module")
	}

	features := g.EnabledFeatures(u.Organization)
	if len(features) != 9 {
		t.Fatalf("professional should have 9 enabled features, got %v", features)
	}
	if got := g.EnabledFeatures(&organizations.Organization{SubscriptionPlan: "nope"}); len(got) != 0 {
		t.Fatalf("unknown plan should have no features, got %v", got)
	}
}
