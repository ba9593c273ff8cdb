package access

import (
	"sort"

	"staffms/internal/domain/organizations"
	"staffms/internal/domain/plans"
	"staffms/internal/domain/users"
)

// Gate answers feature and module access questions from the plan catalog.
// It holds no mutable state and is safe for concurrent use.
type Gate struct {
	catalog *plans.Catalog
	modules ModuleTable
}

func NewGate(catalog *plans.Catalog, modules ModuleTable) *Gate {
	table := make(ModuleTable, len(modules))
	for m, f := range modules {
		table[m] = f
	}
	return &Gate{catalog: catalog, modules: table}
}

func (g *Gate) Catalog() *plans.Catalog { return g.catalog }

// PlanFor resolves the organization's plan. Nil orgs and unknown keys are absent.
func (g *Gate) PlanFor(org *organizations.Organization) (plans.Plan, bool) {
	if org == nil {
		return plans.Plan{}, false
	}
	return g.catalog.Get(org.SubscriptionPlan)
}

// HasFeature is false when the organization is nil, its plan is unknown, or
// the plan does not list the feature.
func (g *Gate) HasFeature(org *organizations.Organization, feature string) bool {
	plan, ok := g.PlanFor(org)
	if !ok {
		return false
	}
	return plan.HasFeature(feature)
}

// UserHasFeature checks the feature on the user's organization.
func (g *Gate) UserHasFeature(user *users.User, feature string) bool {
	if user == nil || user.Organization == nil {
		return false
	}
	return g.HasFeature(user.Organization, feature)
}

// FeatureFor returns the feature gating module, if any.
func (g *Gate) FeatureFor(module string) (string, bool) {
	f, ok := g.modules[module]
	return f, ok
}

// CanAccessModule allows modules with no feature mapping; mapped modules
// require the feature on the user's organization.
func (g *Gate) CanAccessModule(user *users.User, module string) bool {
	feature, ok := g.FeatureFor(module)
	if !ok {
		return true
	}
	return g.UserHasFeature(user, feature)
}

// Modules lists mapped module names, sorted.
func (g *Gate) Modules() []string {
	out := make([]string, 0, len(g.modules))
	for m := range g.modules {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// ModuleAccess evaluates every mapped module for the user.
func (g *Gate) ModuleAccess(user *users.User) map[string]bool {
	out := make(map[string]bool, len(g.modules))
	for m := range g.modules {
		out[m] = g.CanAccessModule(user, m)
	}
	return out
}

// EnabledFeatures lists the enabled features of the organization's plan, sorted.
func (g *Gate) EnabledFeatures(org *organizations.Organization) []string {
	plan, ok := g.PlanFor(org)
	if !ok {
		return []string{}
	}
	out := plan.EnabledFeatures()
	sort.Strings(out)
	return out
}
