package access

import (
	"fmt"

	"staffms/internal/domain/organizations"
	"staffms/internal/domain/plans"
)

// upgradeThreshold is the usage percentage at which an upgrade is suggested.
const upgradeThreshold = 80.0

// Advisor computes upgrade prompts and limit checks from the organization's
// plan. Organizations on an unknown plan get no suggestions and no headroom.
type Advisor struct {
	catalog *plans.Catalog
}

func NewAdvisor(catalog *plans.Catalog) *Advisor {
	return &Advisor{catalog: catalog}
}

func (a *Advisor) planFor(org *organizations.Organization) (plans.Plan, bool) {
	if org == nil {
		return plans.Plan{}, false
	}
	return a.catalog.Get(org.SubscriptionPlan)
}

// ShouldSuggestUpgrade returns one entry per dimension at or above 80% of a
// finite limit. Dimensions below the threshold or unlimited are omitted.
func (a *Advisor) ShouldSuggestUpgrade(org *organizations.Organization) map[string]Suggestion {
	suggestions := map[string]Suggestion{}

	plan, ok := a.planFor(org)
	if !ok {
		return suggestions
	}

	if plan.MaxEmployees != plans.Unlimited && plan.MaxEmployees > 0 {
		usage := float64(org.EmployeeCount*100) / float64(plan.MaxEmployees)
		if usage >= upgradeThreshold {
			pct := plans.RoundTo(usage, 0)
			suggestions[DimensionEmployees] = Suggestion{
				Current:    org.EmployeeCount,
				Limit:      int64(plan.MaxEmployees),
				Percentage: pct,
				Message:    fmt.Sprintf("You're using %s%% of your employee slots", plans.FormatDecimal(pct, 0)),
			}
		}
	}

	if plan.StorageLimit != plans.Unlimited && plan.StorageLimit > 0 {
		usage := float64(org.StorageUsed) / float64(plan.StorageLimit) * 100
		if usage >= upgradeThreshold {
			pct := plans.RoundTo(usage, 2)
			suggestions[DimensionStorage] = Suggestion{
				Current:    plans.FormatStorage(org.StorageUsed),
				Limit:      plans.FormatStorage(plan.StorageLimit),
				Percentage: pct,
				Message:    fmt.Sprintf("You're using %s%% of your storage", plans.FormatDecimal(pct, 2)),
			}
		}
	}

	return suggestions
}

// RecommendedUpgrade returns the next tier above the organization's plan, or
// false at the top tier or for unknown plans.
func (a *Advisor) RecommendedUpgrade(org *organizations.Organization) (string, bool) {
	if org == nil {
		return "", false
	}
	next, ok := plans.NextTier(org.SubscriptionPlan)
	if !ok || !a.catalog.Has(next) {
		return "", false
	}
	return next, true
}

// CanAddEmployee reports whether one more employee fits the plan.
func (a *Advisor) CanAddEmployee(org *organizations.Organization) bool {
	plan, ok := a.planFor(org)
	if !ok {
		return false
	}
	if plan.MaxEmployees == plans.Unlimited {
		return true
	}
	return org.EmployeeCount < int64(plan.MaxEmployees)
}

// RemainingEmployeeSlots is -1 for unlimited plans and never negative otherwise.
func (a *Advisor) RemainingEmployeeSlots(org *organizations.Organization) int64 {
	plan, ok := a.planFor(org)
	if !ok {
		return 0
	}
	if plan.MaxEmployees == plans.Unlimited {
		return plans.Unlimited
	}
	return max(0, int64(plan.MaxEmployees)-org.EmployeeCount)
}

// HasStorageSpace reports whether extra bytes fit under the storage limit.
func (a *Advisor) HasStorageSpace(org *organizations.Organization, extra int64) bool {
	plan, ok := a.planFor(org)
	if !ok {
		return false
	}
	if plan.StorageLimit == plans.Unlimited {
		return true
	}
	return org.StorageUsed+extra <= plan.StorageLimit
}

// StorageUsedPercentage is 0 for unlimited or unknown plans.
func (a *Advisor) StorageUsedPercentage(org *organizations.Organization) float64 {
	plan, ok := a.planFor(org)
	if !ok || plan.StorageLimit == plans.Unlimited || plan.StorageLimit <= 0 {
		return 0
	}
	return storagePercentage(org.StorageUsed, plan.StorageLimit)
}

func storagePercentage(used, limit int64) float64 {
	return plans.RoundTo(float64(used)/float64(limit)*100, 2)
}
