package users

import (
	"staffms/internal/domain/access"
	"staffms/internal/domain/organizations"
	"staffms/internal/domain/plans"
	"staffms/internal/domain/users"
	"staffms/internal/infra/stripe"
)

func BuildUserDTO(u *users.User) UserDTO {
	return UserDTO{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Role:         u.Role,
		AuthProvider: u.AuthProvider,
		IsVerified:   u.IsVerified,
	}
}

func BuildOrganizationDTO(org *organizations.Organization, advisor *access.Advisor) *OrganizationDTO {
	if org == nil {
		return nil
	}
	return &OrganizationDTO{
		ID:                    org.ID,
		Name:                  org.Name,
		Slug:                  org.Slug,
		Status:                org.Status,
		SubscriptionPlan:      org.SubscriptionPlan,
		SubscriptionExpiresAt: org.SubscriptionExpiresAt,
		Subscription:          BuildSubscriptionDTO(org),
		Usage: UsageDTO{
			Employees:              org.EmployeeCount,
			RemainingEmployeeSlots: advisor.RemainingEmployeeSlots(org),
			CanAddEmployee:         advisor.CanAddEmployee(org),
			StorageUsed:            plans.FormatStorage(org.StorageUsed),
			StorageUsedPercentage:  advisor.StorageUsedPercentage(org),
		},
	}
}

func BuildSubscriptionDTO(org *organizations.Organization) *SubscriptionDTO {
	if org.StripeSubscriptionID == nil || *org.StripeSubscriptionID == "" {
		return nil
	}
	return &SubscriptionDTO{
		Status:               stripe.NormalizeStripeStatus(org.StripeSubscriptionStatus),
		StripeSubscriptionID: org.StripeSubscriptionID,
	}
}

// BuildPlanDTO falls back to the starter plan for display only; feature
// checks never use the fallback.
func BuildPlanDTO(catalog *plans.Catalog, org *organizations.Organization) *PlanDTO {
	if org == nil {
		return nil
	}
	plan, resolved := catalog.Get(org.SubscriptionPlan)
	if !resolved {
		var ok bool
		if plan, ok = catalog.Get(plans.TierStarter); !ok {
			return nil
		}
	}
	return &PlanDTO{
		Key:           plan.Key,
		Name:          plan.Name,
		Price:         plan.Price,
		EmployeeLimit: plans.FormatEmployeeLimit(plan.MaxEmployees),
		StorageLimit:  plans.FormatStorage(plan.StorageLimit),
		Resolved:      resolved,
	}
}

func BuildAccessDTO(policy access.Policy) AccessDTO {
	return AccessDTO{
		State:              string(policy.State),
		Features:           policy.Features,
		Modules:            policy.Modules,
		Suggestions:        policy.Suggestions,
		RecommendedUpgrade: policy.RecommendedUpgrade,
	}
}
