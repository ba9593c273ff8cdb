package users

import (
	"time"

	"staffms/internal/domain/access"
)

type MeResponse struct {
	User         UserDTO          `json:"user"`
	Organization *OrganizationDTO `json:"organization"`
	Plan         *PlanDTO         `json:"plan"`
	Access       AccessDTO        `json:"access"`
}

/* ---------- USER ---------- */

type UserDTO struct {
	ID           uint   `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	AuthProvider string `json:"auth_provider"`
	IsVerified   bool   `json:"is_verified"`
}

/* ---------- ORGANIZATION ---------- */

type OrganizationDTO struct {
	ID                    uint             `json:"id"`
	Name                  string           `json:"name"`
	Slug                  string           `json:"slug"`
	Status                string           `json:"status"`
	SubscriptionPlan      string           `json:"subscription_plan"`
	SubscriptionExpiresAt *time.Time       `json:"subscription_expires_at"`
	Subscription          *SubscriptionDTO `json:"subscription"`
	Usage                 UsageDTO         `json:"usage"`
}

type SubscriptionDTO struct {
	Status               string  `json:"status"`
	StripeSubscriptionID *string `json:"stripe_subscription_id"`
}

type UsageDTO struct {
	Employees              int64   `json:"employees"`
	RemainingEmployeeSlots int64   `json:"remaining_employee_slots"`
	CanAddEmployee         bool    `json:"can_add_employee"`
	StorageUsed            string  `json:"storage_used"`
	StorageUsedPercentage  float64 `json:"storage_used_percentage"`
}

/* ---------- PLAN ---------- */

// PlanDTO describes the plan for display. Resolved is false when the
// organization's plan key is not in the catalog and starter details are shown.
type PlanDTO struct {
	Key           string `json:"key"`
	Name          string `json:"name"`
	Price         int64  `json:"price"`
	EmployeeLimit string `json:"employee_limit"`
	StorageLimit  string `json:"storage_limit"`
	Resolved      bool   `json:"resolved"`
}

/* ---------- ACCESS ---------- */

type AccessDTO struct {
	State              string                       `json:"state"` // active|expired|suspended|none
	Features           []string                     `json:"features"`
	Modules            map[string]bool              `json:"modules"`
	Suggestions        map[string]access.Suggestion `json:"suggestions"`
	RecommendedUpgrade *string                      `json:"recommended_upgrade"`
}
