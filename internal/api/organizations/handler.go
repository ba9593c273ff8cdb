package organizations

import (
	"log/slog"
	"net/http"

	"staffms/internal/app/http/middleware"
	"staffms/internal/domain/access"
	"staffms/internal/domain/plans"
	"staffms/internal/infra/mail"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	DB      *gorm.DB
	Gate    *access.Gate
	Advisor *access.Advisor
	Mailer  mail.Mailer
	Log     *slog.Logger
}

func NewHandler(db *gorm.DB, gate *access.Gate, advisor *access.Advisor, mailer mail.Mailer, log *slog.Logger) *Handler {
	return &Handler{DB: db, Gate: gate, Advisor: advisor, Mailer: mailer, Log: log}
}

// Usage reports limits, formatted usage and upgrade suggestions.
func (h *Handler) Usage(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok || user.Organization == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Organization not found"})
		return
	}
	org := user.Organization

	resp := gin.H{
		"plan":                     org.SubscriptionPlan,
		"employees":                org.EmployeeCount,
		"remaining_employee_slots": h.Advisor.RemainingEmployeeSlots(org),
		"can_add_employee":         h.Advisor.CanAddEmployee(org),
		"storage_used":             plans.FormatStorage(org.StorageUsed),
		"storage_used_bytes":       org.StorageUsed,
		"storage_used_percentage":  h.Advisor.StorageUsedPercentage(org),
		"suggestions":              h.Advisor.ShouldSuggestUpgrade(org),
		"recommended_upgrade":      nil,
	}
	if plan, ok := h.Gate.PlanFor(org); ok {
		resp["employee_limit"] = plans.FormatEmployeeLimit(plan.MaxEmployees)
		resp["storage_limit"] = plans.FormatStorage(plan.StorageLimit)
	}
	if next, ok := h.Advisor.RecommendedUpgrade(org); ok {
		resp["recommended_upgrade"] = next
	}

	c.JSON(http.StatusOK, resp)
}

// ModuleAccess explains the gate decision for one module and the current user.
func (h *Handler) ModuleAccess(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	module := c.Param("module")

	feature, mapped := h.Gate.FeatureFor(module)
	resp := gin.H{
		"module":  module,
		"mapped":  mapped,
		"allowed": h.Gate.CanAccessModule(user, module),
	}
	if mapped {
		resp["feature"] = feature
		if label, ok := plans.FeatureLabels()[feature]; ok {
			resp["feature_label"] = label
		}
	}
	if user != nil && user.Organization != nil {
		resp["plan"] = user.Organization.SubscriptionPlan
		if next, ok := h.Advisor.RecommendedUpgrade(user.Organization); ok {
			resp["recommended_upgrade"] = next
		}
	}

	c.JSON(http.StatusOK, resp)
}

// APIOrganization is the read-only organization view for API-access plans.
func (h *Handler) APIOrganization(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok || user.Organization == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Organization not found"})
		return
	}
	org := user.Organization

	c.JSON(http.StatusOK, gin.H{
		"id":                      org.ID,
		"name":                    org.Name,
		"slug":                    org.Slug,
		"status":                  org.Status,
		"subscription_plan":       org.SubscriptionPlan,
		"subscription_expires_at": org.SubscriptionExpiresAt,
		"employees":               org.EmployeeCount,
		"storage_used":            org.StorageUsed,
		"features":                h.Gate.EnabledFeatures(org),
		"working_hours": gin.H{
			"start":                  org.WorkStartTime,
			"end":                    org.WorkEndTime,
			"late_threshold_minutes": org.LateThresholdMinutes,
			"work_days":              org.WorkDays,
		},
	})
}
