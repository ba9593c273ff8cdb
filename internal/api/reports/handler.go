package reports

import (
	"log/slog"
	"net/http"
	"time"

	"staffms/internal/app/http/middleware"
	"staffms/internal/domain/access"
	"staffms/internal/domain/organizations"
	"staffms/internal/domain/plans"
	"staffms/internal/domain/users"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	DB      *gorm.DB
	Advisor *access.Advisor
	Log     *slog.Logger
}

func NewHandler(db *gorm.DB, advisor *access.Advisor, log *slog.Logger) *Handler {
	return &Handler{DB: db, Advisor: advisor, Log: log}
}

func currentOrg(c *gin.Context) (*organizations.Organization, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok || user.Organization == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Organization not found"})
		return nil, false
	}
	return user.Organization, true
}

// UsageReport is the basic report: headcount and storage against the plan.
func (h *Handler) UsageReport(c *gin.Context) {
	org, ok := currentOrg(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"organization_id": org.ID,
		"generated_at":    time.Now().UTC(),
		"employees": gin.H{
			"count":     org.EmployeeCount,
			"remaining": h.Advisor.RemainingEmployeeSlots(org),
		},
		"storage": gin.H{
			"used":       plans.FormatStorage(org.StorageUsed),
			"percentage": h.Advisor.StorageUsedPercentage(org),
		},
	})
}

type roleCount struct {
	Role  string `json:"role"`
	Count int64  `json:"count"`
}

type monthlyCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

// AdvancedReport breaks the organization down by role, verification state
// and monthly joins over the last year.
func (h *Handler) AdvancedReport(c *gin.Context) {
	org, ok := currentOrg(c)
	if !ok {
		return
	}
	db := h.DB.WithContext(c.Request.Context())

	var byRole []roleCount
	if err := db.Model(&users.User{}).
		Select("role, COUNT(*) AS count").
		Where("organization_id = ?", org.ID).
		Group("role").
		Order("role").
		Scan(&byRole).Error; err != nil {
		h.Log.Error("advanced report: roles", "organization_id", org.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	var pending int64
	if err := db.Model(&users.User{}).
		Where("organization_id = ? AND is_verified = ?", org.ID, false).
		Count(&pending).Error; err != nil {
		h.Log.Error("advanced report: pending", "organization_id", org.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	var joins []monthlyCount
	if err := db.Model(&users.User{}).
		Select("to_char(date_trunc('month', created_at), 'YYYY-MM') AS month, COUNT(*) AS count").
		Where("organization_id = ? AND created_at >= ?", org.ID, time.Now().AddDate(-1, 0, 0)).
		Group("month").
		Order("month").
		Scan(&joins).Error; err != nil {
		h.Log.Error("advanced report: joins", "organization_id", org.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"organization_id":     org.ID,
		"generated_at":        time.Now().UTC(),
		"employees_by_role":   byRole,
		"pending_invitations": pending,
		"monthly_joins":       joins,
		"suggestions":         h.Advisor.ShouldSuggestUpgrade(org),
	})
}
