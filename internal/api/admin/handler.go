package admin

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"staffms/internal/domain/billing"
	"staffms/internal/domain/organizations"
	"staffms/internal/domain/plans"
	"staffms/internal/domain/users"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type Handler struct {
	DB      *gorm.DB
	Catalog *plans.Catalog
	Log     *slog.Logger
}

func NewHandler(db *gorm.DB, catalog *plans.Catalog, log *slog.Logger) *Handler {
	return &Handler{DB: db, Catalog: catalog, Log: log}
}

type AdminOrganization struct {
	ID                    uint       `json:"id"`
	Name                  string     `json:"name"`
	Slug                  string     `json:"slug"`
	Status                string     `json:"status"`
	Plan                  string     `json:"plan"`
	PlanName              *string    `json:"plan_name,omitempty"`
	Employees             int64      `json:"employees"`
	StorageUsed           string     `json:"storage_used"`
	StripeCustomerID      *string    `json:"stripe_customer_id,omitempty"`
	StripeSubID           *string    `json:"stripe_subscription_id,omitempty"`
	SubscriptionExpiresAt *time.Time `json:"subscription_expires_at,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
}

type AdminPayment struct {
	ID           uint       `json:"id"`
	Organization uint       `json:"organization_id"`
	Email        string     `json:"email"`
	Reference    string     `json:"reference"`
	Plan         string     `json:"plan"`
	Amount       int64      `json:"amount"`
	Currency     string     `json:"currency"`
	Status       string     `json:"status"`
	InvoiceID    *string    `json:"invoice_id,omitempty"`
	PaidAt       *time.Time `json:"paid_at,omitempty"`
	CreatedAt    string     `json:"created_at"`
}

type AdminStats struct {
	TotalOrganizations int64            `json:"total_organizations"`
	TotalUsers         int64            `json:"total_users"`
	TotalRevenue       int64            `json:"total_revenue"`
	RecentRevenue      int64            `json:"recent_revenue"`
	OrgsPerPlan        map[string]int64 `json:"organizations_per_plan"`
}

func (h *Handler) ListOrganizations(c *gin.Context) {
	var orgs []organizations.Organization
	if err := h.DB.Order("created_at DESC").Find(&orgs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load organizations"})
		return
	}

	type headcount struct {
		OrganizationID uint
		Count          int64
	}
	var counts []headcount
	if err := h.DB.Model(&users.User{}).
		Select("organization_id, COUNT(*) AS count").
		Where("organization_id IS NOT NULL").
		Group("organization_id").
		Scan(&counts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count employees"})
		return
	}
	byOrg := make(map[uint]int64, len(counts))
	for _, hc := range counts {
		byOrg[hc.OrganizationID] = hc.Count
	}

	out := make([]AdminOrganization, 0, len(orgs))
	for _, o := range orgs {
		var planName *string
		if p, ok := h.Catalog.Get(o.SubscriptionPlan); ok {
			planName = &p.Name
		}
		out = append(out, AdminOrganization{
			ID:                    o.ID,
			Name:                  o.Name,
			Slug:                  o.Slug,
			Status:                o.Status,
			Plan:                  o.SubscriptionPlan,
			PlanName:              planName,
			Employees:             byOrg[o.ID],
			StorageUsed:           plans.FormatStorage(o.StorageUsed),
			StripeCustomerID:      o.StripeCustomerID,
			StripeSubID:           o.StripeSubscriptionID,
			SubscriptionExpiresAt: o.SubscriptionExpiresAt,
			CreatedAt:             o.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, out)
}

func (h *Handler) ListAllPayments(c *gin.Context) {
	var payments []billing.Payment
	if err := h.DB.Order("created_at DESC").Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}

	result := make([]AdminPayment, 0, len(payments))
	for _, p := range payments {
		result = append(result, AdminPayment{
			ID:           p.ID,
			Organization: p.OrganizationID,
			Email:        p.Email,
			Reference:    p.Reference,
			Plan:         p.Plan,
			Amount:       p.Amount,
			Currency:     p.Currency,
			Status:       p.Status,
			InvoiceID:    p.InvoiceID,
			PaidAt:       p.PaidAt,
			CreatedAt:    p.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	c.JSON(http.StatusOK, result)
}

// GetAdminStats runs the independent aggregate queries concurrently.
func (h *Handler) GetAdminStats(c *gin.Context) {
	var stats AdminStats
	db := h.DB.WithContext(c.Request.Context())
	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)

	type planCount struct {
		SubscriptionPlan string
		Count            int64
	}
	var counts []planCount

	var g errgroup.Group
	g.Go(func() error {
		return db.Model(&organizations.Organization{}).Count(&stats.TotalOrganizations).Error
	})
	g.Go(func() error {
		return db.Model(&users.User{}).Count(&stats.TotalUsers).Error
	})
	g.Go(func() error {
		return db.Model(&billing.Payment{}).
			Where("status = ?", billing.PaymentSuccess).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&stats.TotalRevenue).Error
	})
	g.Go(func() error {
		return db.Model(&billing.Payment{}).
			Where("status = ? AND paid_at >= ?", billing.PaymentSuccess, thirtyDaysAgo).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&stats.RecentRevenue).Error
	})
	g.Go(func() error {
		return db.Model(&organizations.Organization{}).
			Select("subscription_plan, COUNT(id) AS count").
			Group("subscription_plan").
			Scan(&counts).Error
	})
	if err := g.Wait(); err != nil {
		h.Log.Error("admin stats failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}

	stats.OrgsPerPlan = make(map[string]int64, len(counts))
	for _, key := range h.Catalog.Keys() {
		stats.OrgsPerPlan[key] = 0
	}
	for _, pc := range counts {
		stats.OrgsPerPlan[pc.SubscriptionPlan] = pc.Count
	}

	c.JSON(http.StatusOK, stats)
}

// ChangeOrganizationPlan moves an organization to another catalog plan without
// touching Stripe (manual grants and corrections).
func (h *Handler) ChangeOrganizationPlan(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid organization id"})
		return
	}

	var body struct {
		Plan      string     `json:"plan" binding:"required"`
		ExpiresAt *time.Time `json:"expires_at"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	planKey := strings.ToLower(strings.TrimSpace(body.Plan))

	extra := map[string]interface{}{"status": organizations.StatusActive}
	if body.ExpiresAt != nil {
		extra["subscription_expires_at"] = *body.ExpiresAt
	}

	err = organizations.ApplyPlan(h.DB, h.Catalog, uint(id), planKey, extra)
	switch {
	case errors.Is(err, organizations.ErrUnknownPlan):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown plan"})
		return
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Organization not found"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change plan"})
		return
	}

	h.Log.Info("admin changed organization plan", "organization_id", id, "plan", planKey, "admin_id", c.GetUint("user_id"))
	c.JSON(http.StatusOK, gin.H{"message": "Plan updated", "organization_id": id, "plan": planKey})
}
