package billing

import (
	"errors"
	"log/slog"
	"net/http"

	"staffms/database"
	"staffms/internal/app/http/middleware"
	"staffms/internal/domain/billing"
	"staffms/internal/domain/plans"
	"staffms/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Catalog *plans.Catalog
	Log     *slog.Logger
}

func NewHandler(catalog *plans.Catalog, log *slog.Logger) *Handler {
	return &Handler{Catalog: catalog, Log: log}
}

var errNoOrganization = errors.New("user has no organization")

// managingUser returns the current user when they may manage billing.
func managingUser(c *gin.Context) (*users.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return nil, false
	}
	if user.Organization == nil {
		c.JSON(http.StatusConflict, gin.H{"error": errNoOrganization.Error()})
		return nil, false
	}
	if !user.CanManageOrganization() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only organization owners and admins can manage billing"})
		return nil, false
	}
	return user, true
}

// GetPaymentHistory lists the organization's payments, newest first.
func (h *Handler) GetPaymentHistory(c *gin.Context) {
	user, ok := managingUser(c)
	if !ok {
		return
	}

	var payments []billing.Payment
	if err := database.DB.
		Where("organization_id = ?", user.Organization.ID).
		Order("created_at DESC").
		Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}

	out := make([]gin.H, 0, len(payments))
	for _, p := range payments {
		name := p.Plan
		if plan, ok := h.Catalog.Get(p.Plan); ok {
			name = plan.Name
		}
		out = append(out, gin.H{
			"id":         p.ID,
			"reference":  p.Reference,
			"plan":       p.Plan,
			"plan_name":  name,
			"amount":     p.Amount,
			"currency":   p.Currency,
			"status":     p.Status,
			"paid_at":    p.PaidAt,
			"created_at": p.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}
