package organizations

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"staffms/config"
	"staffms/internal/app/http/middleware"
	"staffms/internal/domain/organizations"
	"staffms/internal/domain/plans"
	"staffms/internal/domain/users"
	"staffms/internal/infra/mail"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const invitationTTL = 7 * 24 * time.Hour

var errEmployeeLimit = errors.New("employee limit reached")

// AddEmployee invites a new member into the organization while the plan has
// room for one more employee.
func (h *Handler) AddEmployee(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok || user.Organization == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Organization not found"})
		return
	}
	if !user.CanManageOrganization() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only organization owners and admins can add employees"})
		return
	}

	var input struct {
		Name  string `json:"name" binding:"required"`
		Email string `json:"email" binding:"required,email"`
		Role  string `json:"role"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	role := strings.ToLower(strings.TrimSpace(input.Role))
	switch role {
	case "":
		role = users.RoleEmployee
	case users.RoleEmployee, users.RoleAdmin:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be employee or admin"})
		return
	}

	org := user.Organization
	if !h.Advisor.CanAddEmployee(org) {
		h.limitReached(c, org)
		return
	}

	member := users.User{
		Name:           strings.TrimSpace(input.Name),
		Email:          strings.ToLower(strings.TrimSpace(input.Email)),
		AuthProvider:   "local",
		Role:           role,
		OrganizationID: &org.ID,
	}
	token := strings.ReplaceAll(uuid.NewString(), "-", "")

	err := h.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		// Lock the organization row so concurrent invites see the same count.
		var locked organizations.Organization
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&locked, org.ID).Error; err != nil {
			return err
		}
		if err := organizations.CountEmployees(tx, &locked); err != nil {
			return err
		}
		if !h.Advisor.CanAddEmployee(&locked) {
			return errEmployeeLimit
		}
		if err := tx.Create(&member).Error; err != nil {
			return err
		}
		return tx.Create(&users.VerificationToken{
			UserID:    member.ID,
			Token:     token,
			Type:      users.TokenInvitation,
			ExpiresAt: time.Now().Add(invitationTTL),
		}).Error
	})
	if errors.Is(err, errEmployeeLimit) {
		h.limitReached(c, org)
		return
	}
	if err != nil {
		h.Log.Warn("add employee failed", "organization_id", org.ID, "email", member.Email, "error", err)
		c.JSON(http.StatusConflict, gin.H{"error": "Email may already exist"})
		return
	}

	subject, body := mail.InvitationEmail(config.APP_URL, org.Name, token)
	if err := h.Mailer.Send(c.Request.Context(), member.Name, member.Email, subject, body); err != nil {
		// The member exists; the invitation can be re-sent through password reset.
		h.Log.Error("invitation email failed", "organization_id", org.ID, "email", member.Email, "error", err)
	}

	h.Log.Info("employee added", "organization_id", org.ID, "user_id", member.ID, "role", member.Role)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Employee invited",
		"id":      member.ID,
		"email":   member.Email,
		"role":    member.Role,
	})
}

func (h *Handler) limitReached(c *gin.Context, org *organizations.Organization) {
	resp := gin.H{
		"status":           false,
		"message":          "You have reached the employee limit for your plan. Please upgrade to add more employees.",
		"upgrade_required": true,
	}
	if plan, ok := h.Gate.PlanFor(org); ok {
		resp["limit"] = plans.FormatEmployeeLimit(plan.MaxEmployees)
	}
	if next, ok := h.Advisor.RecommendedUpgrade(org); ok {
		resp["recommended_upgrade"] = next
	}
	c.JSON(http.StatusForbidden, resp)
}
