package billing

import (
	"net/http"
	"strings"
	"time"

	"staffms/config"
	"staffms/database"
	"staffms/internal/domain/organizations"
	"staffms/internal/domain/plans"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	stripesub "github.com/stripe/stripe-go/v75/subscription"
)

// ChangePlan swaps the price on the organization's live Stripe subscription
// (prorated) and moves the organization onto the new plan right away.
func (h *Handler) ChangePlan(c *gin.Context) {
	var body struct {
		Plan string `json:"plan"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Plan == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid plan"})
		return
	}
	target := strings.ToLower(strings.TrimSpace(body.Plan))
	if !h.Catalog.Has(target) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown plan"})
		return
	}

	stripe.Key = config.STRIPE_SECRET_KEY
	if stripe.Key == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured"})
		return
	}

	user, ok := managingUser(c)
	if !ok {
		return
	}
	org := user.Organization

	if org.SubscriptionPlan == target {
		c.JSON(http.StatusOK, gin.H{"message": "Already on this plan"})
		return
	}
	if org.StripeSubscriptionID == nil || *org.StripeSubscriptionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No active subscription to change. Use checkout first."})
		return
	}

	var sp plans.StripePrice
	if err := database.DB.Where("plan_key = ? AND active = ?", target, true).
		Order("updated_at DESC").First(&sp).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No price configured for plan (run /admin/sync-plans)"})
		return
	}

	sub, err := stripesub.Get(*org.StripeSubscriptionID, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch Stripe subscription"})
		return
	}
	if sub.Items == nil || len(sub.Items.Data) == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Subscription has no price item"})
		return
	}

	// Staying under the employee ceiling is the caller's responsibility on
	// downgrade; refuse when the current headcount would not fit.
	if next, ok := h.Catalog.Get(target); ok && next.MaxEmployees != plans.Unlimited &&
		org.EmployeeCount > int64(next.MaxEmployees) {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Too many employees for the selected plan",
			"current": org.EmployeeCount,
			"limit":   next.MaxEmployees,
		})
		return
	}

	updated, err := stripesub.Update(sub.ID, &stripe.SubscriptionParams{
		Items: []*stripe.SubscriptionItemsParams{
			{ID: stripe.String(sub.Items.Data[0].ID), Price: stripe.String(sp.StripePriceID)},
		},
		ProrationBehavior: stripe.String("create_prorations"),
		Metadata:          map[string]string{"plan": target},
	})
	if err != nil {
		h.Log.Error("stripe plan change failed", "organization_id", org.ID, "plan", target, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change subscription"})
		return
	}

	periodEnd := time.Unix(updated.CurrentPeriodEnd, 0)
	if err := organizations.ApplyPlan(database.DB, h.Catalog, org.ID, target, map[string]interface{}{
		"subscription_expires_at":    periodEnd,
		"stripe_subscription_status": string(updated.Status),
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update organization"})
		return
	}

	h.Log.Info("plan changed", "organization_id", org.ID, "from", org.SubscriptionPlan, "to", target)
	c.JSON(http.StatusOK, gin.H{
		"message":            "Plan changed (prorated by Stripe)",
		"is_upgrade":         plans.IsUpgrade(org.SubscriptionPlan, target),
		"plan":               target,
		"current_period_end": periodEnd,
	})
}
