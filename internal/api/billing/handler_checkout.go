package billing

import (
	"fmt"
	"net/http"
	"strings"

	"staffms/config"
	"staffms/database"
	"staffms/internal/domain/billing"
	"staffms/internal/domain/organizations"
	"staffms/internal/domain/plans"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	portalSession "github.com/stripe/stripe-go/v75/billingportal/session"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
	"github.com/stripe/stripe-go/v75/customer"
)

// CreateCheckoutSession starts a Stripe subscription checkout for a plan key.
func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	var body struct {
		Plan string `json:"plan"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Plan == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid plan"})
		return
	}
	planKey := strings.ToLower(strings.TrimSpace(body.Plan))
	plan, ok := h.Catalog.Get(planKey)
	if !ok {
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

	var sp plans.StripePrice
	if err := database.DB.
		Where("plan_key = ? AND active = ?", plan.Key, true).
		Order("updated_at DESC").
		First(&sp).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No price configured for plan (run /admin/sync-plans)"})
		return
	}

	if org.StripeCustomerID == nil || *org.StripeCustomerID == "" {
		cus, err := customer.New(&stripe.CustomerParams{
			Email: stripe.String(user.Email),
			Name:  stripe.String(org.Name),
			Metadata: map[string]string{
				"organization_id": fmt.Sprint(org.ID),
			},
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Stripe customer"})
			return
		}
		if err := database.DB.Model(&organizations.Organization{}).
			Where("id = ?", org.ID).
			Update("stripe_customer_id", cus.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store Stripe customer"})
			return
		}
		org.StripeCustomerID = stripe.String(cus.ID)
	}

	payment := billing.Payment{
		OrganizationID: org.ID,
		Email:          user.Email,
		Reference:      billing.NewReference(),
		Plan:           plan.Key,
		Amount:         sp.UnitAmount,
		Currency:       strings.ToUpper(sp.Currency),
		PaymentMethod:  "stripe",
		Status:         billing.PaymentPending,
	}
	if err := database.DB.Create(&payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment record"})
		return
	}

	metadata := map[string]string{
		"organization_id": fmt.Sprint(org.ID),
		"plan":            plan.Key,
		"reference":       payment.Reference,
	}
	params := &stripe.CheckoutSessionParams{
		SuccessURL:        stripe.String(config.APP_URL + "/settings/billing?reference=" + payment.Reference),
		CancelURL:         stripe.String(config.APP_URL + "/settings/billing?canceled=1"),
		Mode:              stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		Customer:          stripe.String(*org.StripeCustomerID),
		ClientReferenceID: stripe.String(payment.Reference),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(sp.StripePriceID), Quantity: stripe.Int64(1)},
		},
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{Metadata: metadata},
	}
	params.Metadata = metadata

	s, err := checkoutsession.New(params)
	if err != nil {
		database.DB.Model(&payment).Update("status", billing.PaymentFailed)
		h.Log.Error("checkout session failed", "organization_id", org.ID, "plan", plan.Key, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session"})
		return
	}
	database.DB.Model(&payment).Update("stripe_session_id", s.ID)

	c.JSON(http.StatusOK, gin.H{"url": s.URL, "reference": payment.Reference})
}

// CreateBillingPortal opens the Stripe customer portal for the organization.
func (h *Handler) CreateBillingPortal(c *gin.Context) {
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
	if org.StripeCustomerID == nil || *org.StripeCustomerID == "" {
		c.JSON(http.StatusConflict, gin.H{"error": "No Stripe customer yet (subscribe first)"})
		return
	}

	portal, err := portalSession.New(&stripe.BillingPortalSessionParams{
		Customer:  stripe.String(*org.StripeCustomerID),
		ReturnURL: stripe.String(config.APP_URL + "/settings/billing"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create billing portal session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": portal.URL})
}
