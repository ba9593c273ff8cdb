package billing

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"staffms/config"
	"staffms/internal/domain/organizations"
	"staffms/internal/domain/plans"
	"staffms/internal/domain/users"
	"staffms/pkg/logger"

	"github.com/gin-gonic/gin"
)

func routerAs(u *users.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(plans.DefaultCatalog(), logger.Discard())
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if u != nil {
			c.Set("current_user", u)
		}
	})
	r.POST("/create-checkout-session", h.CreateCheckoutSession)
	r.POST("/change-plan", h.ChangePlan)
	r.POST("/billing-portal", h.CreateBillingPortal)
	return r
}

func post(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestCheckoutRejectsUnknownPlan(t *testing.T) {
	resp := post(routerAs(nil), "/create-checkout-session", `{"plan":"platinum"}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestCheckoutRequiresStripeKey(t *testing.T) {
	config.STRIPE_SECRET_KEY = ""
	resp := post(routerAs(nil), "/create-checkout-session", `{"plan":"professional"}`)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
}

func TestBillingRequiresManager(t *testing.T) {
	config.STRIPE_SECRET_KEY = "sk_test_dummy"
	t.Cleanup(func() { config.STRIPE_SECRET_KEY = "" })

	employee := &users.User{
		ID:           5,
		Role:         users.RoleEmployee,
		Organization: &organizations.Organization{ID: 1, SubscriptionPlan: plans.TierStarter},
	}
	if resp := post(routerAs(employee), "/billing-portal", `{}`); resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for employee, got %d", resp.Code)
	}

	orphan := &users.User{ID: 6, Role: users.RoleOwner}
	if resp := post(routerAs(orphan), "/billing-portal", `{}`); resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 without organization, got %d", resp.Code)
	}

	if resp := post(routerAs(nil), "/billing-portal", `{}`); resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without user, got %d", resp.Code)
	}
}

func TestChangePlanShortCircuits(t *testing.T) {
	config.STRIPE_SECRET_KEY = "sk_test_dummy"
	t.Cleanup(func() { config.STRIPE_SECRET_KEY = "" })

	owner := &users.User{
		ID:           1,
		Role:         users.RoleOwner,
		Organization: &organizations.Organization{ID: 1, SubscriptionPlan: plans.TierProfessional},
	}

	resp := post(routerAs(owner), "/change-plan", `{"plan":"professional"}`)
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), "Already on this plan") {
		t.Fatalf("expected no-op, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = post(routerAs(owner), "/change-plan", `{"plan":"enterprise"}`)
	if resp.Code != http.StatusBadRequest || !strings.Contains(resp.Body.String(), "No active subscription") {
		t.Fatalf("expected missing subscription error, got %d: %s", resp.Code, resp.Body.String())
	}
}
