package organizations

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"staffms/internal/domain/access"
	"staffms/internal/domain/organizations"
	"staffms/internal/domain/plans"
	"staffms/internal/domain/users"
	"staffms/internal/infra/mail"
	"staffms/pkg/logger"

	"github.com/gin-gonic/gin"
)

func newTestRouter(u *users.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	catalog := plans.DefaultCatalog()
	log := logger.Discard()
	h := NewHandler(nil, access.NewGate(catalog, access.DefaultModules()), access.NewAdvisor(catalog), mail.LogMailer{Log: log}, log)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if u != nil {
			c.Set("current_user", u)
		}
	})
	r.GET("/organization/usage", h.Usage)
	r.PUT("/organization/working-hours", h.UpdateWorkingHours)
	r.POST("/organization/employees", h.AddEmployee)
	r.GET("/modules/:module/access", h.ModuleAccess)
	r.GET("/api/v1/organization", h.APIOrganization)
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func owner(plan string, employees int64) *users.User {
	return &users.User{
		ID:   1,
		Role: users.RoleOwner,
		Organization: &organizations.Organization{
			ID:               1,
			Name:             "Acme",
			SubscriptionPlan: plan,
			Status:           organizations.StatusActive,
			EmployeeCount:    employees,
		},
	}
}

func decode(t *testing.T, resp *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v (%s)", err, resp.Body.String())
	}
	return out
}

func TestUsageReportsSuggestions(t *testing.T) {
	resp := do(newTestRouter(owner(plans.TierStarter, 8)), http.MethodGet, "/organization/usage", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	body := decode(t, resp)
	if body["employee_limit"] != "10" || body["storage_limit"] != "5 GB" {
		t.Fatalf("unexpected limits: %v / %v", body["employee_limit"], body["storage_limit"])
	}
	suggestions := body["suggestions"].(map[string]any)
	if _, ok := suggestions[access.DimensionEmployees]; !ok {
		t.Fatalf("expected employee suggestion at 80%%, got %v", suggestions)
	}
	if body["recommended_upgrade"] != plans.TierProfessional {
		t.Fatalf("expected professional, got %v", body["recommended_upgrade"])
	}
}

func TestUsageEnterpriseUnlimited(t *testing.T) {
	body := decode(t, do(newTestRouter(owner(plans.TierEnterprise, 500)), http.MethodGet, "/organization/usage", ""))
	if body["employee_limit"] != "Unlimited" || body["remaining_employee_slots"] != float64(-1) {
		t.Fatalf("unexpected enterprise usage: %v", body)
	}
	if len(body["suggestions"].(map[string]any)) != 0 || body["recommended_upgrade"] != nil {
		t.Fatalf("enterprise should have no prompts: %v", body)
	}
}

func TestAddEmployeeAtLimit(t *testing.T) {
	resp := do(newTestRouter(owner(plans.TierStarter, 10)), http.MethodPost, "/organization/employees",
		`{"name":"Ada","email":"ada@acme.test"}`)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.Code)
	}
	body := decode(t, resp)
	if body["upgrade_required"] != true || body["recommended_upgrade"] != plans.TierProfessional {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestAddEmployeeRequiresManager(t *testing.T) {
	u := owner(plans.TierStarter, 1)
	u.Role = users.RoleEmployee
	resp := do(newTestRouter(u), http.MethodPost, "/organization/employees", `{"name":"Ada","email":"ada@acme.test"}`)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.Code)
	}
}

func TestAddEmployeeRejectsRole(t *testing.T) {
	resp := do(newTestRouter(owner(plans.TierStarter, 1)), http.MethodPost, "/organization/employees",
		`{"name":"Ada","email":"ada@acme.test","role":"owner"}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestWorkingHoursValidation(t *testing.T) {
	cases := []struct {
		name string
		in   workingHoursInput
		ok   bool
	}{
		{"valid", workingHoursInput{"09:00", "17:30", 15, []int64{1, 2, 3, 4, 5}}, true},
		{"seconds", workingHoursInput{"08:00:00", "16:00:00", 0, []int64{1}}, true},
		{"end before start", workingHoursInput{"17:00", "09:00", 15, []int64{1}}, false},
		{"bad clock", workingHoursInput{"9am", "17:00", 15, []int64{1}}, false},
		{"threshold", workingHoursInput{"09:00", "17:00", 500, []int64{1}}, false},
		{"no days", workingHoursInput{"09:00", "17:00", 15, nil}, false},
		{"bad day", workingHoursInput{"09:00", "17:00", 15, []int64{8}}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, _, err := tc.in.normalize()
			if (err == nil) != tc.ok {
				t.Fatalf("ok=%v, err=%v", tc.ok, err)
			}
		})
	}

	start, end, days, _ := workingHoursInput{"09:00", "17:30", 15, []int64{1, 1, 2}}.normalize()
	if start != "09:00:00" || end != "17:30:00" || len(days) != 2 {
		t.Fatalf("unexpected normalization: %s %s %v", start, end, days)
	}
}

func TestModuleAccessExplains(t *testing.T) {
	r := newTestRouter(owner(plans.TierStarter, 1))

	body := decode(t, do(r, http.MethodGet, "/modules/tasks/access", ""))
	if body["allowed"] != false || body["feature"] != plans.FeatureTaskManagement || body["recommended_upgrade"] != plans.TierProfessional {
		t.Fatalf("unexpected tasks explanation: %v", body)
	}

	body = decode(t, do(r, http.MethodGet, "/modules/dashboard/access", ""))
	if body["allowed"] != true || body["mapped"] != false {
		t.Fatalf("unmapped modules are open: %v", body)
	}
}

func TestAPIOrganization(t *testing.T) {
	body := decode(t, do(newTestRouter(owner(plans.TierEnterprise, 3)), http.MethodGet, "/api/v1/organization", ""))
	if body["name"] != "Acme" || body["employees"] != float64(3) {
		t.Fatalf("unexpected payload: %v", body)
	}
}
