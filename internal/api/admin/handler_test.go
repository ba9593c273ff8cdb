package admin

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"staffms/internal/domain/plans"
	"staffms/pkg/logger"

	"github.com/gin-gonic/gin"
)

func TestChangeOrganizationPlanValidatesInput(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(nil, plans.DefaultCatalog(), logger.Discard())
	r := gin.New()
	r.PUT("/admin/organizations/:id/plan", h.ChangeOrganizationPlan)

	cases := []struct {
		name, path, body string
		want             int
	}{
		{"bad id", "/admin/organizations/abc/plan", `{"plan":"enterprise"}`, http.StatusBadRequest},
		{"missing plan", "/admin/organizations/1/plan", `{}`, http.StatusBadRequest},
		// ApplyPlan checks the catalog before touching the database.
		{"unknown plan", "/admin/organizations/1/plan", `{"plan":"gold"}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, tc.path, strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			resp := httptest.NewRecorder()
			r.ServeHTTP(resp, req)
			if resp.Code != tc.want {
				t.Fatalf("expected %d, got %d: %s", tc.want, resp.Code, resp.Body.String())
			}
		})
	}
}
