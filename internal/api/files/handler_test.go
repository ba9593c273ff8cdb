package files

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"staffms/internal/domain/access"
	"staffms/internal/domain/organizations"
	"staffms/internal/domain/plans"
	"staffms/internal/domain/users"
	"staffms/pkg/logger"

	"github.com/gin-gonic/gin"
)

func uploadRequest(t *testing.T, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "report.pdf")
	if err != nil {
		t.Fatal(err)
	}
	part.Write(content)
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/organization/files", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestUploadRefusedWhenStorageFull(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(nil, access.NewAdvisor(plans.DefaultCatalog()), t.TempDir(), logger.Discard())

	full := &users.User{
		ID:   1,
		Role: users.RoleOwner,
		Organization: &organizations.Organization{
			ID:               1,
			SubscriptionPlan: plans.TierStarter,
			StorageUsed:      5 << 30,
		},
	}
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("current_user", full) })
	r.POST("/organization/files", h.Upload)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, uploadRequest(t, []byte("%PDF-1.4")))

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"recommended_upgrade":"professional"`) {
		t.Fatalf("expected upgrade hint, got %s", resp.Body.String())
	}
}

func TestUploadRequiresFile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(nil, access.NewAdvisor(plans.DefaultCatalog()), t.TempDir(), logger.Discard())

	u := &users.User{ID: 1, Organization: &organizations.Organization{ID: 1, SubscriptionPlan: plans.TierStarter}}
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("current_user", u) })
	r.POST("/organization/files", h.Upload)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/organization/files", strings.NewReader("")))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
