package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"staffms/config"
	"staffms/internal/domain/users"

	"github.com/gin-gonic/gin"
)

func authRouter() *gin.Engine {
	router := gin.New()
	router.GET("/protected", AuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetUint("user_id"), "role": c.GetString("role")})
	})
	router.GET("/admin", AuthMiddleware(), RequireRole(users.RoleSuperAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/optional", OptionalAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetUint("user_id")})
	})
	return router
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	config.JWT_SECRET = testSecret
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp := httptest.NewRecorder()
	authRouter().ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	config.JWT_SECRET = testSecret
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	resp := httptest.NewRecorder()
	authRouter().ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	token := signToken(t, 7, users.RoleOwner, time.Now().Add(-time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	authRouter().ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	token := signToken(t, 7, users.RoleOwner, time.Now().Add(time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	authRouter().ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if body := resp.Body.String(); body != `{"role":"owner","user_id":7}` {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestRequireRole(t *testing.T) {
	owner := signToken(t, 1, users.RoleOwner, time.Now().Add(time.Hour))
	admin := signToken(t, 2, users.RoleSuperAdmin, time.Now().Add(time.Hour))

	for token, want := range map[string]int{owner: http.StatusForbidden, admin: http.StatusOK} {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp := httptest.NewRecorder()
		authRouter().ServeHTTP(resp, req)
		if resp.Code != want {
			t.Fatalf("expected %d, got %d", want, resp.Code)
		}
	}
}

func TestOptionalAuthReadsCookieAndNeverAborts(t *testing.T) {
	token := signToken(t, 9, users.RoleEmployee, time.Now().Add(time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/optional", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookie, Value: token})
	resp := httptest.NewRecorder()
	authRouter().ServeHTTP(resp, req)
	if resp.Code != http.StatusOK || resp.Body.String() != `{"user_id":9}` {
		t.Fatalf("unexpected response %d: %s", resp.Code, resp.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/optional", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp = httptest.NewRecorder()
	authRouter().ServeHTTP(resp, req)
	if resp.Code != http.StatusOK || resp.Body.String() != `{"user_id":0}` {
		t.Fatalf("invalid token should pass through anonymously, got %d: %s", resp.Code, resp.Body.String())
	}
}
