package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"staffms/internal/domain/users"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const currentUserKey = "current_user"

// UserLoader fetches a user with its organization (employee count loaded).
type UserLoader interface {
	LoadUser(ctx context.Context, id uint) (*users.User, error)
}

// CurrentUser returns the user resolved earlier in the chain, if any.
func CurrentUser(c *gin.Context) (*users.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*users.User)
	return u, ok && u != nil
}

// WithCurrentUser resolves the authenticated user once per request.
// Requires AuthMiddleware or OptionalAuth earlier in the chain.
func WithCurrentUser(loader UserLoader, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := resolveUser(c, loader); err != nil {
			rejectUnresolved(c, err, log)
			return
		}
		c.Next()
	}
}

// rejectUnresolved treats a missing token or a deleted user as
// unauthenticated. Any other lookup failure is a server error.
func rejectUnresolved(c *gin.Context, err error, log *slog.Logger) {
	if errors.Is(err, errNoToken) || errors.Is(err, gorm.ErrRecordNotFound) {
		rejectUnauthenticated(c)
		return
	}
	log.Error("current user lookup failed", "user_id", c.GetUint("user_id"), "path", c.Request.URL.Path, "error", err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
}

func resolveUser(c *gin.Context, loader UserLoader) (*users.User, error) {
	if u, ok := CurrentUser(c); ok {
		return u, nil
	}
	userID := c.GetUint("user_id")
	if userID == 0 {
		return nil, errNoToken
	}
	u, err := loader.LoadUser(c.Request.Context(), userID)
	if err != nil {
		return nil, err
	}
	c.Set(currentUserKey, u)
	return u, nil
}

// ExpectsJSON mirrors the usual "API vs browser" split: an Accept header
// asking for JSON, an XHR marker, or anything under /api/.
func ExpectsJSON(c *gin.Context) bool {
	if strings.Contains(c.GetHeader("Accept"), "application/json") {
		return true
	}
	if strings.EqualFold(c.GetHeader("X-Requested-With"), "XMLHttpRequest") {
		return true
	}
	return strings.HasPrefix(c.Request.URL.Path, "/api/")
}

// rejectUnauthenticated answers 401 JSON for API callers and sends browsers
// to the login page.
func rejectUnauthenticated(c *gin.Context) {
	if ExpectsJSON(c) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated"})
		return
	}
	c.Redirect(http.StatusFound, "/login")
	c.Abort()
}
