package middleware

import (
	"log/slog"
	"net/http"
	"net/url"

	"staffms/internal/domain/access"

	"github.com/gin-gonic/gin"
)

const (
	// FlashErrorCookie carries a one-shot error message for the next page view.
	FlashErrorCookie = "flash_error"

	UpgradeRequiredMessage = "This feature is not available on your current plan. Please upgrade to access this feature."
)

// RequireModule lets the request through only when the user's plan unlocks
// module. Anonymous callers are sent to login before any plan check.
func RequireModule(gate *access.Gate, loader UserLoader, module string, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := resolveUser(c, loader)
		if err != nil {
			rejectUnresolved(c, err, log)
			return
		}

		if gate.CanAccessModule(user, module) {
			c.Next()
			return
		}

		plan := ""
		if user.Organization != nil {
			plan = user.Organization.SubscriptionPlan
		}
		log.Info("module access denied", "user_id", user.ID, "module", module, "plan", plan)

		if ExpectsJSON(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"status":           false,
				"message":          UpgradeRequiredMessage,
				"upgrade_required": true,
			})
			return
		}

		c.SetCookie(FlashErrorCookie, url.QueryEscape(UpgradeRequiredMessage), 60, "/", "", false, true)
		c.Redirect(http.StatusFound, backURL(c))
		c.Abort()
	}
}

// backURL is the Referer when it points at this host, else the dashboard.
func backURL(c *gin.Context) string {
	ref := c.GetHeader("Referer")
	if ref == "" {
		return "/dashboard"
	}
	u, err := url.Parse(ref)
	if err != nil || (u.Host != "" && u.Host != c.Request.Host) {
		return "/dashboard"
	}
	if u.RequestURI() == c.Request.URL.RequestURI() {
		return "/dashboard"
	}
	return u.RequestURI()
}
