package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// RequireActiveSubscription blocks organizations whose subscription is
// suspended, cancelled, or past its expiry. Runs after WithCurrentUser.
func RequireActiveSubscription() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || user.Organization == nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Subscription not found or expired",
			})
			return
		}

		if !user.Organization.IsSubscriptionActive(time.Now()) {
			c.AbortWithStatusJSON(http.StatusPaymentRequired, gin.H{
				"error": "Your subscription has expired",
			})
			return
		}

		c.Next()
	}
}
