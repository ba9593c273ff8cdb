package auth

import (
	"time"

	"staffms/config"
	"staffms/internal/app/http/middleware"
	"staffms/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const sessionTTL = 24 * time.Hour

func issueAppJWT(user users.User) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(sessionTTL).Unix(),
	})
	return t.SignedString([]byte(config.JWT_SECRET))
}

func setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(middleware.AuthCookie, token, int(sessionTTL.Seconds()), "/", "", false, true)
}
