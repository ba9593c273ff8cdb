package middleware

import (
	"context"
	"fmt"
	"testing"
	"time"

	"staffms/config"
	"staffms/internal/domain/organizations"
	"staffms/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeLoader struct {
	users map[uint]*users.User
	err   error
	calls int
}

func (f *fakeLoader) LoadUser(_ context.Context, id uint) (*users.User, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("load user %d: %w", id, gorm.ErrRecordNotFound)
	}
	return u, nil
}

func newLoader(us ...*users.User) *fakeLoader {
	f := &fakeLoader{users: map[uint]*users.User{}}
	for _, u := range us {
		f.users[u.ID] = u
	}
	return f
}

func userWithPlan(id uint, plan string) *users.User {
	return &users.User{
		ID:    id,
		Email: "user@example.com",
		Role:  users.RoleOwner,
		Organization: &organizations.Organization{
			ID:               id,
			SubscriptionPlan: plan,
			Status:           organizations.StatusActive,
		},
	}
}

func signToken(t *testing.T, userID uint, role string, exp time.Time) string {
	t.Helper()
	config.JWT_SECRET = testSecret

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"email":   "user@example.com",
		"role":    role,
		"exp":     exp.Unix(),
	})
	s, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return s
}
