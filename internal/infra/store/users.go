package store

import (
	"context"
	"fmt"

	"staffms/internal/domain/organizations"
	"staffms/internal/domain/users"

	"gorm.io/gorm"
)

// Users loads users for request-scoped access checks.
type Users struct {
	DB *gorm.DB
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{DB: db}
}

// LoadUser returns the user with its organization and live employee count.
func (s *Users) LoadUser(ctx context.Context, id uint) (*users.User, error) {
	var u users.User
	if err := s.DB.WithContext(ctx).
		Preload("Organization").
		First(&u, id).Error; err != nil {
		return nil, fmt.Errorf("load user %d: %w", id, err)
	}

	if u.Organization != nil {
		if err := organizations.CountEmployees(s.DB.WithContext(ctx), u.Organization); err != nil {
			return nil, err
		}
	}
	return &u, nil
}
