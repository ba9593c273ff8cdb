package users

import (
	"time"

	"staffms/internal/domain/organizations"
)

// Roles inside an organization, plus the platform operator role.
const (
	RoleOwner      = "owner"
	RoleAdmin      = "admin"
	RoleEmployee   = "employee"
	RoleSuperAdmin = "superadmin"
)

type User struct {
	ID           uint `gorm:"primaryKey"`
	Name         string
	Email        string  `gorm:"not null;uniqueIndex:idx_users_email"`
	Password     *string `gorm:""`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_users_google_sub"`
	Role         string  `gorm:"type:varchar(20);not null;default:'employee'"`
	Status       string  `gorm:"type:varchar(20);not null;default:'active'"`
	IsVerified   bool

	OrganizationID *uint                       `gorm:"column:organization_id;index"`
	Organization   *organizations.Organization `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanManageOrganization is true for owners and organization admins.
func (u User) CanManageOrganization() bool {
	return u.Role == RoleOwner || u.Role == RoleAdmin
}
