package organizations

import (
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

var (
	nonSlug   = regexp.MustCompile(`[^a-z0-9\-]+`)
	multiDash = regexp.MustCompile(`-+`)
)

// MakeSlug generates a URL-safe base slug from an organization name.
// Example: "Acme Staffing Ltd." -> "acme-staffing-ltd"
func MakeSlug(name string) string {
	base := strings.ToLower(strings.TrimSpace(name))
	base = strings.ReplaceAll(base, " ", "-")
	base = nonSlug.ReplaceAllString(base, "")
	base = multiDash.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")

	if base == "" {
		base = "org"
	}
	return base
}

// EnsureSlug persists "<base>-<id>" when the organization has no slug yet.
// Must be called after Create, once org.ID is set.
func EnsureSlug(db *gorm.DB, org *Organization) (string, error) {
	if org == nil {
		return "", fmt.Errorf("organization is nil")
	}
	if db == nil {
		return "", fmt.Errorf("db is nil")
	}

	if s := strings.TrimSpace(org.Slug); s != "" && !strings.HasPrefix(s, pendingSlugPrefix) {
		return s, nil
	}
	if org.ID == 0 {
		return "", fmt.Errorf("organization ID missing (call EnsureSlug after Create)")
	}

	slug := fmt.Sprintf("%s-%d", MakeSlug(org.Name), org.ID)
	org.Slug = slug

	if err := db.
		Model(&Organization{}).
		Where("id = ?", org.ID).
		Update("slug", slug).Error; err != nil {
		return "", err
	}
	return slug, nil
}

// pendingSlugPrefix marks the placeholder slug written at insert time, before
// the row has an ID. The slug column is unique and not null.
const pendingSlugPrefix = "pending-"

// PendingSlug returns a unique placeholder slug for a new row.
func PendingSlug(token string) string {
	return pendingSlugPrefix + token
}

// CountEmployees loads the live employee count into org.EmployeeCount.
func CountEmployees(db *gorm.DB, org *Organization) error {
	if org == nil || org.ID == 0 {
		return nil
	}
	var n int64
	if err := db.Table("users").Where("organization_id = ?", org.ID).Count(&n).Error; err != nil {
		return fmt.Errorf("count employees for organization %d: %w", org.ID, err)
	}
	org.EmployeeCount = n
	return nil
}
