package organizations

import (
	"errors"
	"fmt"

	"staffms/internal/domain/plans"

	"gorm.io/gorm"
)

var ErrUnknownPlan = errors.New("unknown plan")

// ApplyPlan moves an organization onto planKey, together with any extra column
// updates (expiry, Stripe ids, status). Keys missing from the catalog are rejected.
func ApplyPlan(db *gorm.DB, catalog *plans.Catalog, orgID uint, planKey string, extra map[string]interface{}) error {
	if !catalog.Has(planKey) {
		return fmt.Errorf("%w: %q", ErrUnknownPlan, planKey)
	}

	updates := map[string]interface{}{"subscription_plan": planKey}
	for k, v := range extra {
		updates[k] = v
	}

	res := db.Model(&Organization{}).Where("id = ?", orgID).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("apply plan %q to organization %d: %w", planKey, orgID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("apply plan %q: organization %d: %w", planKey, orgID, gorm.ErrRecordNotFound)
	}
	return nil
}
