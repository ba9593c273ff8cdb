package stripewebhooks

import (
	"errors"
	"fmt"

	"staffms/internal/domain/plans"

	"gorm.io/gorm"
)

var errUnmappedPrice = errors.New("no plan mapped to stripe price")

// planForPrice maps a Stripe price to a catalog plan key through the synced
// price table, falling back to the "plan" metadata written at checkout.
func (h *Handler) planForPrice(priceID string, md map[string]string) (string, error) {
	var sp plans.StripePrice
	err := h.DB.Where("stripe_price_id = ?", priceID).First(&sp).Error
	switch {
	case err == nil && h.Catalog.Has(sp.PlanKey):
		return sp.PlanKey, nil
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		return "", fmt.Errorf("lookup stripe price %s: %w", priceID, err)
	}

	if key := md["plan"]; key != "" && h.Catalog.Has(key) {
		return key, nil
	}
	return "", fmt.Errorf("%w: %s", errUnmappedPrice, priceID)
}
