package plans

import (
	"net/http"
	"strings"

	"staffms/config"
	"staffms/database"
	"staffms/internal/domain/plans"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/price"
)

// planKeyFromMetadata reads the plan key from price metadata ("plan", then "tier").
func planKeyFromMetadata(md map[string]string) string {
	if md == nil {
		return ""
	}
	if v := md["plan"]; v != "" {
		return strings.ToLower(strings.TrimSpace(v))
	}
	return strings.ToLower(strings.TrimSpace(md["tier"]))
}

// SyncPricesFromStripe records which Stripe recurring price sells each catalog
// plan. Prices whose metadata names no known plan are skipped.
func (h *Handler) SyncPricesFromStripe(c *gin.Context) {
	stripe.Key = config.STRIPE_SECRET_KEY
	if stripe.Key == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured"})
		return
	}

	params := &stripe.PriceListParams{}
	params.Active = stripe.Bool(true)
	params.Type = stripe.String("recurring")
	params.AddExpand("data.product")

	it := price.List(params)

	created, updated, skipped := 0, 0, 0

	for it.Next() {
		p := it.Price()

		if !p.Active || p.Recurring == nil || p.Product == nil || !p.Product.Active {
			skipped++
			continue
		}
		if config.STRIPE_PRODUCT_ID != "" && p.Product.ID != config.STRIPE_PRODUCT_ID {
			skipped++
			continue
		}

		key := planKeyFromMetadata(p.Metadata)
		if !h.Catalog.Has(key) {
			skipped++
			continue
		}

		var existing plans.StripePrice
		err := database.DB.Where("stripe_price_id = ?", p.ID).First(&existing).Error
		if err != nil {
			row := plans.StripePrice{
				PlanKey:         key,
				StripePriceID:   p.ID,
				StripeProductID: p.Product.ID,
				Currency:        string(p.Currency),
				UnitAmount:      p.UnitAmount,
				Interval:        string(p.Recurring.Interval),
				Active:          true,
			}
			if err := database.DB.Create(&row).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store price", "details": err.Error()})
				return
			}
			created++
			continue
		}

		existing.PlanKey = key
		existing.Currency = string(p.Currency)
		existing.UnitAmount = p.UnitAmount
		existing.Interval = string(p.Recurring.Interval)
		existing.Active = true
		if err := database.DB.Save(&existing).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update price", "details": err.Error()})
			return
		}
		updated++
	}

	if err := it.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch Stripe prices", "details": err.Error()})
		return
	}

	h.Log.Info("stripe prices synced", "created", created, "updated", updated, "skipped", skipped)
	c.JSON(http.StatusOK, gin.H{
		"synced":  created + updated,
		"created": created,
		"updated": updated,
		"skipped": skipped,
	})
}
