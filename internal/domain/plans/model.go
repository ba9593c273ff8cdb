package plans

import (
	"sort"
	"time"
)

// Unlimited marks a limit without a ceiling (employees or storage bytes).
const Unlimited = -1

// Plan is a subscription tier. Plans live in a Catalog and are never mutated.
type Plan struct {
	Key          string
	Name         string
	Price        int64 // monthly, minor currency units
	MaxEmployees int
	StorageLimit int64 // bytes
	Features     map[string]bool

	// featureOrder keeps declaration order for listings.
	featureOrder []string
}

// HasFeature reports whether the feature is enabled. Missing keys are false.
func (p Plan) HasFeature(feature string) bool {
	return p.Features[feature]
}

// EnabledFeatures lists enabled features in declaration order. Plans built
// without NewPlan have no declaration order and list alphabetically.
func (p Plan) EnabledFeatures() []string {
	order := p.featureOrder
	if len(order) == 0 {
		for f := range p.Features {
			order = append(order, f)
		}
		sort.Strings(order)
	}
	out := make([]string, 0, len(order))
	for _, f := range order {
		if p.Features[f] {
			out = append(out, f)
		}
	}
	return out
}

// StripePrice maps a plan key to a recurring Stripe price.
// Rows are written by the admin sync and read when creating checkout sessions.
type StripePrice struct {
	ID              uint   `gorm:"primaryKey"`
	PlanKey         string `gorm:"column:plan_key;not null;index"`
	StripePriceID   string `gorm:"column:stripe_price_id;not null;uniqueIndex:idx_stripe_prices_price_id"`
	StripeProductID string `gorm:"column:stripe_product_id"`
	Currency        string
	UnitAmount      int64
	Interval        string
	Active          bool `gorm:"default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
