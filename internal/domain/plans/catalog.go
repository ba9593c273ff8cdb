package plans

// Catalog is the read-only registry of plans, ordered by declaration.
// Build one at startup and pass it to whatever needs plan data.
type Catalog struct {
	order []string
	plans map[string]Plan
}

// FeatureDef declares a feature flag on a plan, in order.
type FeatureDef struct {
	Name    string
	Enabled bool
}

// PlanSummary is the comparison row used by upgrade pages.
type PlanSummary struct {
	Key          string   `json:"key"`
	Name         string   `json:"name"`
	Price        int64    `json:"price"`
	MaxEmployees int      `json:"max_employees"`
	StorageLimit int64    `json:"storage_limit"`
	Features     []string `json:"features"`
}

// NewPlan builds a Plan from ordered feature definitions.
func NewPlan(key, name string, price int64, maxEmployees int, storageLimit int64, features ...FeatureDef) Plan {
	p := Plan{
		Key:          key,
		Name:         name,
		Price:        price,
		MaxEmployees: maxEmployees,
		StorageLimit: storageLimit,
		Features:     make(map[string]bool, len(features)),
		featureOrder: make([]string, 0, len(features)),
	}
	for _, f := range features {
		if _, seen := p.Features[f.Name]; !seen {
			p.featureOrder = append(p.featureOrder, f.Name)
		}
		p.Features[f.Name] = f.Enabled
	}
	return p
}

// NewCatalog registers plans in the given order. A repeated key replaces the
// earlier plan but keeps its position.
func NewCatalog(plans ...Plan) *Catalog {
	c := &Catalog{plans: make(map[string]Plan, len(plans))}
	for _, p := range plans {
		if _, exists := c.plans[p.Key]; !exists {
			c.order = append(c.order, p.Key)
		}
		c.plans[p.Key] = clonePlan(p)
	}
	return c
}

// Get returns the plan for key. Unknown keys are absent, not an error.
func (c *Catalog) Get(key string) (Plan, bool) {
	if c == nil {
		return Plan{}, false
	}
	p, ok := c.plans[key]
	if !ok {
		return Plan{}, false
	}
	return clonePlan(p), true
}

// Has reports whether key is a registered plan.
func (c *Catalog) Has(key string) bool {
	if c == nil {
		return false
	}
	_, ok := c.plans[key]
	return ok
}

// All returns every plan in catalog order.
func (c *Catalog) All() []Plan {
	if c == nil {
		return nil
	}
	out := make([]Plan, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, clonePlan(c.plans[k]))
	}
	return out
}

// Keys returns plan keys in catalog order.
func (c *Catalog) Keys() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.order...)
}

// Features returns a copy of the plan's feature map; empty for unknown keys.
func (c *Catalog) Features(key string) map[string]bool {
	p, ok := c.Get(key)
	if !ok {
		return map[string]bool{}
	}
	return p.Features
}

// Comparison summarizes every plan with only its enabled features.
func (c *Catalog) Comparison() []PlanSummary {
	all := c.All()
	out := make([]PlanSummary, 0, len(all))
	for _, p := range all {
		out = append(out, PlanSummary{
			Key:          p.Key,
			Name:         p.Name,
			Price:        p.Price,
			MaxEmployees: p.MaxEmployees,
			StorageLimit: p.StorageLimit,
			Features:     p.EnabledFeatures(),
		})
	}
	return out
}

func clonePlan(p Plan) Plan {
	features := make(map[string]bool, len(p.Features))
	for k, v := range p.Features {
		features[k] = v
	}
	p.Features = features
	p.featureOrder = append([]string(nil), p.featureOrder...)
	return p
}
