package plans

import (
	"log/slog"
	"net/http"

	"staffms/internal/domain/plans"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Catalog *plans.Catalog
	Log     *slog.Logger
}

func NewHandler(catalog *plans.Catalog, log *slog.Logger) *Handler {
	return &Handler{Catalog: catalog, Log: log}
}

type planDTO struct {
	plans.PlanSummary
	EmployeeLimit string `json:"employee_limit"`
	Storage       string `json:"storage"`
}

// ListPlans returns the comparison table with display-ready limits.
func (h *Handler) ListPlans(c *gin.Context) {
	rows := h.Catalog.Comparison()
	out := make([]planDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, planDTO{
			PlanSummary:   r,
			EmployeeLimit: plans.FormatEmployeeLimit(r.MaxEmployees),
			Storage:       plans.FormatStorage(r.StorageLimit),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"plans":          out,
		"feature_labels": plans.FeatureLabels(),
	})
}

// GetPlan returns a single plan with every declared feature flag.
func (h *Handler) GetPlan(c *gin.Context) {
	p, ok := h.Catalog.Get(c.Param("key"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"key":            p.Key,
		"name":           p.Name,
		"price":          p.Price,
		"max_employees":  p.MaxEmployees,
		"storage_limit":  p.StorageLimit,
		"employee_limit": plans.FormatEmployeeLimit(p.MaxEmployees),
		"storage":        plans.FormatStorage(p.StorageLimit),
		"features":       p.Features,
	})
}
