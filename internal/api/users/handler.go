package users

import (
	"log/slog"
	"net/http"
	"time"

	"staffms/internal/app/http/middleware"
	"staffms/internal/domain/access"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Gate    *access.Gate
	Advisor *access.Advisor
	Log     *slog.Logger
	Now     func() time.Time
}

func NewHandler(gate *access.Gate, advisor *access.Advisor, log *slog.Logger) *Handler {
	return &Handler{Gate: gate, Advisor: advisor, Log: log, Now: time.Now}
}

// GetCurrentUser answers /me with the user, organization, plan and the
// resolved access policy.
func (h *Handler) GetCurrentUser(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	policy := access.ComputePolicy(h.Now(), h.Gate, h.Advisor, user)

	c.JSON(http.StatusOK, MeResponse{
		User:         BuildUserDTO(user),
		Organization: BuildOrganizationDTO(user.Organization, h.Advisor),
		Plan:         BuildPlanDTO(h.Gate.Catalog(), user.Organization),
		Access:       BuildAccessDTO(policy),
	})
}
