package organizations

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"staffms/internal/app/http/middleware"
	"staffms/internal/domain/organizations"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

const maxLateThresholdMinutes = 120

type workingHoursInput struct {
	StartTime            string  `json:"work_start_time"`
	EndTime              string  `json:"work_end_time"`
	LateThresholdMinutes int     `json:"late_threshold_minutes"`
	WorkDays             []int64 `json:"work_days"`
}

// parseClock accepts "HH:MM" or "HH:MM:SS" and returns the canonical HH:MM:SS.
func parseClock(s string) (time.Time, string, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, t.Format("15:04:05"), nil
		}
	}
	return time.Time{}, "", fmt.Errorf("invalid time %q", s)
}

func (in workingHoursInput) normalize() (start, end string, days pq.Int64Array, err error) {
	st, start, err := parseClock(in.StartTime)
	if err != nil {
		return "", "", nil, err
	}
	et, end, err := parseClock(in.EndTime)
	if err != nil {
		return "", "", nil, err
	}
	if !et.After(st) {
		return "", "", nil, errors.New("work_end_time must be after work_start_time")
	}
	if in.LateThresholdMinutes < 0 || in.LateThresholdMinutes > maxLateThresholdMinutes {
		return "", "", nil, fmt.Errorf("late_threshold_minutes must be between 0 and %d", maxLateThresholdMinutes)
	}
	if len(in.WorkDays) == 0 {
		return "", "", nil, errors.New("work_days must not be empty")
	}

	seen := map[int64]bool{}
	for _, d := range in.WorkDays {
		if d < 1 || d > 7 {
			return "", "", nil, fmt.Errorf("invalid work day %d (1 = Monday .. 7 = Sunday)", d)
		}
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	return start, end, days, nil
}

// UpdateWorkingHours lets owners and admins set the organization's schedule.
func (h *Handler) UpdateWorkingHours(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok || user.Organization == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Organization not found"})
		return
	}
	if !user.CanManageOrganization() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only organization owners and admins can change working hours"})
		return
	}

	var input workingHoursInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, end, days, err := input.normalize()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.DB.Model(&organizations.Organization{}).
		Where("id = ?", user.Organization.ID).
		Updates(map[string]interface{}{
			"work_start_time":        start,
			"work_end_time":          end,
			"late_threshold_minutes": input.LateThresholdMinutes,
			"work_days":              days,
		}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update working hours"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":                "Working hours updated",
		"work_start_time":        start,
		"work_end_time":          end,
		"late_threshold_minutes": input.LateThresholdMinutes,
		"work_days":              days,
	})
}
