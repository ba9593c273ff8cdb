package plans

// Plan keys (single source of truth)
const (
	TierStarter      = "starter"
	TierProfessional = "professional"
	TierEnterprise   = "enterprise"
)

// Feature flag names.
const (
	FeatureAttendanceTracking = "attendance_tracking"
	FeatureLeaveManagement    = "leave_management"
	FeatureBasicReports       = "basic_reports"
	FeatureEmailSupport       = "email_support"
	FeatureTaskManagement     = "task_management"
	FeatureTeamMessaging      = "team_messaging"
	FeatureAdvancedReports    = "advanced_reports"
	FeatureCustomIntegrations = "custom_integrations"
	FeaturePerformanceReviews = "performance_reviews"
	FeatureVideoCalls         = "video_calls"
	FeatureDedicatedSupport   = "dedicated_support"
	FeatureAPIAccess          = "api_access"
)

// upgradeOrder is the fixed tier ladder. Keys without an entry have no upgrade.
var upgradeOrder = map[string]string{
	TierStarter:      TierProfessional,
	TierProfessional: TierEnterprise,
}

// tierRank orders tiers for upgrade/downgrade decisions.
var tierRank = map[string]int{
	TierStarter:      1,
	TierProfessional: 2,
	TierEnterprise:   3,
}

// NextTier returns the tier above key, or false at the top or for unknown keys.
func NextTier(key string) (string, bool) {
	next, ok := upgradeOrder[key]
	return next, ok
}

// IsUpgrade reports whether moving from -> to climbs the ladder.
// Leaving an unknown plan for a known one counts as an upgrade.
func IsUpgrade(from, to string) bool {
	toRank, ok := tierRank[to]
	if !ok {
		return false
	}
	return toRank > tierRank[from]
}

var featureLabels = map[string]string{
	FeatureAttendanceTracking: "Attendance Tracking",
	FeatureLeaveManagement:    "Leave Management",
	FeatureBasicReports:       "Basic Reports",
	FeatureEmailSupport:       "Email Support",
	FeatureTaskManagement:     "Task Management",
	FeatureTeamMessaging:      "Team Messaging",
	FeatureAdvancedReports:    "Advanced Reports & Analytics",
	FeatureCustomIntegrations: "Custom Integrations",
	FeaturePerformanceReviews: "Performance Reviews",
	FeatureVideoCalls:         "Video Calls",
	FeatureDedicatedSupport:   "24/7 Dedicated Support",
	FeatureAPIAccess:          "API Access",
}

// FeatureLabels returns human-readable names keyed by feature.
func FeatureLabels() map[string]string {
	out := make(map[string]string, len(featureLabels))
	for k, v := range featureLabels {
		out[k] = v
	}
	return out
}

// DefaultCatalog returns the three standard plans.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		NewPlan(TierStarter, "Starter", 15000, 10, 5*gib,
			FeatureDef{FeatureAttendanceTracking, true},
			FeatureDef{FeatureLeaveManagement, true},
			FeatureDef{FeatureBasicReports, true},
			FeatureDef{FeatureEmailSupport, true},
			FeatureDef{FeatureTaskManagement, false},
			FeatureDef{FeatureTeamMessaging, false},
			FeatureDef{FeatureAdvancedReports, false},
			FeatureDef{FeatureCustomIntegrations, false},
			FeatureDef{FeaturePerformanceReviews, false},
			FeatureDef{FeatureVideoCalls, false},
		),
		NewPlan(TierProfessional, "Professional", 35000, 50, 25*gib,
			FeatureDef{FeatureAttendanceTracking, true},
			FeatureDef{FeatureLeaveManagement, true},
			FeatureDef{FeatureBasicReports, true},
			FeatureDef{FeatureEmailSupport, true},
			FeatureDef{FeatureTaskManagement, true},
			FeatureDef{FeatureTeamMessaging, true},
			FeatureDef{FeatureAdvancedReports, true},
			FeatureDef{FeatureCustomIntegrations, false},
			FeatureDef{FeaturePerformanceReviews, true},
			FeatureDef{FeatureVideoCalls, true},
		),
		NewPlan(TierEnterprise, "Enterprise", 75000, Unlimited, Unlimited,
			FeatureDef{FeatureAttendanceTracking, true},
			FeatureDef{FeatureLeaveManagement, true},
			FeatureDef{FeatureBasicReports, true},
			FeatureDef{FeatureEmailSupport, true},
			FeatureDef{FeatureTaskManagement, true},
			FeatureDef{FeatureTeamMessaging, true},
			FeatureDef{FeatureAdvancedReports, true},
			FeatureDef{FeatureCustomIntegrations, true},
			FeatureDef{FeaturePerformanceReviews, true},
			FeatureDef{FeatureVideoCalls, true},
			FeatureDef{FeatureDedicatedSupport, true},
			FeatureDef{FeatureAPIAccess, true},
		),
	)
}
