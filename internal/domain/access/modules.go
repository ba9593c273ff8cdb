package access

import "staffms/internal/domain/plans"

// ModuleTable maps a coarse module name to the feature flag that unlocks it.
type ModuleTable map[string]string

// DefaultModules is the fixed module -> feature table.
func DefaultModules() ModuleTable {
	return ModuleTable{
		ModuleAttendance:      plans.FeatureAttendanceTracking,
		ModuleLeave:           plans.FeatureLeaveManagement,
		ModuleTasks:           plans.FeatureTaskManagement,
		ModuleMessaging:       plans.FeatureTeamMessaging,
		ModuleReports:         plans.FeatureBasicReports,
		ModuleAdvancedReports: plans.FeatureAdvancedReports,
		ModulePerformance:     plans.FeaturePerformanceReviews,
		ModuleVideoCalls:      plans.FeatureVideoCalls,
		ModuleIntegrations:    plans.FeatureCustomIntegrations,
		ModuleAPI:             plans.FeatureAPIAccess,
	}
}
