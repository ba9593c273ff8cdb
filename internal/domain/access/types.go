package access

type AccessState string

const (
	AccessActive    AccessState = "active"
	AccessExpired   AccessState = "expired"
	AccessSuspended AccessState = "suspended"
	AccessNone      AccessState = "none" // no organization
)

// Module names used by route guards.
const (
	ModuleAttendance      = "attendance"
	ModuleLeave           = "leave"
	ModuleTasks           = "tasks"
	ModuleMessaging       = "messaging"
	ModuleReports         = "reports"
	ModuleAdvancedReports = "advanced_reports"
	ModulePerformance     = "performance"
	ModuleVideoCalls      = "video_calls"
	ModuleIntegrations    = "integrations"
	ModuleAPI             = "api"
)

// Suggestion is one upgrade prompt dimension ("employees" or "storage").
type Suggestion struct {
	Current    any     `json:"current"`
	Limit      any     `json:"limit"`
	Percentage float64 `json:"percentage"`
	Message    string  `json:"message"`
}

// Suggestion dimensions.
const (
	DimensionEmployees = "employees"
	DimensionStorage   = "storage"
)
