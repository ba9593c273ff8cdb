package access

import (
	"time"

	"staffms/internal/domain/users"
)

// Policy is the resolved access picture for one user at one instant.
type Policy struct {
	State              AccessState
	Features           []string
	Modules            map[string]bool
	Suggestions        map[string]Suggestion
	RecommendedUpgrade *string
}

func ComputePolicy(now time.Time, gate *Gate, advisor *Advisor, u *users.User) Policy {
	p := Policy{
		Modules:     gate.ModuleAccess(u),
		Suggestions: map[string]Suggestion{},
		Features:    []string{},
	}
	if u == nil {
		p.State = AccessNone
		return p
	}

	p.State = ComputeAccessState(now, u.Organization)
	if u.Organization == nil {
		return p
	}

	p.Features = gate.EnabledFeatures(u.Organization)
	p.Suggestions = advisor.ShouldSuggestUpgrade(u.Organization)
	if next, ok := advisor.RecommendedUpgrade(u.Organization); ok {
		p.RecommendedUpgrade = &next
	}
	return p
}
