package models

import "strings"

// FilterAll is the explicit "no constraint" filter value. An empty string
// means the same thing; both are accepted so callers can forward UI
// dropdown values unchanged.
const FilterAll = "all"

// SearchFilters narrows a catalog job search. Every field is an exact-match
// predicate; empty or FilterAll disables that predicate. Remote is tri-state
// so "not specified" is distinguishable from "on-site only".
type SearchFilters struct {
	Type            string
	Company         string
	Location        string
	ExperienceLevel string
	Remote          *bool
}

func (f SearchFilters) wantsType() bool       { return active(f.Type) }
func (f SearchFilters) wantsCompany() bool    { return active(f.Company) }
func (f SearchFilters) wantsLocation() bool   { return active(f.Location) }
func (f SearchFilters) wantsExperience() bool { return active(f.ExperienceLevel) }

// Matches reports whether job satisfies every active predicate.
func (f SearchFilters) Matches(job Job) bool {
	if f.wantsType() && !equalFold(job.Type, f.Type) {
		return false
	}
	if f.wantsCompany() && !equalFold(job.Company, f.Company) {
		return false
	}
	if f.wantsLocation() && !equalFold(job.Location, f.Location) {
		return false
	}
	if f.wantsExperience() && !equalFold(job.ExperienceLevel, f.ExperienceLevel) {
		return false
	}
	if f.Remote != nil && job.Remote != *f.Remote {
		return false
	}
	return true
}

func active(value string) bool {
	return value != "" && !equalFold(value, FilterAll)
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
