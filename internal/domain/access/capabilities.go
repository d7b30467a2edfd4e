package access

// Package access implements the role/permission resolver and the access
// guard decision logic. It is pure: no HTTP, storage, or clock concerns.

import (
	"sort"
	"strings"

	domainauth "github.com/academica/progress-ui-api/internal/domain/auth"
)

// Capability is a token granting access to a specific action or view.
type Capability string

const (
	CapViewOwnProgress      Capability = "VIEW_OWN_PROGRESS"
	CapViewOwnStudents      Capability = "VIEW_OWN_STUDENTS"
	CapSearchOwnStudents    Capability = "SEARCH_OWN_STUDENTS"
	CapViewOwnCourses       Capability = "VIEW_OWN_COURSES"
	CapViewGlobalReports    Capability = "VIEW_GLOBAL_REPORTS"
	CapSearchCohortStudents Capability = "SEARCH_COHORT_STUDENTS"
	CapManageUsers          Capability = "MANAGE_USERS"
	CapViewGlobalStats      Capability = "VIEW_GLOBAL_STATS"
	CapSearchAllStudents    Capability = "SEARCH_ALL_STUDENTS"
)

// capabilityAliases maps legacy token spellings onto the canonical set.
// Earlier revisions of the platform carried two capability tables with
// divergent spellings; the alias keeps old route declarations working
// while the canonical table stays the single source of truth.
var capabilityAliases = map[string]Capability{
	"STUDENTS_SEARCH": CapSearchOwnStudents,
}

// ParseCapability normalizes a raw capability token (canonical or legacy
// alias). The second return value reports whether the token is known.
func ParseCapability(raw string) (Capability, bool) {
	token := strings.ToUpper(strings.TrimSpace(raw))
	if cap, ok := capabilityAliases[token]; ok {
		return cap, true
	}
	cap := Capability(token)
	if _, ok := grants[cap]; ok {
		return cap, true
	}
	return "", false
}

// grants records, per capability, the lowest role that holds it. Higher
// roles inherit everything below them, so the table stays cumulative by
// construction: student ⊆ teacher ⊆ coordinator ⊆ admin.
var grants = map[Capability]domainauth.Role{
	CapViewOwnProgress:      domainauth.RoleStudent,
	CapViewOwnStudents:      domainauth.RoleTeacher,
	CapSearchOwnStudents:    domainauth.RoleTeacher,
	CapViewOwnCourses:       domainauth.RoleTeacher,
	CapViewGlobalReports:    domainauth.RoleCoordinator,
	CapSearchCohortStudents: domainauth.RoleCoordinator,
	CapManageUsers:          domainauth.RoleAdmin,
	CapViewGlobalStats:      domainauth.RoleAdmin,
	CapSearchAllStudents:    domainauth.RoleAdmin,
}

// roleRank orders roles for the cumulative grant table.
var roleRank = map[domainauth.Role]int{
	domainauth.RoleStudent:     1,
	domainauth.RoleTeacher:     2,
	domainauth.RoleCoordinator: 3,
	domainauth.RoleAdmin:       4,
}

// CapabilitiesFor returns the capability set held by a role. The function
// is total: an unknown or empty role yields the empty set (fail closed).
func CapabilitiesFor(role domainauth.Role) map[Capability]bool {
	rank, ok := roleRank[role]
	if !ok {
		return map[Capability]bool{}
	}

	set := make(map[Capability]bool, len(grants))
	for cap, minRole := range grants {
		if rank >= roleRank[minRole] {
			set[cap] = true
		}
	}
	return set
}

// CapabilityList returns the capabilities of a role sorted by token,
// for stable display in the admin CLI and the denied panel.
func CapabilityList(role domainauth.Role) []Capability {
	set := CapabilitiesFor(role)
	out := make([]Capability, 0, len(set))
	for cap := range set {
		out = append(out, cap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// HasCapability reports whether a role holds the given capability.
// An empty role always reports false.
func HasCapability(role domainauth.Role, cap Capability) bool {
	return CapabilitiesFor(role)[cap]
}

// The derived booleans below are membership tests over the capability
// table, never maintained by hand, so they cannot drift from the grants.

// CanSearchStudents reports whether the role can search students at any
// scope (own, cohort, or all).
func CanSearchStudents(role domainauth.Role) bool {
	return HasCapability(role, CapSearchOwnStudents) ||
		HasCapability(role, CapSearchCohortStudents) ||
		HasCapability(role, CapSearchAllStudents)
}

// CanViewAllReports reports whether the role can open the global reports view.
func CanViewAllReports(role domainauth.Role) bool {
	return HasCapability(role, CapViewGlobalReports)
}

// CanManageUsers reports whether the role can administer user accounts.
func CanManageUsers(role domainauth.Role) bool {
	return HasCapability(role, CapManageUsers)
}

// CanViewGlobalStats reports whether the role can open the institution-wide
// statistics overview.
func CanViewGlobalStats(role domainauth.Role) bool {
	return HasCapability(role, CapViewGlobalStats)
}
