package access

import (
	domainauth "github.com/academica/progress-ui-api/internal/domain/auth"
)

// rolePaths is the canonical role → dashboard path table used by the
// landing-route redirector.
var rolePaths = map[domainauth.Role]string{
	domainauth.RoleStudent:     "/dashboard/student",
	domainauth.RoleTeacher:     "/dashboard/teacher",
	domainauth.RoleCoordinator: "/dashboard/coordinator",
	domainauth.RoleAdmin:       "/dashboard/admin",
}

// legacyRolePaths preserves the first-generation view paths. The routes
// remain mounted and guarded; only the redirector prefers the canonical
// paths above.
var legacyRolePaths = map[domainauth.Role]string{
	domainauth.RoleStudent:     "/students",
	domainauth.RoleTeacher:     "/teacher",
	domainauth.RoleCoordinator: "/coordinate",
	domainauth.RoleAdmin:       "/overview",
}

// RolePath returns the canonical dashboard path for a role. Unknown roles
// fall back to the login entry point.
func RolePath(role domainauth.Role) string {
	if path, ok := rolePaths[role]; ok {
		return path
	}
	return DefaultFallbackPath
}

// LegacyRolePath returns the first-generation view path for a role, used
// to keep old bookmarks working.
func LegacyRolePath(role domainauth.Role) string {
	if path, ok := legacyRolePaths[role]; ok {
		return path
	}
	return DefaultFallbackPath
}
