package access

import (
	domainauth "github.com/academica/progress-ui-api/internal/domain/auth"
)

// DefaultFallbackPath is where guarded views send users when no explicit
// fallback is configured.
const DefaultFallbackPath = "/login"

// Constraint declares what a protected view requires. A view may combine
// at most one exact-role check, one role-membership check, and one
// capability check; every supplied check must pass (logical AND).
type Constraint struct {
	// RequiredRole, when non-empty, requires the session role to equal it.
	RequiredRole domainauth.Role

	// RequiredRoles, when non-empty, requires the session role to be a member.
	RequiredRoles []domainauth.Role

	// RequiredCapability, when non-empty, requires the role to hold it.
	RequiredCapability Capability

	// FallbackPath is the redirect target on unauthenticated or denied
	// access. Empty means DefaultFallbackPath.
	FallbackPath string
}

// RequireRole builds a constraint for a single exact role. The raw value
// may use a legacy Spanish spelling; it is normalized at declaration time.
// Unknown role names produce an unsatisfiable constraint (fail closed).
func RequireRole(raw string) Constraint {
	role, ok := domainauth.ParseRole(raw)
	if !ok {
		// Impossible role: every evaluation will fail the exact-role check.
		return Constraint{RequiredRole: domainauth.Role("unknown:" + raw)}
	}
	return Constraint{RequiredRole: role}
}

// RequireAnyRole builds a role-membership constraint, normalizing each name.
// Unknown names are dropped from the set; an all-unknown input produces an
// unsatisfiable constraint.
func RequireAnyRole(raws ...string) Constraint {
	roles := make([]domainauth.Role, 0, len(raws))
	for _, raw := range raws {
		if role, ok := domainauth.ParseRole(raw); ok {
			roles = append(roles, role)
		}
	}
	if len(roles) == 0 {
		roles = []domainauth.Role{domainauth.Role("unknown")}
	}
	return Constraint{RequiredRoles: roles}
}

// RequireCapability builds a capability constraint, accepting legacy token
// aliases. Unknown tokens produce an unsatisfiable constraint.
func RequireCapability(raw string) Constraint {
	cap, ok := ParseCapability(raw)
	if !ok {
		return Constraint{RequiredCapability: Capability("UNKNOWN:" + raw)}
	}
	return Constraint{RequiredCapability: cap}
}

// WithFallback returns a copy of the constraint with the fallback path set.
func (c Constraint) WithFallback(path string) Constraint {
	c.FallbackPath = path
	return c
}

// Fallback returns the effective fallback path.
func (c Constraint) Fallback() string {
	if c.FallbackPath == "" {
		return DefaultFallbackPath
	}
	return c.FallbackPath
}
