package access

import (
	domainauth "github.com/academica/progress-ui-api/internal/domain/auth"
)

// State is the outcome category of a guard evaluation.
type State int

const (
	// StateChecking means the session could not be resolved yet (the
	// store was unreachable). Guards render a placeholder and never
	// redirect from this state.
	StateChecking State = iota
	// StateUnauthenticated means no session exists.
	StateUnauthenticated
	// StateDenied means a session exists but a constraint failed.
	StateDenied
	// StateAllowed means every supplied constraint passed.
	StateAllowed
)

func (s State) String() string {
	switch s {
	case StateChecking:
		return "checking"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateDenied:
		return "denied"
	case StateAllowed:
		return "allowed"
	default:
		return "unknown"
	}
}

// Check identifies which evaluation step produced the decision. Checks run
// in a fixed order and the first failing check wins, so the reported check
// always corresponds to the earliest unmet requirement.
type Check string

const (
	CheckLoading        Check = "loading"
	CheckAuthentication Check = "authentication"
	CheckRole           Check = "role"
	CheckRoleMembership Check = "role_membership"
	CheckCapability     Check = "capability"
)

// Decision is the result of evaluating a constraint against a session.
// It carries enough context to render the denied panel (required vs actual).
type Decision struct {
	State       State
	FailedCheck Check

	ActualRole         domainauth.Role
	RequiredRole       domainauth.Role
	RequiredRoles      []domainauth.Role
	RequiredCapability Capability
}

// Evaluate runs the guard state machine for one session snapshot.
// sess is nil when no session exists; resolved is false when the session
// store could not answer (the CHECKING state).
//
// Check order is part of the contract: (1) loading, (2) authentication,
// (3) exact role, (4) role membership, (5) capability.
func Evaluate(sess *domainauth.Session, resolved bool, c Constraint) Decision {
	if !resolved {
		return Decision{State: StateChecking, FailedCheck: CheckLoading}
	}

	if sess == nil {
		return Decision{State: StateUnauthenticated, FailedCheck: CheckAuthentication}
	}

	role := sess.Role()

	if c.RequiredRole != "" && role != c.RequiredRole {
		return Decision{
			State:        StateDenied,
			FailedCheck:  CheckRole,
			ActualRole:   role,
			RequiredRole: c.RequiredRole,
		}
	}

	if len(c.RequiredRoles) > 0 && !containsRole(c.RequiredRoles, role) {
		return Decision{
			State:         StateDenied,
			FailedCheck:   CheckRoleMembership,
			ActualRole:    role,
			RequiredRoles: c.RequiredRoles,
		}
	}

	if c.RequiredCapability != "" && !HasCapability(role, c.RequiredCapability) {
		return Decision{
			State:              StateDenied,
			FailedCheck:        CheckCapability,
			ActualRole:         role,
			RequiredCapability: c.RequiredCapability,
		}
	}

	return Decision{State: StateAllowed, ActualRole: role}
}

func containsRole(roles []domainauth.Role, role domainauth.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
