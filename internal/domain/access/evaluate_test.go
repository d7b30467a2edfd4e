package access

import (
	"testing"

	domainauth "github.com/academica/progress-ui-api/internal/domain/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionWithRole(role domainauth.Role) *domainauth.Session {
	return &domainauth.Session{
		ID: "sess-1",
		Identity: domainauth.Identity{
			Email: string(role) + "@example.com",
			Name:  "Test User",
			Role:  role,
		},
		Mode: domainauth.ModeMock,
	}
}

func TestEvaluate_CheckingWhenUnresolved(t *testing.T) {
	d := Evaluate(nil, false, RequireRole("admin"))
	assert.Equal(t, StateChecking, d.State)
	assert.Equal(t, CheckLoading, d.FailedCheck)
}

func TestEvaluate_UnauthenticatedWhenNoSession(t *testing.T) {
	d := Evaluate(nil, true, Constraint{})
	assert.Equal(t, StateUnauthenticated, d.State)
	assert.Equal(t, CheckAuthentication, d.FailedCheck)
}

func TestEvaluate_AllowedWithNoConstraints(t *testing.T) {
	d := Evaluate(sessionWithRole(domainauth.RoleStudent), true, Constraint{})
	assert.Equal(t, StateAllowed, d.State)
	assert.Equal(t, domainauth.RoleStudent, d.ActualRole)
}

func TestEvaluate_ExactRoleMismatch(t *testing.T) {
	d := Evaluate(sessionWithRole(domainauth.RoleTeacher), true, RequireRole("admin"))
	require.Equal(t, StateDenied, d.State)
	assert.Equal(t, CheckRole, d.FailedCheck)
	assert.Equal(t, domainauth.RoleAdmin, d.RequiredRole)
	assert.Equal(t, domainauth.RoleTeacher, d.ActualRole)
}

func TestEvaluate_LegacyAliasConstraint(t *testing.T) {
	// A constraint declared with the legacy spelling "coordinador" must
	// resolve to canonical coordinator and deny a teacher session.
	c := RequireRole("coordinador")
	assert.Equal(t, domainauth.RoleCoordinator, c.RequiredRole)

	d := Evaluate(sessionWithRole(domainauth.RoleTeacher), true, c)
	require.Equal(t, StateDenied, d.State)
	assert.Equal(t, CheckRole, d.FailedCheck)

	d = Evaluate(sessionWithRole(domainauth.RoleCoordinator), true, c)
	assert.Equal(t, StateAllowed, d.State)
}

func TestEvaluate_RoleFailsBeforeCapability(t *testing.T) {
	// A coordinator hitting an admin+VIEW_GLOBAL_STATS view is denied by
	// the role check; the capability check never runs, and the reported
	// reason must match that order.
	c := RequireRole("admin")
	c.RequiredCapability = CapViewGlobalStats

	d := Evaluate(sessionWithRole(domainauth.RoleCoordinator), true, c)
	require.Equal(t, StateDenied, d.State)
	assert.Equal(t, CheckRole, d.FailedCheck)
	assert.Empty(t, d.RequiredCapability)
}

func TestEvaluate_RoleAndMembershipBothApply(t *testing.T) {
	// When both an exact role and a membership set are supplied, both
	// must pass; membership alone is not enough.
	c := Constraint{
		RequiredRole:  domainauth.RoleAdmin,
		RequiredRoles: []domainauth.Role{domainauth.RoleCoordinator, domainauth.RoleAdmin},
	}

	d := Evaluate(sessionWithRole(domainauth.RoleCoordinator), true, c)
	require.Equal(t, StateDenied, d.State)
	assert.Equal(t, CheckRole, d.FailedCheck)

	d = Evaluate(sessionWithRole(domainauth.RoleAdmin), true, c)
	assert.Equal(t, StateAllowed, d.State)
}

func TestEvaluate_MembershipCheck(t *testing.T) {
	c := RequireAnyRole("coordinator", "admin")

	d := Evaluate(sessionWithRole(domainauth.RoleTeacher), true, c)
	require.Equal(t, StateDenied, d.State)
	assert.Equal(t, CheckRoleMembership, d.FailedCheck)
	assert.Equal(t, []domainauth.Role{domainauth.RoleCoordinator, domainauth.RoleAdmin}, d.RequiredRoles)

	d = Evaluate(sessionWithRole(domainauth.RoleAdmin), true, c)
	assert.Equal(t, StateAllowed, d.State)
}

func TestEvaluate_CapabilityCheck(t *testing.T) {
	c := RequireCapability("VIEW_GLOBAL_REPORTS")

	d := Evaluate(sessionWithRole(domainauth.RoleTeacher), true, c)
	require.Equal(t, StateDenied, d.State)
	assert.Equal(t, CheckCapability, d.FailedCheck)
	assert.Equal(t, CapViewGlobalReports, d.RequiredCapability)

	d = Evaluate(sessionWithRole(domainauth.RoleCoordinator), true, c)
	assert.Equal(t, StateAllowed, d.State)
}

func TestEvaluate_UnknownConstraintNamesFailClosed(t *testing.T) {
	d := Evaluate(sessionWithRole(domainauth.RoleAdmin), true, RequireRole("superuser"))
	assert.Equal(t, StateDenied, d.State)

	d = Evaluate(sessionWithRole(domainauth.RoleAdmin), true, RequireCapability("NOT_A_TOKEN"))
	assert.Equal(t, StateDenied, d.State)
}

func TestRolePath_Table(t *testing.T) {
	assert.Equal(t, "/dashboard/student", RolePath(domainauth.RoleStudent))
	assert.Equal(t, "/dashboard/teacher", RolePath(domainauth.RoleTeacher))
	assert.Equal(t, "/dashboard/coordinator", RolePath(domainauth.RoleCoordinator))
	assert.Equal(t, "/dashboard/admin", RolePath(domainauth.RoleAdmin))
	assert.Equal(t, DefaultFallbackPath, RolePath(""))
}

func TestLegacyRolePath_Table(t *testing.T) {
	assert.Equal(t, "/students", LegacyRolePath(domainauth.RoleStudent))
	assert.Equal(t, "/teacher", LegacyRolePath(domainauth.RoleTeacher))
	assert.Equal(t, "/coordinate", LegacyRolePath(domainauth.RoleCoordinator))
	assert.Equal(t, "/overview", LegacyRolePath(domainauth.RoleAdmin))
}
