package access

import (
	"testing"

	domainauth "github.com/academica/progress-ui-api/internal/domain/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapabilitiesFor_NonEmptyForAllRoles(t *testing.T) {
	for _, role := range domainauth.AllRoles() {
		assert.NotEmpty(t, CapabilitiesFor(role), "role=%s", role)
	}
}

func TestCapabilitiesFor_StrictlyCumulative(t *testing.T) {
	roles := domainauth.AllRoles()

	for i := 1; i < len(roles); i++ {
		lower := CapabilitiesFor(roles[i-1])
		higher := CapabilitiesFor(roles[i])

		// Every capability of the lower role is held by the higher role.
		for cap := range lower {
			assert.True(t, higher[cap], "%s should inherit %s from %s", roles[i], cap, roles[i-1])
		}

		// Each step up adds capabilities, never removes.
		assert.Greater(t, len(higher), len(lower), "%s should hold more than %s", roles[i], roles[i-1])
	}
}

func TestCapabilitiesFor_FailClosed(t *testing.T) {
	assert.Empty(t, CapabilitiesFor(""))
	assert.Empty(t, CapabilitiesFor(domainauth.Role("guest")))
	assert.Empty(t, CapabilitiesFor(domainauth.Role("estudiante")), "legacy spellings must normalize before lookup")
}

func TestCapabilitiesFor_ExactSets(t *testing.T) {
	student := CapabilitiesFor(domainauth.RoleStudent)
	require.Len(t, student, 1)
	assert.True(t, student[CapViewOwnProgress])

	teacher := CapabilitiesFor(domainauth.RoleTeacher)
	require.Len(t, teacher, 4)
	assert.True(t, teacher[CapSearchOwnStudents])
	assert.False(t, teacher[CapViewGlobalReports])

	coordinator := CapabilitiesFor(domainauth.RoleCoordinator)
	require.Len(t, coordinator, 6)
	assert.True(t, coordinator[CapSearchCohortStudents])
	assert.False(t, coordinator[CapViewGlobalStats])

	admin := CapabilitiesFor(domainauth.RoleAdmin)
	require.Len(t, admin, 9)
	assert.True(t, admin[CapManageUsers])
	assert.True(t, admin[CapSearchAllStudents])
}

func TestHasCapability_EmptyRole(t *testing.T) {
	assert.False(t, HasCapability("", CapViewOwnProgress))
}

func TestParseCapability_LegacyAlias(t *testing.T) {
	cap, ok := ParseCapability("STUDENTS_SEARCH")
	require.True(t, ok)
	assert.Equal(t, CapSearchOwnStudents, cap)

	cap, ok = ParseCapability("search_own_students")
	require.True(t, ok)
	assert.Equal(t, CapSearchOwnStudents, cap)

	_, ok = ParseCapability("DELETE_EVERYTHING")
	assert.False(t, ok)
}

func TestDerivedBooleans_FollowTable(t *testing.T) {
	// Search spans three scopes, so everyone from teacher up can search.
	assert.False(t, CanSearchStudents(domainauth.RoleStudent))
	assert.True(t, CanSearchStudents(domainauth.RoleTeacher))
	assert.True(t, CanSearchStudents(domainauth.RoleCoordinator))
	assert.True(t, CanSearchStudents(domainauth.RoleAdmin))

	assert.False(t, CanViewAllReports(domainauth.RoleTeacher))
	assert.True(t, CanViewAllReports(domainauth.RoleCoordinator))

	assert.False(t, CanManageUsers(domainauth.RoleCoordinator))
	assert.True(t, CanManageUsers(domainauth.RoleAdmin))

	assert.False(t, CanViewGlobalStats(domainauth.RoleCoordinator))
	assert.True(t, CanViewGlobalStats(domainauth.RoleAdmin))
}

func TestCapabilityList_SortedAndStable(t *testing.T) {
	list := CapabilityList(domainauth.RoleAdmin)
	require.Len(t, list, 9)
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1], list[i])
	}
}
