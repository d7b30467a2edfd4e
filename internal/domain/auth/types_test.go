package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseRole_CanonicalNames(t *testing.T) {
	for _, role := range AllRoles() {
		got, ok := ParseRole(string(role))
		assert.True(t, ok)
		assert.Equal(t, role, got)
	}
}

func TestParseRole_LegacyAliases(t *testing.T) {
	tests := []struct {
		raw  string
		want Role
	}{
		{"estudiante", RoleStudent},
		{"docente", RoleTeacher},
		{"coordinador", RoleCoordinator},
		{"administrador", RoleAdmin},
		{"  Coordinador  ", RoleCoordinator},
		{"ADMIN", RoleAdmin},
	}

	for _, tt := range tests {
		got, ok := ParseRole(tt.raw)
		assert.True(t, ok, "raw=%q", tt.raw)
		assert.Equal(t, tt.want, got, "raw=%q", tt.raw)
	}
}

func TestParseRole_Unknown(t *testing.T) {
	for _, raw := range []string{"", "root", "profesor", "superadmin"} {
		_, ok := ParseRole(raw)
		assert.False(t, ok, "raw=%q", raw)
	}
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleCoordinator.Valid())
	assert.False(t, Role("coordinador").Valid(), "legacy spelling must go through ParseRole")
	assert.False(t, Role("").Valid())
}

func TestParseMode(t *testing.T) {
	mode, ok := ParseMode("mock")
	assert.True(t, ok)
	assert.Equal(t, ModeMock, mode)

	mode, ok = ParseMode("GOOGLE")
	assert.True(t, ok)
	assert.Equal(t, ModeGoogle, mode)

	_, ok = ParseMode("saml")
	assert.False(t, ok)
}

func TestSession_Expired(t *testing.T) {
	now := time.Now()

	sess := Session{ExpiresAt: now.Add(time.Hour)}
	assert.False(t, sess.Expired(now))

	sess.ExpiresAt = now.Add(-time.Minute)
	assert.True(t, sess.Expired(now))

	// Zero expiry means the session never expires (mock mode default).
	sess.ExpiresAt = time.Time{}
	assert.False(t, sess.Expired(now))
}
