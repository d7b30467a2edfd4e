package auth

// Package auth contains domain-level types for identities and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"strings"
	"time"
)

// Role represents one of the four principal categories of the platform.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	RoleStudent     Role = "student"
	RoleTeacher     Role = "teacher"
	RoleCoordinator Role = "coordinator"
	RoleAdmin       Role = "admin"
)

// roleAliases maps legacy Spanish role names (still present in stored
// sessions and older route declarations) onto the canonical set.
var roleAliases = map[string]Role{
	"student":       RoleStudent,
	"estudiante":    RoleStudent,
	"teacher":       RoleTeacher,
	"docente":       RoleTeacher,
	"coordinator":   RoleCoordinator,
	"coordinador":   RoleCoordinator,
	"admin":         RoleAdmin,
	"administrador": RoleAdmin,
}

// ParseRole normalizes a raw role string (canonical or legacy Spanish)
// to its canonical Role. The second return value reports whether the
// input named a known role. Parsing is applied at every boundary where
// role strings enter the system: login, storage restore, and route
// constraint declaration.
func ParseRole(raw string) (Role, bool) {
	role, ok := roleAliases[strings.ToLower(strings.TrimSpace(raw))]
	return role, ok
}

// Valid reports whether the role is one of the four canonical values.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleCoordinator, RoleAdmin:
		return true
	default:
		return false
	}
}

// AllRoles lists the canonical roles in ascending capability order.
func AllRoles() []Role {
	return []Role{RoleStudent, RoleTeacher, RoleCoordinator, RoleAdmin}
}

// Mode identifies which authentication path produced a session.
type Mode string

const (
	ModeMock   Mode = "mock"
	ModeGoogle Mode = "google"
)

// ParseMode normalizes a stored auth mode value. Unknown values report false.
func ParseMode(raw string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "mock":
		return ModeMock, true
	case "google":
		return ModeGoogle, true
	default:
		return "", false
	}
}

// Identity represents the authenticated principal.
// No identity exists without a role.
type Identity struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// Session is the server-side record persisted for an authenticated user.
// ID is an opaque session identifier. The identity is always replaced as a
// whole; sessions are never partially updated.
type Session struct {
	ID        string    `json:"id"`
	Identity  Identity  `json:"identity"`
	Mode      Mode      `json:"mode"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Role is a convenience accessor for the identity's role.
func (s Session) Role() Role { return s.Identity.Role }

// Expired reports whether the session has passed its expiry at the given time.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
