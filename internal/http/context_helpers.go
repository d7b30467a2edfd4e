package httpx

import (
	"context"

	domainauth "github.com/academica/progress-ui-api/internal/domain/auth"
)

// sessionStateKey is an unexported context key type to avoid collisions
// across packages.
type sessionStateKey struct{}

// SessionState is what the session middleware learned about the request:
// the restored session (nil when logged out) and whether the store could
// be reached at all. Resolved=false is the in-flight "checking" state.
type SessionState struct {
	Session  *domainauth.Session
	Resolved bool
}

// SetSessionState returns a child context carrying the session state.
func SetSessionState(ctx context.Context, state SessionState) context.Context {
	return context.WithValue(ctx, sessionStateKey{}, state)
}

// GetSessionState returns the session state for the request. Requests
// that never went through the session middleware count as resolved and
// logged out.
func GetSessionState(ctx context.Context) SessionState {
	if state, ok := ctx.Value(sessionStateKey{}).(SessionState); ok {
		return state
	}
	return SessionState{Resolved: true}
}

// GetSessionFromContext returns the authenticated session or nil.
func GetSessionFromContext(ctx context.Context) *domainauth.Session {
	return GetSessionState(ctx).Session
}
