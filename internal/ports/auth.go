package ports

// Package ports defines interfaces (hexagonal ports) for auth-related
// behavior. Implementations live in internal/adapters; orchestration in
// internal/service.

import (
	"context"

	domainauth "github.com/academica/progress-ui-api/internal/domain/auth"
)

// BeginInput carries inputs for initiating an external auth flow.
type BeginInput struct {
	RedirectURL string
}

// ExchangeInput groups parameters for the code/token exchange.
type ExchangeInput struct {
	Code  string
	State string
	Nonce string
}

// AuthProvider initiates and completes an authentication flow against an
// external identity provider (Google OIDC in this deployment).
type AuthProvider interface {
	// Begin starts the login flow and returns the provider auth URL, an
	// opaque state, and a nonce.
	Begin(ctx context.Context, in BeginInput) (authURL, state, nonce string, err error)

	// Exchange completes the login flow, verifying state and nonce, and
	// returns the authenticated identity.
	Exchange(ctx context.Context, in ExchangeInput) (domainauth.Identity, error)
}

// SessionStore persists and retrieves user sessions by opaque ID.
//
// Get returns ErrSessionNotFound when no record exists and
// ErrSessionCorrupt when a record exists but cannot be decoded; the
// session layer converts both into the logged-out state.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// RoleDirectory resolves the application role for an externally
// authenticated email (the per-role email whitelist).
type RoleDirectory interface {
	RoleFor(email string) (domainauth.Role, bool)
}

// Sentinel errors shared by all SessionStore implementations.

type notFoundError struct{}

func (notFoundError) Error() string { return "session not found" }

// ErrSessionNotFound is returned when no session exists for an ID.
var ErrSessionNotFound error = notFoundError{}

type corruptError struct{}

func (corruptError) Error() string { return "session data corrupt" }

// ErrSessionCorrupt is returned when stored session data cannot be decoded.
var ErrSessionCorrupt error = corruptError{}
