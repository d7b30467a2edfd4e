package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainauth "github.com/academica/progress-ui-api/internal/domain/auth"
	apperrors "github.com/academica/progress-ui-api/internal/errors"
	"github.com/academica/progress-ui-api/internal/ports"
	"github.com/academica/progress-ui-api/internal/session"
	"github.com/google/uuid"
)

// CredentialChecker validates an email and password pair. The mock
// directory implements it; a future backend-backed login would too.
type CredentialChecker interface {
	Authenticate(ctx context.Context, email, password string) (domainauth.Identity, error)
	LookupRole(role string) (domainauth.Identity, error)
}

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	// Provider is the Google OIDC provider. Nil when google mode is not
	// configured; Google logins then fail with a not-implemented error.
	Provider ports.AuthProvider

	// Directory validates mock-mode credentials and role logins.
	Directory CredentialChecker

	// Roles resolves roles for Google identities.
	Roles ports.RoleDirectory

	Sessions   *session.Store
	SessionTTL time.Duration

	Now func() time.Time
}

// AuthService orchestrates login flows in both auth modes and owns
// session lifecycle.
type AuthService struct {
	provider   ports.AuthProvider
	directory  CredentialChecker
	roles      ports.RoleDirectory
	sessions   *session.Store
	sessionTTL time.Duration
	now        func() time.Time
}

const defaultSessionTTL = 8 * time.Hour

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		provider:   opts.Provider,
		directory:  opts.Directory,
		roles:      opts.Roles,
		sessions:   opts.Sessions,
		sessionTTL: ttl,
		now:        now,
	}
}

// MockLogin signs in as the demo account for a role. Accepts canonical
// and legacy role names.
func (s *AuthService) MockLogin(ctx context.Context, role string) (*domainauth.Session, error) {
	identity, err := s.directory.LookupRole(role)
	if err != nil {
		return nil, err
	}
	return s.establishSession(ctx, identity, domainauth.ModeMock)
}

// CredentialLogin signs in with a directory email and password. On
// failure the session state is left untouched.
func (s *AuthService) CredentialLogin(ctx context.Context, email, password string) (*domainauth.Session, error) {
	if email == "" || password == "" {
		return nil, apperrors.InvalidCredentials()
	}

	identity, err := s.directory.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.establishSession(ctx, identity, domainauth.ModeMock)
}

// BeginGoogleLoginResult contains the result of beginning a Google flow.
type BeginGoogleLoginResult struct {
	AuthURL string
	State   string
	Nonce   string
}

// BeginGoogleLogin initiates the Google OIDC flow. Without a configured
// provider the operation reports not implemented.
func (s *AuthService) BeginGoogleLogin(ctx context.Context, redirectURL string) (*BeginGoogleLoginResult, error) {
	if s.provider == nil {
		return nil, apperrors.NotImplemented("google sign-in is not configured")
	}
	if redirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}

	authURL, state, nonce, err := s.provider.Begin(ctx, ports.BeginInput{RedirectURL: redirectURL})
	if err != nil {
		return nil, fmt.Errorf("begin auth flow: %w", err)
	}
	return &BeginGoogleLoginResult{AuthURL: authURL, State: state, Nonce: nonce}, nil
}

// CompleteGoogleLoginInput groups parameters for completing a Google flow.
type CompleteGoogleLoginInput struct {
	Code  string
	State string
	Nonce string
}

// CompleteGoogleLogin exchanges the authorization code, resolves the
// role through the whitelist, and persists a session. Emails outside the
// whitelist are rejected.
func (s *AuthService) CompleteGoogleLogin(ctx context.Context, input CompleteGoogleLoginInput) (*domainauth.Session, error) {
	if s.provider == nil {
		return nil, apperrors.NotImplemented("google sign-in is not configured")
	}
	if input.Code == "" {
		return nil, errors.New("authorization code is required")
	}
	if input.State == "" {
		return nil, errors.New("state parameter is required")
	}
	if input.Nonce == "" {
		return nil, errors.New("nonce parameter is required")
	}

	identity, err := s.provider.Exchange(ctx, ports.ExchangeInput{
		Code:  input.Code,
		State: input.State,
		Nonce: input.Nonce,
	})
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	role, ok := s.roles.RoleFor(identity.Email)
	if !ok {
		// Not whitelisted: same response as a bad password so probing
		// emails learns nothing.
		return nil, apperrors.InvalidCredentials()
	}
	identity.Role = role

	return s.establishSession(ctx, identity, domainauth.ModeGoogle)
}

// GetSession restores a session by ID through the observing store.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, bool) {
	return s.sessions.Restore(ctx, sessionID)
}

// Logout removes a session. Clearing an unknown or empty ID succeeds.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil // Nothing to logout
	}
	if err := s.sessions.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *AuthService) establishSession(ctx context.Context, identity domainauth.Identity, mode domainauth.Mode) (*domainauth.Session, error) {
	sess := domainauth.Session{
		ID:        uuid.NewString(),
		Identity:  identity,
		Mode:      mode,
		ExpiresAt: s.now().Add(s.sessionTTL),
	}
	if err := s.sessions.Set(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &sess, nil
}
