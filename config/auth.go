package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModeMock uses the built-in demo account directory.
	AuthModeMock AuthMode = "mock"
	// AuthModeGoogle uses Google OIDC for authentication.
	AuthModeGoogle AuthMode = "google"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "mock", "google":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: mock, google)", v)
	}
}

// GoogleConfig contains Google OIDC configuration. Leaving ClientID and
// ClientSecret empty keeps Google sign-in unconfigured; the login flow
// then reports not implemented.
type GoogleConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURL  string `env:"REDIRECT_URL"`
}

// IsConfigured reports whether enough is set to build a Google provider.
func (g GoogleConfig) IsConfigured() bool {
	return g.ClientID != "" && g.ClientSecret != ""
}

// MockAuthConfig controls the demo account directory used when
// AUTH_MODE=mock.
type MockAuthConfig struct {
	// LoginDelay artificially slows logins to mimic a real identity
	// provider during demos.
	LoginDelay time.Duration `env:"LOGIN_DELAY" envDefault:"0"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which authentication provider to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"mock"`

	// Mock configuration (used when Mode=mock).
	Mock MockAuthConfig `envPrefix:"MOCK_AUTH_"`

	// Google configuration (used when Mode=google).
	Google GoogleConfig `envPrefix:"GOOGLE_"`

	// RolesWhitelist maps Google emails to roles, for example
	// "admin:ana@example.com;teacher:maria@example.com,luis@example.com".
	RolesWhitelist string `env:"ROLES_WHITELIST"`
}
