package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/academica/progress-ui-api/config"
	"github.com/academica/progress-ui-api/internal/adapters/authroles"
	"github.com/academica/progress-ui-api/internal/adapters/googleauth"
	"github.com/academica/progress-ui-api/internal/adapters/memory"
	"github.com/academica/progress-ui-api/internal/adapters/mockauth"
	postgresadapter "github.com/academica/progress-ui-api/internal/adapters/postgres"
	redisadapter "github.com/academica/progress-ui-api/internal/adapters/redis"
	httpx "github.com/academica/progress-ui-api/internal/http"
	"github.com/academica/progress-ui-api/internal/ports"
	"github.com/academica/progress-ui-api/internal/service"
	"github.com/academica/progress-ui-api/internal/session"
	"github.com/redis/go-redis/v9"
)

// SessionBackendConfig contains dependencies for building the session
// persistence adapter.
type SessionBackendConfig struct {
	Session     config.SessionConfig
	RedisClient redis.UniversalClient
	DB          *sql.DB
	Logger      *slog.Logger
}

// BuildSessionBackend selects the persistence adapter for the configured
// session backend.
//
//nolint:ireturn // the whole point is picking an implementation at runtime.
func BuildSessionBackend(cfg SessionBackendConfig) (ports.SessionStore, error) {
	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		if cfg.RedisClient == nil {
			return nil, fmt.Errorf("session backend %q requires a redis connection", cfg.Session.Backend)
		}
		return redisadapter.NewSessionStore(cfg.RedisClient), nil
	case config.SessionBackendPostgres:
		if cfg.DB == nil {
			return nil, fmt.Errorf("session backend %q requires a database connection", cfg.Session.Backend)
		}
		return postgresadapter.NewSessionStore(cfg.DB), nil
	default:
		if cfg.Logger != nil {
			cfg.Logger.Warn("using in-memory session store; sessions will not survive a restart")
		}
		return memory.NewSessionStore(), nil
	}
}

// AuthBuildConfig contains configuration for the auth service.
type AuthBuildConfig struct {
	Auth     config.AuthConfig
	Session  config.SessionConfig
	HTTP     config.HTTPConfig
	Sessions *session.Store
	Logger   *slog.Logger
}

// AuthBuildResult carries the auth service plus login-page hints.
type AuthBuildResult struct {
	Service      *service.AuthService
	GoogleReady  bool
	DemoAccounts []httpx.DemoAccount
}

// BuildAuthService creates the auth service for the configured auth
// mode. The demo directory is always wired so role logins work in both
// modes; Google sign-in is attached only when AUTH_MODE=google and the
// client credentials are present.
func BuildAuthService(ctx context.Context, cfg AuthBuildConfig) (AuthBuildResult, error) {
	directory := mockauth.NewDirectory(mockauth.WithLoginDelay(cfg.Auth.Mock.LoginDelay))

	opts := service.AuthServiceOptions{
		Directory:  directory,
		Sessions:   cfg.Sessions,
		SessionTTL: cfg.Session.TTL,
	}

	googleReady := false
	if cfg.Auth.Mode == config.AuthModeGoogle {
		if !cfg.Auth.Google.IsConfigured() {
			if cfg.Logger != nil {
				cfg.Logger.Warn("AUTH_MODE=google but client credentials missing; google sign-in disabled")
			}
		} else {
			whitelist, err := authroles.ParseWhitelist(cfg.Auth.RolesWhitelist)
			if err != nil {
				return AuthBuildResult{}, fmt.Errorf("parse roles whitelist: %w", err)
			}
			if whitelist.Len() == 0 && cfg.Logger != nil {
				cfg.Logger.Warn("google sign-in enabled with an empty roles whitelist; all google logins will be rejected")
			}

			redirectURL := cfg.Auth.Google.RedirectURL
			if redirectURL == "" {
				redirectURL = strings.TrimRight(cfg.HTTP.BaseURL, "/") + httpx.GoogleCallbackPath
			}
			provider, err := googleauth.NewProvider(ctx, googleauth.ProviderConfig{
				ClientID:     cfg.Auth.Google.ClientID,
				ClientSecret: cfg.Auth.Google.ClientSecret,
				RedirectURL:  redirectURL,
			})
			if err != nil {
				return AuthBuildResult{}, fmt.Errorf("build google provider: %w", err)
			}

			opts.Provider = provider
			opts.Roles = whitelist
			googleReady = true
		}
	}

	return AuthBuildResult{
		Service:      service.NewAuthService(opts),
		GoogleReady:  googleReady,
		DemoAccounts: demoAccounts(directory),
	}, nil
}

func demoAccounts(directory *mockauth.Directory) []httpx.DemoAccount {
	accounts := directory.Accounts()
	out := make([]httpx.DemoAccount, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, httpx.DemoAccount{
			Email: a.Email,
			Role:  string(a.Role),
			Name:  a.Name,
		})
	}
	return out
}
