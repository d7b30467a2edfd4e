package httpx

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/academica/progress-ui-api/internal/domain/access"
	"github.com/academica/progress-ui-api/internal/observability/statsd"
)

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Auth       AuthServiceInterface
	Dashboards DashboardServiceInterface
	Renderer   *TemplateRenderer
	Sink       statsd.Sink

	CookieDomain string
	DemoAccounts []DemoAccount
	GoogleReady  bool

	// StaticFS serves /static/ when set.
	StaticFS fs.FS

	Logger *slog.Logger
}

// NewRouter creates the HTTP handler tree. Every protected route is
// individually wrapped by the guard with its own constraint; the session
// middleware restores the session once per request for all of them.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{
		Svc:          services.Auth,
		Renderer:     services.Renderer,
		Sink:         services.Sink,
		CookieDomain: services.CookieDomain,
		DemoAccounts: services.DemoAccounts,
		GoogleReady:  services.GoogleReady,
		Logger:       logger,
	}
	dashHandlers := &DashboardHandlers{
		Svc:      services.Dashboards,
		Renderer: services.Renderer,
		Logger:   logger,
	}
	guard := NewGuard(services.Renderer, services.Sink, logger)

	// Landing and auth.
	mux.HandleFunc("GET /{$}", Landing(services.Renderer))
	mux.HandleFunc("GET "+LoginPath, authHandlers.LoginPage)
	mux.HandleFunc("POST "+LoginPath, authHandlers.CredentialLogin)
	mux.HandleFunc("POST /auth/mock", authHandlers.MockRoleLogin)
	mux.HandleFunc("GET /auth/google", authHandlers.GoogleBegin)
	mux.HandleFunc("GET "+GoogleCallbackPath, authHandlers.GoogleCallback)
	mux.HandleFunc("POST /auth/logout", authHandlers.Logout)
	mux.HandleFunc("GET /auth/status", authHandlers.Status)

	// Role dashboards: exact role, redirect on deny. The legacy paths
	// stay mounted behind the same guards.
	registerGuarded(mux, guard, guardedRoute{
		constraint: access.RequireRole("student"),
		mode:       DenyRedirect,
		handler:    dashHandlers.Student,
		paths:      []string{"/dashboard/student", "/students"},
	})
	registerGuarded(mux, guard, guardedRoute{
		constraint: access.RequireRole("teacher"),
		mode:       DenyRedirect,
		handler:    dashHandlers.Teacher,
		paths:      []string{"/dashboard/teacher", "/teacher"},
	})
	registerGuarded(mux, guard, guardedRoute{
		constraint: access.RequireRole("coordinator"),
		mode:       DenyRedirect,
		handler:    dashHandlers.Coordinator,
		paths:      []string{"/dashboard/coordinator", "/coordinate"},
	})
	registerGuarded(mux, guard, guardedRoute{
		constraint: access.RequireRole("admin"),
		mode:       DenyRedirect,
		handler:    dashHandlers.Admin,
		paths:      []string{"/dashboard/admin"},
	})

	// Shared views: membership and capability constraints with the
	// inline denied panel.
	registerGuarded(mux, guard, guardedRoute{
		constraint: access.RequireAnyRole("coordinator", "admin"),
		mode:       DenyPanel,
		handler:    dashHandlers.Reports,
		paths:      []string{"/reports"},
	})
	registerGuarded(mux, guard, guardedRoute{
		constraint: access.RequireCapability("VIEW_GLOBAL_STATS"),
		mode:       DenyPanel,
		handler:    dashHandlers.Admin,
		paths:      []string{"/overview"},
	})

	mux.HandleFunc("GET /healthz", healthHandler)
	mux.HandleFunc("HEAD /healthz", healthHandler)

	if services.StaticFS != nil {
		mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(services.StaticFS)))
	}

	var handler http.Handler = mux
	handler = RestoreSession(services.Auth)(handler)
	handler = BrowserDetection()(handler)
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler
}

type guardedRoute struct {
	constraint access.Constraint
	mode       DenyMode
	handler    http.HandlerFunc
	paths      []string
}

func registerGuarded(mux *http.ServeMux, guard *Guard, route guardedRoute) {
	wrapped := guard.Protect(route.constraint, route.mode)(route.handler)
	for _, path := range route.paths {
		mux.Handle("GET "+path, wrapped)
	}
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
