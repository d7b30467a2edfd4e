package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	progressui "github.com/academica/progress-ui-api"
	"github.com/academica/progress-ui-api/config"
	"github.com/academica/progress-ui-api/internal/backend"
	httpx "github.com/academica/progress-ui-api/internal/http"
	"github.com/academica/progress-ui-api/internal/observability/statsd"
	"github.com/academica/progress-ui-api/internal/service"
	"github.com/academica/progress-ui-api/internal/session"
	"github.com/redis/go-redis/v9"
)

const shutdownTimeout = 10 * time.Second

// App holds the wired application and its owned connections.
type App struct {
	Config   config.AppConfig
	Logger   *slog.Logger
	Handler  http.Handler
	Sessions *session.Store
	Auth     *service.AuthService

	db     *sql.DB
	redis  redis.UniversalClient
	statsd *statsd.Client
}

// BuildApp wires the whole service from configuration: storage
// connections, session store, auth, backend client, dashboards, and the
// HTTP router.
func BuildApp(ctx context.Context, cfg config.AppConfig, logger *slog.Logger) (*App, error) {
	app := &App{Config: cfg, Logger: logger}

	dbCfg := DatabaseConfig{
		DBConfig:    cfg.Postgres,
		RedisConfig: cfg.Redis,
		Logger:      logger,
	}

	if cfg.Session.Backend == config.SessionBackendRedis {
		client, err := ConnectRedis(dbCfg)
		if err != nil {
			return nil, err
		}
		app.redis = client
	}
	if cfg.Session.Backend == config.SessionBackendPostgres {
		db, err := ConnectDB(ctx, dbCfg)
		if err != nil {
			app.close()
			return nil, err
		}
		app.db = db
	}

	backendStore, err := BuildSessionBackend(SessionBackendConfig{
		Session:     cfg.Session,
		RedisClient: app.redis,
		DB:          app.db,
		Logger:      logger,
	})
	if err != nil {
		app.close()
		return nil, err
	}
	app.Sessions = session.NewStore(backendStore, logger)

	authResult, err := BuildAuthService(ctx, AuthBuildConfig{
		Auth:     cfg.Auth,
		Session:  cfg.Session,
		HTTP:     cfg.HTTP,
		Sessions: app.Sessions,
		Logger:   logger,
	})
	if err != nil {
		app.close()
		return nil, err
	}
	app.Auth = authResult.Service

	sink, err := buildMetricsSink(cfg.Observability, logger)
	if err != nil {
		app.close()
		return nil, err
	}
	app.statsd = sink

	// Session transitions feed the metrics sink through the observer
	// contract: durable write first, then synchronous notification.
	app.Sessions.Subscribe(func(ev session.Event) {
		sink.Count("session."+string(ev.Kind), 1, nil)
	})

	dashboards := buildDashboards(cfg, app.redis, logger)

	handler, err := buildRouter(routerConfig{
		cfg:        cfg,
		auth:       app.Auth,
		dashboards: dashboards,
		sink:       sink,
		demo:       authResult.DemoAccounts,
		google:     authResult.GoogleReady,
		logger:     logger,
	})
	if err != nil {
		app.close()
		return nil, err
	}
	app.Handler = handler

	return app, nil
}

func buildMetricsSink(cfg config.ObservabilityConfig, logger *slog.Logger) (*statsd.Client, error) {
	client, err := statsd.NewClient(statsd.Config{
		Enabled: cfg.Metrics.IsEnabled(),
		Address: cfg.Metrics.StatsdAddress,
		Prefix:  "progressui",
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build statsd client: %w", err)
	}
	return client, nil
}

func buildDashboards(cfg config.AppConfig, redisClient redis.UniversalClient, logger *slog.Logger) *service.DashboardService {
	var cache *backend.ReportCache
	if redisClient != nil {
		cache = backend.NewReportCache(redisClient, cfg.Redis.ReportCacheTTL, logger)
	}

	client := backend.NewClient(backend.ClientOptions{
		BaseURL:    cfg.Backend.URL,
		HTTPClient: &http.Client{Timeout: cfg.Backend.Timeout},
		DemoMode:   cfg.Backend.DemoMode,
		Cache:      cache,
		Logger:     logger,
	})
	return service.NewDashboardService(client, nil)
}

type routerConfig struct {
	cfg        config.AppConfig
	auth       *service.AuthService
	dashboards *service.DashboardService
	sink       statsd.Sink
	demo       []httpx.DemoAccount
	google     bool
	logger     *slog.Logger
}

func buildRouter(rc routerConfig) (http.Handler, error) {
	templates, static, err := assetFilesystems(rc.cfg.IsDev)
	if err != nil {
		return nil, err
	}

	renderer, err := httpx.NewTemplateRenderer(httpx.TemplateRendererConfig{
		TemplateFS: templates,
		Logger:     rc.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build renderer: %w", err)
	}

	return httpx.NewRouter(httpx.RouterServices{
		Auth:         rc.auth,
		Dashboards:   rc.dashboards,
		Renderer:     renderer,
		Sink:         rc.sink,
		CookieDomain: rc.cfg.HTTP.CookieDomain,
		DemoAccounts: rc.demo,
		GoogleReady:  rc.google,
		StaticFS:     static,
		Logger:       rc.logger,
	}), nil
}

// assetFilesystems selects template and static filesystems. Dev mode
// reads from disk so templates hot reload; production serves the
// embedded copies.
func assetFilesystems(dev bool) (templates fs.FS, static fs.FS, err error) {
	if dev {
		return os.DirFS("frontend/templates"), os.DirFS("frontend/static"), nil
	}
	templates, err = fs.Sub(progressui.TemplateFS, "frontend/templates")
	if err != nil {
		return nil, nil, fmt.Errorf("template fs: %w", err)
	}
	static, err = fs.Sub(progressui.StaticFS, "frontend/static")
	if err != nil {
		return nil, nil, fmt.Errorf("static fs: %w", err)
	}
	return templates, static, nil
}

// Run starts the HTTP server and blocks until a shutdown signal arrives
// or the server fails.
func (a *App) Run(ctx context.Context) error {
	addr := a.Config.HTTP.Addr
	if addr == "" {
		addr = ":8080"
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      a.Handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
		a.Logger.Info("shutting down")
	case err := <-errCh:
		a.Logger.Error("HTTP server failed", "error", err)
		a.close()
		return err
	case <-ctx.Done():
		a.Logger.Info("context canceled, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		a.close()
		return fmt.Errorf("shutdown HTTP server: %w", err)
	}

	a.close()
	a.Logger.Info("HTTP server stopped")
	return nil
}

// close releases owned connections. Safe to call more than once.
func (a *App) close() {
	if a.statsd != nil {
		if err := a.statsd.Close(); err != nil {
			a.Logger.Warn("close statsd client failed", "error", err)
		}
		a.statsd = nil
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.Logger.Warn("close redis failed", "error", err)
		}
		a.redis = nil
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.Logger.Warn("close database failed", "error", err)
		}
		a.db = nil
	}
}
