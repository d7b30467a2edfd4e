package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/academica/progress-ui-api/config"
	"github.com/academica/progress-ui-api/internal/adapters/mockauth"
	"github.com/academica/progress-ui-api/internal/adapters/postgres"
	redisadapter "github.com/academica/progress-ui-api/internal/adapters/redis"
	"github.com/academica/progress-ui-api/internal/bootstrap"
	"github.com/academica/progress-ui-api/internal/domain/access"
	domainauth "github.com/academica/progress-ui-api/internal/domain/auth"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
}

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	cmdCtx := &commandContext{
		Ctx:    context.Background(),
		Logger: logger,
		Config: cfg,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.ErrorContext(cmdCtx.Ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"accounts": {
			name:        "accounts",
			description: "List the demo directory accounts and their roles",
			run:         runAccounts,
		},
		"check-access": {
			name:        "check-access",
			description: "Evaluate a route constraint against a role",
			run:         runCheckAccess,
		},
		"purge-sessions": {
			name:        "purge-sessions",
			description: "Delete expired sessions from the PostgreSQL store",
			run:         runPurgeSessions,
		},
		"delete-session": {
			name:        "delete-session",
			description: "Delete a single session by ID from the configured store",
			run:         runDeleteSession,
		},
	}
}

func printUsage() error {
	if err := writef(os.Stdout, "Usage: progressui-admin <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(os.Stdout, "Available commands:\n"); err != nil {
		return err
	}
	for _, c := range commands() {
		if err := writef(os.Stdout, "  %-16s %s\n", c.name, c.description); err != nil {
			return err
		}
	}
	return nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func runAccounts(_ *commandContext, _ []string) error {
	directory := mockauth.NewDirectory()

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writef(tw, "EMAIL\tROLE\tNAME\n"); err != nil {
		return err
	}
	for _, account := range directory.Accounts() {
		if err := writef(tw, "%s\t%s\t%s\n", account.Email, account.Role, account.Name); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func runCheckAccess(_ *commandContext, args []string) error {
	fs := flag.NewFlagSet("check-access", flag.ContinueOnError)
	role := fs.String("role", "", "role of the user (empty for anonymous; accepts legacy spellings)")
	requireRole := fs.String("require-role", "", "exact role the route requires")
	requireAny := fs.String("require-any", "", "comma-separated role membership the route requires")
	capability := fs.String("capability", "", "capability the route requires")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var constraint access.Constraint
	switch {
	case *requireRole != "":
		constraint = access.RequireRole(*requireRole)
	case *requireAny != "":
		constraint = access.RequireAnyRole(strings.Split(*requireAny, ",")...)
	case *capability != "":
		constraint = access.RequireCapability(*capability)
	default:
		return fmt.Errorf("one of -require-role, -require-any or -capability is required")
	}

	var sess *domainauth.Session
	if *role != "" {
		parsed, ok := domainauth.ParseRole(*role)
		if !ok {
			return fmt.Errorf("unknown role %q", *role)
		}
		sess = &domainauth.Session{
			ID:        "admin-cli",
			Identity:  domainauth.Identity{Role: parsed},
			ExpiresAt: time.Now().Add(time.Minute),
		}
	}

	decision := access.Evaluate(sess, true, constraint)
	if err := writef(os.Stdout, "state: %s\n", decision.State); err != nil {
		return err
	}
	if decision.FailedCheck != "" {
		if err := writef(os.Stdout, "failed check: %s\n", decision.FailedCheck); err != nil {
			return err
		}
	}
	return nil
}

func runPurgeSessions(cmdCtx *commandContext, _ []string) error {
	if cmdCtx.Config.Session.Backend != config.SessionBackendPostgres {
		return fmt.Errorf("purge-sessions requires SESSION_BACKEND=postgres (configured: %s)", cmdCtx.Config.Session.Backend)
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, 2*time.Minute)
	defer cancel()

	db, err := bootstrap.ConnectDB(ctx, bootstrap.DatabaseConfig{
		DBConfig: cmdCtx.Config.Postgres,
		Logger:   cmdCtx.Logger,
	})
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			cmdCtx.Logger.Warn("db close failed", "error", closeErr)
		}
	}()

	purged, err := postgres.NewSessionStore(db).PurgeExpired(ctx)
	if err != nil {
		return err
	}
	return writef(os.Stdout, "purged %d expired sessions\n", purged)
}

func runDeleteSession(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("delete-session", flag.ContinueOnError)
	id := fs.String("id", "", "session ID to delete")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("-id is required")
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, 30*time.Second)
	defer cancel()

	switch cmdCtx.Config.Session.Backend {
	case config.SessionBackendRedis:
		client, err := bootstrap.ConnectRedis(bootstrap.DatabaseConfig{
			RedisConfig: cmdCtx.Config.Redis,
			Logger:      cmdCtx.Logger,
		})
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := client.Close(); closeErr != nil {
				cmdCtx.Logger.Warn("redis close failed", "error", closeErr)
			}
		}()
		if err := redisadapter.NewSessionStore(client).Delete(ctx, *id); err != nil {
			return err
		}
	case config.SessionBackendPostgres:
		db, err := bootstrap.ConnectDB(ctx, bootstrap.DatabaseConfig{
			DBConfig: cmdCtx.Config.Postgres,
			Logger:   cmdCtx.Logger,
		})
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := db.Close(); closeErr != nil {
				cmdCtx.Logger.Warn("db close failed", "error", closeErr)
			}
		}()
		if err := postgres.NewSessionStore(db).Delete(ctx, *id); err != nil {
			return err
		}
	default:
		return fmt.Errorf("delete-session requires a durable session backend (configured: %s)", cmdCtx.Config.Session.Backend)
	}

	return writef(os.Stdout, "session %s deleted\n", *id)
}
