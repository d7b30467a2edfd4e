package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/academica/progress-ui-api/internal/domain/access"
	"github.com/academica/progress-ui-api/internal/observability/metrics"
	"github.com/academica/progress-ui-api/internal/observability/statsd"
)

// DenyMode selects how a browser request experiences a denial.
type DenyMode int

const (
	// DenyRedirect sends the browser to the constraint's fallback path.
	DenyRedirect DenyMode = iota
	// DenyPanel renders the inline access-denied panel in place.
	DenyPanel
)

// Guard builds per-route access middleware. The decision is evaluated
// on every request against the restored session; nothing is cached.
type Guard struct {
	renderer *TemplateRenderer
	sink     statsd.Sink
	logger   *slog.Logger
}

// NewGuard constructs a Guard. The renderer is required for browser
// responses; sink and logger are optional.
func NewGuard(renderer *TemplateRenderer, sink statsd.Sink, logger *slog.Logger) *Guard {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Guard{renderer: renderer, sink: sink, logger: logger}
}

// Protect wraps a handler with a constraint and a deny mode. The
// protected handler runs only on an allowed decision, so denied
// requests never touch protected content.
func (g *Guard) Protect(c access.Constraint, mode DenyMode) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state := GetSessionState(r.Context())
			decision := access.Evaluate(state.Session, state.Resolved, c)

			metrics.EmitGuardDecision(g.sink, metrics.GuardMetric{
				Route:  r.URL.Path,
				State:  decision.State.String(),
				Reason: string(decision.FailedCheck),
			})

			switch decision.State {
			case access.StateAllowed:
				next.ServeHTTP(w, r)
			case access.StateChecking:
				g.renderChecking(w, r)
			case access.StateUnauthenticated:
				g.renderUnauthenticated(w, r, c)
			default:
				g.renderDenied(w, r, deniedRender{constraint: c, decision: decision, mode: mode})
			}
		})
	}
}

// renderChecking answers while the session store is unreachable. The
// browser gets a retrying placeholder; nothing redirects from here.
func (g *Guard) renderChecking(w http.ResponseWriter, r *http.Request) {
	if !IsBrowserRequest(r) {
		w.Header().Set("Retry-After", "2")
		WriteError(w, ErrorParams{
			Code:    http.StatusServiceUnavailable,
			ErrCode: "session_unresolved",
			Err:     errors.New("session state is not available yet"),
		})
		return
	}

	w.Header().Set("Retry-After", "2")
	g.renderer.RenderStatus(w, r, http.StatusServiceUnavailable, PageChecking, nil)
}

func (g *Guard) renderUnauthenticated(w http.ResponseWriter, r *http.Request, c access.Constraint) {
	if !IsBrowserRequest(r) {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}

	target := c.Fallback()
	if r.URL.Path == target {
		// Already on the fallback page; redirecting again would loop.
		g.renderer.RenderStatus(w, r, http.StatusOK, PageLogin, nil)
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}

type deniedRender struct {
	constraint access.Constraint
	decision   access.Decision
	mode       DenyMode
}

// DeniedData feeds the access-denied template.
type DeniedData struct {
	Reason             string
	ActualRole         string
	RequiredRole       string
	RequiredRoles      []string
	RequiredCapability string
	EscapePath         string
}

func (g *Guard) renderDenied(w http.ResponseWriter, r *http.Request, in deniedRender) {
	d := in.decision
	g.logger.Info("access denied",
		slog.String("path", r.URL.Path),
		slog.String("reason", string(d.FailedCheck)),
		slog.String("actual_role", string(d.ActualRole)))

	if !IsBrowserRequest(r) {
		WriteError(w, ErrorParams{
			Code:    http.StatusForbidden,
			ErrCode: "insufficient_permissions",
			Err:     errors.New("insufficient permissions: failed check " + string(d.FailedCheck)),
		})
		return
	}

	if in.mode == DenyRedirect {
		target := in.constraint.Fallback()
		if r.URL.Path != target {
			http.Redirect(w, r, target, http.StatusFound)
			return
		}
		// Fall through to the panel rather than looping.
	}

	roles := make([]string, 0, len(d.RequiredRoles))
	for _, role := range d.RequiredRoles {
		roles = append(roles, string(role))
	}
	g.renderer.RenderStatus(w, r, http.StatusForbidden, PageDenied, DeniedData{
		Reason:             string(d.FailedCheck),
		ActualRole:         string(d.ActualRole),
		RequiredRole:       string(d.RequiredRole),
		RequiredRoles:      roles,
		RequiredCapability: string(d.RequiredCapability),
		EscapePath:         access.RolePath(d.ActualRole),
	})
}
