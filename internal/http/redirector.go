package httpx

import (
	"net/http"

	"github.com/academica/progress-ui-api/internal/domain/access"
)

// Landing handles GET /: it forwards every visitor to where they belong.
// Authenticated users go to their role's dashboard, anonymous users to
// the login page, and an unresolved session renders the checking page
// instead of guessing.
//
// The loop guard compares against the live request path, so the handler
// never issues a redirect to the page it is already on.
func Landing(renderer *TemplateRenderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := GetSessionState(r.Context())

		if !state.Resolved {
			w.Header().Set("Retry-After", "2")
			renderer.RenderStatus(w, r, http.StatusServiceUnavailable, PageChecking, nil)
			return
		}

		target := access.DefaultFallbackPath
		if state.Session != nil {
			target = access.RolePath(state.Session.Role())
		}

		if r.URL.Path == target {
			// Already there; re-navigating would loop.
			renderer.RenderStatus(w, r, http.StatusOK, PageLogin, nil)
			return
		}
		http.Redirect(w, r, target, http.StatusFound)
	}
}
