package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	domainauth "github.com/academica/progress-ui-api/internal/domain/auth"
	apperrors "github.com/academica/progress-ui-api/internal/errors"
	"github.com/academica/progress-ui-api/internal/observability/metrics"
	"github.com/academica/progress-ui-api/internal/observability/statsd"
	"github.com/academica/progress-ui-api/internal/service"
)

// AuthServiceInterface defines the auth operations the handlers need.
type AuthServiceInterface interface {
	MockLogin(ctx context.Context, role string) (*domainauth.Session, error)
	CredentialLogin(ctx context.Context, email, password string) (*domainauth.Session, error)
	BeginGoogleLogin(ctx context.Context, redirectURL string) (*service.BeginGoogleLoginResult, error)
	CompleteGoogleLogin(ctx context.Context, input service.CompleteGoogleLoginInput) (*domainauth.Session, error)
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, bool)
	Logout(ctx context.Context, sessionID string) error
}

// DemoAccount is a login-page hint row for the mock directory.
type DemoAccount struct {
	Email string
	Role  string
	Name  string
}

// LoginPageData feeds the login template.
type LoginPageData struct {
	Error        string
	DemoAccounts []DemoAccount
	GoogleReady  bool
}

// AuthHandlers provides HTTP handlers for authentication operations.
type AuthHandlers struct {
	Svc          AuthServiceInterface
	Renderer     *TemplateRenderer
	Sink         statsd.Sink
	CookieDomain string
	DemoAccounts []DemoAccount
	GoogleReady  bool
	Logger       *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// LoginPage renders the login form.
// GET /login.
func (h *AuthHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	// An already signed-in user has no business on the login page.
	if sess := GetSessionFromContext(r.Context()); sess != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	h.Renderer.RenderStatus(w, r, http.StatusOK, PageLogin, h.loginData(""))
}

// CredentialLogin signs in with email and password.
// POST /login (form) or POST /api/auth/login (JSON).
func (h *AuthHandlers) CredentialLogin(w http.ResponseWriter, r *http.Request) {
	email, password, ok := h.readCredentials(w, r)
	if !ok {
		return
	}

	sess, err := h.Svc.CredentialLogin(r.Context(), email, password)
	if err != nil {
		h.loginFailed(w, r, "credentials", err)
		return
	}
	h.loginSucceeded(w, r, "credentials", sess)
}

// MockRoleLogin signs in as the demo account for a role.
// POST /auth/mock with form or JSON field "role".
func (h *AuthHandlers) MockRoleLogin(w http.ResponseWriter, r *http.Request) {
	var role string
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var body struct {
			Role string `json:"role"`
		}
		if !DecodeJSON(w, r, &body) {
			return
		}
		role = body.Role
	} else {
		role = r.FormValue("role")
	}

	sess, err := h.Svc.MockLogin(r.Context(), role)
	if err != nil {
		h.loginFailed(w, r, "mock", err)
		return
	}
	h.loginSucceeded(w, r, "mock", sess)
}

// GoogleBegin starts the Google OIDC flow.
// GET /auth/google.
func (h *AuthHandlers) GoogleBegin(w http.ResponseWriter, r *http.Request) {
	result, err := h.Svc.BeginGoogleLogin(r.Context(), externalURL(r, GoogleCallbackPath))
	if err != nil {
		h.loginFailed(w, r, "google", err)
		return
	}

	h.setOAuthCookies(w, r, result.State, result.Nonce)
	http.Redirect(w, r, result.AuthURL, http.StatusFound)
}

// GoogleCallback completes the Google OIDC flow.
// GET /auth/google/callback?code=<code>&state=<state>.
func (h *AuthHandlers) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")
	if code == "" || state == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_parameters",
			Err:     errors.New("code and state are required"),
		})
		return
	}

	stateCookie, err := r.Cookie(oauthStateCookie)
	if err != nil || stateCookie.Value != state {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_state",
			Err:     errors.New("invalid or missing state parameter"),
		})
		return
	}
	nonceCookie, err := r.Cookie(oauthNonceCookie)
	if err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_nonce",
			Err:     errors.New("missing nonce parameter"),
		})
		return
	}

	sess, err := h.Svc.CompleteGoogleLogin(r.Context(), service.CompleteGoogleLoginInput{
		Code:  code,
		State: state,
		Nonce: nonceCookie.Value,
	})
	h.clearCookie(w, r, oauthStateCookie)
	h.clearCookie(w, r, oauthNonceCookie)
	if err != nil {
		h.loginFailed(w, r, "google", err)
		return
	}
	h.loginSucceeded(w, r, "google", sess)
}

// Logout clears the session and sends the browser to the login page.
// POST /auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if logoutErr := h.Svc.Logout(r.Context(), cookie.Value); logoutErr != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", logoutErr)
		}
	}
	h.clearCookie(w, r, SessionCookie)

	if !IsBrowserRequest(r) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "success", "redirect_to": LoginPath})
		return
	}
	http.Redirect(w, r, LoginPath, http.StatusFound)
}

// Status reports the current authentication state.
// GET /auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	state := GetSessionState(r.Context())
	if !state.Resolved {
		w.Header().Set("Retry-After", "2")
		WriteJSON(w, http.StatusServiceUnavailable, map[string]any{"authenticated": false, "checking": true})
		return
	}
	if state.Session == nil {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	sess := state.Session
	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user": map[string]any{
			"email": sess.Identity.Email,
			"name":  sess.Identity.Name,
			"role":  sess.Role(),
		},
		"auth_mode":  sess.Mode,
		"expires_at": sess.ExpiresAt,
	})
}

func (h *AuthHandlers) readCredentials(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if !DecodeJSON(w, r, &body) {
			return "", "", false
		}
		return body.Email, body.Password, true
	}
	return r.FormValue("email"), r.FormValue("password"), true
}

func (h *AuthHandlers) loginSucceeded(w http.ResponseWriter, r *http.Request, mode string, sess *domainauth.Session) {
	metrics.EmitLogin(h.Sink, metrics.LoginMetric{Mode: mode, Result: metrics.ResultSuccess})
	h.setSessionCookie(w, r, sess)

	if !IsBrowserRequest(r) {
		WriteJSON(w, http.StatusOK, map[string]any{
			"status": "success",
			"user": map[string]any{
				"email": sess.Identity.Email,
				"name":  sess.Identity.Name,
				"role":  sess.Role(),
			},
		})
		return
	}
	http.Redirect(w, r, safeRedirectPath(r.FormValue("next")), http.StatusFound)
}

func (h *AuthHandlers) loginFailed(w http.ResponseWriter, r *http.Request, mode string, err error) {
	metrics.EmitLogin(h.Sink, metrics.LoginMetric{Mode: mode, Result: metrics.ResultError, Err: err})
	h.logger().InfoContext(r.Context(), "login failed",
		slog.String("mode", mode), slog.String("error", err.Error()))

	status, errCode, message := classifyLoginError(err)
	if !IsBrowserRequest(r) {
		WriteError(w, ErrorParams{Code: status, ErrCode: errCode, Err: errors.New(message)})
		return
	}
	h.Renderer.RenderStatus(w, r, status, PageLogin, h.loginData(message))
}

func classifyLoginError(err error) (int, string, string) {
	switch {
	case apperrors.IsInvalidCredentials(err):
		return http.StatusUnauthorized, "invalid_credentials", "Credenciales inválidas"
	case apperrors.IsUnknownRole(err):
		return http.StatusBadRequest, "unknown_role", "Rol desconocido"
	case apperrors.IsNotImplemented(err):
		return http.StatusNotImplemented, "not_implemented", "El acceso con Google no está disponible"
	default:
		return http.StatusInternalServerError, "login_failed", "No se pudo iniciar sesión"
	}
}

func (h *AuthHandlers) loginData(errMessage string) LoginPageData {
	return LoginPageData{
		Error:        errMessage,
		DemoAccounts: h.DemoAccounts,
		GoogleReady:  h.GoogleReady,
	}
}

// externalURL reconstructs an absolute URL for a path on this host.
func externalURL(r *http.Request, path string) string {
	scheme := "http"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return scheme + "://" + r.Host + path
}

func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, sess *domainauth.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sess.ID,
		Path:     "/",
		Domain:   h.CookieDomain,
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandlers) setOAuthCookies(w http.ResponseWriter, r *http.Request, state, nonce string) {
	secure := isSecureRequest(r)
	for name, value := range map[string]string{oauthStateCookie: state, oauthNonceCookie: nonce} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    value,
			Path:     "/",
			Domain:   h.CookieDomain,
			MaxAge:   600,
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

// clearCookie expires a cookie, mirroring the attributes used when it
// was set so browsers actually drop it.
func (h *AuthHandlers) clearCookie(w http.ResponseWriter, r *http.Request, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

func isSecureRequest(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
