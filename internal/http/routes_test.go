package httpx

import (
	"context"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	progressui "github.com/academica/progress-ui-api"
	"github.com/academica/progress-ui-api/internal/adapters/memory"
	"github.com/academica/progress-ui-api/internal/adapters/mockauth"
	"github.com/academica/progress-ui-api/internal/backend"
	domainauth "github.com/academica/progress-ui-api/internal/domain/auth"
	"github.com/academica/progress-ui-api/internal/service"
	"github.com/academica/progress-ui-api/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingDashboards records how many times protected views rendered.
type countingDashboards struct {
	renders int
}

func (d *countingDashboards) StudentView(context.Context, domainauth.Identity) (backend.StudentDashboard, error) {
	d.renders++
	return backend.StudentDashboard{StudentName: "Juan Estudiante", MyCourses: 2}, nil
}

func (d *countingDashboards) TeacherView(context.Context, domainauth.Identity) (backend.TeacherDashboard, error) {
	d.renders++
	return backend.TeacherDashboard{TeacherName: "María Profesora"}, nil
}

func (d *countingDashboards) CoordinatorView(context.Context, domainauth.Identity) (backend.CoordinatorDashboard, error) {
	d.renders++
	return backend.CoordinatorDashboard{CoordinatorName: "Carlos Coordinador"}, nil
}

func (d *countingDashboards) AdminDashboard(context.Context) (service.AdminView, error) {
	d.renders++
	return service.AdminView{}, nil
}

func (d *countingDashboards) Reports(context.Context) (service.ReportsView, error) {
	d.renders++
	return service.ReportsView{}, nil
}

type testServer struct {
	router     http.Handler
	auth       *service.AuthService
	backend    *memory.SessionStore
	dashboards *countingDashboards
}

func newTestRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()

	templateFS, err := fs.Sub(progressui.TemplateFS, "frontend/templates")
	require.NoError(t, err)
	renderer, err := NewTemplateRenderer(TemplateRendererConfig{TemplateFS: templateFS})
	require.NoError(t, err)
	return renderer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store := memory.NewSessionStore()
	auth := service.NewAuthService(service.AuthServiceOptions{
		Directory: mockauth.NewDirectory(),
		Sessions:  session.NewStore(store, nil),
	})
	dashboards := &countingDashboards{}

	router := NewRouter(RouterServices{
		Auth:       auth,
		Dashboards: dashboards,
		Renderer:   newTestRenderer(t),
		DemoAccounts: []DemoAccount{
			{Email: "student@example.com", Role: "student", Name: "Juan Estudiante"},
		},
	})
	return &testServer{router: router, auth: auth, backend: store, dashboards: dashboards}
}

// loginAs creates a session directly and returns its cookie.
func (ts *testServer) loginAs(t *testing.T, role string) *http.Cookie {
	t.Helper()

	sess, err := ts.auth.MockLogin(context.Background(), role)
	require.NoError(t, err)
	return &http.Cookie{Name: SessionCookie, Value: sess.ID}
}

func (ts *testServer) get(path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Accept", "text/html")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func (ts *testServer) postForm(path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "text/html")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func sessionCookieFrom(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookie && c.Value != "" {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestCredentialLoginFlow(t *testing.T) {
	ts := newTestServer(t)

	// Sign in with the demo student credentials.
	w := ts.postForm(LoginPath, url.Values{
		"email":    {"student@example.com"},
		"password": {"student123"},
	}, nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	cookie := sessionCookieFrom(t, w)

	// The landing route forwards to the student dashboard.
	w = ts.get("/", cookie)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard/student", w.Header().Get("Location"))

	// The dashboard renders.
	w = ts.get("/dashboard/student", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Juan Estudiante")
}

func TestCredentialLoginNextParameter(t *testing.T) {
	ts := newTestServer(t)

	w := ts.postForm(LoginPath, url.Values{
		"email":    {"coord@example.com"},
		"password": {"coord123"},
		"next":     {"/reports"},
	}, nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/reports", w.Header().Get("Location"))

	// External targets are not followed.
	w = ts.postForm(LoginPath, url.Values{
		"email":    {"coord@example.com"},
		"password": {"coord123"},
		"next":     {"https://evil.example.com/phish"},
	}, nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestCredentialLoginWrongPassword(t *testing.T) {
	ts := newTestServer(t)

	w := ts.postForm(LoginPath, url.Values{
		"email":    {"student@example.com"},
		"password": {"nope"},
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Credenciales inválidas")
	for _, c := range w.Result().Cookies() {
		assert.NotEqual(t, SessionCookie, c.Name, "failed login must not set a session cookie")
	}
	assert.Zero(t, ts.backend.Len(), "failed login must not create a session")
}

func TestMockRoleLogin(t *testing.T) {
	ts := newTestServer(t)

	w := ts.postForm("/auth/mock", url.Values{"role": {"administrador"}}, nil)
	require.Equal(t, http.StatusFound, w.Code)
	cookie := sessionCookieFrom(t, w)

	w = ts.get("/", cookie)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard/admin", w.Header().Get("Location"))
}

func TestMockRoleLoginUnknownRole(t *testing.T) {
	ts := newTestServer(t)

	w := ts.postForm("/auth/mock", url.Values{"role": {"principal"}}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Rol desconocido")
}

func TestGuard_UnauthenticatedNeverRendersProtectedContent(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/dashboard/student", "/dashboard/teacher", "/reports", "/overview", "/students"} {
		w := ts.get(path, nil)
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, LoginPath, w.Header().Get("Location"), path)
	}
	assert.Zero(t, ts.dashboards.renders, "protected views must not render for anonymous requests")
}

func TestGuard_APIRequestGetsJSONErrors(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/dashboard/student", nil)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "authentication_required")

	// Authenticated but wrong role: 403 JSON.
	cookie := ts.loginAs(t, "student")
	req = httptest.NewRequest(http.MethodGet, "/dashboard/teacher", nil)
	req.Header.Set("Accept", "application/json")
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "insufficient_permissions")
}

func TestGuard_WrongRoleRedirects(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.loginAs(t, "teacher")

	w := ts.get("/dashboard/student", cookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, LoginPath, w.Header().Get("Location"))
	assert.Zero(t, ts.dashboards.renders)
}

func TestGuard_ReportsPanelDeny(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.loginAs(t, "student")

	w := ts.get("/reports", cookie)
	require.Equal(t, http.StatusForbidden, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Acceso Denegado")
	assert.Contains(t, body, "coordinator")
	assert.Contains(t, body, "admin")
	assert.Contains(t, body, "student", "panel shows the actual role")
	assert.Contains(t, body, "/dashboard/student", "panel links back to the user's own dashboard")
}

func TestGuard_ReportsAllowsCoordinatorAndAdmin(t *testing.T) {
	ts := newTestServer(t)

	for _, role := range []string{"coordinator", "admin"} {
		w := ts.get("/reports", ts.loginAs(t, role))
		assert.Equal(t, http.StatusOK, w.Code, role)
	}
}

func TestGuard_OverviewRequiresGlobalStatsCapability(t *testing.T) {
	ts := newTestServer(t)

	// Coordinator lacks VIEW_GLOBAL_STATS.
	w := ts.get("/overview", ts.loginAs(t, "coordinator"))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "VIEW_GLOBAL_STATS")

	w = ts.get("/overview", ts.loginAs(t, "admin"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGuard_LegacyPathsStayRoutable(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		role string
		path string
	}{
		{"student", "/students"},
		{"teacher", "/teacher"},
		{"coordinator", "/coordinate"},
	}
	for _, tt := range tests {
		w := ts.get(tt.path, ts.loginAs(t, tt.role))
		assert.Equal(t, http.StatusOK, w.Code, tt.path)
	}
}

func TestLanding_RedirectsByRole(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		role string
		want string
	}{
		{"student", "/dashboard/student"},
		{"teacher", "/dashboard/teacher"},
		{"coordinator", "/dashboard/coordinator"},
		{"admin", "/dashboard/admin"},
	}
	for _, tt := range tests {
		w := ts.get("/", ts.loginAs(t, tt.role))
		require.Equal(t, http.StatusFound, w.Code, tt.role)
		assert.Equal(t, tt.want, w.Header().Get("Location"), tt.role)
	}
}

func TestLanding_UnauthenticatedGoesToLogin(t *testing.T) {
	ts := newTestServer(t)

	w := ts.get("/", nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, LoginPath, w.Header().Get("Location"))
}

func TestLoginPage_AuthenticatedUserLeaves(t *testing.T) {
	ts := newTestServer(t)

	w := ts.get(LoginPath, ts.loginAs(t, "teacher"))
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestLogout(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.loginAs(t, "student")
	require.Equal(t, 1, ts.backend.Len())

	w := ts.postForm("/auth/logout", url.Values{}, cookie)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, LoginPath, w.Header().Get("Location"))
	assert.Zero(t, ts.backend.Len(), "logout must clear the stored session")

	// The session cookie is expired on the client.
	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookie && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)

	// The old cookie no longer grants access.
	w = ts.get("/dashboard/student", cookie)
	assert.Equal(t, http.StatusFound, w.Code)

	// Logging out again without a session still lands on /login.
	w = ts.postForm("/auth/logout", url.Values{}, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, LoginPath, w.Header().Get("Location"))
}

func TestAuthStatus(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)

	req = httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	req.AddCookie(ts.loginAs(t, "coordinator"))
	w = httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"authenticated":true`)
	assert.Contains(t, body, `"coordinator"`)
	assert.Contains(t, body, `"auth_mode":"mock"`)
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	w := ts.get("/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
