package httpx

// Cookie names.
const (
	SessionCookie    = "session_id"
	oauthStateCookie = "oauth_state"
	oauthNonceCookie = "oauth_nonce"
)

// Page identifiers used by the template renderer.
const (
	PageLogin            = "login"
	PageDenied           = "denied"
	PageChecking         = "checking"
	PageDashboardStudent = "dashboard_student"
	PageDashboardTeacher = "dashboard_teacher"
	PageDashboardCoord   = "dashboard_coordinator"
	PageDashboardAdmin   = "dashboard_admin"
	PageReports          = "reports"
)

// Route paths referenced from more than one handler.
const (
	LoginPath          = "/login"
	GoogleCallbackPath = "/auth/google/callback"
)
