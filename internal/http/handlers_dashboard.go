package httpx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/academica/progress-ui-api/internal/backend"
	domainauth "github.com/academica/progress-ui-api/internal/domain/auth"
	apperrors "github.com/academica/progress-ui-api/internal/errors"
	"github.com/academica/progress-ui-api/internal/service"
)

// DashboardServiceInterface defines the view-assembly operations the
// handlers need.
type DashboardServiceInterface interface {
	StudentView(ctx context.Context, identity domainauth.Identity) (backend.StudentDashboard, error)
	TeacherView(ctx context.Context, identity domainauth.Identity) (backend.TeacherDashboard, error)
	CoordinatorView(ctx context.Context, identity domainauth.Identity) (backend.CoordinatorDashboard, error)
	AdminDashboard(ctx context.Context) (service.AdminView, error)
	Reports(ctx context.Context) (service.ReportsView, error)
}

// DashboardHandlers serves the role-scoped dashboard views. Every route
// sits behind a guard, so a session is always present here.
type DashboardHandlers struct {
	Svc      DashboardServiceInterface
	Renderer *TemplateRenderer
	Logger   *slog.Logger
}

// Student renders the student dashboard.
// GET /dashboard/student (legacy /students).
func (h *DashboardHandlers) Student(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	view, err := h.Svc.StudentView(r.Context(), sess.Identity)
	if err != nil {
		h.viewFailed(w, r, err)
		return
	}
	h.respond(w, r, PageDashboardStudent, view)
}

// Teacher renders the teacher dashboard.
// GET /dashboard/teacher (legacy /teacher).
func (h *DashboardHandlers) Teacher(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	view, err := h.Svc.TeacherView(r.Context(), sess.Identity)
	if err != nil {
		h.viewFailed(w, r, err)
		return
	}
	h.respond(w, r, PageDashboardTeacher, view)
}

// Coordinator renders the coordinator dashboard.
// GET /dashboard/coordinator (legacy /coordinate).
func (h *DashboardHandlers) Coordinator(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	view, err := h.Svc.CoordinatorView(r.Context(), sess.Identity)
	if err != nil {
		h.viewFailed(w, r, err)
		return
	}
	h.respond(w, r, PageDashboardCoord, view)
}

// Admin renders the admin overview dashboard.
// GET /dashboard/admin (legacy /overview).
func (h *DashboardHandlers) Admin(w http.ResponseWriter, r *http.Request) {
	view, err := h.Svc.AdminDashboard(r.Context())
	if err != nil {
		h.viewFailed(w, r, err)
		return
	}
	h.respond(w, r, PageDashboardAdmin, view)
}

// Reports renders the shared coordinator/admin reports page.
// GET /reports.
func (h *DashboardHandlers) Reports(w http.ResponseWriter, r *http.Request) {
	view, err := h.Svc.Reports(r.Context())
	if err != nil {
		h.viewFailed(w, r, err)
		return
	}
	h.respond(w, r, PageReports, view)
}

func (h *DashboardHandlers) respond(w http.ResponseWriter, r *http.Request, page string, view any) {
	if !IsBrowserRequest(r) {
		WriteJSON(w, http.StatusOK, view)
		return
	}
	h.Renderer.RenderStatus(w, r, http.StatusOK, page, view)
}

func (h *DashboardHandlers) viewFailed(w http.ResponseWriter, r *http.Request, err error) {
	if h.Logger != nil {
		h.Logger.ErrorContext(r.Context(), "dashboard view failed",
			slog.String("path", r.URL.Path), slog.String("error", err.Error()))
	}

	status := http.StatusInternalServerError
	errCode := "dashboard_failed"
	if apperrors.IsNetwork(err) {
		status = http.StatusBadGateway
		errCode = "backend_unreachable"
	}
	if !IsBrowserRequest(r) {
		WriteError(w, ErrorParams{Code: status, ErrCode: errCode, Err: err})
		return
	}
	http.Error(w, "No se pudieron cargar los datos del panel", status)
}
