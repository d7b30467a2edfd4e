package service

import (
	"context"
	"fmt"

	"github.com/academica/progress-ui-api/internal/backend"
	domainauth "github.com/academica/progress-ui-api/internal/domain/auth"
	"golang.org/x/sync/errgroup"
)

// DataClient is the slice of the backend client the dashboards consume.
type DataClient interface {
	StudentDashboard(ctx context.Context, studentID string) (backend.StudentDashboard, error)
	TeacherDashboard(ctx context.Context, teacherID string) (backend.TeacherDashboard, error)
	CoordinatorDashboard(ctx context.Context, coordinatorID string) (backend.CoordinatorDashboard, error)
	KPIs(ctx context.Context) (backend.KPIs, error)
	Overview(ctx context.Context) (backend.OverviewStats, error)
	OverviewRaw(ctx context.Context) (map[string]any, error)
	CohortProgress(ctx context.Context) (backend.CohortProgressReport, error)
}

// SubjectResolver maps an authenticated identity to its backend record
// ID. The default resolver returns the fixed demo-directory IDs.
type SubjectResolver func(identity domainauth.Identity) string

func defaultSubjectResolver(identity domainauth.Identity) string {
	switch identity.Role {
	case domainauth.RoleStudent:
		return "student_1"
	case domainauth.RoleTeacher:
		return "teacher_001"
	case domainauth.RoleCoordinator:
		return "coord_001"
	default:
		return "admin_001"
	}
}

// DashboardService assembles role-scoped dashboard views from backend
// data. It performs no access decisions; the guard in front of each
// route owns those.
type DashboardService struct {
	data    DataClient
	subject SubjectResolver
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(data DataClient, subject SubjectResolver) *DashboardService {
	if subject == nil {
		subject = defaultSubjectResolver
	}
	return &DashboardService{data: data, subject: subject}
}

// StudentView assembles the student dashboard for an identity.
func (s *DashboardService) StudentView(ctx context.Context, identity domainauth.Identity) (backend.StudentDashboard, error) {
	view, err := s.data.StudentDashboard(ctx, s.subject(identity))
	if err != nil {
		return backend.StudentDashboard{}, fmt.Errorf("student dashboard: %w", err)
	}
	return view, nil
}

// TeacherView assembles the teacher dashboard for an identity.
func (s *DashboardService) TeacherView(ctx context.Context, identity domainauth.Identity) (backend.TeacherDashboard, error) {
	view, err := s.data.TeacherDashboard(ctx, s.subject(identity))
	if err != nil {
		return backend.TeacherDashboard{}, fmt.Errorf("teacher dashboard: %w", err)
	}
	return view, nil
}

// CoordinatorView assembles the coordinator dashboard for an identity.
func (s *DashboardService) CoordinatorView(ctx context.Context, identity domainauth.Identity) (backend.CoordinatorDashboard, error) {
	view, err := s.data.CoordinatorDashboard(ctx, s.subject(identity))
	if err != nil {
		return backend.CoordinatorDashboard{}, fmt.Errorf("coordinator dashboard: %w", err)
	}
	return view, nil
}

// AdminView is the admin dashboard: institution overview plus headline
// metric cards shaped from the raw overview payload.
type AdminView struct {
	Overview backend.OverviewStats
	KPIs     backend.KPIs
	Headline []backend.HeadlineKPI
}

// AdminDashboard assembles the admin view. The three backend reads are
// independent, so they run concurrently.
func (s *DashboardService) AdminDashboard(ctx context.Context) (AdminView, error) {
	var (
		overview backend.OverviewStats
		kpis     backend.KPIs
		raw      map[string]any
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if overview, err = s.data.Overview(gctx); err != nil {
			return fmt.Errorf("overview: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if kpis, err = s.data.KPIs(gctx); err != nil {
			return fmt.Errorf("kpis: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if raw, err = s.data.OverviewRaw(gctx); err != nil {
			return fmt.Errorf("overview raw: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return AdminView{}, err
	}

	headline, err := backend.ShapeHeadlineKPIs(raw)
	if err != nil {
		return AdminView{}, fmt.Errorf("shape headline: %w", err)
	}

	return AdminView{Overview: overview, KPIs: kpis, Headline: headline}, nil
}

// ReportsView is the shared coordinator/admin reports page.
type ReportsView struct {
	KPIs    backend.KPIs
	Cohorts backend.CohortProgressReport
}

// Reports assembles the cohort progress report page.
func (s *DashboardService) Reports(ctx context.Context) (ReportsView, error) {
	var view ReportsView

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if view.KPIs, err = s.data.KPIs(gctx); err != nil {
			return fmt.Errorf("kpis: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if view.Cohorts, err = s.data.CohortProgress(gctx); err != nil {
			return fmt.Errorf("cohort progress: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return ReportsView{}, err
	}
	return view, nil
}
