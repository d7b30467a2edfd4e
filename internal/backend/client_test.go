package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "github.com/academica/progress-ui-api/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackendServer(t *testing.T, routes map[string]any) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(payload)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_KPIs(t *testing.T) {
	srv := newBackendServer(t, map[string]any{
		"/api/v1/reports/kpis": KPIs{TotalStudents: 45, OnTimePercentage: 83.3},
	})
	client := NewClient(ClientOptions{BaseURL: srv.URL})

	kpis, err := client.KPIs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 45, kpis.TotalStudents)
	assert.InDelta(t, 83.3, kpis.OnTimePercentage, 0.001)
}

func TestClient_StudentDashboardPathEscapesID(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_ = json.NewEncoder(w).Encode(StudentDashboard{StudentID: "x"})
	}))
	t.Cleanup(srv.Close)

	client := NewClient(ClientOptions{BaseURL: srv.URL})
	_, err := client.StudentDashboard(context.Background(), "student/../1")
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/students/student%2F..%2F1/dashboard", gotPath)
}

func TestClient_NetworkFailureClassifies(t *testing.T) {
	// Point at a server that is already closed.
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	client := NewClient(ClientOptions{BaseURL: srv.URL})
	_, err := client.Courses(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsNetwork(err))
}

func TestClient_ServerErrorClassifiesAsNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(ClientOptions{BaseURL: srv.URL})
	_, err := client.Overview(context.Background())
	assert.True(t, apperrors.IsNetwork(err))
}

func TestClient_NotFound(t *testing.T) {
	srv := newBackendServer(t, nil)

	client := NewClient(ClientOptions{BaseURL: srv.URL})
	_, err := client.StudentProgress(context.Background(), "ghost")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestClient_DemoModeFallsBackOnOutage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	client := NewClient(ClientOptions{BaseURL: srv.URL, DemoMode: true})
	ctx := context.Background()

	kpis, err := client.KPIs(ctx)
	require.NoError(t, err)
	assert.Equal(t, "mock", kpis.DemoMode)
	assert.Equal(t, 4, kpis.TotalStudents)

	report, err := client.CohortProgress(ctx)
	require.NoError(t, err)
	assert.Len(t, report.Cohorts, 2)
	assert.Equal(t, "2026-A", report.Summary.BestPerformingCohort)
}

func TestClient_DemoModePrefersLiveBackend(t *testing.T) {
	srv := newBackendServer(t, map[string]any{
		"/api/v1/reports/kpis": KPIs{TotalStudents: 99},
	})

	client := NewClient(ClientOptions{BaseURL: srv.URL, DemoMode: true})
	kpis, err := client.KPIs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 99, kpis.TotalStudents, "live data wins over canned data")
}

func TestClient_DecodeFailureClassifiesAsNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(ClientOptions{BaseURL: srv.URL})
	_, err := client.Students(context.Background())
	assert.True(t, apperrors.IsNetwork(err))
}

func TestClient_DefaultBaseURL(t *testing.T) {
	client := NewClient(ClientOptions{})
	assert.Equal(t, "http://localhost:8000", client.baseURL)

	client = NewClient(ClientOptions{BaseURL: "http://backend:9000/"})
	assert.Equal(t, "http://backend:9000", client.baseURL)
}
