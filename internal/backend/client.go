package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/academica/progress-ui-api/internal/errors"
)

// DefaultBaseURL is used when no backend URL is configured.
const DefaultBaseURL = "http://localhost:8000"

const maxResponseBytes = 4 << 20

// Client talks to the academic REST backend. In demo mode, network
// failures fall back to canned data so the dashboards stay usable
// without a backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	demoMode   bool
	cache      *ReportCache
	logger     *slog.Logger
}

// ClientOptions groups Client construction parameters.
type ClientOptions struct {
	BaseURL    string
	HTTPClient *http.Client // Optional, defaults to a 10s-timeout client
	DemoMode   bool
	Cache      *ReportCache // Optional report cache
	Logger     *slog.Logger
}

// NewClient creates a backend client.
func NewClient(opts ClientOptions) *Client {
	baseURL := strings.TrimSuffix(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		demoMode:   opts.DemoMode,
		cache:      opts.Cache,
		logger:     logger,
	}
}

// Courses lists the course catalog.
func (c *Client) Courses(ctx context.Context) ([]Course, error) {
	return fetch(ctx, c, "/api/v1/courses", demoCourses)
}

// Students lists the student roster.
func (c *Client) Students(ctx context.Context) ([]Student, error) {
	return fetch(ctx, c, "/api/v1/students", demoStudents)
}

// StudentProgress fetches the progress record for one student.
func (c *Client) StudentProgress(ctx context.Context, studentID string) (StudentProgress, error) {
	path := "/api/v1/students/" + url.PathEscape(studentID) + "/progress"
	return fetch(ctx, c, path, func() StudentProgress { return demoStudentProgress(studentID) })
}

// StudentDashboard fetches the student landing-view aggregate.
func (c *Client) StudentDashboard(ctx context.Context, studentID string) (StudentDashboard, error) {
	path := "/api/v1/students/" + url.PathEscape(studentID) + "/dashboard"
	return fetch(ctx, c, path, func() StudentDashboard { return demoStudentDashboard(studentID) })
}

// TeacherDashboard fetches the teacher landing-view aggregate.
func (c *Client) TeacherDashboard(ctx context.Context, teacherID string) (TeacherDashboard, error) {
	path := "/api/v1/teachers/" + url.PathEscape(teacherID) + "/dashboard"
	return fetch(ctx, c, path, func() TeacherDashboard { return demoTeacherDashboard(teacherID) })
}

// CoordinatorDashboard fetches the coordinator landing-view aggregate.
func (c *Client) CoordinatorDashboard(ctx context.Context, coordinatorID string) (CoordinatorDashboard, error) {
	path := "/api/v1/reports/coordinators/" + url.PathEscape(coordinatorID) + "/dashboard"
	return fetch(ctx, c, path, func() CoordinatorDashboard { return demoCoordinatorDashboard(coordinatorID) })
}

// KPIs fetches the headline metrics. Cached when a report cache is
// configured.
func (c *Client) KPIs(ctx context.Context) (KPIs, error) {
	return fetchCached(ctx, c, "/api/v1/reports/kpis", demoKPIs)
}

// Overview fetches the institution-wide overview. Cached when a report
// cache is configured.
func (c *Client) Overview(ctx context.Context) (OverviewStats, error) {
	return fetchCached(ctx, c, "/api/v1/reports/overview", demoOverview)
}

// OverviewRaw fetches the overview as raw JSON for KPI shaping.
func (c *Client) OverviewRaw(ctx context.Context) (map[string]any, error) {
	return fetch(ctx, c, "/api/v1/reports/overview", demoOverviewRaw)
}

// CohortProgress fetches the cohort progress report. Cached when a
// report cache is configured.
func (c *Client) CohortProgress(ctx context.Context) (CohortProgressReport, error) {
	return fetchCached(ctx, c, "/api/v1/reports/cohort-progress", demoCohortProgress)
}

// fetch performs a GET and decodes the payload. On a network error in
// demo mode it logs the failure and returns the demo fallback instead.
func fetch[T any](ctx context.Context, c *Client, path string, fallback func() T) (T, error) {
	var out T
	err := c.getJSON(ctx, path, &out)
	if err == nil {
		return out, nil
	}
	if c.demoMode && apperrors.IsNetwork(err) {
		c.logger.Warn("backend unreachable, serving demo data",
			slog.String("path", path), slog.String("error", err.Error()))
		return fallback(), nil
	}
	var zero T
	return zero, err
}

// fetchCached is fetch with a read-through report cache keyed by path.
func fetchCached[T any](ctx context.Context, c *Client, path string, fallback func() T) (T, error) {
	if c.cache != nil {
		var cached T
		if ok := c.cache.Get(ctx, path, &cached); ok {
			return cached, nil
		}
	}
	out, err := fetch(ctx, c, path, fallback)
	if err == nil && c.cache != nil {
		c.cache.Put(ctx, path, out)
	}
	return out, err
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.Network(err, fmt.Sprintf("backend GET %s", path))
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return apperrors.Network(err, fmt.Sprintf("backend read %s", path))
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return apperrors.NotFoundf("backend GET %s: not found", path)
	case resp.StatusCode >= 500:
		// Backend-side failures count as network class so demo mode can
		// fall back.
		return apperrors.Network(nil, fmt.Sprintf("backend GET %s: status %d", path, resp.StatusCode))
	case resp.StatusCode != http.StatusOK:
		return apperrors.Internalf("backend GET %s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.Network(err, fmt.Sprintf("backend decode %s", path))
	}
	return nil
}
