package httpx

import (
	"bytes"
	"errors"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	domainauth "github.com/academica/progress-ui-api/internal/domain/auth"
)

// TemplateRenderer renders HTML pages for browser responses.
type TemplateRenderer struct {
	t      *template.Template
	logger *slog.Logger
}

// TemplateRendererConfig holds configuration for creating a renderer.
type TemplateRendererConfig struct {
	TemplateFS fs.FS // Filesystem containing templates (required)
	Logger     *slog.Logger
}

// NewTemplateRenderer parses all templates up front so a bad template
// fails at startup, not on the first render.
func NewTemplateRenderer(cfg TemplateRendererConfig) (*TemplateRenderer, error) {
	if cfg.TemplateFS == nil {
		return nil, errors.New("TemplateFS is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	t, err := template.New("root").ParseFS(cfg.TemplateFS, "*.tmpl", "pages/*.tmpl")
	if err != nil {
		logger.Error("template parsing failed", slog.Any("error", err))
		return nil, err
	}
	return &TemplateRenderer{t: t, logger: logger}, nil
}

// pageData wraps per-page data with session context for the shared
// layout partials.
type pageData struct {
	User *domainauth.Identity
	Data any
}

// RenderStatus renders a page with an explicit status code. The page is
// buffered first; a failing template degrades to a plain 500 instead of
// a half-written document.
func (tr *TemplateRenderer) RenderStatus(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	var user *domainauth.Identity
	if sess := GetSessionFromContext(r.Context()); sess != nil {
		user = &sess.Identity
	}

	var buf bytes.Buffer
	if err := tr.t.ExecuteTemplate(&buf, page, pageData{User: user, Data: data}); err != nil {
		tr.logger.Error("template render failed",
			slog.String("page", page),
			slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
