// Package progressui provides embedded assets for production builds.
package progressui

import "embed"

// Embedded assets for production builds. In dev mode templates and
// static files are read from disk instead so they hot reload.

//go:embed all:frontend/static
var StaticFS embed.FS

//go:embed all:frontend/templates
var TemplateFS embed.FS
