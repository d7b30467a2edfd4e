package config

import (
	"os"
	"strings"
	"time"
)

// BackendConfig points the UI service at the academic progress REST
// backend.
type BackendConfig struct {
	// URL is the backend base URL.
	URL string `env:"BACKEND_URL"`

	// DemoMode serves canned data when the backend is unreachable.
	DemoMode bool `env:"DEMO_MODE" envDefault:"false"`

	// Timeout bounds each backend request.
	Timeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"10s"`
}

// defaultBackendURL mirrors the backend client's default.
const defaultBackendURL = "http://localhost:8000"

// Sanitize resolves the backend URL, honoring the variable names the
// previous frontend deployment used so existing .env files keep working.
func (b *BackendConfig) Sanitize() {
	b.URL = strings.TrimSpace(b.URL)
	if b.URL == "" {
		for _, key := range []string{"NEXT_PUBLIC_BACKEND_URL", "NEXT_PUBLIC_API_URL"} {
			if v := strings.TrimSpace(os.Getenv(key)); v != "" {
				b.URL = v
				break
			}
		}
	}
	if b.URL == "" {
		b.URL = defaultBackendURL
	}
	b.URL = strings.TrimRight(b.URL, "/")

	if !b.DemoMode {
		v := strings.ToLower(strings.TrimSpace(os.Getenv("NEXT_PUBLIC_DEMO_MODE")))
		b.DemoMode = v == "true" || v == "1"
	}

	if b.Timeout <= 0 {
		b.Timeout = 10 * time.Second
	}
}
