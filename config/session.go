package config

import (
	"fmt"
	"strings"
	"time"
)

// SessionBackend selects where sessions are persisted.
type SessionBackend string

const (
	// SessionBackendMemory keeps sessions in process memory (dev only).
	SessionBackendMemory SessionBackend = "memory"
	// SessionBackendRedis persists sessions in Redis.
	SessionBackendRedis SessionBackend = "redis"
	// SessionBackendPostgres persists sessions in PostgreSQL.
	SessionBackendPostgres SessionBackend = "postgres"
)

// UnmarshalText implements encoding.TextUnmarshaler for SessionBackend.
func (s *SessionBackend) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "memory", "redis", "postgres":
		*s = SessionBackend(v)
		return nil
	default:
		return fmt.Errorf("invalid SessionBackend: %q (valid options: memory, redis, postgres)", v)
	}
}

// SessionConfig controls session persistence and lifetime.
type SessionConfig struct {
	// Backend selects the persistence adapter.
	Backend SessionBackend `env:"SESSION_BACKEND" envDefault:"memory"`

	// TTL is how long a session stays valid after login.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"8h"`
}

// Sanitize applies guardrails to session configuration values.
func (s *SessionConfig) Sanitize() {
	if s.TTL <= 0 {
		s.TTL = 8 * time.Hour
	}
	if s.Backend == "" {
		s.Backend = SessionBackendMemory
	}
}
