package redis

// Package redis provides the Redis-backed session store for production use.
// TTL semantics follow the session ExpiresAt automatically.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	domainauth "github.com/academica/progress-ui-api/internal/domain/auth"
	"github.com/academica/progress-ui-api/internal/ports"
	"github.com/redis/go-redis/v9"
)

// Storage layout: two logical keys per session, mirroring the original
// client-side contract. The identity record is JSON {email, role, name}
// plus the expiry; the mode record is the bare string "mock" or "google".
const (
	identityKeyPrefix = "user:"
	modeKeyPrefix     = "auth_mode:"
)

// identityRecord is the persisted shape of the identity key.
type identityRecord struct {
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Name      string    `json:"name"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

// SessionStore is a Redis-based session store.
type SessionStore struct {
	client redis.UniversalClient
}

var _ ports.SessionStore = (*SessionStore)(nil)

// NewSessionStore creates a new Redis-based session store.
func NewSessionStore(client redis.UniversalClient) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) Save(ctx context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}

	rec := identityRecord{
		Email:     sess.Identity.Email,
		Role:      string(sess.Identity.Role),
		Name:      sess.Identity.Name,
		ExpiresAt: sess.ExpiresAt,
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	var ttl time.Duration
	if !sess.ExpiresAt.IsZero() {
		ttl = time.Until(sess.ExpiresAt)
		if ttl <= 0 {
			return errors.New("session is expired")
		}
	}

	// Both keys go out in one pipeline so a reader never observes the
	// identity without its mode.
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, identityKeyPrefix+sess.ID, data, ttl)
	pipe.Set(ctx, modeKeyPrefix+sess.ID, string(sess.Mode), ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}

	data, err := s.client.Get(ctx, identityKeyPrefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.Session{}, ports.ErrSessionNotFound
		}
		return domainauth.Session{}, fmt.Errorf("redis get session: %w", err)
	}

	modeRaw, err := s.client.Get(ctx, modeKeyPrefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// Identity without mode is a half-written record; treat as corrupt.
			return domainauth.Session{}, ports.ErrSessionCorrupt
		}
		return domainauth.Session{}, fmt.Errorf("redis get auth mode: %w", err)
	}

	var rec identityRecord
	if unmarshalErr := json.Unmarshal([]byte(data), &rec); unmarshalErr != nil {
		return domainauth.Session{}, ports.ErrSessionCorrupt
	}

	role, ok := domainauth.ParseRole(rec.Role)
	if !ok {
		// An identity without a recognizable role is unusable.
		return domainauth.Session{}, ports.ErrSessionCorrupt
	}
	mode, ok := domainauth.ParseMode(modeRaw)
	if !ok {
		return domainauth.Session{}, ports.ErrSessionCorrupt
	}

	sess := domainauth.Session{
		ID: id,
		Identity: domainauth.Identity{
			Email: rec.Email,
			Name:  rec.Name,
			Role:  role,
		},
		Mode:      mode,
		ExpiresAt: rec.ExpiresAt,
	}

	// Double-check expiration (Redis TTL should handle this, but be defensive)
	if sess.Expired(time.Now()) {
		if deleteErr := s.Delete(ctx, id); deleteErr != nil {
			return domainauth.Session{}, fmt.Errorf("cleanup expired session: %w", deleteErr)
		}
		return domainauth.Session{}, ports.ErrSessionNotFound
	}

	return sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil // Nothing to delete
	}

	if err := s.client.Del(ctx, identityKeyPrefix+id, modeKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}
