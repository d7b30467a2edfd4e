package postgres

// Package postgres provides a Postgres-backed session store for
// deployments without Redis. Sessions live in a single table with the
// same two logical fields as the Redis layout: an identity JSON document
// and the auth mode.

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	domainauth "github.com/academica/progress-ui-api/internal/domain/auth"
	apperrors "github.com/academica/progress-ui-api/internal/errors"
	"github.com/academica/progress-ui-api/internal/ports"

	// Register the pgx database/sql driver.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// identityRecord mirrors the Redis adapter's persisted identity shape.
type identityRecord struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	Name  string `json:"name"`
}

// SessionStore persists sessions in the sessions table.
type SessionStore struct {
	db  *sql.DB
	now func() time.Time
}

var _ ports.SessionStore = (*SessionStore)(nil)

// NewSessionStore creates a Postgres session store over an open pool.
func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{db: db, now: time.Now}
}

// EnsureSchema creates the sessions table when it does not exist yet.
// Called once at startup when the Postgres backend is selected.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS sessions (
			id         TEXT PRIMARY KEY,
			identity   JSONB NOT NULL,
			auth_mode  TEXT NOT NULL,
			expires_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensure sessions schema: %w", apperrors.MapDBError(err))
	}
	return nil
}

func (s *SessionStore) Save(ctx context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}

	rec := identityRecord{
		Email: sess.Identity.Email,
		Role:  string(sess.Identity.Role),
		Name:  sess.Identity.Name,
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	var expiresAt *time.Time
	if !sess.ExpiresAt.IsZero() {
		if sess.Expired(s.now()) {
			return errors.New("session is expired")
		}
		expiresAt = &sess.ExpiresAt
	}

	// Upsert keeps the replace atomic: a session is never half-updated.
	const query = `
		INSERT INTO sessions (id, identity, auth_mode, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET identity = EXCLUDED.identity,
		    auth_mode = EXCLUDED.auth_mode,
		    expires_at = EXCLUDED.expires_at`
	if _, err := s.db.ExecContext(ctx, query, sess.ID, data, string(sess.Mode), expiresAt); err != nil {
		return fmt.Errorf("save session: %w", apperrors.MapDBError(err))
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}

	const query = `SELECT identity, auth_mode, expires_at FROM sessions WHERE id = $1`

	var (
		data      []byte
		modeRaw   string
		expiresAt sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, query, id).Scan(&data, &modeRaw, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("get session: %w", apperrors.MapDBError(err))
	}

	var rec identityRecord
	if unmarshalErr := json.Unmarshal(data, &rec); unmarshalErr != nil {
		return domainauth.Session{}, ports.ErrSessionCorrupt
	}
	role, ok := domainauth.ParseRole(rec.Role)
	if !ok {
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
		Mode: mode,
	}
	if expiresAt.Valid {
		sess.ExpiresAt = expiresAt.Time
	}

	if sess.Expired(s.now()) {
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

	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete session: %w", apperrors.MapDBError(err))
	}
	return nil
}

// PurgeExpired removes sessions whose expiry has passed. Exposed for the
// admin CLI; the read path already drops stale rows lazily.
func (s *SessionStore) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at IS NOT NULL AND expires_at < now()`)
	if err != nil {
		return 0, fmt.Errorf("purge expired sessions: %w", apperrors.MapDBError(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge expired sessions: rows affected: %w", err)
	}
	return n, nil
}
