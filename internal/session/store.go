package session

// Package session wraps a persistence adapter with the observer contract
// used by guards, the redirector, and metrics: every state transition is
// written through to durable storage first, then delivered synchronously
// to subscribers in subscription order.

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"

	domainauth "github.com/academica/progress-ui-api/internal/domain/auth"
	"github.com/academica/progress-ui-api/internal/ports"
)

// EventKind distinguishes session state transitions.
type EventKind string

const (
	// EventSet fires after an identity has been atomically replaced.
	EventSet EventKind = "set"
	// EventClear fires after a session has been removed.
	EventClear EventKind = "clear"
)

// Event describes one session state transition.
type Event struct {
	Kind EventKind
	// ID is the session identifier the transition applies to.
	ID string
	// Session is the new state for EventSet; nil for EventClear.
	Session *domainauth.Session
}

// Listener receives session events. Listeners run synchronously on the
// mutating goroutine; keep them short.
type Listener func(Event)

// Store is the process-wide session store. Mutations go through the two
// serialized entry points Set and Clear; reads never block writers longer
// than the backend round trip.
type Store struct {
	backend ports.SessionStore
	logger  *slog.Logger

	mu     sync.Mutex
	subs   map[int]Listener
	nextID int
}

// NewStore wraps a persistence backend.
func NewStore(backend ports.SessionStore, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		backend: backend,
		logger:  logger,
		subs:    make(map[int]Listener),
	}
}

// Subscribe registers a listener for every state transition and returns
// its disposer. Listeners are notified in subscription order.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Restore reads the session for an ID. The boolean reports whether the
// store could answer at all: (nil, true) means "resolved: logged out",
// (nil, false) means the backend was unreachable and the caller should
// treat the state as still checking.
//
// Missing and corrupt records both resolve to logged out; corrupt data is
// logged and never surfaced to the caller. Restore is idempotent.
func (s *Store) Restore(ctx context.Context, id string) (*domainauth.Session, bool) {
	if id == "" {
		return nil, true
	}

	sess, err := s.backend.Get(ctx, id)
	switch {
	case err == nil:
		return &sess, true
	case errors.Is(err, ports.ErrSessionNotFound):
		return nil, true
	case errors.Is(err, ports.ErrSessionCorrupt):
		// Fail open to the logged-out state and drop the bad record so
		// the next restore is clean.
		s.logger.Warn("corrupt session data, treating as logged out", "session_id", id)
		if delErr := s.backend.Delete(ctx, id); delErr != nil {
			s.logger.Warn("cleanup of corrupt session failed", "session_id", id, "error", delErr)
		}
		return nil, true
	default:
		s.logger.Error("session restore failed", "session_id", id, "error", err)
		return nil, false
	}
}

// Set atomically replaces the session state: the write reaches durable
// storage before any listener runs, so a listener reading storage during
// notification sees consistent data.
func (s *Store) Set(ctx context.Context, sess domainauth.Session) error {
	if err := s.backend.Save(ctx, sess); err != nil {
		return err
	}
	s.notify(Event{Kind: EventSet, ID: sess.ID, Session: &sess})
	return nil
}

// Clear removes the session from durable storage and notifies listeners.
// Clearing an absent session is safe and still notifies (idempotent).
func (s *Store) Clear(ctx context.Context, id string) error {
	if err := s.backend.Delete(ctx, id); err != nil {
		return err
	}
	s.notify(Event{Kind: EventClear, ID: id})
	return nil
}

// notify delivers the event synchronously, in subscription order.
func (s *Store) notify(ev Event) {
	s.mu.Lock()
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	listeners := make([]Listener, 0, len(ids))
	for _, id := range ids {
		listeners = append(listeners, s.subs[id])
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(ev)
	}
}
