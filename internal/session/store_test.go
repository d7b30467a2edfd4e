package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/academica/progress-ui-api/internal/adapters/memory"
	domainauth "github.com/academica/progress-ui-api/internal/domain/auth"
	"github.com/academica/progress-ui-api/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSession(id string) domainauth.Session {
	return domainauth.Session{
		ID: id,
		Identity: domainauth.Identity{
			Email: "student@example.com",
			Name:  "Juan Estudiante",
			Role:  domainauth.RoleStudent,
		},
		Mode:      domainauth.ModeMock,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

// faultySessionStore lets tests inject backend failures per operation.
type faultySessionStore struct {
	inner   ports.SessionStore
	getErr  error
	saveErr error
	delErr  error
}

func (f *faultySessionStore) Save(ctx context.Context, sess domainauth.Session) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	return f.inner.Save(ctx, sess)
}

func (f *faultySessionStore) Get(ctx context.Context, id string) (domainauth.Session, error) {
	if f.getErr != nil {
		return domainauth.Session{}, f.getErr
	}
	return f.inner.Get(ctx, id)
}

func (f *faultySessionStore) Delete(ctx context.Context, id string) error {
	if f.delErr != nil {
		return f.delErr
	}
	return f.inner.Delete(ctx, id)
}

func TestStore_SetThenRestoreRoundTrip(t *testing.T) {
	store := NewStore(memory.NewSessionStore(), nil)
	ctx := context.Background()
	want := testSession("sess-rt")

	require.NoError(t, store.Set(ctx, want))

	got, resolved := store.Restore(ctx, "sess-rt")
	require.True(t, resolved)
	require.NotNil(t, got)
	assert.Equal(t, want.Identity, got.Identity)
	assert.Equal(t, want.Mode, got.Mode)
	assert.Equal(t, want.ID, got.ID)
}

func TestStore_RestoreUnknownIDResolvesLoggedOut(t *testing.T) {
	store := NewStore(memory.NewSessionStore(), nil)

	got, resolved := store.Restore(context.Background(), "missing")
	assert.True(t, resolved)
	assert.Nil(t, got)

	got, resolved = store.Restore(context.Background(), "")
	assert.True(t, resolved)
	assert.Nil(t, got)
}

func TestStore_RestoreIdempotent(t *testing.T) {
	store := NewStore(memory.NewSessionStore(), nil)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, testSession("sess-i")))

	for range 3 {
		got, resolved := store.Restore(ctx, "sess-i")
		require.True(t, resolved)
		require.NotNil(t, got)
	}
}

func TestStore_ClearTwiceIsSafe(t *testing.T) {
	store := NewStore(memory.NewSessionStore(), nil)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, testSession("sess-c")))

	require.NoError(t, store.Clear(ctx, "sess-c"))
	got, resolved := store.Restore(ctx, "sess-c")
	assert.True(t, resolved)
	assert.Nil(t, got)

	// Second clear of the same ID must also succeed.
	require.NoError(t, store.Clear(ctx, "sess-c"))
	got, resolved = store.Restore(ctx, "sess-c")
	assert.True(t, resolved)
	assert.Nil(t, got)
}

func TestStore_CorruptDataFailsOpenAndCleansUp(t *testing.T) {
	backend := &faultySessionStore{inner: memory.NewSessionStore(), getErr: ports.ErrSessionCorrupt}
	store := NewStore(backend, nil)

	got, resolved := store.Restore(context.Background(), "sess-bad")
	assert.True(t, resolved, "corrupt data resolves to logged out, not checking")
	assert.Nil(t, got)
}

func TestStore_BackendOutageReportsUnresolved(t *testing.T) {
	backend := &faultySessionStore{inner: memory.NewSessionStore(), getErr: errors.New("connection refused")}
	store := NewStore(backend, nil)

	got, resolved := store.Restore(context.Background(), "sess-x")
	assert.False(t, resolved)
	assert.Nil(t, got)
}

func TestStore_NotifiesInSubscriptionOrder(t *testing.T) {
	store := NewStore(memory.NewSessionStore(), nil)
	ctx := context.Background()

	var order []string
	store.Subscribe(func(ev Event) { order = append(order, "guard:"+string(ev.Kind)) })
	store.Subscribe(func(ev Event) { order = append(order, "redirector:"+string(ev.Kind)) })

	require.NoError(t, store.Set(ctx, testSession("sess-o")))
	require.NoError(t, store.Clear(ctx, "sess-o"))

	assert.Equal(t, []string{
		"guard:set", "redirector:set",
		"guard:clear", "redirector:clear",
	}, order)
}

func TestStore_NotificationSeesDurableState(t *testing.T) {
	backend := memory.NewSessionStore()
	store := NewStore(backend, nil)
	ctx := context.Background()

	// A listener reading through the store during notification must see
	// the state already persisted.
	var seen *domainauth.Session
	store.Subscribe(func(ev Event) {
		if ev.Kind == EventSet {
			got, err := backend.Get(ctx, ev.ID)
			if err == nil {
				seen = &got
			}
		}
	})

	require.NoError(t, store.Set(ctx, testSession("sess-w")))
	require.NotNil(t, seen)
	assert.Equal(t, "sess-w", seen.ID)
}

func TestStore_Unsubscribe(t *testing.T) {
	store := NewStore(memory.NewSessionStore(), nil)
	ctx := context.Background()

	calls := 0
	unsubscribe := store.Subscribe(func(Event) { calls++ })

	require.NoError(t, store.Set(ctx, testSession("sess-u")))
	unsubscribe()
	require.NoError(t, store.Clear(ctx, "sess-u"))

	assert.Equal(t, 1, calls)
}

func TestStore_SetFailureDoesNotNotify(t *testing.T) {
	backend := &faultySessionStore{inner: memory.NewSessionStore(), saveErr: errors.New("disk full")}
	store := NewStore(backend, nil)

	calls := 0
	store.Subscribe(func(Event) { calls++ })

	err := store.Set(context.Background(), testSession("sess-f"))
	require.Error(t, err)
	assert.Zero(t, calls, "listeners must only observe durable transitions")
}
