package session

import (
	"context"
	"errors"
	"testing"

	domainauth "github.com/academica/progress-ui-api/internal/domain/auth"
	"github.com/academica/progress-ui-api/internal/mocks"
	"github.com/academica/progress-ui-api/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// Scripted backend failures, driven through gomock where the exact call
// sequence matters.

func TestRestore_CorruptRecordIsDeletedExactlyOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockSessionStore(ctrl)
	gomock.InOrder(
		backend.EXPECT().Get(gomock.Any(), "sess-bad").Return(domainauth.Session{}, ports.ErrSessionCorrupt),
		backend.EXPECT().Delete(gomock.Any(), "sess-bad").Return(nil),
	)

	store := NewStore(backend, nil)
	sess, resolved := store.Restore(context.Background(), "sess-bad")

	assert.Nil(t, sess)
	assert.True(t, resolved, "corrupt data resolves to the logged-out state")
}

func TestRestore_CorruptCleanupFailureStillResolves(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockSessionStore(ctrl)
	backend.EXPECT().Get(gomock.Any(), "sess-bad").Return(domainauth.Session{}, ports.ErrSessionCorrupt)
	backend.EXPECT().Delete(gomock.Any(), "sess-bad").Return(errors.New("delete failed"))

	store := NewStore(backend, nil)
	sess, resolved := store.Restore(context.Background(), "sess-bad")

	assert.Nil(t, sess)
	assert.True(t, resolved, "a failed cleanup must not block the logged-out resolution")
}

func TestClear_BackendFailureSkipsNotification(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockSessionStore(ctrl)
	backend.EXPECT().Delete(gomock.Any(), "sess-1").Return(errors.New("delete failed"))

	store := NewStore(backend, nil)
	var events int
	defer store.Subscribe(func(Event) { events++ })()

	require.Error(t, store.Clear(context.Background(), "sess-1"))
	assert.Zero(t, events, "listeners must not observe a delete that never became durable")
}
