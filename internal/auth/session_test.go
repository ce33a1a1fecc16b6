package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory Store for tests.
type memStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]Session
}

func newMemStore() *memStore {
	return &memStore{sessions: make(map[uuid.UUID]Session)}
}

func (s *memStore) Save(_ context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = *session
	return nil
}

func (s *memStore) Get(_ context.Context, id uuid.UUID) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrNoSession
	}
	copied := session
	return &copied, nil
}

func (s *memStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func newTestManager() (*Manager, *memStore) {
	store := newMemStore()
	return NewManager(store, NewTokenService("test-secret")), store
}

func TestTokenService_RoundTrip(t *testing.T) {
	tokens := NewTokenService("test-secret")
	id := uuid.New()

	signed, err := tokens.Sign(id, time.Hour)
	require.NoError(t, err)

	parsed, err := tokens.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestTokenService_RejectsTampering(t *testing.T) {
	signed, err := NewTokenService("test-secret").Sign(uuid.New(), time.Hour)
	require.NoError(t, err)

	_, err = NewTokenService("other-secret").Parse(signed)
	assert.Error(t, err)

	_, err = NewTokenService("test-secret").Parse(signed + "x")
	assert.Error(t, err)
}

func TestManager_BeginResolve(t *testing.T) {
	manager, _ := newTestManager()
	ctx := context.Background()

	session, token, err := manager.Begin(ctx)
	require.NoError(t, err)
	assert.False(t, session.Authenticated())

	resolved, err := manager.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, session.ID, resolved.ID)
	assert.Zero(t, resolved.UserID)
}

func TestManager_Authenticate(t *testing.T) {
	manager, _ := newTestManager()
	ctx := context.Background()

	session, _, err := manager.Begin(ctx)
	require.NoError(t, err)

	token, err := manager.Authenticate(ctx, session, 7, false)
	require.NoError(t, err)

	resolved, err := manager.Resolve(ctx, token)
	require.NoError(t, err)
	assert.True(t, resolved.Authenticated())
	assert.Equal(t, uint(7), resolved.UserID)
	assert.False(t, resolved.Persistent)
	assert.Equal(t, SessionTTL, resolved.TTL())
}

func TestManager_RememberMeExtendsLifetime(t *testing.T) {
	manager, _ := newTestManager()
	ctx := context.Background()

	session, _, err := manager.Begin(ctx)
	require.NoError(t, err)

	token, err := manager.Authenticate(ctx, session, 7, true)
	require.NoError(t, err)

	resolved, err := manager.Resolve(ctx, token)
	require.NoError(t, err)
	assert.True(t, resolved.Persistent)
	assert.Equal(t, PersistentTTL, resolved.TTL())
}

func TestManager_DestroyIsIdempotent(t *testing.T) {
	manager, _ := newTestManager()
	ctx := context.Background()

	session, token, err := manager.Begin(ctx)
	require.NoError(t, err)

	require.NoError(t, manager.Destroy(ctx, session))
	require.NoError(t, manager.Destroy(ctx, session))
	require.NoError(t, manager.Destroy(ctx, nil))

	_, err = manager.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestManager_RedirectIsOneShot(t *testing.T) {
	manager, _ := newTestManager()
	ctx := context.Background()

	session, _, err := manager.Begin(ctx)
	require.NoError(t, err)

	require.NoError(t, manager.StashRedirect(ctx, session, "/history"))

	target, err := manager.ConsumeRedirect(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, "/history", target)

	// Consumed: the second login does not redirect there again.
	target, err = manager.ConsumeRedirect(ctx, session)
	require.NoError(t, err)
	assert.Empty(t, target)

	// And the cleared state survived the round trip through the store.
	stored, err := manager.store.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.PendingRedirect)
}
