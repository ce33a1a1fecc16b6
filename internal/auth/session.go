package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"rentier/internal/cache"
)

const (
	// SessionCookie is the cookie carrying the signed session token.
	SessionCookie = "rentier_session"

	sessionKeyPrefix = "session:"

	// SessionTTL bounds a plain browsing session.
	SessionTTL = 24 * time.Hour
	// PersistentTTL applies when the user asked to be remembered.
	PersistentTTL = 30 * 24 * time.Hour
)

// ErrNoSession is returned when a session ID resolves to nothing, either
// because it never existed or because it expired or was destroyed.
var ErrNoSession = errors.New("session not found")

// Session is the explicit per-client state passed through the call chain.
// UserID zero means anonymous. PendingRedirect holds the destination of a
// guarded request that bounced to login; it is consumed exactly once.
type Session struct {
	ID              uuid.UUID `json:"id"`
	UserID          uint      `json:"user_id,omitempty"`
	PendingRedirect string    `json:"pending_redirect,omitempty"`
	Persistent      bool      `json:"persistent,omitempty"`
	Created         time.Time `json:"created"`
}

// Authenticated reports whether the session is bound to a user.
func (s *Session) Authenticated() bool { return s.UserID != 0 }

// TTL returns the session's storage lifetime.
func (s *Session) TTL() time.Duration {
	if s.Persistent {
		return PersistentTTL
	}
	return SessionTTL
}

// Store persists sessions keyed by ID.
type Store interface {
	Save(ctx context.Context, session *Session) error
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// RedisStore keeps sessions in redis as JSON with a TTL, so expiry needs no
// sweeper process.
type RedisStore struct {
	cache *cache.Client
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a redis-backed session store.
func NewRedisStore(cache *cache.Client) *RedisStore {
	return &RedisStore{cache: cache}
}

func sessionKey(id uuid.UUID) string {
	return sessionKeyPrefix + id.String()
}

// Save writes the session under its ID with the session's TTL.
func (s *RedisStore) Save(ctx context.Context, session *Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.cache.Set(ctx, sessionKey(session.ID), payload, session.TTL())
}

// Get loads a session by ID, or ErrNoSession when absent.
func (s *RedisStore) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	data, err := s.cache.Get(ctx, sessionKey(id))
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if data == nil {
		return nil, ErrNoSession
	}
	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &session, nil
}

// Delete removes a session. Removing an absent session is not an error.
func (s *RedisStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.cache.Delete(ctx, sessionKey(id))
}

// Manager owns the session lifecycle: anonymous sessions, identity binding at
// login, destruction at logout, and the one-shot redirect-after-login slot.
type Manager struct {
	store  Store
	tokens *TokenService
}

// NewManager creates a session manager.
func NewManager(store Store, tokens *TokenService) *Manager {
	return &Manager{store: store, tokens: tokens}
}

// Begin creates a fresh anonymous session and returns it with its signed
// cookie token.
func (m *Manager) Begin(ctx context.Context) (*Session, string, error) {
	session := &Session{
		ID:      uuid.New(),
		Created: time.Now().UTC(),
	}
	if err := m.store.Save(ctx, session); err != nil {
		return nil, "", err
	}
	token, err := m.tokens.Sign(session.ID, session.TTL())
	if err != nil {
		return nil, "", err
	}
	return session, token, nil
}

// Resolve verifies a cookie token and loads the session it refers to.
func (m *Manager) Resolve(ctx context.Context, token string) (*Session, error) {
	id, err := m.tokens.Parse(token)
	if err != nil {
		return nil, ErrNoSession
	}
	return m.store.Get(ctx, id)
}

// Authenticate binds the user to the session and reissues the cookie token.
// With remember set the session and token outlive the browsing session.
func (m *Manager) Authenticate(ctx context.Context, session *Session, userID uint, remember bool) (string, error) {
	session.UserID = userID
	session.Persistent = remember
	if err := m.store.Save(ctx, session); err != nil {
		return "", err
	}
	return m.tokens.Sign(session.ID, session.TTL())
}

// Destroy clears the session's identity binding by deleting the stored
// session. Destroying an already-destroyed session is not an error.
func (m *Manager) Destroy(ctx context.Context, session *Session) error {
	if session == nil {
		return nil
	}
	return m.store.Delete(ctx, session.ID)
}

// StashRedirect records the originally requested destination so a later
// successful login can return the caller there.
func (m *Manager) StashRedirect(ctx context.Context, session *Session, target string) error {
	session.PendingRedirect = target
	return m.store.Save(ctx, session)
}

// ConsumeRedirect returns the pending destination and clears it. The second
// call returns the empty string: the redirect is one-shot.
func (m *Manager) ConsumeRedirect(ctx context.Context, session *Session) (string, error) {
	target := session.PendingRedirect
	if target == "" {
		return "", nil
	}
	session.PendingRedirect = ""
	if err := m.store.Save(ctx, session); err != nil {
		return "", err
	}
	return target, nil
}
