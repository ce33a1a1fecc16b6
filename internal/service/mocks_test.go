package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"rentier/internal/auth"
	"rentier/internal/model"
	"rentier/internal/oracle"
	"rentier/internal/repository"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockEntryRepository is a mock implementation of repository.EntryRepository.
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) Create(ctx context.Context, entry *model.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) FindByID(ctx context.Context, id uint) (*model.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Entry), args.Error(1)
}

func (m *MockEntryRepository) ListByOwner(ctx context.Context, userID uint, params repository.ListParams) ([]model.Entry, int64, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Entry), args.Get(1).(int64), args.Error(2)
}

func (m *MockEntryRepository) Delete(ctx context.Context, id uint) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockOracle is a mock implementation of oracle.Oracle.
type MockOracle struct {
	mock.Mock
}

func (m *MockOracle) Predict(ctx context.Context, features oracle.Features) (float64, error) {
	args := m.Called(ctx, features)
	return args.Get(0).(float64), args.Error(1)
}

// memSessionStore is an in-memory auth.Store so session lifecycle behavior is
// exercised for real instead of mocked away.
type memSessionStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]auth.Session
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[uuid.UUID]auth.Session)}
}

func (s *memSessionStore) Save(_ context.Context, session *auth.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = *session
	return nil
}

func (s *memSessionStore) Get(_ context.Context, id uuid.UUID) (*auth.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, auth.ErrNoSession
	}
	copied := session
	return &copied, nil
}

func (s *memSessionStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
