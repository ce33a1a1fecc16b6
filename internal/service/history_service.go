package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	apperrors "rentier/internal/errors"
	"rentier/internal/model"
	"rentier/internal/repository"
)

// HistoryService retrieves and deletes a user's prediction history. Every
// operation is ownership scoped: touching someone else's entry is Forbidden,
// never silently not-found.
type HistoryService interface {
	List(ctx context.Context, userID uint, params repository.ListParams) ([]model.Entry, int64, error)
	Get(ctx context.Context, entryID, userID uint) (*model.Entry, error)
	Delete(ctx context.Context, entryID, userID uint) (uint, error)
}

type historyService struct {
	entries repository.EntryRepository
	log     zerolog.Logger
}

// NewHistoryService creates a new history service.
func NewHistoryService(entries repository.EntryRepository, log zerolog.Logger) HistoryService {
	return &historyService{entries: entries, log: log}
}

// List returns the user's entries in the requested order plus the total
// count. Without a page it returns the complete set.
func (s *historyService) List(ctx context.Context, userID uint, params repository.ListParams) ([]model.Entry, int64, error) {
	params, err := params.Normalize()
	if err != nil {
		return nil, 0, err
	}
	entries, total, err := s.entries.ListByOwner(ctx, userID, params)
	if err != nil {
		return nil, 0, &apperrors.StorageError{Op: "list entries", Err: err}
	}
	return entries, total, nil
}

// Get returns a single entry after the ownership check.
func (s *historyService) Get(ctx context.Context, entryID, userID uint) (*model.Entry, error) {
	entry, err := s.findOwned(ctx, entryID, userID)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Delete removes the entry and returns its identifier. The delete is a single
// statement; a concurrent delete losing the race observes NotFound, not a
// partial effect.
func (s *historyService) Delete(ctx context.Context, entryID, userID uint) (uint, error) {
	if _, err := s.findOwned(ctx, entryID, userID); err != nil {
		return 0, err
	}

	affected, err := s.entries.Delete(ctx, entryID)
	if err != nil {
		return 0, &apperrors.StorageError{Op: "delete entry", Err: err}
	}
	if affected == 0 {
		return 0, apperrors.ErrNotFound
	}

	s.log.Info().Uint("user_id", userID).Uint("entry_id", entryID).Msg("entry deleted")
	return entryID, nil
}

func (s *historyService) findOwned(ctx context.Context, entryID, userID uint) (*model.Entry, error) {
	entry, err := s.entries.FindByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, &apperrors.StorageError{Op: "find entry", Err: err}
	}
	if entry.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	return entry, nil
}
