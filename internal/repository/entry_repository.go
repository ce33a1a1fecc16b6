package repository

import (
	"context"

	"gorm.io/gorm"

	"rentier/internal/model"
)

// EntryRepository defines entry persistence operations. Entries have no
// update path: the record of a historical prediction is immutable.
type EntryRepository interface {
	Create(ctx context.Context, entry *model.Entry) error
	FindByID(ctx context.Context, id uint) (*model.Entry, error)
	ListByOwner(ctx context.Context, userID uint, params ListParams) ([]model.Entry, int64, error)
	Delete(ctx context.Context, id uint) (int64, error)
}

type entryRepository struct {
	db *gorm.DB
}

// NewEntryRepository builds a GORM-backed repository.
func NewEntryRepository(db *gorm.DB) EntryRepository {
	return &entryRepository{db: db}
}

func (r *entryRepository) Create(ctx context.Context, entry *model.Entry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *entryRepository) FindByID(ctx context.Context, id uint) (*model.Entry, error) {
	var entry model.Entry
	if err := r.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListByOwner returns the owner's entries in the requested order together
// with the total count for pagination controls. params must already be
// normalized.
func (r *entryRepository) ListByOwner(ctx context.Context, userID uint, params ListParams) ([]model.Entry, int64, error) {
	scoped := r.db.WithContext(ctx).Model(&model.Entry{}).Where("user_id = ?", userID)

	var total int64
	if err := scoped.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := scoped.Order(params.OrderClause())
	if params.Page > 0 {
		query = query.Offset(params.Offset()).Limit(params.PageSize)
	}

	var entries []model.Entry
	if err := query.Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// Delete removes an entry by ID and reports how many rows went away. Zero
// means someone else won a concurrent delete; the storage engine guarantees
// the row is either fully gone or untouched.
func (r *entryRepository) Delete(ctx context.Context, id uint) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&model.Entry{}, id)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
