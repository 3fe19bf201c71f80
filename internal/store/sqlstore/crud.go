package sqlstore

import (
	"context"
	"errors"

	"github.com/localnerve/shopdb/internal/models"
	"github.com/localnerve/shopdb/internal/types"
	"gorm.io/gorm"
)

// crud implements store.Repository for any gorm model with a single
// auto-increment primary key.
type crud[T any] struct {
	db     *gorm.DB
	entity string
	table  string
}

func newCrud[T any](db *gorm.DB, entity string) *crud[T] {
	return &crud[T]{db: db, entity: entity, table: tableOf[T]()}
}

func (r *crud[T]) List(ctx context.Context) ([]T, error) {
	rows := make([]T, 0)
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, storageError(err)
	}
	return rows, nil
}

func (r *crud[T]) Get(ctx context.Context, id int64) (*T, error) {
	var row T
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, translate(err, r.entity, id)
	}
	return &row, nil
}

func (r *crud[T]) Create(ctx context.Context, row *T) error {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return storageError(err)
	}
	return nil
}

func (r *crud[T]) Update(ctx context.Context, id int64, patch models.Patch[T]) (*T, error) {
	var row T
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx, r.table).First(&row, id).Error; err != nil {
			return translate(err, r.entity, id)
		}
		patch.Apply(&row)
		return tx.Save(&row).Error
	})
	if err != nil {
		return nil, storageError(err)
	}
	return &row, nil
}

func (r *crud[T]) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(new(T), id)
	if result.Error != nil {
		return storageError(result.Error)
	}
	if result.RowsAffected == 0 {
		return types.NotFound("%s %d not found", r.entity, id)
	}
	return nil
}

// translate maps a gorm lookup failure to the error taxonomy.
func translate(err error, entity string, id int64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.NotFound("%s %d not found", entity, id)
	}
	return storageError(err)
}

// storageError passes typed errors through and wraps driver errors.
// Unique index violations need gorm's TranslateError.
func storageError(err error) error {
	var ce *types.CustomError
	if errors.As(err, &ce) {
		return err
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return types.Duplicate(err)
	}
	return types.StorageUnavailable(err)
}
