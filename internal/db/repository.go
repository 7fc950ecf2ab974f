package db

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

// Repository provides create, find, save and update operations for one table.
type Repository[T any] struct {
	conn *gorm.DB
}

func NewRepository[T any](conn *gorm.DB) *Repository[T] {
	return &Repository[T]{conn: conn}
}

func (r *Repository[T]) Create(ctx context.Context, record *T) error {
	return r.conn.WithContext(ctx).Create(record).Error
}

// CreateBatch inserts all records in one statement. An empty batch is a no-op.
func (r *Repository[T]) CreateBatch(ctx context.Context, records []T) error {
	if len(records) == 0 {
		return nil
	}
	return r.conn.WithContext(ctx).Create(&records).Error
}

func (r *Repository[T]) Save(ctx context.Context, record *T) error {
	return r.conn.WithContext(ctx).Save(record).Error
}

func (r *Repository[T]) Find(ctx context.Context, order string) ([]T, error) {
	records := make([]T, 0)
	query := r.conn.WithContext(ctx)
	if order != "" {
		query = query.Order(order)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *Repository[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	var record T
	if err := r.conn.WithContext(ctx).First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// Update applies the column assignments to rows matching the condition and
// returns the number of affected rows. Values may be gorm expressions.
func (r *Repository[T]) Update(ctx context.Context, columns map[string]any, query string, args ...any) (int64, error) {
	var model T
	result := r.conn.WithContext(ctx).Model(&model).Where(query, args...).Updates(columns)
	return result.RowsAffected, result.Error
}
