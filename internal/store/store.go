package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned by lookups whose row does not exist.
var ErrNotFound = errors.New("store: record not found")

// Store defines the interface for all database operations. Every method runs
// against the store's connection, or against the open transaction when the
// store was handed to a Transaction callback.
type Store interface {
	DB() *gorm.DB
	Transaction(ctx context.Context, fn func(tx Store) error) error

	RoomStore
	ReservationStore
	PaymentStore
	UserStore
	AdminStore
	SubscriptionStore
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// DB exposes the underlying connection.
func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// Transaction runs fn inside a single database transaction. Any error
// returned by fn rolls the transaction back.
func (s *gormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

func (s *gormStore) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// first loads a single row into dest and maps a missing row to ErrNotFound.
func first(q *gorm.DB, dest any, what string, conds ...any) error {
	err := q.First(dest, conds...).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", what, err)
	}
	return nil
}

func exists(q *gorm.DB, what string) (bool, error) {
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count %s: %w", what, err)
	}
	return count > 0, nil
}
