package database

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"

	"github.com/rpupo63/portfolio-backend/errs"
)

// Source is a read strategy for one content kind. The store-backed source is always present;
// snapshot-backed kinds put a flat-file source in front of it.
type Source[T any] interface {
	// List returns every record, ascending by order.
	List(ctx context.Context) ([]T, error)
	// Get returns the record with the external id, or nil when there is none.
	Get(ctx context.Context, id string) (*T, error)
}

// storeSource reads straight from the persistent store.
type storeSource[T any, P Entity[T]] struct {
	db   *gorm.DB
	kind string
}

func (s storeSource[T, P]) List(ctx context.Context) ([]T, error) {
	items := make([]T, 0)
	err := s.db.WithContext(ctx).
		Order("sort_order ASC").
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, errs.NewDatabaseError("list", s.kind, err)
	}
	return items, nil
}

func (s storeSource[T, P]) Get(ctx context.Context, id string) (*T, error) {
	return s.get(s.db.WithContext(ctx), id)
}

// getPrimary reads from the primary so a write path never acts on replica lag.
func (s storeSource[T, P]) getPrimary(ctx context.Context, id string) (*T, error) {
	return s.get(s.db.WithContext(ctx).Clauses(dbresolver.Write), id)
}

func (s storeSource[T, P]) get(tx *gorm.DB, id string) (*T, error) {
	var items []T
	if err := tx.Where("id = ?", id).Limit(1).Find(&items).Error; err != nil {
		return nil, errs.NewDatabaseError("find", s.kind, err)
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}
