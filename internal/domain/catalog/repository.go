package catalog

import "context"

// Filter holds column equalities joined with AND.
type Filter map[string]any

// Repository is the storage contract shared by every catalog entity.
// Keys are the entity's primary key (id or externally assigned code).
//
// Errors carry httperr codes: duplicate on Create, conflict on Update,
// not_found on Update/Delete/FindByKey, in_use on Delete and
// invalid_reference on Create/Update. Any other error is a store failure.
type Repository[T any] interface {
	Create(ctx context.Context, rec *T) error
	Update(ctx context.Context, key uint, rec *T) error
	Delete(ctx context.Context, key uint) error

	FindByKey(ctx context.Context, key uint) (*T, error)
	FindByFilter(ctx context.Context, f Filter) ([]T, error)
	ListAll(ctx context.Context) ([]T, error)
}
