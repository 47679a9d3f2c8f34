// Package repository defines the uniform storage contract implemented
// by the ephemeral in-process store and the durable Postgres store.
// Callers never branch on which backend is active.
package repository

import (
	"context"
	"errors"

	"github.com/homecove/homecove/internal/domain/entity"
)

// ErrNotFound is returned by Get/Update/FindByField when no entity
// matches. Backends translate their own absence signals to it.
var ErrNotFound = errors.New("not found")

// Store is the uniform operation set over one entity type.
//
// Update applies a partial field map through the entity's own Apply
// method, so entity-level validation runs regardless of backend.
// Delete of a nonexistent id is a no-op. FindByField returns the first
// match.
type Store[T entity.Model] interface {
	Add(ctx context.Context, e T) error
	Get(ctx context.Context, id string) (T, error)
	GetAll(ctx context.Context) ([]T, error)
	Update(ctx context.Context, id string, fields map[string]any) (T, error)
	Delete(ctx context.Context, id string) error
	FindByField(ctx context.Context, field string, value any) (T, error)
	FindAllByField(ctx context.Context, field string, value any) ([]T, error)
}

// Stores bundles the four entity stores a facade operates on; both
// backends provide a complete set.
type Stores struct {
	Accounts  Store[*entity.Account]
	Listings  Store[*entity.Listing]
	Amenities Store[*entity.Amenity]
	Reviews   Store[*entity.Review]
}
