// Package memory is the ephemeral storage backend: a process-local
// keyed collection with no persistence across restarts. It exists for
// tests and prototypes and assumes a single writer; the mutex only
// keeps concurrent readers safe.
package memory

import (
	"context"
	"sync"

	"github.com/homecove/homecove/internal/domain/entity"
	"github.com/homecove/homecove/internal/domain/repository"
)

// Store keeps entities of one type keyed by id. Lookups by field go
// through registered extractors so FindByField works uniformly with
// the durable backend. The clone function backs failure atomicity on
// update: fields are applied to a copy, like the durable backend
// applies them to a loaded row, and the copy replaces the stored
// entity only when every field passed.
type Store[T entity.Model] struct {
	mu     sync.RWMutex
	items  map[string]T
	fields map[string]func(T) any
	clone  func(T) T
}

func NewStore[T entity.Model](fields map[string]func(T) any, clone func(T) T) *Store[T] {
	return &Store[T]{items: make(map[string]T), fields: fields, clone: clone}
}

func (s *Store[T]) Add(_ context.Context, e T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[e.EntityID()] = e
	return nil
}

func (s *Store[T]) Get(_ context.Context, id string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.items[id]
	if !ok {
		var zero T
		return zero, repository.ErrNotFound
	}
	return e, nil
}

func (s *Store[T]) GetAll(_ context.Context) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.items))
	for _, e := range s.items {
		out = append(out, e)
	}
	return out, nil
}

// Update delegates to the entity's Apply method so the same validation
// that guards construction guards every mutation. Apply runs against a
// clone: when any field fails, the stored entity is untouched.
func (s *Store[T]) Update(_ context.Context, id string, fields map[string]any) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.items[id]
	if !ok {
		var zero T
		return zero, repository.ErrNotFound
	}
	c := s.clone(e)
	if err := c.Apply(fields); err != nil {
		var zero T
		return zero, err
	}
	s.items[id] = c
	return c, nil
}

// Delete is a silent no-op when the id is absent.
func (s *Store[T]) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	return nil
}

func (s *Store[T]) FindByField(_ context.Context, field string, value any) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	extract, ok := s.fields[field]
	var zero T
	if !ok {
		return zero, repository.ErrNotFound
	}
	for _, e := range s.items {
		if extract(e) == value {
			return e, nil
		}
	}
	return zero, repository.ErrNotFound
}

func (s *Store[T]) FindAllByField(_ context.Context, field string, value any) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	extract, ok := s.fields[field]
	if !ok {
		return nil, nil
	}
	var out []T
	for _, e := range s.items {
		if extract(e) == value {
			out = append(out, e)
		}
	}
	return out, nil
}

// NewStores builds a complete ephemeral backend with the lookup fields
// each facade operation needs.
func NewStores() repository.Stores {
	return repository.Stores{
		Accounts: NewStore(map[string]func(*entity.Account) any{
			"email": func(a *entity.Account) any { return a.Email },
		}, func(a *entity.Account) *entity.Account { c := *a; return &c }),
		Listings: NewStore(map[string]func(*entity.Listing) any{
			"owner_id": func(l *entity.Listing) any { return l.OwnerID },
			"title":    func(l *entity.Listing) any { return l.Title },
		}, func(l *entity.Listing) *entity.Listing {
			c := *l
			c.AmenityIDs = append([]string(nil), l.AmenityIDs...)
			return &c
		}),
		Amenities: NewStore(map[string]func(*entity.Amenity) any{
			"name": func(a *entity.Amenity) any { return a.Name },
		}, func(a *entity.Amenity) *entity.Amenity { c := *a; return &c }),
		Reviews: NewStore(map[string]func(*entity.Review) any{
			"place_id": func(r *entity.Review) any { return r.ListingID },
			"user_id":  func(r *entity.Review) any { return r.AuthorID },
		}, func(r *entity.Review) *entity.Review { c := *r; return &c }),
	}
}
