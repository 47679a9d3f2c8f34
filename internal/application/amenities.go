package application

import (
	"context"
	"errors"
	"strings"

	"github.com/homecove/homecove/internal/domain/entity"
	"github.com/homecove/homecove/internal/domain/repository"
	"github.com/homecove/homecove/pkg/apperr"
	"github.com/homecove/homecove/pkg/helpers"
)

var amenityUpdatable = map[string]bool{
	"name": true,
}

// CreateAmenity is admin-only. The name is trimmed before the
// uniqueness check so " Wifi " and "Wifi" collide.
func (f *Facade) CreateAmenity(ctx context.Context, name string, actor *helpers.Claims) (*entity.Amenity, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	amenity, err := entity.NewAmenity(name)
	if err != nil {
		return nil, err
	}
	if err := f.amenityNameTaken(ctx, amenity.Name, ""); err != nil {
		return nil, err
	}
	if err := f.Stores.Amenities.Add(ctx, amenity); err != nil {
		f.logError(err, "create amenity", nil)
		return nil, apperr.Unexpected(err)
	}
	return amenity, nil
}

func (f *Facade) amenityNameTaken(ctx context.Context, name, excludeID string) error {
	existing, err := f.Stores.Amenities.FindByField(ctx, "name", name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return apperr.Unexpected(err)
	}
	if existing.ID != excludeID {
		return apperr.Conflict("amenity %q is already registered", name)
	}
	return nil
}

func (f *Facade) GetAmenity(ctx context.Context, id string) (*entity.Amenity, error) {
	a, err := f.Stores.Amenities.Get(ctx, id)
	return a, translate(err, "amenity", id)
}

func (f *Facade) GetAllAmenities(ctx context.Context) ([]*entity.Amenity, error) {
	out, err := f.Stores.Amenities.GetAll(ctx)
	return out, translate(err, "amenity", "")
}

func (f *Facade) AmenityByName(ctx context.Context, name string) (*entity.Amenity, error) {
	name = strings.TrimSpace(name)
	a, err := f.Stores.Amenities.FindByField(ctx, "name", name)
	return a, translate(err, "amenity", name)
}

// UpdateAmenity is admin-only; a rename re-checks uniqueness excluding
// this amenity's own id so renaming to the same name is legal.
func (f *Facade) UpdateAmenity(ctx context.Context, id string, fields map[string]any, actor *helpers.Claims) (*entity.Amenity, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if _, err := f.GetAmenity(ctx, id); err != nil {
		return nil, err
	}
	if err := checkAllowed(fields, amenityUpdatable); err != nil {
		return nil, err
	}
	if raw, ok := fields["name"]; ok {
		name, isStr := raw.(string)
		if !isStr {
			return nil, apperr.Malformed("name", "type", "name must be a string")
		}
		if err := f.amenityNameTaken(ctx, strings.TrimSpace(name), id); err != nil {
			return nil, err
		}
	}
	updated, err := f.Stores.Amenities.Update(ctx, id, fields)
	return updated, translate(err, "amenity", id)
}
