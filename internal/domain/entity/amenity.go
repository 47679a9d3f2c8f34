package entity

import (
	"strings"

	"github.com/homecove/homecove/pkg/apperr"
)

// Amenity is an equipment or service a listing can offer. Names are
// trimmed before comparison and storage; uniqueness is checked by the
// facade against the active backend.
type Amenity struct {
	Base
	Name string
}

func NewAmenity(name string) (*Amenity, error) {
	a := &Amenity{Base: newBase()}
	if err := a.setName(name); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Amenity) Apply(fields map[string]any) error {
	for field, value := range fields {
		var err error
		switch field {
		case "name":
			var s string
			if s, err = asString(field, value); err == nil {
				err = a.setName(s)
			}
		default:
			err = unknownField(field)
		}
		if err != nil {
			return err
		}
	}
	a.Touch()
	return nil
}

func (a *Amenity) setName(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return apperr.Invalid("name", "required", "name is required and cannot be empty")
	}
	if len(v) > 50 {
		return apperr.Invalid("name", "max_length", "name is too long, more than 50 characters")
	}
	a.Name = v
	return nil
}

func (a *Amenity) Map() map[string]any {
	return map[string]any{
		"id":         a.ID,
		"name":       a.Name,
		"created_at": a.CreatedAt,
		"updated_at": a.UpdatedAt,
	}
}
