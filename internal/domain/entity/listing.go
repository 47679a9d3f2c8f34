package entity

import (
	"strings"

	"github.com/homecove/homecove/pkg/apperr"
)

// Listing is a place offered for booking. OwnerID is set once at
// construction and is not reachable through Apply.
type Listing struct {
	Base
	Title       string
	Description string
	Price       float64
	Latitude    float64
	Longitude   float64
	OwnerID     string
	AmenityIDs  []string
	PhotoURL    string
}

func NewListing(title, description string, price, latitude, longitude float64, ownerID string, amenityIDs []string) (*Listing, error) {
	l := &Listing{Base: newBase()}
	if err := l.setTitle(title); err != nil {
		return nil, err
	}
	l.setDescription(description)
	if err := l.setPrice(price); err != nil {
		return nil, err
	}
	if err := l.setLatitude(latitude); err != nil {
		return nil, err
	}
	if err := l.setLongitude(longitude); err != nil {
		return nil, err
	}
	if ownerID == "" {
		return nil, apperr.Invalid("owner", "required", "the listing must include an owner")
	}
	l.OwnerID = ownerID
	l.AmenityIDs = append([]string(nil), amenityIDs...)
	return l, nil
}

func (l *Listing) Apply(fields map[string]any) error {
	for field, value := range fields {
		var err error
		switch field {
		case "title":
			var s string
			if s, err = asString(field, value); err == nil {
				err = l.setTitle(s)
			}
		case "description":
			var s string
			if s, err = asString(field, value); err == nil {
				l.setDescription(s)
			}
		case "price":
			var f float64
			if f, err = asFloat(field, value); err == nil {
				err = l.setPrice(f)
			}
		case "latitude":
			var f float64
			if f, err = asFloat(field, value); err == nil {
				err = l.setLatitude(f)
			}
		case "longitude":
			var f float64
			if f, err = asFloat(field, value); err == nil {
				err = l.setLongitude(f)
			}
		case "amenities":
			var ids []string
			if ids, err = asStringSlice(field, value); err == nil {
				l.AmenityIDs = ids
			}
		case "photo_url":
			var s string
			if s, err = asString(field, value); err == nil {
				l.PhotoURL = s
			}
		default:
			err = unknownField(field)
		}
		if err != nil {
			return err
		}
	}
	l.Touch()
	return nil
}

func (l *Listing) setTitle(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return apperr.Invalid("title", "required", "title is required and cannot be empty")
	}
	if len(v) > 100 {
		return apperr.Invalid("title", "max_length", "title is too long, more than 100 characters")
	}
	l.Title = v
	return nil
}

func (l *Listing) setDescription(v string) {
	l.Description = strings.TrimSpace(v)
}

func (l *Listing) setPrice(v float64) error {
	if v <= 0 {
		return apperr.Invalid("price", "positive", "price must be positive")
	}
	l.Price = v
	return nil
}

func (l *Listing) setLatitude(v float64) error {
	if v < -90 || v > 90 {
		return apperr.Invalid("latitude", "range", "latitude must be between -90 and 90")
	}
	l.Latitude = v
	return nil
}

func (l *Listing) setLongitude(v float64) error {
	if v < -180 || v > 180 {
		return apperr.Invalid("longitude", "range", "longitude must be between -180 and 180")
	}
	l.Longitude = v
	return nil
}

func (l *Listing) Map() map[string]any {
	return map[string]any{
		"id":          l.ID,
		"title":       l.Title,
		"description": l.Description,
		"price":       l.Price,
		"latitude":    l.Latitude,
		"longitude":   l.Longitude,
		"owner":       l.OwnerID,
		"amenities":   append([]string(nil), l.AmenityIDs...),
		"photo_url":   l.PhotoURL,
		"created_at":  l.CreatedAt,
		"updated_at":  l.UpdatedAt,
	}
}
