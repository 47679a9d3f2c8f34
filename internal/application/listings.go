package application

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/homecove/homecove/internal/domain/entity"
	"github.com/homecove/homecove/pkg/apperr"
	"github.com/homecove/homecove/pkg/helpers"
)

// CreateListingInput carries the fields accepted at listing creation.
// OwnerID defaults to the caller; only admins may set another owner.
type CreateListingInput struct {
	Title       string
	Description string
	Price       float64
	Latitude    float64
	Longitude   float64
	OwnerID     string
	AmenityIDs  []string
}

// listingUpdatable is the allow-list for listing updates. The owner is
// deliberately absent: it is set once at construction and no operation
// may reassign it.
var listingUpdatable = map[string]bool{
	"title":       true,
	"description": true,
	"price":       true,
	"latitude":    true,
	"longitude":   true,
	"amenities":   true,
}

func (f *Facade) CreateListing(ctx context.Context, in CreateListingInput, actor *helpers.Claims) (*entity.Listing, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	ownerID := in.OwnerID
	if ownerID == "" {
		ownerID = actor.AccountID
	}
	if ownerID != actor.AccountID && !actor.Admin {
		return nil, apperr.Forbidden("you can only create listings you own")
	}
	if _, err := f.GetAccount(ctx, ownerID); err != nil {
		return nil, err
	}
	if err := f.resolveAmenities(ctx, in.AmenityIDs); err != nil {
		return nil, err
	}

	listing, err := entity.NewListing(in.Title, in.Description, in.Price, in.Latitude, in.Longitude, ownerID, in.AmenityIDs)
	if err != nil {
		return nil, err
	}
	if err := f.Stores.Listings.Add(ctx, listing); err != nil {
		f.logError(err, "create listing", nil)
		return nil, apperr.Unexpected(err)
	}
	f.indexListing(ctx, listing)
	return listing, nil
}

func (f *Facade) resolveAmenities(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if _, err := f.Stores.Amenities.Get(ctx, id); err != nil {
			return translate(err, "amenity", id)
		}
	}
	return nil
}

func (f *Facade) GetListing(ctx context.Context, id string) (*entity.Listing, error) {
	l, err := f.Stores.Listings.Get(ctx, id)
	return l, translate(err, "place", id)
}

func (f *Facade) GetAllListings(ctx context.Context) ([]*entity.Listing, error) {
	out, err := f.Stores.Listings.GetAll(ctx)
	return out, translate(err, "place", "")
}

// UpdateListing applies allow-listed fields. Any owner key is rejected
// before anything else is looked at — the owner reference is immutable.
func (f *Facade) UpdateListing(ctx context.Context, id string, fields map[string]any, actor *helpers.Claims) (*entity.Listing, error) {
	for _, key := range []string{"owner", "owner_id"} {
		if _, ok := fields[key]; ok {
			return nil, apperr.Malformed(key, "immutable", "the listing owner cannot be changed")
		}
	}
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	listing, err := f.GetListing(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, listing.OwnerID) {
		return nil, apperr.Forbidden("you can only modify your own listings")
	}
	if err := checkAllowed(fields, listingUpdatable); err != nil {
		return nil, err
	}
	if raw, ok := fields["amenities"]; ok {
		ids, isSlice := toStringSlice(raw)
		if !isSlice {
			return nil, apperr.Malformed("amenities", "type", "amenities must be a list of strings")
		}
		if err := f.resolveAmenities(ctx, ids); err != nil {
			return nil, err
		}
	}

	updated, err := f.Stores.Listings.Update(ctx, id, fields)
	if err != nil {
		return nil, translate(err, "place", id)
	}
	f.indexListing(ctx, updated)
	return updated, nil
}

func toStringSlice(v any) ([]string, bool) {
	switch s := v.(type) {
	case []string:
		return s, true
	case []any:
		out := make([]string, 0, len(s))
		for _, e := range s {
			str, ok := e.(string)
			if !ok {
				return nil, false
			}
			out = append(out, str)
		}
		return out, true
	}
	return nil, false
}

// AttachPhoto uploads a cover photo to GCS and stores its URL on the
// listing. Owner-or-admin only.
func (f *Facade) AttachPhoto(ctx context.Context, id string, r io.Reader, filename, contentType string, actor *helpers.Claims) (*entity.Listing, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	listing, err := f.GetListing(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, listing.OwnerID) {
		return nil, apperr.Forbidden("you can only modify your own listings")
	}
	if f.GCS == nil || f.GCSBucket == "" {
		return nil, apperr.Unexpected(fmt.Errorf("object storage not configured"))
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("places", id, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, f.GCS, f.GCSBucket, objectPath, contentType, r)
	if err != nil {
		f.logError(err, "upload listing photo", nil)
		return nil, apperr.Unexpected(err)
	}
	updated, err := f.Stores.Listings.Update(ctx, id, map[string]any{"photo_url": url})
	if err != nil {
		return nil, translate(err, "place", id)
	}
	f.indexListing(ctx, updated)
	return updated, nil
}

// ListingDetail renders a listing with its owner summary, amenities,
// and reviews embedded, the shape the read endpoints answer with.
func (f *Facade) ListingDetail(ctx context.Context, l *entity.Listing) (map[string]any, error) {
	detail := l.Map()

	owner, err := f.GetAccount(ctx, l.OwnerID)
	if err != nil {
		return nil, err
	}
	detail["owner"] = map[string]any{
		"id":         owner.ID,
		"first_name": owner.FirstName,
		"last_name":  owner.LastName,
		"email":      owner.Email,
	}

	amenities := make([]map[string]any, 0, len(l.AmenityIDs))
	for _, id := range l.AmenityIDs {
		a, err := f.Stores.Amenities.Get(ctx, id)
		if err != nil {
			continue // dangling link, skip rather than fail the read
		}
		amenities = append(amenities, map[string]any{"id": a.ID, "name": a.Name})
	}
	detail["amenities"] = amenities

	reviews, err := f.ReviewsByListing(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	reviewList := make([]map[string]any, 0, len(reviews))
	for _, r := range reviews {
		reviewList = append(reviewList, map[string]any{"id": r.ID, "text": r.Text, "rating": r.Rating})
	}
	detail["reviews"] = reviewList
	return detail, nil
}
