package entity

import (
	"strings"

	"github.com/homecove/homecove/pkg/apperr"
)

// Review is authored by an account about a listing. The self-review
// and one-review-per-listing rules span entities and live in the
// facade; this type owns the field rules only.
type Review struct {
	Base
	Text      string
	Rating    int
	ListingID string
	AuthorID  string
}

func NewReview(text string, rating int, listingID, authorID string) (*Review, error) {
	r := &Review{Base: newBase()}
	if err := r.setText(text); err != nil {
		return nil, err
	}
	if err := r.setRating(rating); err != nil {
		return nil, err
	}
	if listingID == "" {
		return nil, apperr.Invalid("place_id", "required", "the review must reference a place")
	}
	if authorID == "" {
		return nil, apperr.Invalid("user_id", "required", "the review must reference an author")
	}
	r.ListingID = listingID
	r.AuthorID = authorID
	return r, nil
}

// Apply accepts place_id and user_id as well: the facade re-runs the
// full creation checks before letting a reference change through.
func (r *Review) Apply(fields map[string]any) error {
	for field, value := range fields {
		var err error
		switch field {
		case "text":
			var s string
			if s, err = asString(field, value); err == nil {
				err = r.setText(s)
			}
		case "rating":
			var n int
			if n, err = asInt(field, value); err == nil {
				err = r.setRating(n)
			}
		case "place_id":
			var s string
			if s, err = asString(field, value); err == nil {
				r.ListingID = s
			}
		case "user_id":
			var s string
			if s, err = asString(field, value); err == nil {
				r.AuthorID = s
			}
		default:
			err = unknownField(field)
		}
		if err != nil {
			return err
		}
	}
	r.Touch()
	return nil
}

func (r *Review) setText(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return apperr.Invalid("text", "required", "text is required and cannot be empty")
	}
	r.Text = v
	return nil
}

func (r *Review) setRating(v int) error {
	if v < 1 || v > 5 {
		return apperr.Invalid("rating", "range", "rating must be between 1 and 5")
	}
	r.Rating = v
	return nil
}

func (r *Review) Map() map[string]any {
	return map[string]any{
		"id":         r.ID,
		"text":       r.Text,
		"rating":     r.Rating,
		"place_id":   r.ListingID,
		"user_id":    r.AuthorID,
		"created_at": r.CreatedAt,
		"updated_at": r.UpdatedAt,
	}
}
