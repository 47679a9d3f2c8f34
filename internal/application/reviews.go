package application

import (
	"context"

	"github.com/homecove/homecove/internal/domain/entity"
	"github.com/homecove/homecove/pkg/apperr"
	"github.com/homecove/homecove/pkg/helpers"
)

// CreateReviewInput carries the fields accepted at review creation.
// AuthorID defaults to the caller; only admins may write as another
// account.
type CreateReviewInput struct {
	Text      string
	Rating    int
	ListingID string
	AuthorID  string
}

var reviewUpdatable = map[string]bool{
	"text":     true,
	"rating":   true,
	"place_id": true,
	"user_id":  true,
}

// CreateReview runs the full cross-entity sequence: resolve listing,
// resolve author, reject self-review, reject duplicate review, then
// construct and store. Existence checks come first so a missing
// reference reports as not-found, not as a rule violation.
func (f *Facade) CreateReview(ctx context.Context, in CreateReviewInput, actor *helpers.Claims) (*entity.Review, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	authorID := in.AuthorID
	if authorID == "" {
		authorID = actor.AccountID
	}
	if authorID != actor.AccountID && !actor.Admin {
		return nil, apperr.Forbidden("you can only write reviews as yourself")
	}

	listing, err := f.GetListing(ctx, in.ListingID)
	if err != nil {
		return nil, err
	}
	if _, err := f.GetAccount(ctx, authorID); err != nil {
		return nil, err
	}
	if err := f.checkReviewRules(ctx, listing, authorID, ""); err != nil {
		return nil, err
	}

	review, err := entity.NewReview(in.Text, in.Rating, listing.ID, authorID)
	if err != nil {
		return nil, err
	}
	if err := f.Stores.Reviews.Add(ctx, review); err != nil {
		f.logError(err, "create review", nil)
		return nil, apperr.Unexpected(err)
	}
	return review, nil
}

// checkReviewRules enforces the two business rules that span entities:
// no self-review, and at most one review per (listing, author) pair.
// excludeID skips the review being updated in the duplicate scan.
func (f *Facade) checkReviewRules(ctx context.Context, listing *entity.Listing, authorID, excludeID string) error {
	if authorID == listing.OwnerID {
		return apperr.Conflict("you cannot review your own place")
	}
	existing, err := f.Stores.Reviews.FindAllByField(ctx, "place_id", listing.ID)
	if err != nil {
		return apperr.Unexpected(err)
	}
	for _, r := range existing {
		if r.AuthorID == authorID && r.ID != excludeID {
			return apperr.Conflict("you have already reviewed this place")
		}
	}
	return nil
}

func (f *Facade) GetReview(ctx context.Context, id string) (*entity.Review, error) {
	r, err := f.Stores.Reviews.Get(ctx, id)
	return r, translate(err, "review", id)
}

func (f *Facade) GetAllReviews(ctx context.Context) ([]*entity.Review, error) {
	out, err := f.Stores.Reviews.GetAll(ctx)
	return out, translate(err, "review", "")
}

// ReviewsByListing returns all reviews for one listing.
func (f *Facade) ReviewsByListing(ctx context.Context, listingID string) ([]*entity.Review, error) {
	if _, err := f.GetListing(ctx, listingID); err != nil {
		return nil, err
	}
	out, err := f.Stores.Reviews.FindAllByField(ctx, "place_id", listingID)
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	return out, nil
}

// UpdateReview applies allow-listed fields. An update that changes the
// listing or author reference is treated as a re-creation: both
// references are re-resolved and the self-review and duplicate-review
// rules re-run against the new pair.
func (f *Facade) UpdateReview(ctx context.Context, id string, fields map[string]any, actor *helpers.Claims) (*entity.Review, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	review, err := f.GetReview(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, review.AuthorID) {
		return nil, apperr.Forbidden("you can only modify your own reviews")
	}
	if err := checkAllowed(fields, reviewUpdatable); err != nil {
		return nil, err
	}

	listingID := review.ListingID
	authorID := review.AuthorID
	refChanged := false
	if raw, ok := fields["place_id"]; ok {
		s, isStr := raw.(string)
		if !isStr {
			return nil, apperr.Malformed("place_id", "type", "place_id must be a string")
		}
		listingID = s
		refChanged = true
	}
	if raw, ok := fields["user_id"]; ok {
		s, isStr := raw.(string)
		if !isStr {
			return nil, apperr.Malformed("user_id", "type", "user_id must be a string")
		}
		authorID = s
		refChanged = true
	}
	if refChanged {
		listing, err := f.GetListing(ctx, listingID)
		if err != nil {
			return nil, err
		}
		if _, err := f.GetAccount(ctx, authorID); err != nil {
			return nil, err
		}
		if err := f.checkReviewRules(ctx, listing, authorID, review.ID); err != nil {
			return nil, err
		}
	}

	updated, err := f.Stores.Reviews.Update(ctx, id, fields)
	return updated, translate(err, "review", id)
}

// DeleteReview removes a review. Deleting an id that has already been
// removed is surfaced as not-found here because the facade confirms
// existence first; the storage delete itself is a no-op on absence.
func (f *Facade) DeleteReview(ctx context.Context, id string, actor *helpers.Claims) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	review, err := f.GetReview(ctx, id)
	if err != nil {
		return err
	}
	if !canManage(actor, review.AuthorID) {
		return apperr.Forbidden("you can only delete your own reviews")
	}
	if err := f.Stores.Reviews.Delete(ctx, id); err != nil {
		return apperr.Unexpected(err)
	}
	return nil
}
