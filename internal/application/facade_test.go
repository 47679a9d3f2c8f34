package application

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homecove/homecove/internal/domain/entity"
	"github.com/homecove/homecove/internal/infrastructure/memory"
	"github.com/homecove/homecove/pkg/apperr"
	"github.com/homecove/homecove/pkg/helpers"
)

func newTestFacade() *Facade {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	jwt := helpers.NewJWTManager("test-access", "test-refresh", time.Hour, 24*time.Hour)
	return NewFacade(memory.NewStores(), jwt, logger)
}

func mustRegister(t *testing.T, f *Facade, email string, admin bool) *entity.Account {
	t.Helper()
	var actor *helpers.Claims
	if admin {
		actor = &helpers.Claims{AccountID: "bootstrap", Admin: true}
	}
	a, err := f.RegisterAccount(context.Background(), RegisterInput{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  "password123",
		IsAdmin:   admin,
	}, actor)
	require.NoError(t, err)
	return a
}

func claimsFor(a *entity.Account) *helpers.Claims {
	return &helpers.Claims{AccountID: a.ID, Admin: a.IsAdmin}
}

func TestRegisterAccount(t *testing.T) {
	f := newTestFacade()
	a := mustRegister(t, f, "amelia@example.com", false)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, "password123", a.PasswordHash)
	assert.True(t, helpers.CheckPassword(a.PasswordHash, "password123"))
}

func TestRegisterAccountDuplicateEmail(t *testing.T) {
	f := newTestFacade()
	mustRegister(t, f, "dup@example.com", false)

	_, err := f.RegisterAccount(context.Background(), RegisterInput{
		FirstName: "Other", LastName: "User", Email: "DUP@Example.com", Password: "password123",
	}, nil)
	assert.True(t, apperr.IsConflict(err))
}

func TestRegisterAccountAdminFlagNeedsAdminActor(t *testing.T) {
	f := newTestFacade()
	ctx := context.Background()

	a, err := f.RegisterAccount(ctx, RegisterInput{
		FirstName: "Sly", LastName: "User", Email: "sly@example.com", Password: "password123", IsAdmin: true,
	}, nil)
	require.NoError(t, err)
	assert.False(t, a.IsAdmin, "anonymous registration cannot mint admins")

	b := mustRegister(t, f, "boss@example.com", true)
	assert.True(t, b.IsAdmin)
}

func TestUpdateAccountAuthorization(t *testing.T) {
	f := newTestFacade()
	ctx := context.Background()
	owner := mustRegister(t, f, "owner@example.com", false)
	other := mustRegister(t, f, "other@example.com", false)
	admin := mustRegister(t, f, "root@example.com", true)

	_, err := f.UpdateAccount(ctx, owner.ID, map[string]any{"first_name": "X"}, nil)
	assert.True(t, apperr.IsUnauthorized(err))

	_, err = f.UpdateAccount(ctx, owner.ID, map[string]any{"first_name": "X"}, claimsFor(other))
	assert.True(t, apperr.IsForbidden(err))

	updated, err := f.UpdateAccount(ctx, owner.ID, map[string]any{"first_name": "Self"}, claimsFor(owner))
	require.NoError(t, err)
	assert.Equal(t, "Self", updated.FirstName)

	updated, err = f.UpdateAccount(ctx, owner.ID, map[string]any{"last_name": "ByAdmin"}, claimsFor(admin))
	require.NoError(t, err)
	assert.Equal(t, "ByAdmin", updated.LastName)
}

func TestUpdateAccountAllowList(t *testing.T) {
	f := newTestFacade()
	ctx := context.Background()
	a := mustRegister(t, f, "strict@example.com", false)

	_, err := f.UpdateAccount(ctx, a.ID, map[string]any{"created_at": "2001-01-01"}, claimsFor(a))
	assert.True(t, apperr.IsMalformed(err))

	// only admins may touch the admin flag
	_, err = f.UpdateAccount(ctx, a.ID, map[string]any{"is_admin": true}, claimsFor(a))
	assert.True(t, apperr.IsForbidden(err))
}

func TestUpdateAccountEmailConflict(t *testing.T) {
	f := newTestFacade()
	ctx := context.Background()
	a := mustRegister(t, f, "a@example.com", false)
	mustRegister(t, f, "b@example.com", false)

	_, err := f.UpdateAccount(ctx, a.ID, map[string]any{"email": "b@example.com"}, claimsFor(a))
	assert.True(t, apperr.IsConflict(err))

	// re-saving your own address is not a conflict
	_, err = f.UpdateAccount(ctx, a.ID, map[string]any{"email": "A@Example.com"}, claimsFor(a))
	assert.NoError(t, err)
}

func TestUpdateAccountPassword(t *testing.T) {
	f := newTestFacade()
	ctx := context.Background()
	a := mustRegister(t, f, "pw@example.com", false)

	updated, err := f.UpdateAccount(ctx, a.ID, map[string]any{"password": "newsecret99"}, claimsFor(a))
	require.NoError(t, err)
	assert.True(t, helpers.CheckPassword(updated.PasswordHash, "newsecret99"))
	assert.False(t, helpers.CheckPassword(updated.PasswordHash, "password123"))
}

func TestLoginAndRefresh(t *testing.T) {
	f := newTestFacade()
	ctx := context.Background()
	mustRegister(t, f, "login@example.com", false)

	_, _, err := f.Login(ctx, "login@example.com", "wrong-password")
	assert.True(t, apperr.IsUnauthorized(err))

	_, _, err = f.Login(ctx, "ghost@example.com", "password123")
	assert.True(t, apperr.IsUnauthorized(err))

	account, pair, err := f.Login(ctx, "login@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := f.JWT.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, account.ID, claims.AccountID)

	access, exp, err := f.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.True(t, exp.After(time.Now()))

	_, _, err = f.Refresh(ctx, pair.AccessToken) // wrong token type
	assert.True(t, apperr.IsUnauthorized(err))
}

func TestCreateListing(t *testing.T) {
	f := newTestFacade()
	ctx := context.Background()
	owner := mustRegister(t, f, "host@example.com", false)

	_, err := f.CreateListing(ctx, CreateListingInput{Title: "T", Price: 10}, nil)
	assert.True(t, apperr.IsUnauthorized(err))

	l, err := f.CreateListing(ctx, CreateListingInput{Title: "Cabin", Price: 80, Latitude: 45, Longitude: 6}, claimsFor(owner))
	require.NoError(t, err)
	assert.Equal(t, owner.ID, l.OwnerID, "owner defaults to the caller")
}

func TestCreateListingForOtherOwner(t *testing.T) {
	f := newTestFacade()
	ctx := context.Background()
	host := mustRegister(t, f, "host2@example.com", false)
	admin := mustRegister(t, f, "admin2@example.com", true)

	_, err := f.CreateListing(ctx, CreateListingInput{Title: "T", Price: 10, OwnerID: admin.ID}, claimsFor(host))
	assert.True(t, apperr.IsForbidden(err))

	l, err := f.CreateListing(ctx, CreateListingInput{Title: "T", Price: 10, OwnerID: host.ID}, claimsFor(admin))
	require.NoError(t, err)
	assert.Equal(t, host.ID, l.OwnerID)

	_, err = f.CreateListing(ctx, CreateListingInput{Title: "T", Price: 10, OwnerID: "no-such-account"}, claimsFor(admin))
	assert.True(t, apperr.IsNotFound(err))
}

func TestCreateListingUnknownAmenity(t *testing.T) {
	f := newTestFacade()
	ctx := context.Background()
	owner := mustRegister(t, f, "host3@example.com", false)

	_, err := f.CreateListing(ctx, CreateListingInput{
		Title: "T", Price: 10, AmenityIDs: []string{"missing-amenity"},
	}, claimsFor(owner))
	assert.True(t, apperr.IsNotFound(err))
}

func TestUpdateListingOwnerImmutable(t *testing.T) {
	f := newTestFacade()
	ctx := context.Background()
	owner := mustRegister(t, f, "host4@example.com", false)
	l, err := f.CreateListing(ctx, CreateListingInput{Title: "T", Price: 10}, claimsFor(owner))
	require.NoError(t, err)

	for _, field := range []string{"owner", "owner_id"} {
		_, err = f.UpdateListing(ctx, l.ID, map[string]any{field: "someone"}, claimsFor(owner))
		assert.True(t, apperr.IsMalformed(err), "field %s", field)
	}
}

func TestUpdateListingAuthorization(t *testing.T) {
	f := newTestFacade()
	ctx := context.Background()
	owner := mustRegister(t, f, "host5@example.com", false)
	other := mustRegister(t, f, "guest5@example.com", false)
	admin := mustRegister(t, f, "admin5@example.com", true)

	l, err := f.CreateListing(ctx, CreateListingInput{Title: "T", Price: 10}, claimsFor(owner))
	require.NoError(t, err)

	_, err = f.UpdateListing(ctx, l.ID, map[string]any{"price": 20.0}, claimsFor(other))
	assert.True(t, apperr.IsForbidden(err))

	updated, err := f.UpdateListing(ctx, l.ID, map[string]any{"price": 20.0}, claimsFor(admin))
	require.NoError(t, err)
	assert.Equal(t, 20.0, updated.Price)

	_, err = f.UpdateListing(ctx, "no-such-listing", map[string]any{"price": 20.0}, claimsFor(owner))
	assert.True(t, apperr.IsNotFound(err))
}

func TestAmenityAdminGate(t *testing.T) {
	f := newTestFacade()
	ctx := context.Background()
	user := mustRegister(t, f, "user6@example.com", false)
	admin := mustRegister(t, f, "admin6@example.com", true)

	_, err := f.CreateAmenity(ctx, "WiFi", nil)
	assert.True(t, apperr.IsUnauthorized(err))

	_, err = f.CreateAmenity(ctx, "WiFi", claimsFor(user))
	assert.True(t, apperr.IsForbidden(err))

	a, err := f.CreateAmenity(ctx, "WiFi", claimsFor(admin))
	require.NoError(t, err)
	assert.Equal(t, "WiFi", a.Name)
}

func TestAmenityNameUnique(t *testing.T) {
	f := newTestFacade()
	ctx := context.Background()
	admin := mustRegister(t, f, "admin7@example.com", true)

	_, err := f.CreateAmenity(ctx, "Pool", claimsFor(admin))
	require.NoError(t, err)

	_, err = f.CreateAmenity(ctx, "  Pool ", claimsFor(admin))
	assert.True(t, apperr.IsConflict(err), "trimmed duplicate must collide")

	b, err := f.CreateAmenity(ctx, "Sauna", claimsFor(admin))
	require.NoError(t, err)

	_, err = f.UpdateAmenity(ctx, b.ID, map[string]any{"name": "Pool"}, claimsFor(admin))
	assert.True(t, apperr.IsConflict(err))

	// renaming to your own current name is allowed
	_, err = f.UpdateAmenity(ctx, b.ID, map[string]any{"name": "Sauna"}, claimsFor(admin))
	assert.NoError(t, err)
}

func TestCreateReviewRules(t *testing.T) {
	f := newTestFacade()
	ctx := context.Background()
	host := mustRegister(t, f, "host8@example.com", false)
	guest := mustRegister(t, f, "guest8@example.com", false)

	l, err := f.CreateListing(ctx, CreateListingInput{Title: "T", Price: 10}, claimsFor(host))
	require.NoError(t, err)

	_, err = f.CreateReview(ctx, CreateReviewInput{Text: "mine!", Rating: 5, ListingID: l.ID}, claimsFor(host))
	assert.True(t, apperr.IsConflict(err), "self-review must be rejected")

	r, err := f.CreateReview(ctx, CreateReviewInput{Text: "lovely", Rating: 5, ListingID: l.ID}, claimsFor(guest))
	require.NoError(t, err)
	assert.Equal(t, guest.ID, r.AuthorID)

	_, err = f.CreateReview(ctx, CreateReviewInput{Text: "again", Rating: 4, ListingID: l.ID}, claimsFor(guest))
	assert.True(t, apperr.IsConflict(err), "second review of the same place must be rejected")

	_, err = f.CreateReview(ctx, CreateReviewInput{Text: "x", Rating: 3, ListingID: "no-such-place"}, claimsFor(guest))
	assert.True(t, apperr.IsNotFound(err))
}

func TestUpdateReviewReferenceChange(t *testing.T) {
	f := newTestFacade()
	ctx := context.Background()
	host := mustRegister(t, f, "host9@example.com", false)
	guest := mustRegister(t, f, "guest9@example.com", false)

	ownPlace, err := f.CreateListing(ctx, CreateListingInput{Title: "Mine", Price: 10}, claimsFor(guest))
	require.NoError(t, err)
	theirPlace, err := f.CreateListing(ctx, CreateListingInput{Title: "Theirs", Price: 10}, claimsFor(host))
	require.NoError(t, err)

	r, err := f.CreateReview(ctx, CreateReviewInput{Text: "nice", Rating: 4, ListingID: theirPlace.ID}, claimsFor(guest))
	require.NoError(t, err)

	// repointing the review at the author's own place re-runs the rules
	_, err = f.UpdateReview(ctx, r.ID, map[string]any{"place_id": ownPlace.ID}, claimsFor(guest))
	assert.True(t, apperr.IsConflict(err))

	updated, err := f.UpdateReview(ctx, r.ID, map[string]any{"rating": 2}, claimsFor(guest))
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Rating)
}

func TestDeleteReview(t *testing.T) {
	f := newTestFacade()
	ctx := context.Background()
	host := mustRegister(t, f, "host10@example.com", false)
	guest := mustRegister(t, f, "guest10@example.com", false)
	admin := mustRegister(t, f, "admin10@example.com", true)

	l, err := f.CreateListing(ctx, CreateListingInput{Title: "T", Price: 10}, claimsFor(host))
	require.NoError(t, err)
	r, err := f.CreateReview(ctx, CreateReviewInput{Text: "ok", Rating: 3, ListingID: l.ID}, claimsFor(guest))
	require.NoError(t, err)

	err = f.DeleteReview(ctx, r.ID, claimsFor(host))
	assert.True(t, apperr.IsForbidden(err), "only the author or an admin may delete")

	require.NoError(t, f.DeleteReview(ctx, r.ID, claimsFor(admin)))
	_, err = f.GetReview(ctx, r.ID)
	assert.True(t, apperr.IsNotFound(err))

	// gone reviews stay gone
	r2, err := f.CreateReview(ctx, CreateReviewInput{Text: "ok", Rating: 3, ListingID: l.ID}, claimsFor(guest))
	require.NoError(t, err)
	require.NoError(t, f.DeleteReview(ctx, r2.ID, claimsFor(guest)))
}

func TestReviewsByListing(t *testing.T) {
	f := newTestFacade()
	ctx := context.Background()
	host := mustRegister(t, f, "host11@example.com", false)
	g1 := mustRegister(t, f, "g11a@example.com", false)
	g2 := mustRegister(t, f, "g11b@example.com", false)

	l, err := f.CreateListing(ctx, CreateListingInput{Title: "T", Price: 10}, claimsFor(host))
	require.NoError(t, err)

	for _, g := range []*entity.Account{g1, g2} {
		_, err := f.CreateReview(ctx, CreateReviewInput{Text: "ok", Rating: 4, ListingID: l.ID}, claimsFor(g))
		require.NoError(t, err)
	}

	reviews, err := f.ReviewsByListing(ctx, l.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)

	_, err = f.ReviewsByListing(ctx, "no-such-place")
	assert.True(t, apperr.IsNotFound(err))
}

func TestListingDetail(t *testing.T) {
	f := newTestFacade()
	ctx := context.Background()
	host := mustRegister(t, f, "host12@example.com", false)
	admin := mustRegister(t, f, "admin12@example.com", true)

	wifi, err := f.CreateAmenity(ctx, "WiFi", claimsFor(admin))
	require.NoError(t, err)

	l, err := f.CreateListing(ctx, CreateListingInput{
		Title: "Detailed", Price: 10, AmenityIDs: []string{wifi.ID},
	}, claimsFor(host))
	require.NoError(t, err)

	detail, err := f.ListingDetail(ctx, l)
	require.NoError(t, err)
	assert.Equal(t, "Detailed", detail["title"])
	assert.NotNil(t, detail["owner"])
	assert.NotNil(t, detail["amenities"])
}

func TestSearchWithoutBackend(t *testing.T) {
	f := newTestFacade()
	hits, err := f.SearchListings(context.Background(), "cabin", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
