package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homecove/homecove/pkg/apperr"
)

func TestNewReview(t *testing.T) {
	r, err := NewReview("great stay", 5, "place-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, 5, r.Rating)
	assert.Equal(t, "place-1", r.ListingID)
	assert.Equal(t, "user-1", r.AuthorID)
}

func TestNewReviewRatingBounds(t *testing.T) {
	for _, rating := range []int{0, -1, 6, 100} {
		_, err := NewReview("text", rating, "place-1", "user-1")
		assert.True(t, apperr.IsInvalid(err), "rating %d", rating)
	}
	for _, rating := range []int{1, 5} {
		_, err := NewReview("text", rating, "place-1", "user-1")
		assert.NoError(t, err, "rating %d", rating)
	}
}

func TestNewReviewRequiresText(t *testing.T) {
	_, err := NewReview("", 3, "place-1", "user-1")
	assert.True(t, apperr.IsInvalid(err))
}

func TestReviewApplyRejectsFractionalRating(t *testing.T) {
	r, err := NewReview("fine", 3, "place-1", "user-1")
	require.NoError(t, err)

	// JSON numbers arrive as float64; only integral values are ratings
	require.NoError(t, r.Apply(map[string]any{"rating": float64(4)}))
	assert.Equal(t, 4, r.Rating)

	err = r.Apply(map[string]any{"rating": 4.5})
	assert.True(t, apperr.IsMalformed(err))
}

func TestAmenityName(t *testing.T) {
	a, err := NewAmenity("  WiFi  ")
	require.NoError(t, err)
	assert.Equal(t, "WiFi", a.Name)

	_, err = NewAmenity("   ")
	assert.True(t, apperr.IsInvalid(err))

	long := make([]byte, 51)
	for i := range long {
		long[i] = 'a'
	}
	_, err = NewAmenity(string(long))
	assert.True(t, apperr.IsInvalid(err))
}
