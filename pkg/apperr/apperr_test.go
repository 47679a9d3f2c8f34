package apperr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryChecks(t *testing.T) {
	assert.True(t, IsMalformed(Malformed("price", "type", "price must be a number")))
	assert.True(t, IsInvalid(Invalid("rating", "range", "rating must be between 1 and 5")))
	assert.True(t, IsConflict(Conflict("email already registered")))
	assert.True(t, IsNotFound(NotFound("place", "abc")))
	assert.True(t, IsUnauthorized(Unauthorized("")))
	assert.True(t, IsForbidden(Forbidden("")))
	assert.True(t, IsUnexpected(Unexpected(errors.New("boom"))))

	assert.False(t, IsConflict(NotFound("place", "abc")))
	assert.False(t, IsNotFound(nil))
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{Malformed("f", "type", "m"), http.StatusBadRequest},
		{Invalid("f", "range", "m"), http.StatusBadRequest},
		{NotFound("place", "x"), http.StatusNotFound},
		{Conflict("taken"), http.StatusConflict},
		{Unauthorized(""), http.StatusUnauthorized},
		{Forbidden(""), http.StatusForbidden},
		{Unexpected(errors.New("boom")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(tc.err))
	}
}

func TestDetails(t *testing.T) {
	d := Details(Invalid("rating", "range", "rating must be between 1 and 5"))
	assert.Equal(t, map[string]string{"rating": "rating must be between 1 and 5"}, d)

	assert.Nil(t, Details(Conflict("taken")))
	assert.Nil(t, Details(nil))
}

func TestUnexpectedNil(t *testing.T) {
	assert.NoError(t, Unexpected(nil))
}

func TestWrappingPreservesMessage(t *testing.T) {
	err := NotFound("amenity", "42")
	assert.Equal(t, `amenity "42" not found`, err.Error())
	assert.Equal(t, "amenity not found", NotFound("amenity", "").Error())
}
