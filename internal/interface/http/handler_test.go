package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homecove/homecove/internal/application"
	"github.com/homecove/homecove/internal/infrastructure/memory"
	"github.com/homecove/homecove/internal/interface/middleware"
	"github.com/homecove/homecove/pkg/helpers"
	"github.com/homecove/homecove/pkg/validation"
)

func testRouter(t *testing.T) (*gin.Engine, *application.Facade) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	jwt := helpers.NewJWTManager("test-access", "test-refresh", time.Hour, 24*time.Hour)
	facade := application.NewFacade(memory.NewStores(), jwt, logger)

	cookies := helpers.NewCookie("localhost", false)
	authH := NewAuthHandler(facade, logger, cookies)
	placeH := NewListingHandler(facade, logger)
	reviewH := NewReviewHandler(facade, logger)
	amenityH := NewAmenityHandler(facade, logger)

	r := gin.New()
	api := r.Group("/api/v1")
	api.POST("/register", authH.Register)
	api.POST("/login", authH.Login)
	api.POST("/refresh", authH.Refresh)
	api.GET("/places", placeH.List)
	api.GET("/places/:id", placeH.Get)
	api.GET("/places/:id/reviews", reviewH.ListByPlace)

	auth := api.Group("/")
	auth.Use(middleware.JWTAuth(jwt))
	auth.POST("/places", placeH.Create)
	auth.PUT("/places/:id", placeH.Update)
	auth.POST("/reviews", reviewH.Create)
	auth.POST("/amenities", amenityH.Create)

	return r, facade
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerAndLogin(t *testing.T, r *gin.Engine, email string) (string, string) {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/v1/register", "", gin.H{
		"first_name": "Test", "last_name": "User", "email": email, "password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, r, http.MethodPost, "/api/v1/login", "", gin.H{"email": email, "password": "password123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var login struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.Data.AccessToken)
	return login.Data.AccessToken, created.Data["id"].(string)
}

func TestRegisterEndpoint(t *testing.T) {
	r, _ := testRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/register", "", gin.H{
		"first_name": "A", "last_name": "B", "email": "reg@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "password")

	// short password caught at binding
	w = doJSON(t, r, http.MethodPost, "/api/v1/register", "", gin.H{
		"first_name": "A", "last_name": "B", "email": "x@example.com", "password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// duplicate email
	w = doJSON(t, r, http.MethodPost, "/api/v1/register", "", gin.H{
		"first_name": "A", "last_name": "B", "email": "reg@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginEndpointSetsCookies(t *testing.T) {
	r, _ := testRouter(t)
	registerAndLogin(t, r, "cookie@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/v1/login", "", gin.H{
		"email": "cookie@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	names := make([]string, 0, len(cookies))
	for _, c := range cookies {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, "access_token")
	assert.Contains(t, names, "refresh_token")

	w = doJSON(t, r, http.MethodPost, "/api/v1/login", "", gin.H{
		"email": "cookie@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPlaceEndpoints(t *testing.T) {
	r, _ := testRouter(t)
	token, _ := registerAndLogin(t, r, "host@example.com")

	// anonymous create is rejected
	w := doJSON(t, r, http.MethodPost, "/api/v1/places", "", gin.H{"title": "T", "price": 10})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/places", token, gin.H{
		"title": "Cabin", "price": 80.0, "latitude": 45.0, "longitude": 6.0,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	placeID := created.Data["id"].(string)

	w = doJSON(t, r, http.MethodGet, "/api/v1/places", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/places/"+placeID, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"owner"`)

	w = doJSON(t, r, http.MethodGet, "/api/v1/places/no-such-id", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// owner reassignment is rejected with a field detail
	w = doJSON(t, r, http.MethodPut, "/api/v1/places/"+placeID, token, gin.H{"owner_id": "thief"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// invalid value from the entity layer
	w = doJSON(t, r, http.MethodPut, "/api/v1/places/"+placeID, token, gin.H{"price": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "price")
}

func TestReviewEndpointConflicts(t *testing.T) {
	r, _ := testRouter(t)
	hostToken, _ := registerAndLogin(t, r, "rhost@example.com")
	guestToken, _ := registerAndLogin(t, r, "rguest@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/v1/places", hostToken, gin.H{"title": "T", "price": 10.0})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	placeID := created.Data["id"].(string)

	// self-review
	w = doJSON(t, r, http.MethodPost, "/api/v1/reviews", hostToken, gin.H{
		"text": "mine", "rating": 5, "place_id": placeID,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/reviews", guestToken, gin.H{
		"text": "nice", "rating": 5, "place_id": placeID,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// duplicate
	w = doJSON(t, r, http.MethodPost, "/api/v1/reviews", guestToken, gin.H{
		"text": "again", "rating": 4, "place_id": placeID,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/places/"+placeID+"/reviews", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "nice")
}

func TestAmenityEndpointAdminOnly(t *testing.T) {
	r, _ := testRouter(t)
	token, _ := registerAndLogin(t, r, "pleb@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/v1/amenities", token, gin.H{"name": "WiFi"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}
