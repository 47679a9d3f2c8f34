package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/homecove/homecove/internal/application"
	"github.com/homecove/homecove/internal/interface/middleware"
	"github.com/homecove/homecove/pkg/response"
	"github.com/homecove/homecove/pkg/validation"
)

type ListingHandler struct {
	Facade *application.Facade
	Logger *logrus.Logger
}

func NewListingHandler(f *application.Facade, logger *logrus.Logger) *ListingHandler {
	return &ListingHandler{Facade: f, Logger: logger}
}

type createListingRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" binding:"required"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	OwnerID     string   `json:"owner_id"`
	Amenities   []string `json:"amenities"`
}

func (h *ListingHandler) Create(c *gin.Context) {
	var req createListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	listing, err := h.Facade.CreateListing(c.Request.Context(), application.CreateListingInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		OwnerID:     req.OwnerID,
		AmenityIDs:  req.Amenities,
	}, middleware.ClaimsFrom(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, listing.Map(), "place created", nil)
}

func (h *ListingHandler) List(c *gin.Context) {
	listings, err := h.Facade.GetAllListings(c.Request.Context())
	if err != nil {
		writeErr(c, err)
		return
	}
	out := make([]map[string]any, 0, len(listings))
	for _, l := range listings {
		out = append(out, l.Map())
	}
	response.Success(c, http.StatusOK, out, "places", gin.H{"count": len(out)})
}

// Get answers with the expanded view: owner summary, amenity names,
// and reviews, not just the bare row.
func (h *ListingHandler) Get(c *gin.Context) {
	listing, err := h.Facade.GetListing(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	detail, err := h.Facade.ListingDetail(c.Request.Context(), listing)
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, detail, "place", nil)
}

func (h *ListingHandler) Update(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", nil)
		return
	}
	listing, err := h.Facade.UpdateListing(c.Request.Context(), c.Param("id"), fields, middleware.ClaimsFrom(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, listing.Map(), "place updated", nil)
}

// UploadPhoto accepts a multipart "photo" file and stores it in the
// object bucket.
func (h *ListingHandler) UploadPhoto(c *gin.Context) {
	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "missing photo file", nil)
		return
	}
	defer file.Close()

	listing, err := h.Facade.AttachPhoto(
		c.Request.Context(),
		c.Param("id"),
		file,
		header.Filename,
		header.Header.Get("Content-Type"),
		middleware.ClaimsFrom(c),
	)
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, listing.Map(), "photo uploaded", nil)
}

func (h *ListingHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Facade.SearchListings(c.Request.Context(), q, size)
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", gin.H{"count": len(hits), "query": q})
}
