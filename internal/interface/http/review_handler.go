package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/homecove/homecove/internal/application"
	"github.com/homecove/homecove/internal/interface/middleware"
	"github.com/homecove/homecove/pkg/response"
	"github.com/homecove/homecove/pkg/validation"
)

type ReviewHandler struct {
	Facade *application.Facade
	Logger *logrus.Logger
}

func NewReviewHandler(f *application.Facade, logger *logrus.Logger) *ReviewHandler {
	return &ReviewHandler{Facade: f, Logger: logger}
}

type createReviewRequest struct {
	Text    string `json:"text" binding:"required"`
	Rating  int    `json:"rating" binding:"required"`
	PlaceID string `json:"place_id" binding:"required"`
	UserID  string `json:"user_id"`
}

func (h *ReviewHandler) Create(c *gin.Context) {
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	review, err := h.Facade.CreateReview(c.Request.Context(), application.CreateReviewInput{
		Text:      req.Text,
		Rating:    req.Rating,
		ListingID: req.PlaceID,
		AuthorID:  req.UserID,
	}, middleware.ClaimsFrom(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, review.Map(), "review created", nil)
}

func (h *ReviewHandler) List(c *gin.Context) {
	reviews, err := h.Facade.GetAllReviews(c.Request.Context())
	if err != nil {
		writeErr(c, err)
		return
	}
	out := make([]map[string]any, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, r.Map())
	}
	response.Success(c, http.StatusOK, out, "reviews", gin.H{"count": len(out)})
}

func (h *ReviewHandler) Get(c *gin.Context) {
	review, err := h.Facade.GetReview(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, review.Map(), "review", nil)
}

// ListByPlace answers with every review written for one place.
func (h *ReviewHandler) ListByPlace(c *gin.Context) {
	reviews, err := h.Facade.ReviewsByListing(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	out := make([]map[string]any, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, r.Map())
	}
	response.Success(c, http.StatusOK, out, "reviews", gin.H{"count": len(out)})
}

func (h *ReviewHandler) Update(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", nil)
		return
	}
	review, err := h.Facade.UpdateReview(c.Request.Context(), c.Param("id"), fields, middleware.ClaimsFrom(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, review.Map(), "review updated", nil)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	if err := h.Facade.DeleteReview(c.Request.Context(), c.Param("id"), middleware.ClaimsFrom(c)); err != nil {
		writeErr(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "review deleted", nil)
}
