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

type AmenityHandler struct {
	Facade *application.Facade
	Logger *logrus.Logger
}

func NewAmenityHandler(f *application.Facade, logger *logrus.Logger) *AmenityHandler {
	return &AmenityHandler{Facade: f, Logger: logger}
}

type createAmenityRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *AmenityHandler) Create(c *gin.Context) {
	var req createAmenityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	amenity, err := h.Facade.CreateAmenity(c.Request.Context(), req.Name, middleware.ClaimsFrom(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, amenity.Map(), "amenity created", nil)
}

func (h *AmenityHandler) List(c *gin.Context) {
	amenities, err := h.Facade.GetAllAmenities(c.Request.Context())
	if err != nil {
		writeErr(c, err)
		return
	}
	out := make([]map[string]any, 0, len(amenities))
	for _, a := range amenities {
		out = append(out, a.Map())
	}
	response.Success(c, http.StatusOK, out, "amenities", gin.H{"count": len(out)})
}

func (h *AmenityHandler) Get(c *gin.Context) {
	amenity, err := h.Facade.GetAmenity(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, amenity.Map(), "amenity", nil)
}

func (h *AmenityHandler) Update(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", nil)
		return
	}
	amenity, err := h.Facade.UpdateAmenity(c.Request.Context(), c.Param("id"), fields, middleware.ClaimsFrom(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, amenity.Map(), "amenity updated", nil)
}
