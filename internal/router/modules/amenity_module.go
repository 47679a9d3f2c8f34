package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/homecove/homecove/internal/interface/http"
)

// AmenityModule wires the amenity catalog. Reads are public; creation
// and renames go through the facade's admin gate.
type AmenityModule struct {
	Handler *handlers.AmenityHandler
}

func NewAmenityModule(h *handlers.AmenityHandler) *AmenityModule {
	return &AmenityModule{Handler: h}
}

func (m *AmenityModule) Register(rg *gin.RouterGroup) {
	rg.GET("/amenities", m.Handler.List)
	rg.GET("/amenities/:id", m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(authMW())
	{
		auth.POST("/amenities", m.Handler.Create)
		auth.PUT("/amenities/:id", m.Handler.Update)
	}
}
