package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/homecove/homecove/internal/container"
	handlers "github.com/homecove/homecove/internal/interface/http"
	"github.com/homecove/homecove/internal/interface/middleware"
)

// PlaceModule wires the listing catalog.
// Public: GET /places, GET /places/:id, GET /places/search,
// GET /places/:id/reviews
// Protected: POST /places, PUT /places/:id, POST /places/:id/photo
type PlaceModule struct {
	Places  *handlers.ListingHandler
	Reviews *handlers.ReviewHandler
}

func NewPlaceModule(p *handlers.ListingHandler, r *handlers.ReviewHandler) *PlaceModule {
	return &PlaceModule{Places: p, Reviews: r}
}

func (m *PlaceModule) Register(rg *gin.RouterGroup) {
	searchLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.GET("/places", m.Places.List)
	rg.GET("/places/search", searchLimiter, m.Places.Search)
	rg.GET("/places/:id", m.Places.Get)
	rg.GET("/places/:id/reviews", m.Reviews.ListByPlace)

	auth := rg.Group("/")
	auth.Use(authMW())
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByAccount(), nil))
	{
		auth.POST("/places", m.Places.Create)
		auth.PUT("/places/:id", m.Places.Update)
		auth.POST("/places/:id/photo", m.Places.UploadPhoto)
	}
}
