package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/homecove/homecove/internal/container"
	handlers "github.com/homecove/homecove/internal/interface/http"
	"github.com/homecove/homecove/internal/interface/middleware"
)

// ReviewModule wires review reads and the authenticated write paths.
type ReviewModule struct {
	Handler *handlers.ReviewHandler
}

func NewReviewModule(h *handlers.ReviewHandler) *ReviewModule {
	return &ReviewModule{Handler: h}
}

func (m *ReviewModule) Register(rg *gin.RouterGroup) {
	rg.GET("/reviews", m.Handler.List)
	rg.GET("/reviews/:id", m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(authMW())
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByAccount(), nil))
	{
		auth.POST("/reviews", m.Handler.Create)
		auth.PUT("/reviews/:id", m.Handler.Update)
		auth.DELETE("/reviews/:id", m.Handler.Delete)
	}
}
