package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/homecove/homecove/internal/container"
	handlers "github.com/homecove/homecove/internal/interface/http"
	"github.com/homecove/homecove/internal/interface/middleware"
)

// AccountModule wires account reads and updates.
// Public: GET /users, GET /users/:id
// Protected: GET /me, PUT /users/:id (ownership and admin rules live
// in the facade)
type AccountModule struct {
	Handler *handlers.AccountHandler
}

func NewAccountModule(h *handlers.AccountHandler) *AccountModule {
	return &AccountModule{Handler: h}
}

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	rg.GET("/users", m.Handler.List)
	rg.GET("/users/:id", m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(authMW())
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByAccount(), nil))
	{
		auth.GET("/me", m.Handler.Me)
		auth.PUT("/users/:id", m.Handler.Update)
	}
}
