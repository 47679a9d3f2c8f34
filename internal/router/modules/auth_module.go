package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/homecove/homecove/internal/container"
	handlers "github.com/homecove/homecove/internal/interface/http"
	"github.com/homecove/homecove/internal/interface/middleware"
)

// AuthModule wires registration and the token lifecycle.
// Public: POST /register, POST /login, POST /refresh
// Protected: POST /logout
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/register", registerLimiter, m.Handler.Register)
	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/refresh", refreshLimiter, m.Handler.Refresh)

	auth := rg.Group("/")
	auth.Use(authMW())
	{
		auth.POST("/logout", m.Handler.Logout)
	}
}
