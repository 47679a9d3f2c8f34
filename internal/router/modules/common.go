package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/homecove/homecove/internal/container"
	"github.com/homecove/homecove/internal/interface/middleware"
)

// authMW picks session-backed auth when Redis is configured and falls
// back to stateless token validation otherwise.
func authMW() gin.HandlerFunc {
	if rdb := container.GetRedis(); rdb != nil {
		return middleware.Auth(rdb, container.GetJWT())
	}
	return middleware.JWTAuth(container.GetJWT())
}
