package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/homecove/homecove/pkg/helpers"
	"github.com/homecove/homecove/pkg/response"
)

// JWTAuth is the stateless variant of Auth for deployments that run
// without Redis. The token is trusted for its full lifetime.
func JWTAuth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing access token", nil)
			c.Abort()
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid access token", nil)
			c.Abort()
			return
		}
		c.Set(CtxClaimsKey, claims)
		c.Next()
	}
}
