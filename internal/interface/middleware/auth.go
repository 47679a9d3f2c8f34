package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/homecove/homecove/pkg/helpers"
	"github.com/homecove/homecove/pkg/response"
)

// CtxClaimsKey is the Gin context key holding the verified *helpers.Claims.
const CtxClaimsKey = "auth_claims"

// ClaimsFrom returns the verified claims stored by Auth or JWTAuth,
// or nil when the request carried no valid token.
func ClaimsFrom(c *gin.Context) *helpers.Claims {
	v, ok := c.Get(CtxClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*helpers.Claims)
	return claims
}

// bearerToken pulls the access token from the access_token cookie or,
// failing that, an Authorization: Bearer header.
func bearerToken(c *gin.Context) string {
	if token, err := c.Cookie("access_token"); err == nil && token != "" {
		return token
	}
	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

// Auth validates the access token and ensures the session it references
// is still live in Redis. On success the claims are stored in the context.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
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

		// The token is only as good as the session it was minted for.
		data, err := rdb.HGetAll(c.Request.Context(), "account:session:"+claims.AccountID).Result()
		if err != nil || len(data) == 0 {
			response.Error[any](c, http.StatusUnauthorized, "session expired", nil)
			c.Abort()
			return
		}
		if sid, ok := data["sid"]; !ok || sid != claims.SessionID {
			response.Error[any](c, http.StatusUnauthorized, "session expired", nil)
			c.Abort()
			return
		}

		c.Set(CtxClaimsKey, claims)
		c.Next()
	}
}
