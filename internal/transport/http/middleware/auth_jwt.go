package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-mpa-usercenter/internal/core/auth"
	"go-mpa-usercenter/internal/transport/http/response"
)

// AuthJWT 校验 Bearer token，通过后把 userId/role 放进上下文。
// requireRole 非空时还要求角色匹配。
func AuthJWT(j *auth.JWTer, requireRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			response.AbortErr(c, http.StatusUnauthorized, "缺少访问令牌")
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			response.AbortErr(c, http.StatusUnauthorized, "访问令牌无效")
			return
		}
		if requireRole != "" && claims.Role != requireRole {
			response.AbortErr(c, http.StatusForbidden, "无权访问")
			return
		}
		c.Set("userId", claims.UID)
		c.Set("role", claims.Role)
		c.Next()
	}
}
