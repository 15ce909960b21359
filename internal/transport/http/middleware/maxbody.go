package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-mpa-usercenter/internal/transport/http/response"
)

// MaxBodyBytes 限制请求体大小
func MaxBodyBytes(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
		if c.Err() != nil && !c.Writer.Written() {
			response.AbortErr(c, http.StatusRequestEntityTooLarge, "请求体过大")
		}
	}
}
