package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"

	"go-mpa-usercenter/internal/transport/http/response"
)

// ConcurrencyLimit 限制同时在处理的请求数（保护 DB 下游）。
// 池满时在信号量上排队，请求上下文取消才放弃。
func ConcurrencyLimit(max int64) gin.HandlerFunc {
	sem := semaphore.NewWeighted(max)
	return func(c *gin.Context) {
		if err := sem.Acquire(c.Request.Context(), 1); err != nil {
			response.AbortErr(c, http.StatusServiceUnavailable, "服务繁忙")
			return
		}
		defer sem.Release(1)
		c.Next()
	}
}
