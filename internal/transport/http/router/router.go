package router

import (
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go-mpa-usercenter/internal/core/auth"
	"go-mpa-usercenter/internal/core/config"
	"go-mpa-usercenter/internal/transport/http/handler"
	mdw "go-mpa-usercenter/internal/transport/http/middleware"
	"go-mpa-usercenter/internal/transport/http/response"
	"go-mpa-usercenter/web"
)

// NewEngine 显式路由表：所有依赖由 main 构造后传入，没有隐式容器。
func NewEngine(
	l *zap.Logger,
	cfg *config.Config,
	jwter *auth.JWTer,
	userH *handler.UserHandler,
	authH *handler.AuthHandler,
	pageH *handler.PageHandler,
) *gin.Engine {
	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)
	r.Use(corsMiddleware(cfg.App.CORSOrigin))

	// 运维端点
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 静态资源（内嵌）
	r.StaticFS("/static", web.Static())

	// SSR 页面
	r.GET("/", pageH.Home)
	r.GET("/users/manage", pageH.UsersManage)

	// JSON API
	api := r.Group("/api")
	{
		users := api.Group("/users")
		users.GET("", userH.List)
		users.POST("", userH.Create)
		users.GET("/:id", userH.Get)
		users.PATCH("/:id", userH.Update)
		users.DELETE("/:id", userH.Delete)

		api.POST("/auth/login", authH.Login)

		authed := api.Group("")
		authed.Use(mdw.AuthJWT(jwter, ""))
		authed.GET("/me", authH.Me)
	}

	// History API fallback：无扩展名的未知路径交给首页，前端路由接管
	r.NoRoute(func(c *gin.Context) {
		p := c.Request.URL.Path
		if strings.HasPrefix(p, "/api") || strings.HasPrefix(p, "/static") ||
			strings.Contains(path.Base(p), ".") {
			response.Err(c, http.StatusNotFound, "资源不存在")
			return
		}
		pageH.Home(c)
	})

	return r
}

func corsMiddleware(origin string) gin.HandlerFunc {
	if origin == "" {
		return cors.Default()
	}
	cc := cors.DefaultConfig()
	cc.AllowOrigins = []string{origin}
	cc.AllowCredentials = true
	cc.AllowHeaders = append(cc.AllowHeaders, "Authorization")
	cc.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	return cors.New(cc)
}
