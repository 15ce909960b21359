package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-mpa-usercenter/internal/render"
	"go-mpa-usercenter/internal/service"
)

// PageHandler SSR 页面出口：先把 initialData 查好，再交给渲染器。
// 渲染器本身不做任何 IO。
type PageHandler struct {
	rdr *render.Renderer
	svc *service.UserService
	log *zap.Logger
}

func NewPageHandler(rdr *render.Renderer, svc *service.UserService, log *zap.Logger) *PageHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &PageHandler{rdr: rdr, svc: svc, log: log}
}

// Home GET /
func (h *PageHandler) Home(c *gin.Context) {
	initialData := map[string]any{
		"message":     "欢迎使用用户管理系统",
		"description": "服务端渲染 + 客户端水合的多页应用",
		"features": []string{
			"服务端渲染首屏",
			"客户端水合与兜底重渲",
			"用户目录 REST API",
			"结构化日志与指标",
		},
	}
	h.writeDocument(c, "home", "用户管理系统", initialData)
}

// UsersManage GET /users/manage
func (h *PageHandler) UsersManage(c *gin.Context) {
	users, err := h.svc.FindAll(c.Request.Context())
	if err != nil {
		h.log.Error("load users for page failed", zap.Error(err))
		c.String(http.StatusInternalServerError, "页面数据加载失败")
		return
	}
	initialData := map[string]any{"users": users}
	h.writeDocument(c, "users", "用户管理", initialData)
}

func (h *PageHandler) writeDocument(c *gin.Context, page, title string, initialData map[string]any) {
	doc, err := h.rdr.Document(page, title, initialData)
	if err != nil {
		// 渲染失败属于模板/部署问题，正常运行不应出现
		h.log.Error("render failed", zap.String("page", page), zap.Error(err))
		c.String(http.StatusInternalServerError, "页面渲染失败")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(doc))
}
