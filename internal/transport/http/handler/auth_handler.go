package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-mpa-usercenter/internal/core/auth"
	"go-mpa-usercenter/internal/service"
	"go-mpa-usercenter/internal/transport/http/response"
)

type AuthHandler struct {
	svc   *service.UserService
	jwter *auth.JWTer
}

func NewAuthHandler(svc *service.UserService, jwter *auth.JWTer) *AuthHandler {
	return &AuthHandler{svc: svc, jwter: jwter}
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginResp struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Err(c, http.StatusBadRequest, err.Error())
		return
	}
	u, err := h.svc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if u == nil {
		// 账号不存在和密码错误给同一个提示
		response.Err(c, http.StatusUnauthorized, "邮箱或密码错误")
		return
	}
	token, err := h.jwter.Issue(u.ID, u.Role)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, loginResp{Token: token, User: u})
}

// GET /api/me（AuthJWT 之后）
func (h *AuthHandler) Me(c *gin.Context) {
	uid := c.GetString("userId")
	if uid == "" {
		response.Err(c, http.StatusUnauthorized, "未登录")
		return
	}
	u, err := h.svc.FindOne(c.Request.Context(), uid)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, u)
}
