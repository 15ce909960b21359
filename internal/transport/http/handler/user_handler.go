package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-mpa-usercenter/internal/service"
	"go-mpa-usercenter/internal/transport/http/response"
)

// UserHandler /api/users 的 CRUD。路由表在 router 包里显式登记，
// 入参校验放在每个 handler 顶部（binding tag），失败直接 400。
type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler { return &UserHandler{svc: svc} }

type createUserReq struct {
	Email    string  `json:"email" binding:"required,email"`
	Name     *string `json:"name" binding:"omitempty,max=64"`
	Password string  `json:"password" binding:"required,min=6,max=72"`
}

// updateUserReq 指针字段：nil = 请求里没出现，不改该字段
type updateUserReq struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Name     *string `json:"name" binding:"omitempty,max=64"`
	Password *string `json:"password" binding:"omitempty,min=6,max=72"`
}

// POST /api/users
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Err(c, http.StatusBadRequest, err.Error())
		return
	}
	u, err := h.svc.Create(c.Request.Context(), service.CreateUserInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, u)
}

// GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.svc.FindAll(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, users)
}

// GET /api/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.svc.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, u)
}

// PATCH /api/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	var req updateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Err(c, http.StatusBadRequest, err.Error())
		return
	}
	u, err := h.svc.Update(c.Request.Context(), c.Param("id"), service.UpdateUserInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, u)
}

// DELETE /api/users/:id 返回被删记录的投影
func (h *UserHandler) Delete(c *gin.Context) {
	u, err := h.svc.Remove(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, u)
}
