package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-mpa-usercenter/internal/domain"
)

// ErrorBody 错误统一返回 {"message": "..."}，状态码用真实 HTTP 语义
type ErrorBody struct {
	Message string `json:"message"`
}

func OK(c *gin.Context, data any)      { c.JSON(http.StatusOK, data) }
func Created(c *gin.Context, data any) { c.JSON(http.StatusCreated, data) }

func Err(c *gin.Context, status int, msg string) {
	c.JSON(status, ErrorBody{Message: msg})
}

func AbortErr(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, ErrorBody{Message: msg})
}

// FromError 把 domain 错误分类映射到状态码；
// 未归类的错误一律 500，原始错误只进日志不出响应
func FromError(c *gin.Context, err error) {
	var nf *domain.NotFoundError
	if errors.As(err, &nf) {
		Err(c, http.StatusNotFound, nf.Error())
		return
	}
	var cf *domain.ConflictError
	if errors.As(err, &cf) {
		Err(c, http.StatusConflict, cf.Error())
		return
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		Err(c, http.StatusBadRequest, ve.Error())
		return
	}
	_ = c.Error(err)
	Err(c, http.StatusInternalServerError, "服务器内部错误")
}
