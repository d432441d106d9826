package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lolollllo/plushofaddu-backend/internal/error/code"
)

// 对外的响应格式沿用前端既有约定：成功时直接返回数据本身，
// 失败时返回 {"error": "..."}，由错误码决定HTTP状态

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Fail 失败响应
func Fail(c *gin.Context, errorCode int) {
	c.JSON(code.GetStatus(errorCode), gin.H{"error": code.GetMessage(errorCode)})
}

// FailWithMessage 失败响应（自定义消息）
func FailWithMessage(c *gin.Context, errorCode int, message string) {
	if message == "" {
		message = code.GetMessage(errorCode)
	}
	c.JSON(code.GetStatus(errorCode), gin.H{"error": message})
}

// ParamError 参数错误响应
func ParamError(c *gin.Context, message string) {
	FailWithMessage(c, code.ErrValidation, message)
}

// NotFound 资源不存在响应
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Not found"
	}
	c.JSON(http.StatusNotFound, gin.H{"error": message})
}

// ServerError 服务器错误响应
func ServerError(c *gin.Context, message string) {
	FailWithMessage(c, code.ErrUnknown, message)
}
