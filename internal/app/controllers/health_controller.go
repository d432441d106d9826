package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/lolollllo/plushofaddu-backend/internal/domain/services/container"
	"github.com/lolollllo/plushofaddu-backend/internal/error/response"
)

// HealthCheckController 健康检查控制器
type HealthCheckController struct{}

// HandleHealthFunc 返回一个处理健康检查请求的Gin处理函数
func HandleHealthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	controller := &HealthCheckController{}
	return func(ctx *gin.Context) {
		switch method {
		case "ping":
			controller.Ping(ctx)
		default:
			controller.Ping(ctx)
		}
	}
}

// Ping 健康检查端点
func (h *HealthCheckController) Ping(c *gin.Context) {
	response.Success(c, gin.H{
		"status":  "healthy",
		"message": "pong",
	})
}
