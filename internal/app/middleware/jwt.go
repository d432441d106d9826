package middleware

import (
	"strings"

	"github.com/lolollllo/plushofaddu-backend/internal/domain/services"
	"github.com/lolollllo/plushofaddu-backend/internal/error/code"
	"github.com/lolollllo/plushofaddu-backend/internal/error/response"
	"github.com/lolollllo/plushofaddu-backend/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

var jwtService services.InterfaceJWTService

// InitAuthMiddleware 初始化认证中间件
func InitAuthMiddleware(cfg *config.Config, db *gorm.DB) {
	jwtService = services.NewJWTService(cfg, db)
}

// extractToken 从授权头中提取token，兼容带 "Bearer " 前缀和裸token两种形式
func extractToken(authHeader string) string {
	if strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[7:]
	}
	return authHeader
}

// AuthenticateAdmin 验证管理员令牌，所有 /admin 管理接口都要求携带
func AuthenticateAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Fail(c, code.ErrTokenMissing)
			c.Abort()
			return
		}

		tokenString := extractToken(authHeader)
		if tokenString == "" {
			response.Fail(c, code.ErrTokenMissing)
			c.Abort()
			return
		}

		token, err := jwtService.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			response.Fail(c, code.ErrTokenInvalid)
			c.Abort()
			return
		}

		// 存储claims到上下文
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			c.Set("username", claims["username"])
			c.Set("claims", claims)
		}
		c.Next()
	}
}
