package routes

import (
	"net/http"
	"os"
	"path/filepath"

	_ "github.com/lolollllo/plushofaddu-backend/docs"
	"github.com/lolollllo/plushofaddu-backend/internal/app/controllers"
	"github.com/lolollllo/plushofaddu-backend/internal/app/middleware"
	"github.com/lolollllo/plushofaddu-backend/internal/domain/services/container"
	"github.com/lolollllo/plushofaddu-backend/internal/infrastructure/config"
	"github.com/lolollllo/plushofaddu-backend/internal/infrastructure/database"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter 初始化并返回配置好的路由
func SetupRouter(pool *database.ConnectionPool, cfg *config.Config) *gin.Engine {
	// 初始化 Gin
	r := gin.Default()

	// 添加 CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})
	// 创建服务容器
	serviceContainer := container.NewServiceContainer(pool, cfg)
	// 初始化中间件
	middleware.InitAuthMiddleware(cfg, pool.GetDB())

	// 上传目录静态托管
	r.Static("/uploads", cfg.UploadsDir)

	// 添加 Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册路由
	registerPublicRoutes(r, serviceContainer)
	registerAdminRoutes(r, serviceContainer)

	// 前端静态资源回退：非API的GET请求交给SPA
	registerStaticFallback(r, cfg)
	return r
}

// registerPublicRoutes 注册公共路由
func registerPublicRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	// 添加IP限流中间件 - 每秒允许10个请求，最多突发20个请求
	public := r.Group("/")
	public.Use(middleware.IPRateLimiter(10, 20))

	// 健康检查路由
	public.GET("/ping", controllers.HandleHealthFunc(container, "ping"))
	public.GET("/health", controllers.HandleHealthFunc(container, "ping")) // 兼容Docker健康检查的路由

	// 商品目录路由
	public.GET("/items", controllers.HandleItemFunc(container, "getItems"))
	public.GET("/items/:id", controllers.HandleItemFunc(container, "getItem"))

	// 下单与订单跟踪路由
	public.POST("/orders", controllers.HandleOrderFunc(container, "placeOrder"))
	public.GET("/track/:trackingId", controllers.HandleOrderFunc(container, "trackOrder"))

	// 认证路由
	public.POST("/admin/login", controllers.HandleJWTFunc(container, "login"))
}

// registerAdminRoutes 注册需要认证的路由
func registerAdminRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	// 添加认证中间件
	admin := r.Group("/admin")
	admin.Use(middleware.AuthenticateAdmin())

	// 添加通用限流中间件 - 每秒30个请求，最多突发50个请求
	admin.Use(middleware.IPRateLimiter(30, 50))

	// 商品管理路由
	admin.POST("/items", controllers.HandleItemFunc(container, "createItem"))
	admin.PUT("/items/:id", controllers.HandleItemFunc(container, "updateItem"))

	// 图片上传路由
	admin.POST("/items/upload-image", controllers.HandleUploadFunc(container, "uploadImage"))
	admin.POST("/items/upload-images", controllers.HandleUploadFunc(container, "uploadImages"))
	admin.POST("/items/:id/upload-image", controllers.HandleUploadFunc(container, "uploadItemImage"))

	// 订单管理路由
	admin.GET("/orders", controllers.HandleOrderFunc(container, "getOrders"))
	admin.POST("/orders", controllers.HandleOrderFunc(container, "createOrder"))
	admin.POST("/orders/:id/status", controllers.HandleOrderFunc(container, "updateOrderStatus"))
	admin.DELETE("/orders/:id", controllers.HandleOrderFunc(container, "deleteOrder"))
}

// registerStaticFallback 托管前端构建产物，未命中的GET请求返回index.html
func registerStaticFallback(r *gin.Engine, cfg *config.Config) {
	r.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		requested := filepath.Join(cfg.StaticDir, filepath.Clean("/"+c.Request.URL.Path))
		if info, err := os.Stat(requested); err == nil && !info.IsDir() {
			c.File(requested)
			return
		}
		index := filepath.Join(cfg.StaticDir, "index.html")
		if _, err := os.Stat(index); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		c.File(index)
	})
}
