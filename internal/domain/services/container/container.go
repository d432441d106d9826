package container

import (
	"sync"

	"github.com/lolollllo/plushofaddu-backend/internal/domain/services"
	"github.com/lolollllo/plushofaddu-backend/internal/infrastructure/config"
	"github.com/lolollllo/plushofaddu-backend/internal/infrastructure/database"

	"gorm.io/gorm"
)

// ServiceContainer 管理所有服务的依赖注入
type ServiceContainer struct {
	db     *gorm.DB
	pool   *database.ConnectionPool
	config *config.Config

	// 基础服务
	jwtService services.InterfaceJWTService

	// 业务服务
	itemService  services.InterfaceItemService
	orderService services.InterfaceOrderService
	imageService services.InterfaceImageService

	mu sync.RWMutex
}

// NewServiceContainer 创建新的服务容器
func NewServiceContainer(pool *database.ConnectionPool, cfg *config.Config) *ServiceContainer {
	if pool == nil {
		panic("数据库连接池为空")
	}

	if cfg == nil {
		panic("配置为空")
	}

	container := &ServiceContainer{
		db:     pool.GetDB(),
		pool:   pool,
		config: cfg,
	}
	container.initializeServices()
	return container
}

// initializeServices 初始化所有服务
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 初始化基础服务
	c.jwtService = services.NewJWTService(c.config, c.db)

	// 初始化业务服务
	c.itemService = services.NewItemService(c.db, c.config)
	c.orderService = services.NewOrderService(c.db, c.config, c.pool)
	c.imageService = services.NewImageService(c.config)
}

// GetService 获取指定名称的服务
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "jwt":
		return c.jwtService
	case "item":
		return c.itemService
	case "order":
		return c.orderService
	case "image":
		return c.imageService
	default:
		return nil
	}
}

// GetDB 获取数据库连接
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}
