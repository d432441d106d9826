package config

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

var (
	config     *Config
	configOnce sync.Once
)

// 支持的数据库驱动
const (
	DriverSQLite = "sqlite" // 嵌入式文件数据库
	DriverMySQL  = "mysql"  // 远程关系型数据库
	DriverLibSQL = "libsql" // Turso 托管的分布式数据库
)

// Config stores all configuration of the application
type Config struct {
	// Database
	DBDriver        string
	DBHost          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBPort          string
	DBPath          string // sqlite 数据库文件路径
	DBURL           string // libsql 连接地址, 如 libsql://xxx.turso.io?authToken=...
	DBMigrationMode string // 数据库迁移模式: "auto"(默认), "drop"(删除重建)

	// Server
	ServerPort string

	// Uploads
	UploadsDir string // 上传图片存储目录
	StaticDir  string // 前端构建产物目录, 用于 SPA 回退

	// JWT Authentication
	JWTSecretKey string

	// Admin
	DefaultAdminPassword string
}

// LoadConfig loads config from environment variables
func LoadConfig() *Config {
	driver := strings.ToLower(getEnv("DB_DRIVER", DriverSQLite))
	if driver != DriverSQLite && driver != DriverMySQL && driver != DriverLibSQL {
		fmt.Printf("Warning: Unknown DB_DRIVER '%s', defaulting to sqlite\n", driver)
		driver = DriverSQLite
	}

	cfg := &Config{
		DBDriver:        driver,
		DBMigrationMode: getEnv("DB_MIGRATION_MODE", "auto"),

		// Server config
		ServerPort: getEnv("SERVER_PORT", "3000"),

		// Uploads config
		UploadsDir: getEnv("UPLOADS_DIR", "uploads"),
		StaticDir:  getEnv("STATIC_DIR", "build"),

		// JWT Config
		JWTSecretKey: getEnv("JWT_SECRET_KEY", "supersecretkey"),

		// Admin Config
		DefaultAdminPassword: getEnv("DEFAULT_ADMIN_PASSWORD", "adminpass"),
	}

	// 按驱动加载各自的连接参数，缺失时直接失败
	switch driver {
	case DriverMySQL:
		cfg.DBHost = getEnvRequired("DB_HOST")
		cfg.DBUser = getEnvRequired("DB_USER")
		cfg.DBPassword = getEnvRequired("DB_PASSWORD")
		cfg.DBName = getEnvRequired("DB_NAME")
		cfg.DBPort = getEnv("DB_PORT", "3306")
	case DriverLibSQL:
		cfg.DBURL = getEnvRequired("DB_URL")
	default:
		cfg.DBPath = getEnv("DB_PATH", "data/shop.db")
	}

	return cfg
}

// GetConfig returns the application configuration as a singleton
func GetConfig() *Config {
	configOnce.Do(func() {
		config = LoadConfig()
	})
	return config
}

// GetDSN returns the MySQL connection string
func (c *Config) GetDSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?charset=utf8mb4&parseTime=True&loc=Local&allowNativePasswords=true&multiStatements=true"
}

// Helper function to get environment variable with default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// 要求必须提供环境变量的辅助函数
func getEnvRequired(key string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	panic(fmt.Sprintf("Required environment variable %s is not set", key))
}
