package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Log      LogConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	AutoMigrate bool // chạy goose migrations khi start API
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
	CacheTTL time.Duration
}

type JWTConfig struct {
	Secret            string
	AccessTokenExpiry int // minutes
}

type LogConfig struct {
	Level string
}

// AccessTTL converts the configured expiry in minutes to a duration.
func (j JWTConfig) AccessTTL() time.Duration {
	return time.Duration(j.AccessTokenExpiry) * time.Minute
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Postboard API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			AutoMigrate: getEnvBool("DB_AUTO_MIGRATE", false),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "postboard"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			CacheTTL: getEnvDuration("CACHE_TTL", 10*time.Minute),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", defaultJWTSecret),
			AccessTokenExpiry: getEnvInt("JWT_ACCESS_EXPIRY", 60),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	if c.JWT.AccessTokenExpiry <= 0 {
		return fmt.Errorf("JWT_ACCESS_EXPIRY must be positive")
	}

	if c.IsProduction() {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := strings.TrimSpace(os.Getenv(key))
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
