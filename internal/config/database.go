package config

import (
	"fmt"
	"strconv"
	"time"

	"postboard-backend/internal/infrastructure/database"
)

// LoadDatabaseConfig đọc config từ environment variables và trả về DBConfig
func LoadDatabaseConfig() (*database.DBConfig, error) {
	port, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNECTIONS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNECTIONS: %w", err)
	}

	minConns, err := strconv.Atoi(getEnv("DB_MIN_CONNECTIONS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNECTIONS: %w", err)
	}

	maxRetries, err := strconv.Atoi(getEnv("DB_MAX_RETRIES", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_RETRIES: %w", err)
	}
	if maxRetries < 1 {
		return nil, fmt.Errorf("invalid DB_MAX_RETRIES: must be at least 1")
	}

	maxConnLifetime, err := parseDuration("DB_MAX_CONN_LIFETIME", "5m")
	if err != nil {
		return nil, err
	}

	maxConnIdleTime, err := parseDuration("DB_MAX_CONN_IDLE_TIME", "1m")
	if err != nil {
		return nil, err
	}

	healthCheckPeriod, err := parseDuration("DB_HEALTH_CHECK_PERIOD", "1m")
	if err != nil {
		return nil, err
	}

	retryDelay, err := parseDuration("DB_RETRY_DELAY", "1s")
	if err != nil {
		return nil, err
	}

	connectTimeout, err := parseDuration("DB_CONNECT_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	return &database.DBConfig{
		Host:              getEnv("DB_HOST", "localhost"),
		Port:              port,
		Username:          getEnv("DB_USER", "postgres"),
		Password:          getEnv("DB_PASSWORD", "secret"),
		DBName:            getEnv("DB_NAME", "postboard"),
		SSLMode:           getEnv("DB_SSLMODE", "disable"),
		MaxConns:          int32(maxConns),
		MinConns:          int32(minConns),
		MaxConnLifetime:   maxConnLifetime,
		MaxConnIdleTime:   maxConnIdleTime,
		HealthCheckPeriod: healthCheckPeriod,
		MaxRetries:        maxRetries,
		RetryDelay:        retryDelay,
		ConnectTimeout:    connectTimeout,
	}, nil
}

func parseDuration(key, defaultValue string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnv(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
