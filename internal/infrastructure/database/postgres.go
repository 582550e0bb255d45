package database

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// DBConfig chứa tất cả các thông tin cấu hình để kết nối PostgreSQL
type DBConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	DBName   string
	SSLMode  string

	// Connection pool
	MaxConns          int32
	MinConns          int32
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration

	// Retry
	MaxRetries     int
	RetryDelay     time.Duration
	ConnectTimeout time.Duration
}

// DSN builds a postgres:// URL usable by both pgx and lib/pq.
func (c *DBConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Username, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.sslMode()}}.Encode(),
	}
	return u.String()
}

func (c *DBConfig) sslMode() string {
	if c.SSLMode == "" {
		return "disable"
	}
	return c.SSLMode
}

// PostgresDB quản lý connection pool và lifecycle của database
type PostgresDB struct {
	Pool   *pgxpool.Pool
	Config *DBConfig
}

func NewPostgresDB(config *DBConfig) *PostgresDB {
	return &PostgresDB{Config: config}
}

func (db *PostgresDB) configurePool() (*pgxpool.Config, error) {
	config, err := pgxpool.ParseConfig(db.Config.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	config.MaxConns = db.Config.MaxConns
	config.MinConns = db.Config.MinConns
	config.MaxConnLifetime = db.Config.MaxConnLifetime
	config.MaxConnIdleTime = db.Config.MaxConnIdleTime
	config.HealthCheckPeriod = db.Config.HealthCheckPeriod
	config.ConnConfig.ConnectTimeout = db.Config.ConnectTimeout

	return config, nil
}

// connectWithRetry retry với exponential backoff: delay = base * 2^(attempt-1)
func (db *PostgresDB) connectWithRetry(ctx context.Context, config *pgxpool.Config) (*pgxpool.Pool, error) {
	var lastErr error

	for attempt := 1; attempt <= db.Config.MaxRetries; attempt++ {
		log.Info().Int("attempt", attempt).Int("max", db.Config.MaxRetries).Msg("[DATABASE] Connection attempt")

		connectCtx, cancel := context.WithTimeout(ctx, db.Config.ConnectTimeout)
		pool, err := pgxpool.NewWithConfig(connectCtx, config)
		cancel()

		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				log.Info().Int("attempt", attempt).Msg("[DATABASE] Successfully connected")
				return pool, nil
			}
			pool.Close()
		}
		lastErr = err

		log.Warn().Err(lastErr).Int("attempt", attempt).Msg("[DATABASE] Attempt failed")

		if attempt < db.Config.MaxRetries {
			delay := db.Config.RetryDelay * time.Duration(1<<uint(attempt-1))
			log.Info().Dur("delay", delay).Msg("[DATABASE] Retrying")

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, fmt.Errorf("connection cancelled: %w", ctx.Err())
			}
		}
	}

	return nil, fmt.Errorf("failed to connect after %d attempts: %w", db.Config.MaxRetries, lastErr)
}

// Connect: configure -> retry -> verify
func (db *PostgresDB) Connect(ctx context.Context) error {
	log.Info().Str("host", db.Config.Host).Str("db", db.Config.DBName).Msg("[DATABASE] Initializing PostgreSQL connection...")

	config, err := db.configurePool()
	if err != nil {
		return fmt.Errorf("pool configuration failed: %w", err)
	}

	pool, err := db.connectWithRetry(ctx, config)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}

	db.Pool = pool
	log.Info().Msg("[DATABASE] PostgreSQL connection established successfully")
	return nil
}

// HealthCheck ping database và kiểm tra pool còn connections
func (db *PostgresDB) HealthCheck(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.Pool.Ping(healthCtx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	stats := db.Pool.Stat()
	if stats.TotalConns() == 0 {
		return fmt.Errorf("no active database connections")
	}

	log.Debug().
		Int32("total", stats.TotalConns()).
		Int32("idle", stats.IdleConns()).
		Int32("acquired", stats.AcquiredConns()).
		Msg("[DATABASE] Health check passed")

	return nil
}
