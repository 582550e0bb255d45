package container

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"postboard-backend/internal/config"
	infraCache "postboard-backend/internal/infrastructure/cache"
	"postboard-backend/internal/infrastructure/database"
	"postboard-backend/migrations"
	"postboard-backend/pkg/cache"
	"postboard-backend/pkg/jwt"

	"postboard-backend/internal/domains/group"
	groupHandler "postboard-backend/internal/domains/group/handler"
	groupRepo "postboard-backend/internal/domains/group/repository"
	groupService "postboard-backend/internal/domains/group/service"

	"postboard-backend/internal/domains/post"
	postHandler "postboard-backend/internal/domains/post/handler"
	postRepo "postboard-backend/internal/domains/post/repository"
	postService "postboard-backend/internal/domains/post/service"

	"postboard-backend/internal/domains/user"
	userHandler "postboard-backend/internal/domains/user/handler"
	userRepo "postboard-backend/internal/domains/user/repository"
	userService "postboard-backend/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa tất cả dependencies của application.
// Thứ tự khởi tạo: Config → Infrastructure → Repositories → Services → Handlers
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager

	// Repositories
	UserRepo  user.Repository
	GroupRepo group.Repository
	PostRepo  post.Repository

	// Services
	UserService  user.Service
	GroupService group.Service
	PostService  post.Service

	// Handlers
	UserHandler  *userHandler.UserHandler
	GroupHandler *groupHandler.GroupHandler
	PostHandler  *postHandler.PostHandler
}

// NewContainer tạo và initialize toàn bộ dependency graph
func NewContainer() (*Container, error) {
	log.Info().Msg("Initializing DI container...")

	c := &Container{}

	// ========================================
	// STEP 1: CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("environment", cfg.App.Environment).Msg("Config loaded")

	// ========================================
	// STEP 2: DATABASE
	// ========================================
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	if cfg.App.AutoMigrate {
		if err := runMigrations(ctx, dbConfig.DSN()); err != nil {
			c.Cleanup()
			return nil, err
		}
	}

	// ========================================
	// STEP 3: CACHE
	// ========================================
	// Redis lỗi không critical: repositories coi lỗi cache như cache miss
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		if err := rc.Connect(ctx); err != nil {
			log.Warn().Err(err).Msg("Redis connection failed (non-critical)")
		} else {
			log.Info().Str("host", cfg.Redis.Host).Msg("Redis connected")
		}
	}
	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTTL())

	// ========================================
	// STEP 4-6: DOMAIN LAYERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("DI container initialized")
	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool
	ttl := c.Config.Redis.CacheTTL

	c.UserRepo = userRepo.NewPostgresRepository(pool, c.Cache, ttl)
	c.GroupRepo = groupRepo.NewPostgresRepository(pool, c.Cache, ttl)
	c.PostRepo = postRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager)
	c.GroupService = groupService.NewGroupService(c.GroupRepo)

	// Post service đọc group/user qua repository (có cache) để resolve slug/username
	c.PostService = postService.NewPostService(c.PostRepo, c.GroupRepo, c.UserRepo)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.GroupHandler = groupHandler.NewGroupHandler(c.GroupService)
	c.PostHandler = postHandler.NewPostHandler(c.PostService)
}

// runMigrations applies goose migrations over a short-lived database/sql handle.
func runMigrations(ctx context.Context, dsn string) error {
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer sqlDB.Close()

	results, err := migrations.Up(ctx, sqlDB)
	if err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	for _, r := range results {
		log.Info().Int64("version", r.Source.Version).Dur("duration", r.Duration).Msg("migration applied")
	}
	return nil
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("Cleaning up container resources...")

	if c.DB != nil {
		_ = c.DB.Close()
	}

	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
			if err := rc.Close(); err != nil {
				log.Warn().Err(err).Msg("Failed to close Redis")
			}
		}
	}

	log.Info().Msg("Container cleanup completed")
}
