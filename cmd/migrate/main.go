package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog/log"

	"postboard-backend/internal/config"
	"postboard-backend/internal/domains/user"
	userRepo "postboard-backend/internal/domains/user/repository"
	infraCache "postboard-backend/internal/infrastructure/cache"
	"postboard-backend/internal/infrastructure/database"
	"postboard-backend/migrations"
	"postboard-backend/pkg/cache"
	"postboard-backend/pkg/logger"
)

const usage = `usage: migrate [flags] <command>

commands:
  up      apply all pending migrations
  down    roll back the latest migration
  reset   roll back every migration
  status  print migration status
  promote <username>
          grant the admin role to an existing user
`

// cachedPrefixes - rows bị xóa khi rollback nên cache tương ứng phải flush
var cachedPrefixes = []string{"user:*", "group:*"}

func main() {
	timeout := flag.Duration("timeout", 2*time.Minute, "overall timeout")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	wantArgs := 1
	if flag.Arg(0) == "promote" {
		wantArgs = 2
	}
	if flag.NArg() != wantArgs {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var err error
	if flag.Arg(0) == "promote" {
		err = promote(ctx, flag.Arg(1))
	} else {
		err = run(ctx, flag.Arg(0))
	}
	if err != nil {
		log.Fatal().Err(err).Str("command", flag.Arg(0)).Msg("migration failed")
	}
}

func run(ctx context.Context, command string) error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("load database config: %w", err)
	}

	db, err := sql.Open("postgres", dbConfig.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	provider, err := migrations.NewProvider(db)
	if err != nil {
		return err
	}

	switch command {
	case "up":
		results, err := provider.Up(ctx)
		logResults(results)
		return err

	case "down":
		result, err := provider.Down(ctx)
		if result != nil {
			logResults([]*goose.MigrationResult{result})
		}
		if err != nil {
			return err
		}
		flushCache(ctx)
		return nil

	case "reset":
		results, err := provider.DownTo(ctx, 0)
		logResults(results)
		if err != nil {
			return err
		}
		flushCache(ctx)
		return nil

	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			return err
		}
		for _, s := range statuses {
			event := log.Info().
				Int64("version", s.Source.Version).
				Str("file", s.Source.Path).
				Str("state", string(s.State))
			if !s.AppliedAt.IsZero() {
				event = event.Time("applied_at", s.AppliedAt)
			}
			event.Msg("migration")
		}
		return nil

	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func logResults(results []*goose.MigrationResult) {
	for _, r := range results {
		log.Info().
			Int64("version", r.Source.Version).
			Str("direction", r.Direction).
			Dur("duration", r.Duration).
			Msg("migration applied")
	}
}

// promote cấp role admin cho user đã đăng ký. Đi qua user repository để
// cache entries của user bị xóa.
func promote(ctx context.Context, username string) error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	var c cache.Cache
	if rc := connectCache(ctx); rc != nil {
		defer rc.Close()
		c = rc
	}

	repo := userRepo.NewPostgresRepository(db.Pool, c, 0)
	u, err := repo.SetRole(ctx, username, user.RoleAdmin)
	if err != nil {
		return fmt.Errorf("promote %q: %w", username, err)
	}

	log.Info().Str("user_id", u.ID.String()).Str("username", u.Username).Msg("user promoted to admin")
	return nil
}

// connectCache trả về nil khi Redis không dùng được
func connectCache(ctx context.Context) *infraCache.RedisCache {
	cfg, err := config.Load()
	if err != nil {
		log.Warn().Err(err).Msg("skip cache: config not loaded")
		return nil
	}

	rc, ok := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB).(*infraCache.RedisCache)
	if !ok {
		return nil
	}
	if err := rc.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("skip cache: redis unavailable")
		_ = rc.Close()
		return nil
	}
	return rc
}

// flushCache xóa cache của user/group sau rollback. Redis không chạy thì bỏ qua.
func flushCache(ctx context.Context) {
	rc := connectCache(ctx)
	if rc == nil {
		return
	}
	defer rc.Close()

	for _, pattern := range cachedPrefixes {
		if err := rc.DeletePattern(ctx, pattern); err != nil {
			log.Warn().Err(err).Str("pattern", pattern).Msg("cache flush failed")
		}
	}
}
