package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"postboard-backend/internal/domains/user"
	"postboard-backend/pkg/cache"
	"postboard-backend/pkg/database"
	"postboard-backend/pkg/logger"
)

const (
	userIDKeyPrefix       = "user:id:"
	userUsernameKeyPrefix = "user:username:"

	pgUniqueViolation = "23505"
)

// postgresRepository là concrete implementation của user.Repository
type postgresRepository struct {
	db       database.Querier
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewPostgresRepository returns user.Repository; cache may be nil.
func NewPostgresRepository(db database.Querier, c cache.Cache, cacheTTL time.Duration) user.Repository {
	return &postgresRepository{
		db:       db,
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

func (r *postgresRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (id, username, full_name, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		u.ID,
		u.Username,
		u.FullName,
		u.PasswordHash,
		u.Role,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return user.ErrUsernameTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	key := userIDKeyPrefix + id.String()
	if u, ok := r.fromCache(ctx, key); ok {
		return u, nil
	}

	query := `
		SELECT id, username, full_name, role, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	u, err := scanPublicUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	r.toCache(ctx, u)
	return u, nil
}

// FindByUsername dùng cho profile listing - đọc nhiều, cache theo username
func (r *postgresRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	key := userUsernameKeyPrefix + username
	if u, ok := r.fromCache(ctx, key); ok {
		return u, nil
	}

	query := `
		SELECT id, username, full_name, role, created_at, updated_at
		FROM users
		WHERE username = $1
	`

	u, err := scanPublicUser(r.db.QueryRow(ctx, query, username))
	if err != nil {
		return nil, err
	}

	r.toCache(ctx, u)
	return u, nil
}

// FindCredentials không cache vì chỉ dùng khi login
func (r *postgresRepository) FindCredentials(ctx context.Context, username string) (*user.User, error) {
	query := `
		SELECT id, username, full_name, password_hash, role, created_at, updated_at
		FROM users
		WHERE username = $1
	`

	var u user.User
	err := r.db.QueryRow(ctx, query, username).Scan(
		&u.ID,
		&u.Username,
		&u.FullName,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user credentials: %w", err)
	}

	return &u, nil
}

func (r *postgresRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check username exists: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) SetRole(ctx context.Context, username string, role user.Role) (*user.User, error) {
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role %q", role)
	}

	query := `
		UPDATE users SET role = $1, updated_at = NOW()
		WHERE username = $2
		RETURNING id, username, full_name, role, created_at, updated_at
	`

	u, err := scanPublicUser(r.db.QueryRow(ctx, query, role, username))
	if err != nil {
		return nil, err
	}

	r.evict(ctx, u)
	return u, nil
}

func scanPublicUser(row pgx.Row) (*user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.FullName,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

// ========================================
// CACHE HELPERS
// ========================================
// Cache lỗi không làm fail request - chỉ log và fallback DB

func (r *postgresRepository) fromCache(ctx context.Context, key string) (*user.User, bool) {
	if r.cache == nil {
		return nil, false
	}

	var u user.User
	found, err := r.cache.Get(ctx, key, &u)
	if err != nil {
		logger.Warn("user cache get failed", err)
		return nil, false
	}
	return &u, found
}

func (r *postgresRepository) toCache(ctx context.Context, u *user.User) {
	if r.cache == nil {
		return
	}

	for _, key := range []string{userIDKeyPrefix + u.ID.String(), userUsernameKeyPrefix + u.Username} {
		if err := r.cache.Set(ctx, key, u, r.cacheTTL); err != nil {
			logger.Warn("user cache set failed", err)
			return
		}
	}
}

func (r *postgresRepository) evict(ctx context.Context, u *user.User) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Delete(ctx, userIDKeyPrefix+u.ID.String(), userUsernameKeyPrefix+u.Username); err != nil {
		logger.Warn("user cache evict failed", err)
	}
}
