package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"

	"postboard-backend/internal/domains/group"
	"postboard-backend/pkg/cache"
	"postboard-backend/pkg/database"
)

const (
	groupIDKeyPrefix   = "group:id:"
	groupSlugKeyPrefix = "group:slug:"
	groupListKey       = "group:list"

	pgUniqueViolation = "23505"
)

type postgresRepository struct {
	db       database.Querier
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewPostgresRepository returns group.Repository; cache may be nil.
// Groups are never updated, so cached entries only need invalidating on create.
func NewPostgresRepository(db database.Querier, c cache.Cache, cacheTTL time.Duration) group.Repository {
	return &postgresRepository{
		db:       db,
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

func (r *postgresRepository) Create(ctx context.Context, g *group.Group) error {
	query := `
		INSERT INTO groups (id, title, slug, description)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, query, g.ID, g.Title, g.Slug, g.Description).Scan(&g.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return group.ErrDuplicateSlug
		}
		return fmt.Errorf("insert group: %w", err)
	}

	r.invalidate(ctx, groupListKey)
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*group.Group, error) {
	var g group.Group
	if r.cacheGet(ctx, groupIDKeyPrefix+id.String(), &g) {
		return &g, nil
	}

	query := `
		SELECT id, title, slug, description, created_at
		FROM groups
		WHERE id = $1
	`

	found, err := scanGroup(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	r.store(ctx, found)
	return found, nil
}

// GetBySlug retrieves group by URL slug with caching
func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*group.Group, error) {
	var g group.Group
	if r.cacheGet(ctx, groupSlugKeyPrefix+slug, &g) {
		return &g, nil
	}

	query := `
		SELECT id, title, slug, description, created_at
		FROM groups
		WHERE slug = $1
	`

	found, err := scanGroup(r.db.QueryRow(ctx, query, slug))
	if err != nil {
		return nil, err
	}

	r.store(ctx, found)
	return found, nil
}

func (r *postgresRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var g group.Group
	if r.cacheGet(ctx, groupIDKeyPrefix+id.String(), &g) {
		return true, nil
	}

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM groups WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check group exists: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var g group.Group
	if r.cacheGet(ctx, groupSlugKeyPrefix+slug, &g) {
		return true, nil
	}

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM groups WHERE slug = $1)`, slug).Scan(&exists); err != nil {
		return false, fmt.Errorf("check group slug exists: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]group.Group, error) {
	var cached []group.Group
	if r.cacheGet(ctx, groupListKey, &cached) {
		return cached, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, title, slug, description, created_at
		FROM groups
		ORDER BY title ASC, slug ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()

	groups := make([]group.Group, 0)
	for rows.Next() {
		var g group.Group
		if err := rows.Scan(&g.ID, &g.Title, &g.Slug, &g.Description, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate groups: %w", err)
	}

	r.cacheSet(ctx, groupListKey, groups)
	return groups, nil
}

func scanGroup(row pgx.Row) (*group.Group, error) {
	var g group.Group
	if err := row.Scan(&g.ID, &g.Title, &g.Slug, &g.Description, &g.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, group.ErrGroupNotFound
		}
		return nil, fmt.Errorf("scan group: %w", err)
	}
	return &g, nil
}

// ========================================
// CACHE HELPERS
// ========================================

func (r *postgresRepository) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if r.cache == nil {
		return false
	}
	found, err := r.cache.Get(ctx, key, dest)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("group cache get failed")
		return false
	}
	return found
}

func (r *postgresRepository) cacheSet(ctx context.Context, key string, value interface{}) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Set(ctx, key, value, r.cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("group cache set failed")
	}
}

// store caches g by both ID and slug
func (r *postgresRepository) store(ctx context.Context, g *group.Group) {
	r.cacheSet(ctx, groupIDKeyPrefix+g.ID.String(), g)
	r.cacheSet(ctx, groupSlugKeyPrefix+g.Slug, g)
}

func (r *postgresRepository) invalidate(ctx context.Context, keys ...string) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Delete(ctx, keys...); err != nil {
		log.Warn().Err(err).Strs("keys", keys).Msg("group cache invalidate failed")
	}
}
