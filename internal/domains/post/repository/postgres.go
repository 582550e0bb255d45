package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"postboard-backend/internal/domains/post"
	"postboard-backend/pkg/database"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type postgresRepository struct {
	db database.Pool
}

// NewPostgresRepository - posts không cache: listing thay đổi sau mỗi lần create/edit
func NewPostgresRepository(db database.Pool) post.Repository {
	return &postgresRepository{db: db}
}

// selectPosts joins author and (optional) group summaries.
func selectPosts() sq.SelectBuilder {
	return psql.
		Select(
			"p.id", "p.text", "p.created_at",
			"u.id", "u.username", "u.full_name",
			"g.id", "g.slug", "g.title",
		).
		From("posts p").
		Join("users u ON u.id = p.author_id").
		LeftJoin("groups g ON g.id = p.group_id")
}

func applyFilter(b sq.SelectBuilder, f post.Filter) sq.SelectBuilder {
	if f.GroupID != nil {
		b = b.Where(sq.Expr("p.group_id = ?", *f.GroupID))
	}
	if f.AuthorID != nil {
		b = b.Where(sq.Expr("p.author_id = ?", *f.AuthorID))
	}
	return b
}

func (r *postgresRepository) Count(ctx context.Context, f post.Filter) (int64, error) {
	query, args, err := applyFilter(psql.Select("COUNT(*)").From("posts p"), f).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return total, nil
}

func (r *postgresRepository) List(ctx context.Context, f post.Filter, limit, offset int) ([]post.Post, error) {
	query, args, err := applyFilter(selectPosts(), f).
		OrderBy("p.created_at DESC", "p.id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]post.Post, 0, limit)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}

	return posts, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*post.Post, error) {
	return getByID(ctx, r.db, id)
}

// Create insert rồi đọc lại row (kèm author/group) trong cùng transaction
func (r *postgresRepository) Create(ctx context.Context, p *post.Post) error {
	created, err := database.WithTransactionResult(ctx, r.db, func(tx pgx.Tx) (*post.Post, error) {
		query, args, err := psql.
			Insert("posts").
			Columns("text", "author_id", "group_id").
			Values(p.Text, p.Author.ID, p.GroupID()).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("build insert: %w", err)
		}

		var id int64
		if err := tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
			return nil, fmt.Errorf("insert post: %w", err)
		}
		return getByID(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	*p = *created
	return nil
}

// Update chỉ ghi text + group_id; author_id và created_at không bao giờ bị đụng tới.
// Điều kiện author_id trong WHERE đảm bảo chỉ tác giả sửa được.
func (r *postgresRepository) Update(ctx context.Context, p *post.Post) error {
	updated, err := database.WithTransactionResult(ctx, r.db, func(tx pgx.Tx) (*post.Post, error) {
		query, args, err := psql.
			Update("posts").
			Set("text", p.Text).
			Set("group_id", p.GroupID()).
			Where(sq.Expr("id = ?", p.ID)).
			Where(sq.Expr("author_id = ?", p.Author.ID)).
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("build update: %w", err)
		}

		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("update post: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil, post.ErrPostNotFound
		}
		return getByID(ctx, tx, p.ID)
	})
	if err != nil {
		return err
	}

	*p = *updated
	return nil
}

func getByID(ctx context.Context, q database.Querier, id int64) (*post.Post, error) {
	query, args, err := selectPosts().Where(sq.Expr("p.id = ?", id)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}

	p, err := scanPost(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, post.ErrPostNotFound
		}
		return nil, err
	}
	return p, nil
}

func scanPost(row pgx.Row) (*post.Post, error) {
	var (
		p          post.Post
		groupID    *uuid.UUID
		groupSlug  *string
		groupTitle *string
	)

	err := row.Scan(
		&p.ID, &p.Text, &p.CreatedAt,
		&p.Author.ID, &p.Author.Username, &p.Author.FullName,
		&groupID, &groupSlug, &groupTitle,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan post: %w", err)
	}

	if groupID != nil {
		p.Group = &post.GroupRef{ID: *groupID}
		if groupSlug != nil {
			p.Group.Slug = *groupSlug
		}
		if groupTitle != nil {
			p.Group.Title = *groupTitle
		}
	}

	return &p, nil
}
