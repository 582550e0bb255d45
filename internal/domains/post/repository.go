package post

import (
	"context"

	"github.com/google/uuid"
)

// Filter chọn tập post cần list. Field nil = không lọc.
type Filter struct {
	GroupID  *uuid.UUID
	AuthorID *uuid.UUID
}

func ByGroup(id uuid.UUID) Filter {
	return Filter{GroupID: &id}
}

func ByAuthor(id uuid.UUID) Filter {
	return Filter{AuthorID: &id}
}

// Repository - data access cho posts.
// List luôn trả về theo created_at DESC, id DESC.
type Repository interface {
	Count(ctx context.Context, f Filter) (int64, error)
	List(ctx context.Context, f Filter, limit, offset int) ([]Post, error)

	// GetByID returns ErrPostNotFound
	GetByID(ctx context.Context, id int64) (*Post, error)

	// Create inserts p (Text, Author.ID, Group.ID) and fills the rest from the stored row.
	Create(ctx context.Context, p *Post) error

	// Update writes Text and Group for p.ID, only if p.Author.ID still owns it.
	// Returns ErrPostNotFound when no row matches.
	Update(ctx context.Context, p *Post) error
}
