package group

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create returns ErrDuplicateSlug on slug conflict.
	Create(ctx context.Context, g *Group) error

	// GetByID / GetBySlug return ErrGroupNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*Group, error)
	GetBySlug(ctx context.Context, slug string) (*Group, error)

	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)

	// List returns all groups ordered by title.
	List(ctx context.Context) ([]Group, error)
}
