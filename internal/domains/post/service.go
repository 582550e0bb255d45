package post

import (
	"context"

	"github.com/google/uuid"

	"postboard-backend/internal/domains/group"
	"postboard-backend/internal/domains/user"
)

// Service - listing + mutation của posts.
// identity luôn được truyền tường minh, service không đọc request state.
type Service interface {
	ListIndex(ctx context.Context, page int) (*Page, error)
	ListGroup(ctx context.Context, slug string, page int) (*GroupPage, error)
	ListProfile(ctx context.Context, username string, page int) (*ProfilePage, error)
	GetDetail(ctx context.Context, id int64) (*Detail, error)

	Create(ctx context.Context, identity uuid.UUID, in RawInput) (*Post, error)
	Edit(ctx context.Context, identity uuid.UUID, id int64, in RawInput) (*EditResult, error)
}

// GroupLookup is satisfied by group.Repository.
type GroupLookup interface {
	GroupChecker
	GetBySlug(ctx context.Context, slug string) (*group.Group, error)
}

// UserLookup is satisfied by user.Repository.
type UserLookup interface {
	FindByUsername(ctx context.Context, username string) (*user.User, error)
}
