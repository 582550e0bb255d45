package group

import "context"

type Service interface {
	Create(ctx context.Context, req CreateGroupRequest) (*Group, error)
	GetBySlug(ctx context.Context, slug string) (*Group, error)
	List(ctx context.Context) ([]Group, error)
}
