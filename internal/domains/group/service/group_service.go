package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"postboard-backend/internal/domains/group"
)

type groupService struct {
	repo group.Repository
}

func NewGroupService(repo group.Repository) group.Service {
	return &groupService{repo: repo}
}

// Create - admin only (enforced bởi router middleware)
func (s *groupService) Create(ctx context.Context, req group.CreateGroupRequest) (*group.Group, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	taken, err := s.repo.ExistsBySlug(ctx, req.Slug)
	if err != nil {
		return nil, fmt.Errorf("check slug: %w", err)
	}
	if taken {
		return nil, group.ErrDuplicateSlug
	}

	g := &group.Group{
		ID:          uuid.New(),
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
	}

	if err := s.repo.Create(ctx, g); err != nil {
		if errors.Is(err, group.ErrDuplicateSlug) {
			return nil, err
		}
		return nil, fmt.Errorf("create group: %w", err)
	}

	log.Info().Str("group_id", g.ID.String()).Str("slug", g.Slug).Msg("group created")
	return g, nil
}

func (s *groupService) GetBySlug(ctx context.Context, slug string) (*group.Group, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *groupService) List(ctx context.Context) ([]group.Group, error) {
	return s.repo.List(ctx)
}
