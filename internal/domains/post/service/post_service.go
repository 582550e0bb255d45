package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"postboard-backend/internal/domains/post"
	"postboard-backend/internal/shared/paginator"
)

type postService struct {
	repo   post.Repository
	groups post.GroupLookup
	users  post.UserLookup
}

func NewPostService(repo post.Repository, groups post.GroupLookup, users post.UserLookup) post.Service {
	return &postService{
		repo:   repo,
		groups: groups,
		users:  users,
	}
}

// ========================================
// LISTING
// ========================================

func (s *postService) ListIndex(ctx context.Context, page int) (*post.Page, error) {
	return s.listPage(ctx, post.Filter{}, page)
}

func (s *postService) ListGroup(ctx context.Context, slug string, page int) (*post.GroupPage, error) {
	g, err := s.groups.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	p, err := s.listPage(ctx, post.ByGroup(g.ID), page)
	if err != nil {
		return nil, err
	}

	return &post.GroupPage{Page: *p, Group: g}, nil
}

func (s *postService) ListProfile(ctx context.Context, username string, page int) (*post.ProfilePage, error) {
	author, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	p, err := s.listPage(ctx, post.ByAuthor(author.ID), page)
	if err != nil {
		return nil, err
	}

	return &post.ProfilePage{
		Page:      *p,
		Author:    author.ToDTO(),
		PostCount: p.Meta.TotalItems,
	}, nil
}

func (s *postService) GetDetail(ctx context.Context, id int64) (*post.Detail, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.Count(ctx, post.ByAuthor(p.Author.ID))
	if err != nil {
		return nil, fmt.Errorf("count author posts: %w", err)
	}

	return &post.Detail{Post: p, AuthorPostCount: count}, nil
}

// listPage: count → clamp page → slice. Count và slice là 2 query riêng,
// không snapshot.
func (s *postService) listPage(ctx context.Context, f post.Filter, page int) (*post.Page, error) {
	total, err := s.repo.Count(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}

	meta := paginator.New(total, page, paginator.PageSize)

	posts := make([]post.Post, 0)
	if total > 0 {
		posts, err = s.repo.List(ctx, f, meta.Limit(), meta.Offset())
		if err != nil {
			return nil, fmt.Errorf("list posts: %w", err)
		}
	}

	return &post.Page{Posts: posts, Meta: meta}, nil
}

// ========================================
// MUTATIONS
// ========================================

func (s *postService) Create(ctx context.Context, identity uuid.UUID, in post.RawInput) (*post.Post, error) {
	valid, err := post.ValidateInput(ctx, in, s.groups)
	if err != nil {
		return nil, err
	}

	p := &post.Post{
		Text:   valid.Text,
		Author: post.Author{ID: identity},
	}
	if valid.GroupID != nil {
		p.Group = &post.GroupRef{ID: *valid.GroupID}
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	log.Info().Int64("post_id", p.ID).Str("author_id", identity.String()).Msg("post created")
	return p, nil
}

// Edit: NotFound → kiểm tra tác giả → validate → update.
// Người không phải tác giả nhận EditForbidden + post nguyên vẹn, không có error.
func (s *postService) Edit(ctx context.Context, identity uuid.UUID, id int64, in post.RawInput) (*post.EditResult, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !existing.IsAuthoredBy(identity) {
		log.Debug().Int64("post_id", id).Str("user_id", identity.String()).Msg("edit denied: not the author")
		return &post.EditResult{Outcome: post.EditForbidden, Post: existing}, nil
	}

	valid, err := post.ValidateInput(ctx, in, s.groups)
	if err != nil {
		return nil, err
	}

	updated := *existing
	updated.Text = valid.Text
	updated.Group = nil
	if valid.GroupID != nil {
		updated.Group = &post.GroupRef{ID: *valid.GroupID}
	}

	if err := s.repo.Update(ctx, &updated); err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update post: %w", err)
	}

	return &post.EditResult{Outcome: post.EditApplied, Post: &updated}, nil
}
