package service

import (
	"context"
	"sync"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postboard-backend/internal/domains/group"
)

type fakeRepo struct {
	mu     sync.Mutex
	groups []group.Group
}

func (f *fakeRepo) Create(_ context.Context, g *group.Group) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.groups {
		if existing.Slug == g.Slug {
			return group.ErrDuplicateSlug
		}
	}
	f.groups = append(f.groups, *g)
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*group.Group, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, g := range f.groups {
		if g.ID == id {
			cp := g
			return &cp, nil
		}
	}
	return nil, group.ErrGroupNotFound
}

func (f *fakeRepo) GetBySlug(_ context.Context, slug string) (*group.Group, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, g := range f.groups {
		if g.Slug == slug {
			cp := g
			return &cp, nil
		}
	}
	return nil, group.ErrGroupNotFound
}

func (f *fakeRepo) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	_, err := f.GetByID(ctx, id)
	return err == nil, nil
}

func (f *fakeRepo) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	_, err := f.GetBySlug(ctx, slug)
	return err == nil, nil
}

func (f *fakeRepo) List(context.Context) ([]group.Group, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]group.Group(nil), f.groups...), nil
}

func TestCreate(t *testing.T) {
	t.Parallel()

	svc := NewGroupService(&fakeRepo{})
	ctx := context.Background()

	g, err := svc.Create(ctx, group.CreateGroupRequest{Title: "Cats & Dogs", Description: "pets"})
	require.NoError(t, err)
	assert.Equal(t, "cats-dogs", g.Slug)
	assert.NotEqual(t, uuid.Nil, g.ID)

	got, err := svc.GetBySlug(ctx, "cats-dogs")
	require.NoError(t, err)
	assert.Equal(t, g.ID, got.ID)

	_, err = svc.Create(ctx, group.CreateGroupRequest{Title: "Cats and dogs", Slug: "cats-dogs"})
	assert.ErrorIs(t, err, group.ErrDuplicateSlug)

	groups, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, groups, 1)
}

func TestCreate_Invalid(t *testing.T) {
	t.Parallel()

	svc := NewGroupService(&fakeRepo{})

	_, err := svc.Create(context.Background(), group.CreateGroupRequest{Title: "   "})

	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "title")
}

func TestGetBySlug_NotFound(t *testing.T) {
	t.Parallel()

	_, err := NewGroupService(&fakeRepo{}).GetBySlug(context.Background(), "nope")
	assert.ErrorIs(t, err, group.ErrGroupNotFound)
}
