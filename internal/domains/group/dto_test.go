package group

import (
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGroupRequest_NormalizeGeneratesSlug(t *testing.T) {
	t.Parallel()

	req := CreateGroupRequest{Title: "  Lev Tolstoy Fans ", Description: " readers "}
	req.Normalize()

	assert.Equal(t, "Lev Tolstoy Fans", req.Title)
	assert.Equal(t, "lev-tolstoy-fans", req.Slug)
	assert.Equal(t, "readers", req.Description)
	assert.NoError(t, req.Validate())
}

func TestCreateGroupRequest_KeepsExplicitSlug(t *testing.T) {
	t.Parallel()

	req := CreateGroupRequest{Title: "Cats", Slug: "felines"}
	req.Normalize()

	assert.Equal(t, "felines", req.Slug)
}

func TestCreateGroupRequest_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		req      CreateGroupRequest
		badField string
	}{
		{name: "missing title", req: CreateGroupRequest{Slug: "cats"}, badField: "title"},
		{name: "uppercase slug", req: CreateGroupRequest{Title: "Cats", Slug: "Cats"}, badField: "slug"},
		{name: "slug with spaces", req: CreateGroupRequest{Title: "Cats", Slug: "big cats"}, badField: "slug"},
		{name: "empty slug", req: CreateGroupRequest{Title: "Cats"}, badField: "slug"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var verrs validation.Errors
			require.ErrorAs(t, tt.req.Validate(), &verrs)
			assert.Contains(t, verrs, tt.badField)
		})
	}
}

func TestToHTTPStatus(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 404, ToHTTPStatus(ErrGroupNotFound))
	assert.Equal(t, 409, ToHTTPStatus(ErrDuplicateSlug))
	assert.Equal(t, 500, ToHTTPStatus(assert.AnError))
}
