package group

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"postboard-backend/internal/shared/utils"
)

// CreateGroupRequest - admin tạo group mới.
// Slug bỏ trống sẽ được sinh từ Title.
type CreateGroupRequest struct {
	Title       string `json:"title" binding:"required"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description"`
}

// Normalize trims input and fills the slug from the title when empty.
func (r *CreateGroupRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Slug = strings.TrimSpace(r.Slug)
	if r.Slug == "" {
		r.Slug = utils.GenerateSlug(r.Title)
	}
}

func (r CreateGroupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 200),
		),
		validation.Field(&r.Slug,
			validation.Required.Error("slug is required"),
			validation.Length(1, 100),
			validation.By(func(value interface{}) error {
				if !utils.IsValidSlug(value.(string)) {
					return errors.New("slug must be lowercase letters, digits and single hyphens")
				}
				return nil
			}),
		),
	)
}
