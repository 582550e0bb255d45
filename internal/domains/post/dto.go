package post

import (
	"postboard-backend/internal/domains/group"
	"postboard-backend/internal/domains/user"
	"postboard-backend/internal/shared/paginator"
)

// ========================================
// LISTING RESULTS
// ========================================

// Page là một trang của listing
type Page struct {
	Posts []Post         `json:"posts"`
	Meta  paginator.Meta `json:"meta"`
}

// GroupPage - trang post của một group kèm metadata của group
type GroupPage struct {
	Page
	Group *group.Group `json:"group"`
}

// ProfilePage - trang post của một user; PostCount là tổng số post của user
type ProfilePage struct {
	Page
	Author    user.UserDTO `json:"author"`
	PostCount int64        `json:"post_count"`
}

// Detail - một post kèm tổng số post của tác giả
type Detail struct {
	Post            *Post `json:"post"`
	AuthorPostCount int64 `json:"author_post_count"`
}

// ========================================
// MUTATION RESULTS
// ========================================

type EditOutcome string

const (
	EditApplied   EditOutcome = "applied"
	EditForbidden EditOutcome = "forbidden"
)

// EditResult: Outcome == EditForbidden khi người sửa không phải tác giả,
// Post khi đó là bản chưa bị thay đổi.
type EditResult struct {
	Outcome EditOutcome `json:"outcome"`
	Post    *Post       `json:"post"`
}
