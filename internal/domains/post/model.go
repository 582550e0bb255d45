package post

import (
	"time"

	"github.com/google/uuid"
)

// Post là một bài viết text của user, có thể gắn với một group.
// Author và CreatedAt không đổi sau khi tạo; chỉ Text và Group được sửa.
type Post struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	Author    Author    `json:"author"`
	Group     *GroupRef `json:"group"`
}

// Author - thông tin tóm tắt của user viết bài
type Author struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	FullName string    `json:"full_name,omitempty"`
}

// GroupRef - thông tin tóm tắt của group (nil nếu post không thuộc group nào)
type GroupRef struct {
	ID    uuid.UUID `json:"id"`
	Slug  string    `json:"slug"`
	Title string    `json:"title"`
}

// GroupID returns nil when the post has no group.
func (p *Post) GroupID() *uuid.UUID {
	if p.Group == nil {
		return nil
	}
	id := p.Group.ID
	return &id
}

func (p *Post) IsAuthoredBy(userID uuid.UUID) bool {
	return p.Author.ID == userID
}
