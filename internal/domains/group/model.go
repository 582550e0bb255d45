package group

import (
	"time"

	"github.com/google/uuid"
)

// Group là một cộng đồng/chuyên mục mà post có thể thuộc về.
// Slug là unique và không đổi sau khi tạo.
type Group struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
