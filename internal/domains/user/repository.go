package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository định nghĩa contract cho data access layer
type Repository interface {
	// Create persists u; CreatedAt/UpdatedAt are filled from the database.
	// Returns ErrUsernameTaken on duplicate username.
	Create(ctx context.Context, u *User) error

	// FindByID / FindByUsername đọc qua cache, PasswordHash luôn rỗng.
	// Returns ErrUserNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)

	// FindCredentials bypasses the cache and includes PasswordHash.
	FindCredentials(ctx context.Context, username string) (*User, error)

	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// SetRole đổi role của user và xóa cache entries. Returns ErrUserNotFound.
	SetRole(ctx context.Context, username string, role Role) (*User, error)
}
