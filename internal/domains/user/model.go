package user

import (
	"time"

	"github.com/google/uuid"
)

// User là domain entity - ánh xạ 1:1 với bảng users
type User struct {
	ID       uuid.UUID `db:"id" json:"id"`
	Username string    `db:"username" json:"username"`
	FullName string    `db:"full_name" json:"full_name"`

	// Never expose in JSON (kể cả cache)
	PasswordHash string `db:"password_hash" json:"-"`

	Role Role `db:"role" json:"role"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Role enum - match CHECK constraint trong migration
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// DisplayName falls back to the username when no full name was given.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}
