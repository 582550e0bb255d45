package user

import (
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// letters, digits and @/./+/-/_ only
var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// ========================================
// AUTH DTOs
// ========================================

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name,omitempty"`
}

// Normalize trims whitespace around username and full name.
func (r *RegisterRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.FullName = strings.TrimSpace(r.FullName)
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required.Error("username is required"),
			validation.Length(3, 150).Error("username must be 3-150 characters"),
			validation.Match(usernamePattern).Error("username may contain only letters, digits and @/./+/-/_"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be 8-128 characters"),
		),
		validation.Field(&r.FullName,
			validation.Length(0, 150),
		),
	)
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        UserDTO   `json:"user"`
}

// ========================================
// USER PROFILE DTOs
// ========================================

// UserDTO - Public user representation (safe to expose)
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToDTO() UserDTO {
	return UserDTO{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
