package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"postboard-backend/internal/domains/user"
	"postboard-backend/pkg/jwt"
)

// bcrypt cost = 12: balance giữa security và performance
const defaultBcryptCost = 12

// userService implement user.Service interface
type userService struct {
	repo       user.Repository
	jwtManager *jwt.Manager
	bcryptCost int
}

// NewUserService tạo service instance
func NewUserService(repo user.Repository, jwtManager *jwt.Manager) user.Service {
	return &userService{
		repo:       repo,
		jwtManager: jwtManager,
		bcryptCost: defaultBcryptCost,
	}
}

// ========================================
// AUTHENTICATION
// ========================================

func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.UserDTO, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("check username exists: %w", err)
	}
	if exists {
		return nil, user.ErrUsernameTaken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	newUser := &user.User{
		ID:           uuid.New(),
		Username:     req.Username,
		FullName:     req.FullName,
		PasswordHash: string(passwordHash),
		Role:         user.RoleUser,
	}

	// unique constraint vẫn là nguồn sự thật khi 2 request đăng ký cùng lúc
	if err := s.repo.Create(ctx, newUser); err != nil {
		if errors.Is(err, user.ErrUsernameTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	dto := newUser.ToDTO()
	return &dto, nil
}

func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.FindCredentials(ctx, req.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			// không expose username có tồn tại hay không
			return nil, user.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(u.ID.String(), u.Username, u.Role.String())
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	return &user.LoginResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresAt:   time.Now().Add(s.jwtManager.AccessTTL()),
		User:        u.ToDTO(),
	}, nil
}

// ========================================
// PROFILE
// ========================================

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*user.UserDTO, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	dto := u.ToDTO()
	return &dto, nil
}
