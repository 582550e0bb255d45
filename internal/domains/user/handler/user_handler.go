package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"postboard-backend/internal/domains/user"
	"postboard-backend/internal/shared/middleware"
	"postboard-backend/internal/shared/response"
)

// UserHandler xử lý HTTP requests cho user domain
type UserHandler struct {
	service user.Service
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

// ========================================
// AUTHENTICATION ENDPOINTS
// ========================================

// Register xử lý POST /auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := h.bindJSON(c, &req); err != nil {
		return
	}

	userDTO, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Location", "/api/v1/profiles/"+userDTO.Username+"/posts")
	response.Success(c, http.StatusCreated, "User registered successfully", userDTO)
}

// Login xử lý POST /auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := h.bindJSON(c, &req); err != nil {
		return
	}

	loginResp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", loginResp)
}

// ========================================
// PROFILE ENDPOINTS
// ========================================

// GetProfile xử lý GET /users/me
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	userDTO, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Profile retrieved", userDTO)
}

// handleError map domain errors thành HTTP responses
func (h *UserHandler) handleError(c *gin.Context, err error) {
	var verrs validation.Errors

	switch {
	case errors.As(err, &verrs):
		response.Error(c, http.StatusBadRequest, "Validation failed", verrs)

	case errors.Is(err, user.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, err.Error(), nil)

	case errors.Is(err, user.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, err.Error(), nil)

	case errors.Is(err, user.ErrUsernameTaken):
		response.Error(c, http.StatusConflict, err.Error(), nil)

	default:
		log.Error().Err(err).Str("request_id", c.GetString(middleware.ContextRequestID)).Msg("user handler: unexpected error")
		response.Error(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}

func (h *UserHandler) bindJSON(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return err
	}
	return nil
}
