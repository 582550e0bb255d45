package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"postboard-backend/internal/domains/group"
	"postboard-backend/internal/shared/middleware"
	"postboard-backend/internal/shared/response"
)

type GroupHandler struct {
	service group.Service
}

func NewGroupHandler(service group.Service) *GroupHandler {
	return &GroupHandler{service: service}
}

// List GET /groups
func (h *GroupHandler) List(c *gin.Context) {
	groups, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Groups retrieved", groups)
}

// GetBySlug GET /groups/:slug
func (h *GroupHandler) GetBySlug(c *gin.Context) {
	g, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Group retrieved", g)
}

// Create POST /admin/groups
func (h *GroupHandler) Create(c *gin.Context) {
	var req group.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	g, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Location", "/api/v1/groups/"+g.Slug+"/posts")
	response.Success(c, http.StatusCreated, "Group created", g)
}

func (h *GroupHandler) handleError(c *gin.Context, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.Error(c, http.StatusBadRequest, "Validation failed", verrs)
		return
	}

	status := group.ToHTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("request_id", c.GetString(middleware.ContextRequestID)).Msg("group handler: unexpected error")
		response.Error(c, status, "Internal server error", nil)
		return
	}

	response.Error(c, status, err.Error(), nil)
}
