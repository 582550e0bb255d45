package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"postboard-backend/internal/domains/group"
	"postboard-backend/internal/domains/post"
	"postboard-backend/internal/domains/user"
	"postboard-backend/internal/shared/middleware"
	"postboard-backend/internal/shared/paginator"
	"postboard-backend/internal/shared/response"
)

// PostHandler xử lý HTTP requests cho post domain
type PostHandler struct {
	service post.Service
}

func NewPostHandler(service post.Service) *PostHandler {
	return &PostHandler{service: service}
}

// ========================================
// LISTING ENDPOINTS (public)
// ========================================

// ListIndex GET /posts?page=N
func (h *PostHandler) ListIndex(c *gin.Context) {
	page, err := h.service.ListIndex(c.Request.Context(), paginator.ParsePage(c.Query("page")))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Posts retrieved", page)
}

// ListGroup GET /groups/:slug/posts?page=N
func (h *PostHandler) ListGroup(c *gin.Context) {
	page, err := h.service.ListGroup(c.Request.Context(), c.Param("slug"), paginator.ParsePage(c.Query("page")))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Group posts retrieved", page)
}

// ListProfile GET /profiles/:username/posts?page=N
func (h *PostHandler) ListProfile(c *gin.Context) {
	page, err := h.service.ListProfile(c.Request.Context(), c.Param("username"), paginator.ParsePage(c.Query("page")))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Profile posts retrieved", page)
}

// GetDetail GET /posts/:id
func (h *PostHandler) GetDetail(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	detail, err := h.service.GetDetail(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Post retrieved", detail)
}

// ========================================
// MUTATION ENDPOINTS (auth)
// ========================================

// Create POST /posts
func (h *PostHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	var in post.RawInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	p, err := h.service.Create(c.Request.Context(), userID, in)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Location", "/api/v1/profiles/"+p.Author.Username+"/posts")
	response.Success(c, http.StatusCreated, "Post created", p)
}

// Edit PUT /posts/:id
// Không phải tác giả → 303 về trang chi tiết, post giữ nguyên.
func (h *PostHandler) Edit(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	var in post.RawInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.service.Edit(c.Request.Context(), userID, id, in)
	if err != nil {
		h.handleError(c, err)
		return
	}

	if result.Outcome == post.EditForbidden {
		c.Header("Location", detailPath(id))
		response.Success(c, http.StatusSeeOther, "Only the author can edit this post", result.Post)
		return
	}

	response.Success(c, http.StatusOK, "Post updated", result.Post)
}

// ========================================
// HELPERS
// ========================================

func (h *PostHandler) handleError(c *gin.Context, err error) {
	var verr *post.ValidationError

	switch {
	case errors.As(err, &verr):
		response.Error(c, http.StatusBadRequest, "Validation failed", gin.H{
			"fields": verr.Fields,
			"input":  verr.Input,
		})

	case errors.Is(err, post.ErrPostNotFound),
		errors.Is(err, group.ErrGroupNotFound),
		errors.Is(err, user.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, err.Error(), nil)

	default:
		log.Error().Err(err).Str("request_id", c.GetString(middleware.ContextRequestID)).Msg("post handler: unexpected error")
		response.Error(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}

// parseID: id không phải số nguyên dương được coi như post không tồn tại
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusNotFound, post.ErrPostNotFound.Error(), nil)
		return 0, false
	}
	return id, true
}

func detailPath(id int64) string {
	return "/api/v1/posts/" + strconv.FormatInt(id, 10)
}
