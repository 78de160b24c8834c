package user

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/atriumlabs/atrium/backend/internal/apperror"
	"github.com/atriumlabs/atrium/backend/internal/config"
)

// maxAvatarSize caps avatar uploads at 5MB.
const maxAvatarSize = 5 << 20

// Handler handles HTTP requests for user endpoints
type Handler struct {
	service         *Service
	storage         ObjectStorage
	pagination      config.PaginationConfig
	responseHandler ResponseHandler
}

// NewHandler creates a new user handler instance
func NewHandler(service *Service, storage ObjectStorage, pagination config.PaginationConfig, responseHandler ResponseHandler) *Handler {
	return &Handler{
		service:         service,
		storage:         storage,
		pagination:      pagination,
		responseHandler: responseHandler,
	}
}

// RegisterRoutes registers all user routes. authRequired must populate
// the current user in the context; adminRequired additionally enforces
// the superuser flag.
func (h *Handler) RegisterRoutes(router *gin.Engine, authRequired, adminRequired gin.HandlerFunc) {
	users := router.Group("/api/v1/users")
	users.Use(authRequired)
	{
		users.GET("/me", h.handleGetMe)
		users.PATCH("/me", h.handleUpdateMe)
		users.POST("/me/avatar", h.handleUploadAvatar)

		admin := users.Group("")
		admin.Use(adminRequired)
		{
			admin.GET("", h.handleList)
			admin.GET("/:id", h.handleGet)
			admin.PATCH("/:id", h.handleUpdate)
			admin.DELETE("/:id", h.handleDelete)
		}
	}
}

// handleList returns a paginated user listing.
func (h *Handler) handleList(c *gin.Context) {
	var query ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.responseHandler.HandleError(c, apperror.NewValidation("Invalid pagination parameters").WithCause(err))
		return
	}

	if query.Size == 0 {
		query.Size = h.pagination.DefaultSize
	}
	if query.Page < 1 {
		h.responseHandler.HandleError(c, apperror.NewValidation("page must be a positive integer"))
		return
	}
	if query.Size < 1 || query.Size > h.pagination.MaxSize {
		h.responseHandler.HandleError(c, apperror.NewValidation(
			fmt.Sprintf("size must be between 1 and %d", h.pagination.MaxSize)))
		return
	}

	users, total, err := h.service.List(c.Request.Context(), query.Page, query.Size)
	if err != nil {
		h.responseHandler.HandleError(c, err)
		return
	}

	h.responseHandler.PageResponse(c, users, total, query.Page, query.Size)
}

// handleGetMe returns the authenticated user's profile.
func (h *Handler) handleGetMe(c *gin.Context) {
	current, ok := FromContext(c)
	if !ok {
		h.responseHandler.HandleError(c, apperror.NewAuthentication(apperror.ErrMsgInvalidToken))
		return
	}
	h.responseHandler.SuccessResponse(c, current, "")
}

// handleUpdateMe updates the authenticated user's profile.
func (h *Handler) handleUpdateMe(c *gin.Context) {
	current, ok := FromContext(c)
	if !ok {
		h.responseHandler.HandleError(c, apperror.NewAuthentication(apperror.ErrMsgInvalidToken))
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responseHandler.HandleError(c, apperror.NewValidation("Invalid request format").WithCause(err))
		return
	}

	updated, err := h.service.Update(c.Request.Context(), current.ID, req)
	if err != nil {
		h.responseHandler.HandleError(c, err)
		return
	}

	h.responseHandler.SuccessResponse(c, updated, "Profile updated")
}

// handleUploadAvatar stores an avatar image in object storage and saves
// its URL on the profile.
func (h *Handler) handleUploadAvatar(c *gin.Context) {
	current, ok := FromContext(c)
	if !ok {
		h.responseHandler.HandleError(c, apperror.NewAuthentication(apperror.ErrMsgInvalidToken))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.responseHandler.HandleError(c, apperror.NewValidation("Avatar file is required").WithCause(err))
		return
	}
	if fileHeader.Size > maxAvatarSize {
		h.responseHandler.HandleError(c, apperror.NewValidation("Avatar file exceeds maximum allowed size"))
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp":
	default:
		h.responseHandler.HandleError(c, apperror.NewValidation("Avatar file type not allowed").
			WithDetail(fmt.Sprintf("got %q", ext)))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.responseHandler.HandleError(c, fmt.Errorf("failed to open upload: %w", err))
		return
	}
	defer file.Close()

	key := fmt.Sprintf("avatars/%s/%s%s", current.ID, uuid.New(), ext)
	url, err := h.storage.UploadStream(c.Request.Context(), key, file, fileHeader.Size, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		h.responseHandler.HandleError(c, fmt.Errorf("failed to store avatar: %w", err))
		return
	}

	updated, err := h.service.SetAvatar(c.Request.Context(), current.ID, url)
	if err != nil {
		h.responseHandler.HandleError(c, err)
		return
	}

	h.responseHandler.SuccessResponse(c, updated, "Avatar updated")
}

// handleGet returns a user by ID.
func (h *Handler) handleGet(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.responseHandler.HandleError(c, err)
		return
	}

	u, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.responseHandler.HandleError(c, err)
		return
	}

	h.responseHandler.SuccessResponse(c, u, "")
}

// handleUpdate applies an administrative update to a user.
func (h *Handler) handleUpdate(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.responseHandler.HandleError(c, err)
		return
	}

	var req AdminUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responseHandler.HandleError(c, apperror.NewValidation("Invalid request format").WithCause(err))
		return
	}

	updated, err := h.service.AdminUpdate(c.Request.Context(), id, req)
	if err != nil {
		h.responseHandler.HandleError(c, err)
		return
	}

	h.responseHandler.SuccessResponse(c, updated, "User updated")
}

// handleDelete soft-deletes a user.
func (h *Handler) handleDelete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.responseHandler.HandleError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.responseHandler.HandleError(c, err)
		return
	}

	h.responseHandler.SuccessResponse(c, nil, "User deleted")
}

func parseID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperror.NewValidation("Invalid user ID").
			WithDetail(fmt.Sprintf("got %q", c.Param("id")))
	}
	return id, nil
}
