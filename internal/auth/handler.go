package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/atriumlabs/atrium/backend/internal/apperror"
)

// Handler handles HTTP requests for auth endpoints
type Handler struct {
	service         *Service
	responseHandler ResponseHandler
}

// NewHandler creates a new auth handler instance
func NewHandler(service *Service, responseHandler ResponseHandler) *Handler {
	return &Handler{
		service:         service,
		responseHandler: responseHandler,
	}
}

// RegisterRoutes registers all auth routes
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	auth := router.Group("/api/v1/auth")
	{
		// Public routes
		auth.POST("/register", h.handleRegister)
		auth.POST("/login", h.handleLogin)
		auth.POST("/refresh", h.handleRefresh)

		// Protected routes (require authentication)
		protected := auth.Group("")
		protected.Use(Middleware(h.service, h.responseHandler))
		protected.POST("/logout", h.handleLogout)
	}
}

// handleRegister creates a new user account.
func (h *Handler) handleRegister(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responseHandler.HandleError(c, apperror.NewValidation("Invalid request format").WithCause(err))
		return
	}

	u, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.responseHandler.HandleError(c, err)
		return
	}

	h.responseHandler.SuccessResponse(c, u, "Registration successful")
}

// handleLogin authenticates a user and returns a token pair.
func (h *Handler) handleLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responseHandler.HandleError(c, apperror.NewValidation("Invalid request format").WithCause(err))
		return
	}

	response, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.responseHandler.HandleError(c, err)
		return
	}

	h.responseHandler.SuccessResponse(c, response, "Login successful")
}

// handleRefresh rotates a refresh token and returns a new token pair.
func (h *Handler) handleRefresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responseHandler.HandleError(c, apperror.NewValidation("Refresh token is required").WithCause(err))
		return
	}

	response, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.responseHandler.HandleError(c, err)
		return
	}

	h.responseHandler.SuccessResponse(c, response, "Token refresh successful")
}

// handleLogout revokes the session's tokens.
func (h *Handler) handleLogout(c *gin.Context) {
	var req LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responseHandler.HandleError(c, apperror.NewValidation("Refresh token is required").WithCause(err))
		return
	}

	accessToken, err := bearerToken(c)
	if err != nil {
		h.responseHandler.HandleError(c, err)
		return
	}

	if err := h.service.Logout(c.Request.Context(), accessToken, req.RefreshToken); err != nil {
		h.responseHandler.HandleError(c, err)
		return
	}

	h.responseHandler.SuccessResponse(c, nil, "Logout successful")
}
