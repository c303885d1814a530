package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"propertypro-backend/internal/domains/user"
	"propertypro-backend/internal/shared/middleware"
	"propertypro-backend/internal/shared/response"
	"propertypro-backend/pkg/logger"
)

// UserHandler xử lý HTTP requests cho auth endpoints
// Struct này là stateless - chỉ chứa dependencies
type UserHandler struct {
	service user.Service
}

// NewUserHandler tạo handler instance
func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

// RegisterRoutes gắn /auth routes. auth chỉ áp cho signout.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	group := rg.Group("/auth")
	{
		group.POST("/signup", h.Signup)
		group.POST("/signin", h.Signin)
		group.POST("/signout", auth, h.Signout)
	}
}

// ========================================
// AUTHENTICATION ENDPOINTS
// ========================================

// Signup xử lý POST /auth/signup
func (h *UserHandler) Signup(c *gin.Context) {
	var req user.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, []string{"invalid request body"})
		return
	}

	result, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// Signin xử lý POST /auth/signin
func (h *UserHandler) Signin(c *gin.Context) {
	var req user.SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, []string{"invalid request body"})
		return
	}

	result, err := h.service.Signin(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Signout xử lý POST /auth/signout
func (h *UserHandler) Signout(c *gin.Context) {
	if err := h.service.Signout(c.Request.Context(), middleware.CurrentClaims(c)); err != nil {
		h.handleError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Signed out successfully")
}

// handleError map domain errors thành HTTP status codes
func (h *UserHandler) handleError(c *gin.Context, err error) {
	switch {
	// 400 Bad Request
	case user.IsValidationError(err):
		response.ValidationFailed(c, user.ValidationMessages(err))

	// 401 Unauthorized
	case errors.Is(err, user.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error())

	// 409 Conflict
	case errors.Is(err, user.ErrEmailAlreadyExists):
		response.Conflict(c, err.Error())

	// 500 Internal Server Error
	default:
		logger.Error("auth request failed", err, map[string]interface{}{"path": c.FullPath()})
		response.InternalServerError(c, "Internal server error")
	}
}
