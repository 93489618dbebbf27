package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/classpad-app/classpad-backend/internal/response"
	"github.com/classpad-app/classpad-backend/internal/service"
	"github.com/classpad-app/classpad-backend/internal/validator"
)

// AuthHandler handles admin authentication for maintenance operations.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// AdminLoginRequest is the admin login payload.
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// AdminLogin godoc
// POST /api/v1/auth/admin/login
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	token, err := h.authService.LoginAdmin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"token": token})
}
