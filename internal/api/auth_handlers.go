package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/mysterymeet/backend/pkg/errors"
)

// POST /api/auth/register
func (h *Handler) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse("Invalid request", "INVALID_REQUEST"))
		return
	}

	if err := h.validator.ValidateName(req.Name); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse(err.Error(), "INVALID_NAME"))
		return
	}
	if err := h.validator.ValidateEmail(req.Email); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse(err.Error(), "INVALID_EMAIL"))
		return
	}
	if err := h.validator.ValidatePassword(req.Password); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse(err.Error(), "INVALID_PASSWORD"))
		return
	}

	user, token, err := h.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, ErrorResponse("Email already registered", "EMAIL_TAKEN"))
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse("Failed to register", "INTERNAL_ERROR"))
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse(gin.H{
		"token": token,
		"user":  user,
	}))
}

// POST /api/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse("Invalid request", "INVALID_REQUEST"))
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, ErrorResponse("Invalid email or password", "INVALID_CREDENTIALS"))
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse("Failed to log in", "INTERNAL_ERROR"))
		return
	}

	c.JSON(http.StatusOK, SuccessResponse(gin.H{
		"token": token,
		"user":  user,
	}))
}
