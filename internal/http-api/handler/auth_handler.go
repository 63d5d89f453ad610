package handler

import (
	"errors"
	"net/http"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes registers the signup/token endpoints
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/signup", h.Signup)
	rg.POST("/token", h.Token)
}

// Signup starts (or resends) the confirmation flow for an account
// POST /api/v1/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.Signup(req.Username, req.Email)
	if err != nil {
		renderServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SignupResponse{
		Email:    user.Email,
		Username: user.Username,
	})
}

// Token exchanges a confirmation code for a signed access token
// POST /api/v1/auth/token
func (h *AuthHandler) Token(c *gin.Context) {
	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.authService.IssueToken(req.Username, req.ConfirmationCode)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, service.ErrInvalidCode) {
			c.JSON(http.StatusBadRequest, gin.H{"confirmation_code": "invalid confirmation code"})
			return
		}
		renderServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}
