package handlers

import (
	"net/http"
	"strings"

	"calltime-backend/internal/auth"
	"calltime-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles login, logout and the forced password change flow
type AuthHandler struct {
	authService   *auth.AuthService
	clientService *service.ClientService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.AuthService, clientService *service.ClientService) *AuthHandler {
	return &AuthHandler{authService: authService, clientService: clientService}
}

// ManagerLoginRequest represents a manager login attempt
type ManagerLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// ClientLoginRequest represents a portal login attempt
type ClientLoginRequest struct {
	ClientID uint   `json:"client_id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordRequest represents a portal password change
type ChangePasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// ManagerLogin handles POST /api/auth/manager/login
func (h *AuthHandler) ManagerLogin(c *gin.Context) {
	var req ManagerLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	resp, err := h.authService.ManagerLogin(req.Password)
	if err != nil {
		respondError(c, err, "Login failed")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ClientLogin handles POST /api/auth/client/login
func (h *AuthHandler) ClientLogin(c *gin.Context) {
	var req ClientLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	resp, err := h.authService.ClientLogin(req.ClientID, req.Password)
	if err != nil {
		respondError(c, err, "Login failed")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if token := strings.TrimPrefix(header, "Bearer "); token != header {
		h.authService.Logout(token)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// ChangePassword handles POST /api/portal/:clientId/password. Used by portal
// users, including the forced change after a manager reset.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.clientService.ChangePortalPassword(scopedClientID(c), req.NewPassword); err != nil {
		respondError(c, err, "Failed to change password")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password changed"})
}
