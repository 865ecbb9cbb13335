package handlers

import (
	"net/http"

	"calltime-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ClientHandler handles HTTP requests for campaign clients
type ClientHandler struct {
	service *service.ClientService
}

// NewClientHandler creates a new client handler
func NewClientHandler(service *service.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

// CreateClient handles POST /api/clients
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req service.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	client, err := h.service.CreateClient(&req)
	if err != nil {
		respondError(c, err, "Failed to create client")
		return
	}
	c.JSON(http.StatusCreated, client)
}

// GetClient handles GET /api/clients/:clientId
func (h *ClientHandler) GetClient(c *gin.Context) {
	id, ok := pathID(c, "clientId")
	if !ok {
		return
	}

	client, err := h.service.GetClient(id)
	if err != nil {
		respondError(c, err, "Failed to get client")
		return
	}
	c.JSON(http.StatusOK, client)
}

// ListClients handles GET /api/clients
func (h *ClientHandler) ListClients(c *gin.Context) {
	limit, offset := pagination(c)
	clients, total, err := h.service.ListClients(limit, offset)
	if err != nil {
		respondError(c, err, "Failed to list clients")
		return
	}
	c.JSON(http.StatusOK, gin.H{"clients": clients, "total": total})
}

// UpdateClient handles PUT /api/clients/:clientId
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	id, ok := pathID(c, "clientId")
	if !ok {
		return
	}

	var req service.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	client, err := h.service.UpdateClient(id, &req)
	if err != nil {
		respondError(c, err, "Failed to update client")
		return
	}
	c.JSON(http.StatusOK, client)
}

// DeleteClient handles DELETE /api/clients/:clientId
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	id, ok := pathID(c, "clientId")
	if !ok {
		return
	}

	if err := h.service.DeleteClient(id); err != nil {
		respondError(c, err, "Failed to delete client")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Client deleted"})
}

// ResetPasswordRequest represents a manager-initiated portal password reset
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// ResetPortalPassword handles POST /api/clients/:clientId/password-reset
func (h *ClientHandler) ResetPortalPassword(c *gin.Context) {
	id, ok := pathID(c, "clientId")
	if !ok {
		return
	}

	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.service.ResetPortalPassword(id, req.NewPassword); err != nil {
		respondError(c, err, "Failed to reset password")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset; change required on next login"})
}

// Overview handles GET /api/clients/overview
func (h *ClientHandler) Overview(c *gin.Context) {
	overview, err := h.service.Overview()
	if err != nil {
		respondError(c, err, "Failed to load overview")
		return
	}
	c.JSON(http.StatusOK, gin.H{"clients": overview})
}
