package handlers

import (
	"net/http"

	"calltime-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// DonorHandler handles HTTP requests for donors and their giving history
type DonorHandler struct {
	donors        *service.DonorService
	contributions *service.ContributionService
	assignments   *service.AssignmentService
}

// NewDonorHandler creates a new donor handler
func NewDonorHandler(donors *service.DonorService, contributions *service.ContributionService, assignments *service.AssignmentService) *DonorHandler {
	return &DonorHandler{donors: donors, contributions: contributions, assignments: assignments}
}

// CreateDonor handles POST /api/donors
func (h *DonorHandler) CreateDonor(c *gin.Context) {
	var req service.CreateDonorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	donor, err := h.donors.CreateDonor(&req)
	if err != nil {
		respondError(c, err, "Failed to create donor")
		return
	}
	c.JSON(http.StatusCreated, donor)
}

// GetDonor handles GET /api/donors/:donorId
func (h *DonorHandler) GetDonor(c *gin.Context) {
	id, ok := pathID(c, "donorId")
	if !ok {
		return
	}

	donor, err := h.donors.GetDonor(id)
	if err != nil {
		respondError(c, err, "Failed to get donor")
		return
	}
	c.JSON(http.StatusOK, donor)
}

// ListDonors handles GET /api/donors?q=
func (h *DonorHandler) ListDonors(c *gin.Context) {
	limit, offset := pagination(c)
	donors, total, err := h.donors.ListDonors(c.Query("q"), limit, offset)
	if err != nil {
		respondError(c, err, "Failed to list donors")
		return
	}
	c.JSON(http.StatusOK, gin.H{"donors": donors, "total": total})
}

// UpdateDonor handles PUT /api/donors/:donorId
func (h *DonorHandler) UpdateDonor(c *gin.Context) {
	id, ok := pathID(c, "donorId")
	if !ok {
		return
	}

	var req service.UpdateDonorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	donor, err := h.donors.UpdateDonor(id, &req)
	if err != nil {
		respondError(c, err, "Failed to update donor")
		return
	}
	c.JSON(http.StatusOK, donor)
}

// DeleteDonor handles DELETE /api/donors/:donorId
func (h *DonorHandler) DeleteDonor(c *gin.Context) {
	id, ok := pathID(c, "donorId")
	if !ok {
		return
	}

	if err := h.donors.DeleteDonor(id); err != nil {
		respondError(c, err, "Failed to delete donor")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Donor deleted"})
}

// AddContribution handles POST /api/donors/:donorId/contributions
func (h *DonorHandler) AddContribution(c *gin.Context) {
	id, ok := pathID(c, "donorId")
	if !ok {
		return
	}

	var req service.AddContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	history, err := h.contributions.AddContribution(id, &req)
	if err != nil {
		respondError(c, err, "Failed to add contribution")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"giving_history": history})
}

// RemoveContribution handles DELETE /api/donors/:donorId/contributions/:contributionId
func (h *DonorHandler) RemoveContribution(c *gin.Context) {
	donorID, ok := pathID(c, "donorId")
	if !ok {
		return
	}
	contributionID, ok := pathID(c, "contributionId")
	if !ok {
		return
	}

	history, err := h.contributions.RemoveContribution(donorID, contributionID)
	if err != nil {
		respondError(c, err, "Failed to remove contribution")
		return
	}
	c.JSON(http.StatusOK, gin.H{"giving_history": history})
}

// GetGivingHistory handles GET /api/donors/:donorId/contributions
func (h *DonorHandler) GetGivingHistory(c *gin.Context) {
	id, ok := pathID(c, "donorId")
	if !ok {
		return
	}

	history, err := h.contributions.GetGivingHistory(id)
	if err != nil {
		respondError(c, err, "Failed to get giving history")
		return
	}
	c.JSON(http.StatusOK, gin.H{"giving_history": history})
}

// AssignDonor handles POST /api/donors/:donorId/assign
func (h *DonorHandler) AssignDonor(c *gin.Context) {
	id, ok := pathID(c, "donorId")
	if !ok {
		return
	}

	var req service.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	assignment, err := h.assignments.Assign(id, &req)
	if err != nil {
		respondError(c, err, "Failed to assign donor")
		return
	}
	c.JSON(http.StatusOK, assignment)
}

// UnassignDonor handles POST /api/donors/:donorId/unassign/:clientId
func (h *DonorHandler) UnassignDonor(c *gin.Context) {
	donorID, ok := pathID(c, "donorId")
	if !ok {
		return
	}
	clientID, ok := pathID(c, "clientId")
	if !ok {
		return
	}

	if err := h.assignments.Unassign(clientID, donorID); err != nil {
		respondError(c, err, "Failed to unassign donor")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Donor unassigned"})
}

// DonorAssignments handles GET /api/donors/:donorId/assignments
func (h *DonorHandler) DonorAssignments(c *gin.Context) {
	id, ok := pathID(c, "donorId")
	if !ok {
		return
	}

	assignments, err := h.assignments.ClientsForDonor(id)
	if err != nil {
		respondError(c, err, "Failed to list assignments")
		return
	}
	c.JSON(http.StatusOK, gin.H{"assignments": assignments})
}
