package handlers

import (
	"net/http"

	"calltime-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// PortalHandler handles the client-scoped portal surface: the call queue and
// the client's private annotations on its donors.
type PortalHandler struct {
	donors      *service.DonorService
	assignments *service.AssignmentService
	outcomes    *service.CallOutcomeService
	research    *service.ResearchService
	notes       *service.DonorNoteService
}

// NewPortalHandler creates a new portal handler
func NewPortalHandler(donors *service.DonorService, assignments *service.AssignmentService, outcomes *service.CallOutcomeService, research *service.ResearchService, notes *service.DonorNoteService) *PortalHandler {
	return &PortalHandler{
		donors:      donors,
		assignments: assignments,
		outcomes:    outcomes,
		research:    research,
		notes:       notes,
	}
}

// CallQueue handles GET /api/portal/:clientId/queue
func (h *PortalHandler) CallQueue(c *gin.Context) {
	limit, offset := pagination(c)
	entries, total, err := h.assignments.CallQueue(scopedClientID(c), limit, offset)
	if err != nil {
		respondError(c, err, "Failed to load call queue")
		return
	}
	c.JSON(http.StatusOK, gin.H{"queue": entries, "total": total})
}

// GetDonor handles GET /api/portal/:clientId/donors/:donorId. The donor must
// be actively assigned to the requesting client.
func (h *PortalHandler) GetDonor(c *gin.Context) {
	donorID, ok := pathID(c, "donorId")
	if !ok {
		return
	}

	donor, err := h.donors.GetDonorForClient(scopedClientID(c), donorID)
	if err != nil {
		respondError(c, err, "Failed to get donor")
		return
	}
	c.JSON(http.StatusOK, donor)
}

// RecordOutcome handles POST /api/portal/:clientId/donors/:donorId/outcomes
func (h *PortalHandler) RecordOutcome(c *gin.Context) {
	donorID, ok := pathID(c, "donorId")
	if !ok {
		return
	}

	var req service.RecordOutcomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	outcome, err := h.outcomes.RecordOutcome(scopedClientID(c), donorID, &req)
	if err != nil {
		respondError(c, err, "Failed to record call outcome")
		return
	}
	c.JSON(http.StatusCreated, outcome)
}

// OutcomeHistory handles GET /api/portal/:clientId/donors/:donorId/outcomes
func (h *PortalHandler) OutcomeHistory(c *gin.Context) {
	donorID, ok := pathID(c, "donorId")
	if !ok {
		return
	}

	outcomes, err := h.outcomes.History(scopedClientID(c), donorID)
	if err != nil {
		respondError(c, err, "Failed to get call outcomes")
		return
	}
	c.JSON(http.StatusOK, gin.H{"outcomes": outcomes})
}

// RecentOutcomes handles GET /api/portal/:clientId/outcomes
func (h *PortalHandler) RecentOutcomes(c *gin.Context) {
	limit, offset := pagination(c)
	outcomes, total, err := h.outcomes.RecentForClient(scopedClientID(c), limit, offset)
	if err != nil {
		respondError(c, err, "Failed to get call outcomes")
		return
	}
	c.JSON(http.StatusOK, gin.H{"outcomes": outcomes, "total": total})
}

// DeleteOutcome handles DELETE /api/portal/:clientId/outcomes/:outcomeId
func (h *PortalHandler) DeleteOutcome(c *gin.Context) {
	outcomeID, ok := pathID(c, "outcomeId")
	if !ok {
		return
	}

	if err := h.outcomes.DeleteOutcome(scopedClientID(c), outcomeID); err != nil {
		respondError(c, err, "Failed to delete call outcome")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Call outcome deleted"})
}

// SaveResearch handles PUT /api/portal/:clientId/donors/:donorId/research
func (h *PortalHandler) SaveResearch(c *gin.Context) {
	donorID, ok := pathID(c, "donorId")
	if !ok {
		return
	}

	var req service.SaveResearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	entry, err := h.research.SaveResearch(scopedClientID(c), donorID, &req)
	if err != nil {
		respondError(c, err, "Failed to save research")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// GetResearch handles GET /api/portal/:clientId/donors/:donorId/research
func (h *PortalHandler) GetResearch(c *gin.Context) {
	donorID, ok := pathID(c, "donorId")
	if !ok {
		return
	}

	entries, err := h.research.GetResearch(scopedClientID(c), donorID)
	if err != nil {
		respondError(c, err, "Failed to get research")
		return
	}
	c.JSON(http.StatusOK, gin.H{"research": entries})
}

// DeleteResearch handles DELETE /api/portal/:clientId/donors/:donorId/research/:category
func (h *PortalHandler) DeleteResearch(c *gin.Context) {
	donorID, ok := pathID(c, "donorId")
	if !ok {
		return
	}

	if err := h.research.DeleteResearch(scopedClientID(c), donorID, c.Param("category")); err != nil {
		respondError(c, err, "Failed to delete research")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Research entry deleted"})
}

// AddNote handles POST /api/portal/:clientId/donors/:donorId/notes
func (h *PortalHandler) AddNote(c *gin.Context) {
	donorID, ok := pathID(c, "donorId")
	if !ok {
		return
	}

	var req service.AddNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	note, err := h.notes.AddNote(scopedClientID(c), donorID, &req)
	if err != nil {
		respondError(c, err, "Failed to add note")
		return
	}
	c.JSON(http.StatusCreated, note)
}

// GetNotes handles GET /api/portal/:clientId/donors/:donorId/notes
func (h *PortalHandler) GetNotes(c *gin.Context) {
	donorID, ok := pathID(c, "donorId")
	if !ok {
		return
	}

	notes, err := h.notes.GetNotes(scopedClientID(c), donorID)
	if err != nil {
		respondError(c, err, "Failed to get notes")
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": notes})
}
