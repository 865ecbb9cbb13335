package service

import (
	"fmt"
	"strings"

	"calltime-backend/internal/database/models"
	apperrors "calltime-backend/internal/errors"
	"calltime-backend/internal/repository"
)

// ResearchService handles business logic for client-private donor research
type ResearchService struct {
	repo        repository.ResearchRepositoryInterface
	assignments repository.AssignmentRepositoryInterface
}

// NewResearchService creates a new research service
func NewResearchService(repo repository.ResearchRepositoryInterface, assignments repository.AssignmentRepositoryInterface) *ResearchService {
	return &ResearchService{repo: repo, assignments: assignments}
}

// SaveResearchRequest represents one research entry write
type SaveResearchRequest struct {
	ResearchCategory string `json:"research_category"`
	Content          string `json:"content"`
}

// SaveResearch writes a research entry, replacing any existing entry for the
// same (client, donor, category).
func (s *ResearchService) SaveResearch(clientID, donorID uint, req *SaveResearchRequest) (*models.Research, error) {
	category := strings.TrimSpace(req.ResearchCategory)
	if category == "" {
		return nil, &apperrors.ValidationError{Field: "research_category", Message: "research_category is required"}
	}

	assigned, err := s.assignments.IsActivelyAssigned(clientID, donorID)
	if err != nil {
		return nil, fmt.Errorf("failed to check assignment: %w", err)
	}
	if !assigned {
		return nil, apperrors.ErrDonorNotAssigned
	}

	entry := &models.Research{
		ClientID:         clientID,
		DonorID:          donorID,
		ResearchCategory: category,
		Content:          req.Content,
	}
	if err := s.repo.Upsert(entry); err != nil {
		return nil, fmt.Errorf("failed to save research: %w", err)
	}
	return entry, nil
}

// GetResearch returns the client's research entries for a donor
func (s *ResearchService) GetResearch(clientID, donorID uint) ([]models.Research, error) {
	return s.repo.GetByClientDonor(clientID, donorID)
}

// DeleteResearch removes one research entry by its category key
func (s *ResearchService) DeleteResearch(clientID, donorID uint, category string) error {
	category = strings.TrimSpace(category)
	if category == "" {
		return &apperrors.ValidationError{Field: "research_category", Message: "research_category is required"}
	}
	if err := s.repo.Delete(clientID, donorID, category); err != nil {
		return apperrors.ErrResearchNotFound
	}
	return nil
}
