package service

import (
	"fmt"
	"strings"
	"time"

	"calltime-backend/internal/database/models"
	apperrors "calltime-backend/internal/errors"
	"calltime-backend/internal/normalize"
	"calltime-backend/internal/repository"
)

// CallOutcomeService handles business logic for recorded call results
type CallOutcomeService struct {
	repo        repository.CallOutcomeRepositoryInterface
	assignments repository.AssignmentRepositoryInterface
}

// NewCallOutcomeService creates a new call outcome service
func NewCallOutcomeService(repo repository.CallOutcomeRepositoryInterface, assignments repository.AssignmentRepositoryInterface) *CallOutcomeService {
	return &CallOutcomeService{repo: repo, assignments: assignments}
}

// RecordOutcomeRequest represents the data needed to log a call result.
// Amount fields arrive as strings so spreadsheet-style values parse cleanly.
type RecordOutcomeRequest struct {
	Status             string `json:"status"`
	PledgeAmount       string `json:"pledge_amount"`
	ContributionAmount string `json:"contribution_amount"`
	Quality            *int   `json:"quality" validate:"omitempty,min=1,max=5"`
	DurationMinutes    *int   `json:"duration_minutes"`
	Notes              string `json:"notes"`
	FollowUpDate       string `json:"follow_up_date"`
}

// RecordOutcome logs a call result for a donor the client actively holds
func (s *CallOutcomeService) RecordOutcome(clientID, donorID uint, req *RecordOutcomeRequest) (*models.CallOutcome, error) {
	status := strings.TrimSpace(req.Status)
	if status == "" {
		return nil, &apperrors.ValidationError{Field: "status", Message: "status is required"}
	}
	if req.Quality != nil && (*req.Quality < 1 || *req.Quality > 5) {
		return nil, &apperrors.ValidationError{Field: "quality", Message: "quality must be between 1 and 5"}
	}

	assigned, err := s.assignments.IsActivelyAssigned(clientID, donorID)
	if err != nil {
		return nil, fmt.Errorf("failed to check assignment: %w", err)
	}
	if !assigned {
		return nil, apperrors.ErrDonorNotAssigned
	}

	var followUp *time.Time
	if raw := strings.TrimSpace(req.FollowUpDate); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, &apperrors.ValidationError{Field: "follow_up_date", Message: "follow_up_date must be YYYY-MM-DD"}
		}
		followUp = &parsed
	}

	outcome := &models.CallOutcome{
		ClientID:           clientID,
		DonorID:            donorID,
		Status:             status,
		PledgeAmount:       normalize.ParseCurrency(req.PledgeAmount),
		ContributionAmount: normalize.ParseCurrency(req.ContributionAmount),
		Quality:            req.Quality,
		DurationMinutes:    req.DurationMinutes,
		Notes:              strings.TrimSpace(req.Notes),
		FollowUpDate:       followUp,
	}
	if err := s.repo.Create(outcome); err != nil {
		return nil, fmt.Errorf("failed to record call outcome: %w", err)
	}
	return outcome, nil
}

// History returns a client's call outcomes for one donor, newest first
func (s *CallOutcomeService) History(clientID, donorID uint) ([]models.CallOutcome, error) {
	return s.repo.GetByClientDonor(clientID, donorID)
}

// RecentForClient returns the client's call outcomes across all donors
func (s *CallOutcomeService) RecentForClient(clientID uint, limit, offset int) ([]models.CallOutcome, int64, error) {
	return s.repo.GetByClient(clientID, limit, offset)
}

// DeleteOutcome removes a logged call result. The outcome must belong to the
// requesting client; cross-client deletes are rejected rather than 404ed so
// the caller learns the record exists but is out of scope.
func (s *CallOutcomeService) DeleteOutcome(clientID, outcomeID uint) error {
	outcome, err := s.repo.GetByID(outcomeID)
	if err != nil {
		return apperrors.ErrCallOutcomeNotFound
	}
	if outcome.ClientID != clientID {
		return apperrors.ErrClientScope
	}
	return s.repo.Delete(outcomeID)
}
