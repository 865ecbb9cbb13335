package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"calltime-backend/internal/database/models"
	apperrors "calltime-backend/internal/errors"
	"calltime-backend/internal/normalize"
	"calltime-backend/internal/repository"

	"gorm.io/gorm"
)

// ContributionService handles business logic for giving history
type ContributionService struct {
	repo   repository.ContributionRepositoryInterface
	donors repository.DonorRepositoryInterface
}

// NewContributionService creates a new contribution service
func NewContributionService(repo repository.ContributionRepositoryInterface, donors repository.DonorRepositoryInterface) *ContributionService {
	return &ContributionService{repo: repo, donors: donors}
}

// AddContributionRequest represents the data needed to add a giving-history entry
type AddContributionRequest struct {
	Year         string `json:"year"`
	Candidate    string `json:"candidate"`
	OfficeSought string `json:"office_sought"`
	Amount       string `json:"amount"`
	IsInkind     string `json:"is_inkind"`
}

// AddContribution normalizes and appends one giving-history entry, returning
// the donor's full history re-sorted. Callers must never assume insertion
// order.
func (s *ContributionService) AddContribution(donorID uint, req *AddContributionRequest) ([]models.Contribution, error) {
	if _, err := s.donors.GetByID(donorID); err != nil {
		return nil, apperrors.ErrDonorNotFound
	}

	year := normalize.ParseInteger(req.Year)
	if year == nil {
		return nil, apperrors.NewValidationError("year", "missing or invalid year")
	}
	candidate := strings.TrimSpace(req.Candidate)
	if candidate == "" {
		return nil, apperrors.NewValidationError("candidate", "is required")
	}
	amount := normalize.ParseCurrency(req.Amount)
	if amount == nil {
		return nil, apperrors.NewValidationError("amount", "missing or invalid amount")
	}

	contribution := &models.Contribution{
		DonorID:      donorID,
		Year:         *year,
		Candidate:    candidate,
		OfficeSought: strings.TrimSpace(req.OfficeSought),
		Amount:       *amount,
		IsInkind:     normalize.ParseBooleanFlag(req.IsInkind, false),
	}
	if err := s.repo.Add(contribution); err != nil {
		return nil, fmt.Errorf("failed to add contribution: %w", err)
	}

	return s.repo.GetByDonor(donorID)
}

// RemoveContribution deletes one entry by id
func (s *ContributionService) RemoveContribution(donorID, contributionID uint) ([]models.Contribution, error) {
	if err := s.repo.Remove(contributionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrContributionNotFound
		}
		return nil, err
	}
	return s.repo.GetByDonor(donorID)
}

// GetGivingHistory returns a donor's history in display order
func (s *ContributionService) GetGivingHistory(donorID uint) ([]models.Contribution, error) {
	if _, err := s.donors.GetByID(donorID); err != nil {
		return nil, apperrors.ErrDonorNotFound
	}
	return s.repo.GetByDonor(donorID)
}

// sortContributions orders an in-memory history list the way the store does:
// year descending, then candidate, then office, id as the final tie-break.
func sortContributions(entries []models.Contribution) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		if a.Candidate != b.Candidate {
			return a.Candidate < b.Candidate
		}
		if a.OfficeSought != b.OfficeSought {
			return a.OfficeSought < b.OfficeSought
		}
		return a.ID < b.ID
	})
}
