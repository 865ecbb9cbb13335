package service

import (
	"errors"
	"fmt"

	"calltime-backend/internal/database/models"
	apperrors "calltime-backend/internal/errors"
	"calltime-backend/internal/repository"

	"gorm.io/gorm"
)

// AssignmentService handles business logic for the client/donor ledger
type AssignmentService struct {
	repo    repository.AssignmentRepositoryInterface
	donors  repository.DonorRepositoryInterface
	clients repository.ClientRepositoryInterface
}

// NewAssignmentService creates a new assignment service
func NewAssignmentService(repo repository.AssignmentRepositoryInterface, donors repository.DonorRepositoryInterface, clients repository.ClientRepositoryInterface) *AssignmentService {
	return &AssignmentService{repo: repo, donors: donors, clients: clients}
}

// AssignRequest represents the data needed to assign a donor to a client.
// Omitted pointer fields preserve previously stored assignment metadata.
type AssignRequest struct {
	ClientID        uint     `json:"client_id" validate:"required"`
	PriorityLevel   *int     `json:"priority_level" validate:"omitempty,min=1,max=5"`
	CustomAskAmount *float64 `json:"custom_ask_amount"`
	AssignmentNotes *string  `json:"assignment_notes"`
	AssignedBy      string   `json:"assigned_by"`
}

// Assign links a donor to a client. Exclusive donors route through the
// deactivate-others path: an exclusive donor may only be actively assigned to
// its exclusive client, and assigning there deactivates everything else.
func (s *AssignmentService) Assign(donorID uint, req *AssignRequest) (*models.Assignment, error) {
	donor, err := s.donors.GetByID(donorID)
	if err != nil {
		return nil, apperrors.ErrDonorNotFound
	}
	if _, err := s.clients.GetByID(req.ClientID); err != nil {
		return nil, apperrors.ErrClientNotFound
	}

	meta := repository.AssignmentMeta{
		ClientID:        req.ClientID,
		PriorityLevel:   req.PriorityLevel,
		CustomAskAmount: req.CustomAskAmount,
		AssignmentNotes: req.AssignmentNotes,
		AssignedBy:      req.AssignedBy,
	}

	if donor.ExclusiveDonor {
		if donor.ExclusiveClientID != nil && *donor.ExclusiveClientID != req.ClientID {
			return nil, apperrors.ErrExclusiveConflict
		}
		if err := s.repo.EnforceExclusive(donorID, req.ClientID, meta); err != nil {
			return nil, fmt.Errorf("failed to enforce exclusive assignment: %w", err)
		}
		return s.repo.Get(req.ClientID, donorID)
	}

	assignment, err := s.repo.Assign(req.ClientID, donorID, meta)
	if err != nil {
		return nil, fmt.Errorf("failed to assign donor: %w", err)
	}
	return assignment, nil
}

// Unassign deactivates the (client, donor) link without erasing its metadata
func (s *AssignmentService) Unassign(clientID, donorID uint) error {
	if err := s.repo.Unassign(clientID, donorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrAssignmentNotFound
		}
		return err
	}
	return nil
}

// CallQueueEntry is one row of a client's prioritized call queue.
type CallQueueEntry struct {
	Assignment models.Assignment `json:"assignment"`
	Donor      models.Donor      `json:"donor"`
	Ask        *float64          `json:"ask"`
}

// CallQueue returns the client's active donors in priority order. The
// effective ask prefers the assignment's custom amount over the donor's
// suggested one.
func (s *AssignmentService) CallQueue(clientID uint, limit, offset int) ([]CallQueueEntry, int64, error) {
	assignments, total, err := s.repo.ActiveForClient(clientID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load call queue: %w", err)
	}

	entries := make([]CallQueueEntry, 0, len(assignments))
	for _, a := range assignments {
		ask := a.CustomAskAmount
		if ask == nil {
			ask = a.Donor.SuggestedAsk
		}
		donor := a.Donor
		sortContributions(donor.Contributions)
		a.Donor = models.Donor{}
		entries = append(entries, CallQueueEntry{
			Assignment: a,
			Donor:      donor,
			Ask:        ask,
		})
	}
	return entries, total, nil
}

// ClientsForDonor lists the clients actively holding the donor
func (s *AssignmentService) ClientsForDonor(donorID uint) ([]models.Assignment, error) {
	if _, err := s.donors.GetByID(donorID); err != nil {
		return nil, apperrors.ErrDonorNotFound
	}
	return s.repo.ActiveForDonor(donorID)
}
