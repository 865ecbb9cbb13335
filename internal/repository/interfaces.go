package repository

import (
	"calltime-backend/internal/database/models"
)

// ClientRepositoryInterface defines the interface for client repository operations
type ClientRepositoryInterface interface {
	Create(client *models.Client) error
	GetByID(id uint) (*models.Client, error)
	GetByName(name string) (*models.Client, error)
	GetAll(limit, offset int) ([]models.Client, int64, error)
	Update(client *models.Client) error
	Delete(id uint) error
	Overview() ([]ClientOverview, error)
}

// DonorRepositoryInterface defines the interface for donor repository operations
type DonorRepositoryInterface interface {
	Create(donor *models.Donor) error
	CreateWithAssignments(donor *models.Donor, assignments []AssignmentMeta) error
	GetByID(id uint) (*models.Donor, error)
	GetByEmail(email string) (*models.Donor, error)
	GetAll(limit, offset int) ([]models.Donor, int64, error)
	Search(query string, limit, offset int) ([]models.Donor, int64, error)
	Update(donor *models.Donor) error
	Delete(id uint) error
	AssignedClientIDs(donorID uint) ([]uint, error)
}

// AssignmentRepositoryInterface defines the interface for the assignment ledger
type AssignmentRepositoryInterface interface {
	Assign(clientID, donorID uint, meta AssignmentMeta) (*models.Assignment, error)
	Unassign(clientID, donorID uint) error
	EnforceExclusive(donorID, clientID uint, meta AssignmentMeta) error
	Get(clientID, donorID uint) (*models.Assignment, error)
	ActiveForClient(clientID uint, limit, offset int) ([]models.Assignment, int64, error)
	ActiveForDonor(donorID uint) ([]models.Assignment, error)
	IsActivelyAssigned(clientID, donorID uint) (bool, error)
}

// ContributionRepositoryInterface defines the interface for giving history operations
type ContributionRepositoryInterface interface {
	Add(contribution *models.Contribution) error
	Remove(id uint) error
	GetByDonor(donorID uint) ([]models.Contribution, error)
}

// CallOutcomeRepositoryInterface defines the interface for call outcome operations
type CallOutcomeRepositoryInterface interface {
	Create(outcome *models.CallOutcome) error
	GetByID(id uint) (*models.CallOutcome, error)
	GetByClientDonor(clientID, donorID uint) ([]models.CallOutcome, error)
	GetByClient(clientID uint, limit, offset int) ([]models.CallOutcome, int64, error)
	Delete(id uint) error
}

// ResearchRepositoryInterface defines the interface for donor research operations
type ResearchRepositoryInterface interface {
	Upsert(entry *models.Research) error
	GetByClientDonor(clientID, donorID uint) ([]models.Research, error)
	Delete(clientID, donorID uint, category string) error
}

// DonorNoteRepositoryInterface defines the interface for donor note operations
type DonorNoteRepositoryInterface interface {
	Append(note *models.DonorNote) error
	GetByClientDonor(clientID, donorID uint) ([]models.DonorNote, error)
}
