package repository

import (
	"errors"

	"calltime-backend/internal/database/models"

	"gorm.io/gorm"
)

// AssignmentMeta carries the mutable assignment fields for an upsert. Nil
// pointer fields mean "not supplied": the ledger preserves whatever is already
// stored rather than overwriting with null.
type AssignmentMeta struct {
	ClientID        uint
	PriorityLevel   *int
	CustomAskAmount *float64
	AssignmentNotes *string
	AssignedBy      string
}

// AssignmentRepository is the ledger of (client, donor) relations. The unique
// constraint on the pair is the upsert key and the only write serialization
// the ledger needs.
type AssignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// Assign upserts the (client, donor) assignment: an existing row is
// reactivated and its metadata merged, a missing one is created.
func (r *AssignmentRepository) Assign(clientID, donorID uint, meta AssignmentMeta) (*models.Assignment, error) {
	var result *models.Assignment
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var err error
		result, err = UpsertAssignmentTx(tx, clientID, donorID, meta)
		return err
	})
	return result, err
}

// UpsertAssignmentTx is the shared upsert-with-merge routine. It runs inside
// the caller's transaction so batch writers can reuse the merge semantics.
func UpsertAssignmentTx(tx *gorm.DB, clientID, donorID uint, meta AssignmentMeta) (*models.Assignment, error) {
	var assignment models.Assignment
	err := tx.First(&assignment, "client_id = ? AND donor_id = ?", clientID, donorID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		assignment = models.Assignment{
			ClientID:        clientID,
			DonorID:         donorID,
			PriorityLevel:   3,
			CustomAskAmount: meta.CustomAskAmount,
			AssignmentNotes: meta.AssignmentNotes,
			AssignedBy:      meta.AssignedBy,
			IsActive:        true,
		}
		if meta.PriorityLevel != nil {
			assignment.PriorityLevel = *meta.PriorityLevel
		}
		if err := tx.Create(&assignment).Error; err != nil {
			return nil, err
		}
		return &assignment, nil
	case err != nil:
		return nil, err
	}

	// Merge semantics: omitted fields keep their stored values.
	assignment.IsActive = true
	if meta.PriorityLevel != nil {
		assignment.PriorityLevel = *meta.PriorityLevel
	}
	if meta.CustomAskAmount != nil {
		assignment.CustomAskAmount = meta.CustomAskAmount
	}
	if meta.AssignmentNotes != nil {
		assignment.AssignmentNotes = meta.AssignmentNotes
	}
	if meta.AssignedBy != "" {
		assignment.AssignedBy = meta.AssignedBy
	}
	if err := tx.Save(&assignment).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

// Unassign soft-deletes the assignment: is_active flips off, metadata stays so
// a later reassignment restores context.
func (r *AssignmentRepository) Unassign(clientID, donorID uint) error {
	result := r.db.Model(&models.Assignment{}).
		Where("client_id = ? AND donor_id = ?", clientID, donorID).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// EnforceExclusive deactivates every other active assignment for the donor and
// activates the one to clientID, atomically. A donor with no prior assignments
// goes through the same path; the deactivation is simply a no-op.
func (r *AssignmentRepository) EnforceExclusive(donorID, clientID uint, meta AssignmentMeta) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return EnforceExclusiveTx(tx, donorID, clientID, meta)
	})
}

func EnforceExclusiveTx(tx *gorm.DB, donorID, clientID uint, meta AssignmentMeta) error {
	if err := tx.Model(&models.Assignment{}).
		Where("donor_id = ? AND client_id != ? AND is_active", donorID, clientID).
		Update("is_active", false).Error; err != nil {
		return err
	}
	_, err := UpsertAssignmentTx(tx, clientID, donorID, meta)
	return err
}

// Get retrieves the assignment row for a (client, donor) pair regardless of
// active state.
func (r *AssignmentRepository) Get(clientID, donorID uint) (*models.Assignment, error) {
	var assignment models.Assignment
	err := r.db.First(&assignment, "client_id = ? AND donor_id = ?", clientID, donorID).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// ActiveForClient returns the client's active assignments with donors
// preloaded, ordered by priority then donor id for a stable call queue.
func (r *AssignmentRepository) ActiveForClient(clientID uint, limit, offset int) ([]models.Assignment, int64, error) {
	var assignments []models.Assignment
	var total int64

	query := r.db.Model(&models.Assignment{}).Where("client_id = ? AND is_active", clientID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Preload("Donor").Preload("Donor.Contributions").
		Where("client_id = ? AND is_active", clientID).
		Order("priority_level ASC, donor_id ASC").
		Limit(limit).Offset(offset).
		Find(&assignments).Error
	if err != nil {
		return nil, 0, err
	}

	return assignments, total, nil
}

// ActiveForDonor returns every active assignment for a donor.
func (r *AssignmentRepository) ActiveForDonor(donorID uint) ([]models.Assignment, error) {
	var assignments []models.Assignment
	err := r.db.Where("donor_id = ? AND is_active", donorID).
		Order("client_id ASC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

// IsActivelyAssigned reports whether the (client, donor) pair has an active
// assignment.
func (r *AssignmentRepository) IsActivelyAssigned(clientID, donorID uint) (bool, error) {
	var n int64
	err := r.db.Model(&models.Assignment{}).
		Where("client_id = ? AND donor_id = ? AND is_active", clientID, donorID).
		Count(&n).Error
	return n > 0, err
}
