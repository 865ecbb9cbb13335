package repository

import (
	"strings"

	"calltime-backend/internal/database/models"

	"gorm.io/gorm"
)

// DonorRepository handles database operations for donors
type DonorRepository struct {
	db *gorm.DB
}

// NewDonorRepository creates a new donor repository
func NewDonorRepository(db *gorm.DB) *DonorRepository {
	return &DonorRepository{db: db}
}

// Create creates a new donor
func (r *DonorRepository) Create(donor *models.Donor) error {
	return r.db.Create(donor).Error
}

// CreateWithAssignments creates a donor and seeds its initial assignments as
// one atomic unit. A donor-without-assignment intermediate state is never
// visible to other readers.
func (r *DonorRepository) CreateWithAssignments(donor *models.Donor, assignments []AssignmentMeta) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(donor).Error; err != nil {
			return err
		}
		if donor.ExclusiveDonor && donor.ExclusiveClientID != nil {
			meta := AssignmentMeta{AssignedBy: "system"}
			for _, m := range assignments {
				if m.ClientID == *donor.ExclusiveClientID {
					meta = m
				}
			}
			return EnforceExclusiveTx(tx, donor.ID, *donor.ExclusiveClientID, meta)
		}
		for _, meta := range assignments {
			if _, err := UpsertAssignmentTx(tx, meta.ClientID, donor.ID, meta); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID retrieves a donor by ID with giving history preloaded
func (r *DonorRepository) GetByID(id uint) (*models.Donor, error) {
	var donor models.Donor
	err := r.db.Preload("Contributions").First(&donor, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &donor, nil
}

// GetByEmail retrieves a donor by email, case-insensitively
func (r *DonorRepository) GetByEmail(email string) (*models.Donor, error) {
	var donor models.Donor
	err := r.db.First(&donor, "LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if err != nil {
		return nil, err
	}
	return &donor, nil
}

// GetAll retrieves all donors with pagination
func (r *DonorRepository) GetAll(limit, offset int) ([]models.Donor, int64, error) {
	var donors []models.Donor
	var total int64

	if err := r.db.Model(&models.Donor{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Order("last_name ASC, business_name ASC, id ASC").
		Limit(limit).Offset(offset).Find(&donors).Error
	if err != nil {
		return nil, 0, err
	}

	return donors, total, nil
}

// Search finds donors by name, business name or email
func (r *DonorRepository) Search(query string, limit, offset int) ([]models.Donor, int64, error) {
	var donors []models.Donor
	var total int64

	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	q := r.db.Model(&models.Donor{}).Where(
		`LOWER(first_name || ' ' || last_name) LIKE ? OR LOWER(business_name) LIKE ? OR LOWER(email) LIKE ?`,
		pattern, pattern, pattern,
	)

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("last_name ASC, business_name ASC, id ASC").
		Limit(limit).Offset(offset).Find(&donors).Error
	if err != nil {
		return nil, 0, err
	}

	return donors, total, nil
}

// Update updates a donor. When exclusivity is on, the matching ledger
// enforcement commits in the same transaction as the donor write.
func (r *DonorRepository) Update(donor *models.Donor) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(donor).Error; err != nil {
			return err
		}
		if donor.ExclusiveDonor && donor.ExclusiveClientID != nil {
			return EnforceExclusiveTx(tx, donor.ID, *donor.ExclusiveClientID, AssignmentMeta{AssignedBy: "system"})
		}
		return nil
	})
}

// Delete removes a donor; contributions, assignments and annotations cascade.
func (r *DonorRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Contribution{}, "donor_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Assignment{}, "donor_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.CallOutcome{}, "donor_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Research{}, "donor_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.DonorNote{}, "donor_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Donor{}, "id = ?", id).Error
	})
}

// AssignedClientIDs returns the ids of clients holding an active assignment to
// the donor, for the denormalized assigned_client_ids field in API responses.
func (r *DonorRepository) AssignedClientIDs(donorID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Assignment{}).
		Where("donor_id = ? AND is_active", donorID).
		Order("client_id ASC").
		Pluck("client_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
