package repository

import (
	"calltime-backend/internal/database/models"

	"gorm.io/gorm"
)

// ContributionRepository owns a donor's giving history
type ContributionRepository struct {
	db *gorm.DB
}

// NewContributionRepository creates a new contribution repository
func NewContributionRepository(db *gorm.DB) *ContributionRepository {
	return &ContributionRepository{db: db}
}

// Add inserts one giving-history entry
func (r *ContributionRepository) Add(contribution *models.Contribution) error {
	return r.db.Create(contribution).Error
}

// Remove deletes one entry by id; no cascade beyond the single row
func (r *ContributionRepository) Remove(id uint) error {
	result := r.db.Delete(&models.Contribution{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetByDonor returns a donor's history in display order: year descending, then
// candidate, then office. Never insertion order.
func (r *ContributionRepository) GetByDonor(donorID uint) ([]models.Contribution, error) {
	var contributions []models.Contribution
	err := r.db.Where("donor_id = ?", donorID).
		Order("year DESC, candidate ASC, office_sought ASC, id ASC").
		Find(&contributions).Error
	if err != nil {
		return nil, err
	}
	return contributions, nil
}
