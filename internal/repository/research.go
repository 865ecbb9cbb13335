package repository

import (
	"errors"
	"time"

	"calltime-backend/internal/database/models"

	"gorm.io/gorm"
)

// ResearchRepository handles database operations for client-private donor
// research
type ResearchRepository struct {
	db *gorm.DB
}

// NewResearchRepository creates a new research repository
func NewResearchRepository(db *gorm.DB) *ResearchRepository {
	return &ResearchRepository{db: db}
}

// Upsert writes a research entry keyed on (client, donor, category): the same
// category overwrites prior content and bumps updated_at.
func (r *ResearchRepository) Upsert(entry *models.Research) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Research
		err := tx.First(&existing,
			"client_id = ? AND donor_id = ? AND research_category = ?",
			entry.ClientID, entry.DonorID, entry.ResearchCategory,
		).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(entry).Error
		}
		if err != nil {
			return err
		}
		existing.Content = entry.Content
		existing.UpdatedAt = time.Now()
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		*entry = existing
		return nil
	})
}

// GetByClientDonor returns a client's research entries for one donor
func (r *ResearchRepository) GetByClientDonor(clientID, donorID uint) ([]models.Research, error) {
	var entries []models.Research
	err := r.db.Where("client_id = ? AND donor_id = ?", clientID, donorID).
		Order("research_category ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Delete removes one research category for a (client, donor) pair
func (r *ResearchRepository) Delete(clientID, donorID uint, category string) error {
	result := r.db.Delete(&models.Research{},
		"client_id = ? AND donor_id = ? AND research_category = ?",
		clientID, donorID, category,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
