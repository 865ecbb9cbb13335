package repository

import (
	"calltime-backend/internal/database/models"

	"gorm.io/gorm"
)

// CallOutcomeRepository handles database operations for call outcomes
type CallOutcomeRepository struct {
	db *gorm.DB
}

// NewCallOutcomeRepository creates a new call outcome repository
func NewCallOutcomeRepository(db *gorm.DB) *CallOutcomeRepository {
	return &CallOutcomeRepository{db: db}
}

// Create creates a new call outcome
func (r *CallOutcomeRepository) Create(outcome *models.CallOutcome) error {
	return r.db.Create(outcome).Error
}

// GetByID retrieves a call outcome by ID
func (r *CallOutcomeRepository) GetByID(id uint) (*models.CallOutcome, error) {
	var outcome models.CallOutcome
	err := r.db.First(&outcome, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &outcome, nil
}

// GetByClientDonor returns a client's outcomes for one donor, newest first
func (r *CallOutcomeRepository) GetByClientDonor(clientID, donorID uint) ([]models.CallOutcome, error) {
	var outcomes []models.CallOutcome
	err := r.db.Where("client_id = ? AND donor_id = ?", clientID, donorID).
		Order("created_at DESC, id DESC").
		Find(&outcomes).Error
	if err != nil {
		return nil, err
	}
	return outcomes, nil
}

// GetByClient returns all of a client's outcomes with pagination
func (r *CallOutcomeRepository) GetByClient(clientID uint, limit, offset int) ([]models.CallOutcome, int64, error) {
	var outcomes []models.CallOutcome
	var total int64

	query := r.db.Model(&models.CallOutcome{}).Where("client_id = ?", clientID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Where("client_id = ?", clientID).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&outcomes).Error
	if err != nil {
		return nil, 0, err
	}

	return outcomes, total, nil
}

// Delete deletes a call outcome
func (r *CallOutcomeRepository) Delete(id uint) error {
	result := r.db.Delete(&models.CallOutcome{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
