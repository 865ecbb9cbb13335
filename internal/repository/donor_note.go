package repository

import (
	"calltime-backend/internal/database/models"

	"gorm.io/gorm"
)

// DonorNoteRepository handles the append-only client-private donor notes
type DonorNoteRepository struct {
	db *gorm.DB
}

// NewDonorNoteRepository creates a new donor note repository
func NewDonorNoteRepository(db *gorm.DB) *DonorNoteRepository {
	return &DonorNoteRepository{db: db}
}

// Append adds a note; notes are never updated or reordered
func (r *DonorNoteRepository) Append(note *models.DonorNote) error {
	return r.db.Create(note).Error
}

// GetByClientDonor returns a client's notes for one donor, newest first
func (r *DonorNoteRepository) GetByClientDonor(clientID, donorID uint) ([]models.DonorNote, error) {
	var notes []models.DonorNote
	err := r.db.Where("client_id = ? AND donor_id = ?", clientID, donorID).
		Order("created_at DESC, id DESC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}
