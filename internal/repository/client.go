package repository

import (
	"calltime-backend/internal/database/models"

	"gorm.io/gorm"
)

// ClientRepository handles database operations for clients
type ClientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// Create creates a new client
func (r *ClientRepository) Create(client *models.Client) error {
	return r.db.Create(client).Error
}

// GetByID retrieves a client by ID
func (r *ClientRepository) GetByID(id uint) (*models.Client, error) {
	var client models.Client
	err := r.db.First(&client, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// GetByName retrieves a client by name
func (r *ClientRepository) GetByName(name string) (*models.Client, error) {
	var client models.Client
	err := r.db.First(&client, "name = ?", name).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// GetAll retrieves all clients with pagination
func (r *ClientRepository) GetAll(limit, offset int) ([]models.Client, int64, error) {
	var clients []models.Client
	var total int64

	if err := r.db.Model(&models.Client{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Order("name ASC").Limit(limit).Offset(offset).Find(&clients).Error
	if err != nil {
		return nil, 0, err
	}

	return clients, total, nil
}

// Update updates a client
func (r *ClientRepository) Update(client *models.Client) error {
	return r.db.Save(client).Error
}

// Delete removes a client and its private annotations in one transaction.
// Shared donor records are never touched.
func (r *ClientRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Assignment{}, "client_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.CallOutcome{}, "client_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Research{}, "client_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.DonorNote{}, "client_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Client{}, "id = ?", id).Error
	})
}

// ClientOverview carries the per-client dashboard aggregates.
type ClientOverview struct {
	ClientID        uint    `json:"client_id"`
	Name            string  `json:"name"`
	Candidate       string  `json:"candidate"`
	FundraisingGoal float64 `json:"fundraising_goal"`
	AssignedDonors  int64   `json:"assigned_donors"`
	TotalCalls      int64   `json:"total_calls"`
	TotalPledged    float64 `json:"total_pledged"`
	TotalRaised     float64 `json:"total_raised"`
}

// Overview aggregates per-client dashboard totals. Call outcomes are summed in
// their own subquery before joining to the assignment counts: joining the raw
// tables first and summing after fans out once per (assignment, outcome) pair
// and double-counts.
func (r *ClientRepository) Overview() ([]ClientOverview, error) {
	var rows []ClientOverview
	err := r.db.Raw(`
		SELECT
			c.id AS client_id,
			c.name AS name,
			c.candidate AS candidate,
			c.fundraising_goal AS fundraising_goal,
			COALESCE(a.assigned_donors, 0) AS assigned_donors,
			COALESCE(o.total_calls, 0) AS total_calls,
			COALESCE(o.total_pledged, 0) AS total_pledged,
			COALESCE(o.total_raised, 0) AS total_raised
		FROM clients c
		LEFT JOIN (
			SELECT client_id, COUNT(*) AS assigned_donors
			FROM donor_assignments
			WHERE is_active
			GROUP BY client_id
		) a ON a.client_id = c.id
		LEFT JOIN (
			SELECT client_id,
				COUNT(*) AS total_calls,
				SUM(COALESCE(pledge_amount, 0)) AS total_pledged,
				SUM(COALESCE(contribution_amount, 0)) AS total_raised
			FROM call_outcomes
			GROUP BY client_id
		) o ON o.client_id = c.id
		ORDER BY c.name ASC
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
