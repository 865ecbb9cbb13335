package models

import "time"

// Assignment links a client to a donor. The (client_id, donor_id) pair is
// unique and load-bearing: assignment writes are upserts against it.
// Unassignment is a soft deactivate so custom metadata survives reassignment.
type Assignment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ClientID uint `json:"client_id" gorm:"not null;uniqueIndex:idx_donor_assignments_client_donor;index"`
	DonorID  uint `json:"donor_id" gorm:"not null;uniqueIndex:idx_donor_assignments_client_donor;index"`

	PriorityLevel   int      `json:"priority_level" gorm:"default:3"`
	CustomAskAmount *float64 `json:"custom_ask_amount"`
	AssignmentNotes *string  `json:"assignment_notes"`
	AssignedBy      string   `json:"assigned_by" gorm:"size:100"`
	IsActive        bool     `json:"is_active" gorm:"default:true;index"`

	Client Client `json:"client,omitempty" gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
	Donor  Donor  `json:"donor,omitempty" gorm:"foreignKey:DonorID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Assignment
func (Assignment) TableName() string {
	return "donor_assignments"
}
