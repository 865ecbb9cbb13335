package models

import "time"

// Client represents a campaign account using the system for its call-time operation.
type Client struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name            string  `json:"name" gorm:"size:200;not null" validate:"required,max=200"`
	Candidate       string  `json:"candidate" gorm:"size:200"`
	Office          string  `json:"office" gorm:"size:200"`
	ManagerName     string  `json:"manager_name" gorm:"size:200"`
	ManagerEmail    string  `json:"manager_email" gorm:"size:255" validate:"omitempty,email,max=255"`
	ManagerPhone    string  `json:"manager_phone" gorm:"size:40"`
	FundraisingGoal float64 `json:"fundraising_goal"`
	Notes           string  `json:"notes"`

	// Portal credentials. The hash is never serialized.
	PasswordHash          string `json:"-" gorm:"size:100"`
	PasswordResetRequired bool   `json:"password_reset_required" gorm:"default:false"`

	// Relationships. Deleting a client removes its private annotations and
	// assignment rows, never shared donor records.
	Assignments  []Assignment  `json:"assignments,omitempty" gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
	CallOutcomes []CallOutcome `json:"call_outcomes,omitempty" gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
	Research     []Research    `json:"research,omitempty" gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
	DonorNotes   []DonorNote   `json:"donor_notes,omitempty" gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Client
func (Client) TableName() string {
	return "clients"
}
