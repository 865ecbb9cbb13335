package models

import "time"

// CallOutcome is a client-private log of one call attempt against a donor.
// Other clients sharing the donor never see it.
type CallOutcome struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ClientID uint `json:"client_id" gorm:"not null;index:idx_call_outcomes_client_donor"`
	DonorID  uint `json:"donor_id" gorm:"not null;index:idx_call_outcomes_client_donor"`

	Status             string     `json:"status" gorm:"size:100;not null"`
	Notes              string     `json:"notes"`
	FollowUpDate       *time.Time `json:"follow_up_date"`
	PledgeAmount       *float64   `json:"pledge_amount"`
	ContributionAmount *float64   `json:"contribution_amount"`
	DurationMinutes    *int       `json:"duration_minutes"`
	Quality            *int       `json:"quality" validate:"omitempty,min=1,max=5"`

	Client Client `json:"client,omitempty" gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
	Donor  Donor  `json:"donor,omitempty" gorm:"foreignKey:DonorID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for CallOutcome
func (CallOutcome) TableName() string {
	return "call_outcomes"
}
