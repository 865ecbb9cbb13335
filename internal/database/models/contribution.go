package models

import "time"

// Contribution is one giving-history entry. It belongs to a donor, not a
// client: giving history is a shared fact about the donor.
type Contribution struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	DonorID uint `json:"donor_id" gorm:"not null;index"`

	Year         int     `json:"year" gorm:"not null"`
	Candidate    string  `json:"candidate" gorm:"size:200;not null"`
	OfficeSought string  `json:"office_sought" gorm:"size:200"`
	Amount       float64 `json:"amount" gorm:"not null"`
	IsInkind     bool    `json:"is_inkind" gorm:"default:false"`
}

// TableName returns the table name for Contribution
func (Contribution) TableName() string {
	return "giving_history"
}
