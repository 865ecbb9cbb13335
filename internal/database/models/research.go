package models

import "time"

// Research is a client-private research note on a donor, unique per
// (client, donor, category). Writing the same category again overwrites the
// content and bumps updated_at.
type Research struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ClientID         uint   `json:"client_id" gorm:"not null;uniqueIndex:idx_research_client_donor_category"`
	DonorID          uint   `json:"donor_id" gorm:"not null;uniqueIndex:idx_research_client_donor_category"`
	ResearchCategory string `json:"research_category" gorm:"size:100;not null;uniqueIndex:idx_research_client_donor_category"`
	Content          string `json:"content"`

	Client Client `json:"client,omitempty" gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
	Donor  Donor  `json:"donor,omitempty" gorm:"foreignKey:DonorID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Research
func (Research) TableName() string {
	return "client_donor_research"
}
