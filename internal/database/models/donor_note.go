package models

import "time"

// DonorNote is an append-only client-private note on a donor.
type DonorNote struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	ClientID uint `json:"client_id" gorm:"not null;index:idx_client_donor_notes_client_donor"`
	DonorID  uint `json:"donor_id" gorm:"not null;index:idx_client_donor_notes_client_donor"`

	NoteType    string `json:"note_type" gorm:"size:50;default:'general'"`
	Content     string `json:"content" gorm:"not null"`
	IsPrivate   bool   `json:"is_private" gorm:"default:false"`
	IsImportant bool   `json:"is_important" gorm:"default:false"`
	CreatedBy   string `json:"created_by" gorm:"size:100"`

	Client Client `json:"client,omitempty" gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
	Donor  Donor  `json:"donor,omitempty" gorm:"foreignKey:DonorID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for DonorNote
func (DonorNote) TableName() string {
	return "client_donor_notes"
}
