package models

import (
	"strings"
	"time"
)

// DonorType classifies a donor as a person or an organization
type DonorType string

const (
	DonorTypeIndividual DonorType = "individual"
	DonorTypeBusiness   DonorType = "business"
	DonorTypeCampaign   DonorType = "campaign"
)

// IsOrganization reports whether the donor type is an entity rather than a person.
func (t DonorType) IsOrganization() bool {
	return t == DonorTypeBusiness || t == DonorTypeCampaign
}

// Donor represents a person or organization that can give money. Donor records
// are shared across clients; which client can see a donor is governed solely by
// the assignment ledger.
type Donor struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	DonorType DonorType `json:"donor_type" gorm:"type:varchar(20);not null;default:'individual';index"`
	// Legacy flag predating donor_type; migration keeps the two consistent.
	IsBusiness bool `json:"is_business" gorm:"default:false"`

	FirstName    string `json:"first_name" gorm:"size:100"`
	LastName     string `json:"last_name" gorm:"size:100"`
	BusinessName string `json:"business_name" gorm:"size:200"`

	// Contact person for organization donors, distinct from the entity's own name.
	ContactFirstName string `json:"contact_first_name" gorm:"size:100"`
	ContactLastName  string `json:"contact_last_name" gorm:"size:100"`

	Phone          string `json:"phone" gorm:"size:40"`
	AlternatePhone string `json:"alternate_phone" gorm:"size:40"`
	Email          string `json:"email" gorm:"size:255;index"`

	StreetAddress string `json:"street_address" gorm:"size:200"`
	AddressLine2  string `json:"address_line2" gorm:"size:200"`
	City          string `json:"city" gorm:"size:100"`
	State         string `json:"state" gorm:"size:40"`
	PostalCode    string `json:"postal_code" gorm:"size:20"`

	Employer   string `json:"employer" gorm:"size:200"`
	Occupation string `json:"occupation" gorm:"size:200"`
	JobTitle   string `json:"job_title" gorm:"size:200"`

	Tags         string   `json:"tags" gorm:"size:500"`
	SuggestedAsk *float64 `json:"suggested_ask"`
	Bio          string   `json:"bio"`
	Notes        string   `json:"notes"`
	PhotoURL     string   `json:"photo_url" gorm:"size:500"`

	// Exclusivity: when set, at most one active assignment may exist for this
	// donor, and it must point at ExclusiveClientID.
	ExclusiveDonor    bool  `json:"exclusive_donor" gorm:"default:false"`
	ExclusiveClientID *uint `json:"exclusive_client_id"`

	// Originating client before any assignment rows exist. Nullable on purpose:
	// a donor may exist with no client at all.
	ClientID *uint `json:"client_id" gorm:"index"`

	Contributions []Contribution `json:"contributions,omitempty" gorm:"foreignKey:DonorID;constraint:OnDelete:CASCADE"`
	Assignments   []Assignment   `json:"assignments,omitempty" gorm:"foreignKey:DonorID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Donor
func (Donor) TableName() string {
	return "donors"
}

// DisplayName resolves the human-readable name: the entity name for
// organization donors, first+last for individuals.
func (d *Donor) DisplayName() string {
	if d.DonorType.IsOrganization() {
		if d.BusinessName != "" {
			return d.BusinessName
		}
		return d.Employer
	}
	return strings.TrimSpace(strings.TrimSpace(d.FirstName) + " " + strings.TrimSpace(d.LastName))
}
