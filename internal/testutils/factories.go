package testutils

import (
	"fmt"

	"calltime-backend/internal/database/models"

	"golang.org/x/crypto/bcrypt"
)

// FactorySet bundles all factories for convenient suite setup
type FactorySet struct {
	Client       *ClientFactory
	Donor        *DonorFactory
	Contribution *ContributionFactory
}

// NewFactorySet creates a new FactorySet
func NewFactorySet() *FactorySet {
	return &FactorySet{
		Client:       NewClientFactory(),
		Donor:        NewDonorFactory(),
		Contribution: NewContributionFactory(),
	}
}

// ClientFactory provides methods to create test Client data
type ClientFactory struct {
	counter int
}

// NewClientFactory creates a new ClientFactory
func NewClientFactory() *ClientFactory {
	return &ClientFactory{}
}

// Create creates a test Client with default values
func (f *ClientFactory) Create() *models.Client {
	f.counter++
	return &models.Client{
		Name:            fmt.Sprintf("Test Campaign %d", f.counter),
		Candidate:       fmt.Sprintf("Candidate %d", f.counter),
		Office:          "State Senate",
		ManagerName:     "Morgan Webb",
		ManagerEmail:    fmt.Sprintf("manager%d@example.com", f.counter),
		FundraisingGoal: 250000,
	}
}

// WithName sets a custom name for the client
func (f *ClientFactory) WithName(name string) *models.Client {
	client := f.Create()
	client.Name = name
	return client
}

// WithPassword sets a bcrypt-hashed portal password
func (f *ClientFactory) WithPassword(password string) *models.Client {
	client := f.Create()
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	client.PasswordHash = string(hash)
	return client
}

// DonorFactory provides methods to create test Donor data
type DonorFactory struct {
	counter int
}

// NewDonorFactory creates a new DonorFactory
func NewDonorFactory() *DonorFactory {
	return &DonorFactory{}
}

// Create creates a test individual Donor with default values
func (f *DonorFactory) Create() *models.Donor {
	f.counter++
	return &models.Donor{
		DonorType: models.DonorTypeIndividual,
		FirstName: "Jamie",
		LastName:  fmt.Sprintf("Donor%d", f.counter),
		Email:     fmt.Sprintf("jamie.donor%d@example.com", f.counter),
		Phone:     "555-0100",
		City:      "Springfield",
		State:     "IL",
	}
}

// WithEmail sets a custom email
func (f *DonorFactory) WithEmail(email string) *models.Donor {
	donor := f.Create()
	donor.Email = email
	return donor
}

// Business creates a test organization donor
func (f *DonorFactory) Business(name string) *models.Donor {
	donor := f.Create()
	donor.DonorType = models.DonorTypeBusiness
	donor.IsBusiness = true
	donor.FirstName = ""
	donor.LastName = ""
	donor.BusinessName = name
	return donor
}

// Exclusive creates a donor locked to one client
func (f *DonorFactory) Exclusive(clientID uint) *models.Donor {
	donor := f.Create()
	donor.ExclusiveDonor = true
	donor.ExclusiveClientID = &clientID
	return donor
}

// ContributionFactory provides methods to create test giving-history entries
type ContributionFactory struct{}

// NewContributionFactory creates a new ContributionFactory
func NewContributionFactory() *ContributionFactory {
	return &ContributionFactory{}
}

// Create creates a test Contribution for the donor
func (f *ContributionFactory) Create(donorID uint, year int, candidate string, amount float64) *models.Contribution {
	return &models.Contribution{
		DonorID:   donorID,
		Year:      year,
		Candidate: candidate,
		Amount:    amount,
	}
}
