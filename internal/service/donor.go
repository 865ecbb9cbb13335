package service

import (
	"errors"
	"fmt"
	"strings"

	"calltime-backend/internal/database/models"
	apperrors "calltime-backend/internal/errors"
	"calltime-backend/internal/normalize"
	"calltime-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// DonorService handles business logic for donors: identity resolution,
// validation and the exclusivity invariant.
type DonorService struct {
	repo        repository.DonorRepositoryInterface
	assignments repository.AssignmentRepositoryInterface
	validator   *validator.Validate
}

// NewDonorService creates a new donor service
func NewDonorService(repo repository.DonorRepositoryInterface, assignments repository.AssignmentRepositoryInterface, validator *validator.Validate) *DonorService {
	return &DonorService{
		repo:        repo,
		assignments: assignments,
		validator:   validator,
	}
}

// CreateDonorRequest represents the data needed to create a donor
type CreateDonorRequest struct {
	DonorType        string   `json:"donor_type"`
	Name             string   `json:"name"`
	FirstName        string   `json:"first_name" validate:"max=100"`
	LastName         string   `json:"last_name" validate:"max=100"`
	BusinessName     string   `json:"business_name" validate:"max=200"`
	ContactFirstName string   `json:"contact_first_name" validate:"max=100"`
	ContactLastName  string   `json:"contact_last_name" validate:"max=100"`
	Phone            string   `json:"phone" validate:"max=40"`
	AlternatePhone   string   `json:"alternate_phone" validate:"max=40"`
	Email            string   `json:"email" validate:"omitempty,email,max=255"`
	StreetAddress    string   `json:"street_address" validate:"max=200"`
	AddressLine2     string   `json:"address_line2" validate:"max=200"`
	City             string   `json:"city" validate:"max=100"`
	State            string   `json:"state" validate:"max=40"`
	PostalCode       string   `json:"postal_code" validate:"max=20"`
	Employer         string   `json:"employer" validate:"max=200"`
	Occupation       string   `json:"occupation" validate:"max=200"`
	JobTitle         string   `json:"job_title" validate:"max=200"`
	Tags             string   `json:"tags" validate:"max=500"`
	SuggestedAsk     *float64 `json:"suggested_ask"`
	Bio              string   `json:"bio"`
	Notes            string   `json:"notes"`
	PhotoURL         string   `json:"photo_url" validate:"max=500"`
	ExclusiveDonor   bool     `json:"exclusive_donor"`
	ExclusiveClient  *uint    `json:"exclusive_client_id"`
	ClientID         *uint    `json:"client_id"`
	// Initial assignments seeded atomically with the donor record.
	AssignClientIDs []uint `json:"assign_client_ids"`
	AssignedBy      string `json:"assigned_by" validate:"max=100"`
}

// UpdateDonorRequest represents the data needed to update a donor. Pointer
// fields distinguish "leave alone" from "set to zero value".
type UpdateDonorRequest struct {
	DonorType        *string  `json:"donor_type"`
	FirstName        *string  `json:"first_name" validate:"omitempty,max=100"`
	LastName         *string  `json:"last_name" validate:"omitempty,max=100"`
	BusinessName     *string  `json:"business_name" validate:"omitempty,max=200"`
	ContactFirstName *string  `json:"contact_first_name" validate:"omitempty,max=100"`
	ContactLastName  *string  `json:"contact_last_name" validate:"omitempty,max=100"`
	Phone            *string  `json:"phone" validate:"omitempty,max=40"`
	AlternatePhone   *string  `json:"alternate_phone" validate:"omitempty,max=40"`
	Email            *string  `json:"email" validate:"omitempty,email,max=255"`
	StreetAddress    *string  `json:"street_address" validate:"omitempty,max=200"`
	AddressLine2     *string  `json:"address_line2" validate:"omitempty,max=200"`
	City             *string  `json:"city" validate:"omitempty,max=100"`
	State            *string  `json:"state" validate:"omitempty,max=40"`
	PostalCode       *string  `json:"postal_code" validate:"omitempty,max=20"`
	Employer         *string  `json:"employer" validate:"omitempty,max=200"`
	Occupation       *string  `json:"occupation" validate:"omitempty,max=200"`
	JobTitle         *string  `json:"job_title" validate:"omitempty,max=200"`
	Tags             *string  `json:"tags" validate:"omitempty,max=500"`
	SuggestedAsk     *float64 `json:"suggested_ask"`
	Bio              *string  `json:"bio"`
	Notes            *string  `json:"notes"`
	PhotoURL         *string  `json:"photo_url" validate:"omitempty,max=500"`
	ExclusiveDonor   *bool    `json:"exclusive_donor"`
	ExclusiveClient  *uint    `json:"exclusive_client_id"`
}

// DonorResponse represents the response data for a donor
type DonorResponse struct {
	ID                uint                  `json:"id"`
	DonorType         string                `json:"donor_type"`
	Name              string                `json:"name"`
	FirstName         string                `json:"first_name,omitempty"`
	LastName          string                `json:"last_name,omitempty"`
	BusinessName      string                `json:"business_name,omitempty"`
	ContactFirstName  string                `json:"contact_first_name,omitempty"`
	ContactLastName   string                `json:"contact_last_name,omitempty"`
	Phone             string                `json:"phone,omitempty"`
	AlternatePhone    string                `json:"alternate_phone,omitempty"`
	Email             string                `json:"email,omitempty"`
	StreetAddress     string                `json:"street_address,omitempty"`
	AddressLine2      string                `json:"address_line2,omitempty"`
	City              string                `json:"city,omitempty"`
	State             string                `json:"state,omitempty"`
	PostalCode        string                `json:"postal_code,omitempty"`
	Employer          string                `json:"employer,omitempty"`
	Occupation        string                `json:"occupation,omitempty"`
	JobTitle          string                `json:"job_title,omitempty"`
	Tags              string                `json:"tags,omitempty"`
	SuggestedAsk      *float64              `json:"suggested_ask,omitempty"`
	Bio               string                `json:"bio,omitempty"`
	Notes             string                `json:"notes,omitempty"`
	PhotoURL          string                `json:"photo_url,omitempty"`
	ExclusiveDonor    bool                  `json:"exclusive_donor"`
	ExclusiveClientID *uint                 `json:"exclusive_client_id,omitempty"`
	AssignedClientIDs []uint                `json:"assigned_client_ids"`
	GivingHistory     []models.Contribution `json:"giving_history"`
	CreatedAt         string                `json:"created_at"`
	UpdatedAt         string                `json:"updated_at"`
}

// CreateDonor validates and creates a donor, seeding initial assignments in
// the same transaction.
func (s *DonorService) CreateDonor(req *CreateDonorRequest) (*DonorResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	donorType := normalize.ResolveDonorType(req.DonorType, nil)

	donor := &models.Donor{
		DonorType:         donorType,
		IsBusiness:        donorType.IsOrganization(),
		FirstName:         strings.TrimSpace(req.FirstName),
		LastName:          strings.TrimSpace(req.LastName),
		BusinessName:      strings.TrimSpace(req.BusinessName),
		ContactFirstName:  strings.TrimSpace(req.ContactFirstName),
		ContactLastName:   strings.TrimSpace(req.ContactLastName),
		Phone:             strings.TrimSpace(req.Phone),
		AlternatePhone:    strings.TrimSpace(req.AlternatePhone),
		Email:             strings.TrimSpace(req.Email),
		StreetAddress:     strings.TrimSpace(req.StreetAddress),
		AddressLine2:      strings.TrimSpace(req.AddressLine2),
		City:              strings.TrimSpace(req.City),
		State:             strings.TrimSpace(req.State),
		PostalCode:        strings.TrimSpace(req.PostalCode),
		Employer:          strings.TrimSpace(req.Employer),
		Occupation:        strings.TrimSpace(req.Occupation),
		JobTitle:          strings.TrimSpace(req.JobTitle),
		Tags:              strings.TrimSpace(req.Tags),
		SuggestedAsk:      req.SuggestedAsk,
		Bio:               req.Bio,
		Notes:             req.Notes,
		PhotoURL:          strings.TrimSpace(req.PhotoURL),
		ExclusiveDonor:    req.ExclusiveDonor,
		ExclusiveClientID: req.ExclusiveClient,
		ClientID:          req.ClientID,
	}

	if donor.ExclusiveDonor && donor.ExclusiveClientID == nil {
		return nil, apperrors.NewValidationError("exclusive_client_id",
			"is required when exclusive_donor is set")
	}

	if err := resolveIdentity(donor, req.Name); err != nil {
		return nil, err
	}

	var seeds []repository.AssignmentMeta
	for _, clientID := range req.AssignClientIDs {
		seeds = append(seeds, repository.AssignmentMeta{ClientID: clientID, AssignedBy: req.AssignedBy})
	}
	if donor.ClientID != nil {
		found := false
		for _, m := range seeds {
			if m.ClientID == *donor.ClientID {
				found = true
			}
		}
		if !found {
			seeds = append(seeds, repository.AssignmentMeta{ClientID: *donor.ClientID, AssignedBy: req.AssignedBy})
		}
	}

	if err := s.repo.CreateWithAssignments(donor, seeds); err != nil {
		return nil, fmt.Errorf("failed to create donor: %w", err)
	}

	return s.convertToResponse(donor)
}

// resolveIdentity enforces the donor naming rules: organization donors need an
// entity name, individual donors a personal name. A combined full name splits
// into first/last when the discrete parts are absent. Organization donors
// never populate individual-only name fields.
func resolveIdentity(donor *models.Donor, fullName string) error {
	fullName = strings.TrimSpace(fullName)

	if donor.DonorType.IsOrganization() {
		if donor.BusinessName == "" {
			// Fall back to employer, then to whatever name was supplied.
			switch {
			case donor.Employer != "":
				donor.BusinessName = donor.Employer
			case fullName != "":
				donor.BusinessName = fullName
			default:
				return apperrors.NewValidationError("business_name",
					"is required for business and campaign donors")
			}
		}
		donor.FirstName = ""
		donor.LastName = ""
		return nil
	}

	if donor.FirstName == "" && donor.LastName == "" {
		if fullName == "" {
			return apperrors.NewValidationError("name",
				"individual donors require a name or first/last name")
		}
		donor.FirstName, donor.LastName = normalize.SplitFullName(fullName)
	} else if donor.FirstName == "" || donor.LastName == "" {
		if fullName != "" {
			donor.FirstName, donor.LastName = normalize.SplitFullName(fullName)
		}
	}
	return nil
}

// GetDonor retrieves a donor by ID. Manager scope: no assignment gate.
func (s *DonorService) GetDonor(id uint) (*DonorResponse, error) {
	donor, err := s.repo.GetByID(id)
	if err != nil {
		return nil, apperrors.ErrDonorNotFound
	}
	return s.convertToResponse(donor)
}

// GetDonorForClient retrieves a donor on behalf of a client. A missing donor
// is NotFound; an existing donor without an active assignment to the client is
// an authorization error, so the API layer can answer 403 rather than 404.
func (s *DonorService) GetDonorForClient(clientID, donorID uint) (*DonorResponse, error) {
	donor, err := s.repo.GetByID(donorID)
	if err != nil {
		return nil, apperrors.ErrDonorNotFound
	}
	assigned, err := s.assignments.IsActivelyAssigned(clientID, donorID)
	if err != nil {
		return nil, fmt.Errorf("failed to check assignment: %w", err)
	}
	if !assigned {
		return nil, apperrors.ErrDonorNotAssigned
	}
	return s.convertToResponse(donor)
}

// ListDonors retrieves donors with pagination
func (s *DonorService) ListDonors(query string, limit, offset int) ([]DonorResponse, int64, error) {
	var donors []models.Donor
	var total int64
	var err error

	if query != "" {
		donors, total, err = s.repo.Search(query, limit, offset)
	} else {
		donors, total, err = s.repo.GetAll(limit, offset)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list donors: %w", err)
	}

	responses := make([]DonorResponse, 0, len(donors))
	for i := range donors {
		resp, err := s.convertToResponse(&donors[i])
		if err != nil {
			return nil, 0, err
		}
		responses = append(responses, *resp)
	}
	return responses, total, nil
}

// UpdateDonor updates an existing donor. Toggling exclusivity on triggers the
// ledger's deactivate-others routine in the same transaction; toggling it off
// leaves assignments untouched.
func (s *DonorService) UpdateDonor(id uint, req *UpdateDonorRequest) (*DonorResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	donor, err := s.repo.GetByID(id)
	if err != nil {
		return nil, apperrors.ErrDonorNotFound
	}

	if req.DonorType != nil {
		donor.DonorType = normalize.ResolveDonorType(*req.DonorType, &donor.IsBusiness)
		donor.IsBusiness = donor.DonorType.IsOrganization()
	}
	applyString(&donor.FirstName, req.FirstName)
	applyString(&donor.LastName, req.LastName)
	applyString(&donor.BusinessName, req.BusinessName)
	applyString(&donor.ContactFirstName, req.ContactFirstName)
	applyString(&donor.ContactLastName, req.ContactLastName)
	applyString(&donor.Phone, req.Phone)
	applyString(&donor.AlternatePhone, req.AlternatePhone)
	applyString(&donor.Email, req.Email)
	applyString(&donor.StreetAddress, req.StreetAddress)
	applyString(&donor.AddressLine2, req.AddressLine2)
	applyString(&donor.City, req.City)
	applyString(&donor.State, req.State)
	applyString(&donor.PostalCode, req.PostalCode)
	applyString(&donor.Employer, req.Employer)
	applyString(&donor.Occupation, req.Occupation)
	applyString(&donor.JobTitle, req.JobTitle)
	applyString(&donor.Tags, req.Tags)
	applyString(&donor.Bio, req.Bio)
	applyString(&donor.Notes, req.Notes)
	applyString(&donor.PhotoURL, req.PhotoURL)
	if req.SuggestedAsk != nil {
		donor.SuggestedAsk = req.SuggestedAsk
	}
	if req.ExclusiveDonor != nil {
		donor.ExclusiveDonor = *req.ExclusiveDonor
	}
	if req.ExclusiveClient != nil {
		donor.ExclusiveClientID = req.ExclusiveClient
	}
	if donor.ExclusiveDonor && donor.ExclusiveClientID == nil {
		return nil, apperrors.NewValidationError("exclusive_client_id",
			"is required when exclusive_donor is set")
	}

	if err := resolveIdentity(donor, ""); err != nil {
		return nil, err
	}

	if err := s.repo.Update(donor); err != nil {
		return nil, fmt.Errorf("failed to update donor: %w", err)
	}

	return s.convertToResponse(donor)
}

// DeleteDonor removes a donor and everything that hangs off it
func (s *DonorService) DeleteDonor(id uint) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrDonorNotFound
		}
		return err
	}
	return s.repo.Delete(id)
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func (s *DonorService) convertToResponse(donor *models.Donor) (*DonorResponse, error) {
	clientIDs, err := s.repo.AssignedClientIDs(donor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assigned clients: %w", err)
	}
	if clientIDs == nil {
		clientIDs = []uint{}
	}

	history := donor.Contributions
	sortContributions(history)
	if history == nil {
		history = []models.Contribution{}
	}

	return &DonorResponse{
		ID:                donor.ID,
		DonorType:         string(donor.DonorType),
		Name:              donor.DisplayName(),
		FirstName:         donor.FirstName,
		LastName:          donor.LastName,
		BusinessName:      donor.BusinessName,
		ContactFirstName:  donor.ContactFirstName,
		ContactLastName:   donor.ContactLastName,
		Phone:             donor.Phone,
		AlternatePhone:    donor.AlternatePhone,
		Email:             donor.Email,
		StreetAddress:     donor.StreetAddress,
		AddressLine2:      donor.AddressLine2,
		City:              donor.City,
		State:             donor.State,
		PostalCode:        donor.PostalCode,
		Employer:          donor.Employer,
		Occupation:        donor.Occupation,
		JobTitle:          donor.JobTitle,
		Tags:              donor.Tags,
		SuggestedAsk:      donor.SuggestedAsk,
		Bio:               donor.Bio,
		Notes:             donor.Notes,
		PhotoURL:          donor.PhotoURL,
		ExclusiveDonor:    donor.ExclusiveDonor,
		ExclusiveClientID: donor.ExclusiveClientID,
		AssignedClientIDs: clientIDs,
		GivingHistory:     history,
		CreatedAt:         donor.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:         donor.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}, nil
}
