package service

import (
	"errors"
	"fmt"
	"strings"

	"calltime-backend/internal/database/models"
	apperrors "calltime-backend/internal/errors"
	"calltime-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ClientService handles business logic for campaign clients
type ClientService struct {
	repo      repository.ClientRepositoryInterface
	validator *validator.Validate
}

// NewClientService creates a new client service
func NewClientService(repo repository.ClientRepositoryInterface, validator *validator.Validate) *ClientService {
	return &ClientService{repo: repo, validator: validator}
}

// CreateClientRequest represents the data needed to create a client
type CreateClientRequest struct {
	Name            string  `json:"name" validate:"required,max=200"`
	Candidate       string  `json:"candidate" validate:"max=200"`
	Office          string  `json:"office" validate:"max=200"`
	ManagerName     string  `json:"manager_name" validate:"max=200"`
	ManagerEmail    string  `json:"manager_email" validate:"omitempty,email,max=255"`
	ManagerPhone    string  `json:"manager_phone" validate:"max=40"`
	FundraisingGoal float64 `json:"fundraising_goal"`
	Notes           string  `json:"notes"`
	PortalPassword  string  `json:"portal_password" validate:"omitempty,min=8"`
}

// UpdateClientRequest represents the data needed to update a client
type UpdateClientRequest struct {
	Name            *string  `json:"name" validate:"omitempty,max=200"`
	Candidate       *string  `json:"candidate" validate:"omitempty,max=200"`
	Office          *string  `json:"office" validate:"omitempty,max=200"`
	ManagerName     *string  `json:"manager_name" validate:"omitempty,max=200"`
	ManagerEmail    *string  `json:"manager_email" validate:"omitempty,email,max=255"`
	ManagerPhone    *string  `json:"manager_phone" validate:"omitempty,max=40"`
	FundraisingGoal *float64 `json:"fundraising_goal"`
	Notes           *string  `json:"notes"`
}

// ClientResponse represents the response data for a client
type ClientResponse struct {
	ID                    uint    `json:"id"`
	Name                  string  `json:"name"`
	Candidate             string  `json:"candidate"`
	Office                string  `json:"office"`
	ManagerName           string  `json:"manager_name"`
	ManagerEmail          string  `json:"manager_email"`
	ManagerPhone          string  `json:"manager_phone"`
	FundraisingGoal       float64 `json:"fundraising_goal"`
	Notes                 string  `json:"notes"`
	PasswordResetRequired bool    `json:"password_reset_required"`
	CreatedAt             string  `json:"created_at"`
	UpdatedAt             string  `json:"updated_at"`
}

// CreateClient creates a new client. A supplied portal password is hashed; an
// absent one leaves the portal locked until a manager sets it.
func (s *ClientService) CreateClient(req *CreateClientRequest) (*ClientResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if existing, err := s.repo.GetByName(req.Name); err == nil && existing != nil {
		return nil, apperrors.ErrClientExists
	}

	client := &models.Client{
		Name:            strings.TrimSpace(req.Name),
		Candidate:       strings.TrimSpace(req.Candidate),
		Office:          strings.TrimSpace(req.Office),
		ManagerName:     strings.TrimSpace(req.ManagerName),
		ManagerEmail:    strings.TrimSpace(req.ManagerEmail),
		ManagerPhone:    strings.TrimSpace(req.ManagerPhone),
		FundraisingGoal: req.FundraisingGoal,
		Notes:           req.Notes,
	}

	if req.PortalPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.PortalPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash portal password: %w", err)
		}
		client.PasswordHash = string(hash)
	}

	if err := s.repo.Create(client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return s.convertToResponse(client), nil
}

// GetClient retrieves a client by ID
func (s *ClientService) GetClient(id uint) (*ClientResponse, error) {
	client, err := s.repo.GetByID(id)
	if err != nil {
		return nil, apperrors.ErrClientNotFound
	}
	return s.convertToResponse(client), nil
}

// ListClients retrieves all clients with pagination
func (s *ClientService) ListClients(limit, offset int) ([]ClientResponse, int64, error) {
	clients, total, err := s.repo.GetAll(limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list clients: %w", err)
	}

	responses := make([]ClientResponse, len(clients))
	for i := range clients {
		responses[i] = *s.convertToResponse(&clients[i])
	}
	return responses, total, nil
}

// UpdateClient updates an existing client
func (s *ClientService) UpdateClient(id uint, req *UpdateClientRequest) (*ClientResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	client, err := s.repo.GetByID(id)
	if err != nil {
		return nil, apperrors.ErrClientNotFound
	}

	applyString(&client.Name, req.Name)
	applyString(&client.Candidate, req.Candidate)
	applyString(&client.Office, req.Office)
	applyString(&client.ManagerName, req.ManagerName)
	applyString(&client.ManagerEmail, req.ManagerEmail)
	applyString(&client.ManagerPhone, req.ManagerPhone)
	if req.FundraisingGoal != nil {
		client.FundraisingGoal = *req.FundraisingGoal
	}
	if req.Notes != nil {
		client.Notes = *req.Notes
	}

	if err := s.repo.Update(client); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	return s.convertToResponse(client), nil
}

// DeleteClient removes a client and cascades to its assignments and private
// annotations. Shared donor records survive.
func (s *ClientService) DeleteClient(id uint) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrClientNotFound
		}
		return err
	}
	return s.repo.Delete(id)
}

// ResetPortalPassword sets a new portal password and flags the portal for a
// forced password change on next login.
func (s *ClientService) ResetPortalPassword(id uint, newPassword string) error {
	if len(newPassword) < 8 {
		return apperrors.NewValidationError("portal_password", "must be at least 8 characters")
	}
	client, err := s.repo.GetByID(id)
	if err != nil {
		return apperrors.ErrClientNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash portal password: %w", err)
	}
	client.PasswordHash = string(hash)
	client.PasswordResetRequired = true

	return s.repo.Update(client)
}

// ChangePortalPassword is the portal-side password change, clearing the
// reset-required flag.
func (s *ClientService) ChangePortalPassword(id uint, newPassword string) error {
	if len(newPassword) < 8 {
		return apperrors.NewValidationError("portal_password", "must be at least 8 characters")
	}
	client, err := s.repo.GetByID(id)
	if err != nil {
		return apperrors.ErrClientNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash portal password: %w", err)
	}
	client.PasswordHash = string(hash)
	client.PasswordResetRequired = false

	return s.repo.Update(client)
}

// Overview returns the manager dashboard aggregates for every client
func (s *ClientService) Overview() ([]repository.ClientOverview, error) {
	rows, err := s.repo.Overview()
	if err != nil {
		return nil, fmt.Errorf("failed to load overview: %w", err)
	}
	return rows, nil
}

func (s *ClientService) convertToResponse(client *models.Client) *ClientResponse {
	return &ClientResponse{
		ID:                    client.ID,
		Name:                  client.Name,
		Candidate:             client.Candidate,
		Office:                client.Office,
		ManagerName:           client.ManagerName,
		ManagerEmail:          client.ManagerEmail,
		ManagerPhone:          client.ManagerPhone,
		FundraisingGoal:       client.FundraisingGoal,
		Notes:                 client.Notes,
		PasswordResetRequired: client.PasswordResetRequired,
		CreatedAt:             client.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:             client.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
