package service

import (
	"fmt"
	"strings"

	"calltime-backend/internal/database/models"
	apperrors "calltime-backend/internal/errors"
	"calltime-backend/internal/repository"
)

// DonorNoteService handles business logic for client-private donor notes
type DonorNoteService struct {
	repo        repository.DonorNoteRepositoryInterface
	assignments repository.AssignmentRepositoryInterface
}

// NewDonorNoteService creates a new donor note service
func NewDonorNoteService(repo repository.DonorNoteRepositoryInterface, assignments repository.AssignmentRepositoryInterface) *DonorNoteService {
	return &DonorNoteService{repo: repo, assignments: assignments}
}

// AddNoteRequest represents one note append
type AddNoteRequest struct {
	NoteType    string `json:"note_type"`
	Content     string `json:"content"`
	IsPrivate   bool   `json:"is_private"`
	IsImportant bool   `json:"is_important"`
	CreatedBy   string `json:"created_by"`
}

// AddNote appends a note to the client's thread on a donor. Notes are
// append-only; there is no update or delete path.
func (s *DonorNoteService) AddNote(clientID, donorID uint, req *AddNoteRequest) (*models.DonorNote, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, &apperrors.ValidationError{Field: "content", Message: "content is required"}
	}

	assigned, err := s.assignments.IsActivelyAssigned(clientID, donorID)
	if err != nil {
		return nil, fmt.Errorf("failed to check assignment: %w", err)
	}
	if !assigned {
		return nil, apperrors.ErrDonorNotAssigned
	}

	noteType := strings.TrimSpace(req.NoteType)
	if noteType == "" {
		noteType = "general"
	}

	note := &models.DonorNote{
		ClientID:    clientID,
		DonorID:     donorID,
		NoteType:    noteType,
		Content:     content,
		IsPrivate:   req.IsPrivate,
		IsImportant: req.IsImportant,
		CreatedBy:   strings.TrimSpace(req.CreatedBy),
	}
	if err := s.repo.Append(note); err != nil {
		return nil, fmt.Errorf("failed to add note: %w", err)
	}
	return note, nil
}

// GetNotes returns the client's notes on a donor, newest first
func (s *DonorNoteService) GetNotes(clientID, donorID uint) ([]models.DonorNote, error) {
	return s.repo.GetByClientDonor(clientID, donorID)
}
