package service

import (
	"errors"
	"fmt"

	"github.com/Aioros01/veterinaria-sistema-sub000/internal/model"
	"github.com/Aioros01/veterinaria-sistema-sub000/internal/repository"
	"github.com/Aioros01/veterinaria-sistema-sub000/pkg/validator"

	"github.com/google/uuid"
)

var (
	ErrClientNotFound  = errors.New("client not found")
	ErrDocumentIDTaken = errors.New("a client with this document ID already exists")
)

type ClientService interface {
	CreateClient(req *model.Client, userID string) error
	UpdateClient(id uuid.UUID, req *model.Client, userID string) (*model.Client, error)
	DeleteClient(id uuid.UUID, userID string) error
	GetAllClients() ([]model.Client, error)
	GetClientByID(id uuid.UUID) (*model.Client, error)
}

type clientService struct {
	clientRepo repository.ClientRepository
}

func NewClientService(clientRepo repository.ClientRepository) ClientService {
	return &clientService{clientRepo: clientRepo}
}

func (s *clientService) CreateClient(req *model.Client, userID string) error {
	// 1. Struct validation
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	// 2. Document ID duplicate check
	if req.DocumentID != "" {
		existing, _ := s.clientRepo.FindByDocumentID(req.DocumentID)
		if existing != nil && existing.ID != uuid.Nil {
			return ErrDocumentIDTaken
		}
	}

	req.CreatedBy = userID
	req.UpdatedBy = userID
	req.IsActive = true

	return s.clientRepo.Create(req)
}

func (s *clientService) UpdateClient(id uuid.UUID, req *model.Client, userID string) (*model.Client, error) {
	existing, err := s.clientRepo.FindByID(id)
	if err != nil {
		return nil, ErrClientNotFound
	}

	if req.DocumentID != "" && req.DocumentID != existing.DocumentID {
		other, _ := s.clientRepo.FindByDocumentID(req.DocumentID)
		if other != nil && other.ID != id {
			return nil, ErrDocumentIDTaken
		}
	}

	existing.FullName = req.FullName
	existing.DocumentID = req.DocumentID
	existing.Email = req.Email
	existing.PhoneNumber = req.PhoneNumber
	existing.Address = req.Address
	existing.IsActive = req.IsActive
	existing.UpdatedBy = userID

	if err := s.clientRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *clientService) DeleteClient(id uuid.UUID, userID string) error {
	if _, err := s.clientRepo.FindByID(id); err != nil {
		return ErrClientNotFound
	}
	return s.clientRepo.Delete(id, userID)
}

func (s *clientService) GetAllClients() ([]model.Client, error) {
	return s.clientRepo.FindAll()
}

func (s *clientService) GetClientByID(id uuid.UUID) (*model.Client, error) {
	client, err := s.clientRepo.FindByID(id)
	if err != nil {
		return nil, ErrClientNotFound
	}
	return client, nil
}
