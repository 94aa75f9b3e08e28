package service

import (
	"errors"
	"fmt"

	"github.com/Aioros01/veterinaria-sistema-sub000/internal/model"
	"github.com/Aioros01/veterinaria-sistema-sub000/internal/repository"
	"github.com/Aioros01/veterinaria-sistema-sub000/pkg/validator"

	"github.com/google/uuid"
)

var ErrPetNotFound = errors.New("pet not found")

type PetService interface {
	CreatePet(req *model.Pet, userID string) error
	UpdatePet(id uuid.UUID, req *model.Pet, userID string) (*model.Pet, error)
	DeletePet(id uuid.UUID, userID string) error
	GetAllPets() ([]model.Pet, error)
	GetPetByID(id uuid.UUID) (*model.Pet, error)
	GetPetsByClient(clientID uuid.UUID) ([]model.Pet, error)
}

type petService struct {
	petRepo    repository.PetRepository
	clientRepo repository.ClientRepository
}

func NewPetService(petRepo repository.PetRepository, clientRepo repository.ClientRepository) PetService {
	return &petService{petRepo: petRepo, clientRepo: clientRepo}
}

func (s *petService) CreatePet(req *model.Pet, userID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	// Owner must exist
	if _, err := s.clientRepo.FindByID(req.ClientID); err != nil {
		return ErrClientNotFound
	}

	req.CreatedBy = userID
	req.UpdatedBy = userID
	req.IsActive = true

	return s.petRepo.Create(req)
}

func (s *petService) UpdatePet(id uuid.UUID, req *model.Pet, userID string) (*model.Pet, error) {
	existing, err := s.petRepo.FindByID(id)
	if err != nil {
		return nil, ErrPetNotFound
	}

	existing.Name = req.Name
	existing.Species = req.Species
	existing.Breed = req.Breed
	existing.Sex = req.Sex
	existing.BirthDate = req.BirthDate
	existing.Microchip = req.Microchip
	existing.WeightKg = req.WeightKg
	existing.Notes = req.Notes
	existing.IsActive = req.IsActive
	existing.UpdatedBy = userID

	if err := s.petRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *petService) DeletePet(id uuid.UUID, userID string) error {
	if _, err := s.petRepo.FindByID(id); err != nil {
		return ErrPetNotFound
	}
	return s.petRepo.Delete(id, userID)
}

func (s *petService) GetAllPets() ([]model.Pet, error) {
	return s.petRepo.FindAll()
}

func (s *petService) GetPetByID(id uuid.UUID) (*model.Pet, error) {
	pet, err := s.petRepo.FindByID(id)
	if err != nil {
		return nil, ErrPetNotFound
	}
	return pet, nil
}

func (s *petService) GetPetsByClient(clientID uuid.UUID) ([]model.Pet, error) {
	if _, err := s.clientRepo.FindByID(clientID); err != nil {
		return nil, ErrClientNotFound
	}
	return s.petRepo.FindByClient(clientID)
}
