package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/Aioros01/veterinaria-sistema-sub000/internal/model"
	"github.com/Aioros01/veterinaria-sistema-sub000/internal/repository"
	"github.com/Aioros01/veterinaria-sistema-sub000/internal/ws"
	"github.com/Aioros01/veterinaria-sistema-sub000/pkg/validator"

	"github.com/google/uuid"
)

var (
	ErrRecordNotFound          = errors.New("medical record not found")
	ErrHospitalizationNotFound = errors.New("hospitalization not found")
	ErrAlreadyAdmitted         = errors.New("pet already has an open hospitalization")
	ErrAlreadyDischarged       = errors.New("hospitalization is already discharged")
)

type MedicalService interface {
	CreateRecord(record *model.MedicalRecord, userID string) error
	GetRecordByID(id uuid.UUID) (*model.MedicalRecord, error)
	GetRecordsByPet(petID uuid.UUID) ([]model.MedicalRecord, error)
	AdmitPet(h *model.Hospitalization, userID string) error
	DischargePet(id uuid.UUID, summary, userID string) (*model.Hospitalization, error)
	GetOpenHospitalizations() ([]model.Hospitalization, error)
	GetHospitalizationsByPet(petID uuid.UUID) ([]model.Hospitalization, error)
}

type medicalService struct {
	recordRepo repository.MedicalRecordRepository
	hospRepo   repository.HospitalizationRepository
	petRepo    repository.PetRepository
	wsHub      *ws.Hub
}

func NewMedicalService(
	recordRepo repository.MedicalRecordRepository,
	hospRepo repository.HospitalizationRepository,
	petRepo repository.PetRepository,
	hub *ws.Hub,
) MedicalService {
	return &medicalService{
		recordRepo: recordRepo,
		hospRepo:   hospRepo,
		petRepo:    petRepo,
		wsHub:      hub,
	}
}

func (s *medicalService) CreateRecord(record *model.MedicalRecord, userID string) error {
	if errs := validator.ValidateStruct(record); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	pet, err := s.petRepo.FindByID(record.PetID)
	if err != nil {
		return ErrPetNotFound
	}

	if record.VisitDate.IsZero() {
		record.VisitDate = time.Now()
	}
	record.CreatedBy = userID
	record.UpdatedBy = userID

	if err := s.recordRepo.Create(record); err != nil {
		return err
	}

	// Keep the pet's weight current with the latest consultation
	if record.WeightKg > 0 && record.WeightKg != pet.WeightKg {
		pet.WeightKg = record.WeightKg
		pet.UpdatedBy = userID
		s.petRepo.Update(pet)
	}

	return nil
}

func (s *medicalService) GetRecordByID(id uuid.UUID) (*model.MedicalRecord, error) {
	record, err := s.recordRepo.FindByID(id)
	if err != nil {
		return nil, ErrRecordNotFound
	}
	return record, nil
}

func (s *medicalService) GetRecordsByPet(petID uuid.UUID) ([]model.MedicalRecord, error) {
	if _, err := s.petRepo.FindByID(petID); err != nil {
		return nil, ErrPetNotFound
	}
	return s.recordRepo.FindByPet(petID)
}

func (s *medicalService) AdmitPet(h *model.Hospitalization, userID string) error {
	if errs := validator.ValidateStruct(h); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	pet, err := s.petRepo.FindByID(h.PetID)
	if err != nil {
		return ErrPetNotFound
	}

	// A pet can only have one open admission
	if open, _ := s.hospRepo.FindOpenByPet(h.PetID); open != nil {
		return ErrAlreadyAdmitted
	}

	if h.AdmittedAt.IsZero() {
		h.AdmittedAt = time.Now()
	}
	h.DischargedAt = nil
	h.CreatedBy = userID
	h.UpdatedBy = userID

	if err := s.hospRepo.Create(h); err != nil {
		return err
	}

	go s.wsHub.Publish(map[string]interface{}{
		"type":   "hospitalization",
		"action": "pet_admitted",
		"pet":    pet.Name,
		"cage":   h.Cage,
	})

	return nil
}

func (s *medicalService) DischargePet(id uuid.UUID, summary, userID string) (*model.Hospitalization, error) {
	h, err := s.hospRepo.FindByID(id)
	if err != nil {
		return nil, ErrHospitalizationNotFound
	}
	if !h.IsOpen() {
		return nil, ErrAlreadyDischarged
	}

	now := time.Now()
	if err := s.hospRepo.Discharge(id, now, summary, userID); err != nil {
		return nil, err
	}

	go s.wsHub.Publish(map[string]interface{}{
		"type":   "hospitalization",
		"action": "pet_discharged",
		"id":     id.String(),
	})

	return s.hospRepo.FindByID(id)
}

func (s *medicalService) GetOpenHospitalizations() ([]model.Hospitalization, error) {
	return s.hospRepo.FindOpen()
}

func (s *medicalService) GetHospitalizationsByPet(petID uuid.UUID) ([]model.Hospitalization, error) {
	if _, err := s.petRepo.FindByID(petID); err != nil {
		return nil, ErrPetNotFound
	}
	return s.hospRepo.FindByPet(petID)
}
