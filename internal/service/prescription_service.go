package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/Aioros01/veterinaria-sistema-sub000/internal/model"
	"github.com/Aioros01/veterinaria-sistema-sub000/internal/repository"
	"github.com/Aioros01/veterinaria-sistema-sub000/pkg/validator"

	"github.com/google/uuid"
)

type PrescriptionService interface {
	CreatePrescription(req *CreatePrescriptionRequest, creatorID string) (*model.Prescription, error)
	GetAllPrescriptions() ([]model.Prescription, error)
	GetPrescriptionByID(id uuid.UUID) (*model.Prescription, error)
	GetPrescriptionsByPet(petID uuid.UUID) ([]model.Prescription, error)
}

type CreatePrescriptionRequest struct {
	PetID           string  `json:"pet_id" validate:"required"`
	MedicineID      string  `json:"medicine_id" validate:"required"`
	VeterinarianID  string  `json:"veterinarian_id" validate:"required"`
	MedicalRecordID *string `json:"medical_record_id,omitempty"`
	Quantity        int     `json:"quantity" validate:"required,gt=0"`
	Dosage          string  `json:"dosage"`
	Frequency       string  `json:"frequency"`
	Duration        string  `json:"duration"`
	Notes           string  `json:"notes"`
	ExpirationDate  *string `json:"expiration_date,omitempty"` // YYYY-MM-DD
}

type prescriptionService struct {
	prescriptionRepo repository.PrescriptionRepository
	petRepo          repository.PetRepository
	medicineRepo     repository.MedicineRepository
	userRepo         repository.UserRepository
}

func NewPrescriptionService(
	prescriptionRepo repository.PrescriptionRepository,
	petRepo repository.PetRepository,
	medicineRepo repository.MedicineRepository,
	userRepo repository.UserRepository,
) PrescriptionService {
	return &prescriptionService{
		prescriptionRepo: prescriptionRepo,
		petRepo:          petRepo,
		medicineRepo:     medicineRepo,
		userRepo:         userRepo,
	}
}

func (s *prescriptionService) CreatePrescription(req *CreatePrescriptionRequest, creatorID string) (*model.Prescription, error) {
	// 1. Validate request
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	// 2. Parse references
	petID, err := uuid.Parse(req.PetID)
	if err != nil {
		return nil, errors.New("invalid pet ID format")
	}
	medicineID, err := uuid.Parse(req.MedicineID)
	if err != nil {
		return nil, errors.New("invalid medicine ID format")
	}
	vetID, err := uuid.Parse(req.VeterinarianID)
	if err != nil {
		return nil, errors.New("invalid veterinarian ID format")
	}
	var recordID *uuid.UUID
	if req.MedicalRecordID != nil && *req.MedicalRecordID != "" {
		parsed, err := uuid.Parse(*req.MedicalRecordID)
		if err != nil {
			return nil, errors.New("invalid medical record ID format")
		}
		recordID = &parsed
	}

	// 3. Validate references exist
	if _, err := s.petRepo.FindByID(petID); err != nil {
		return nil, ErrPetNotFound
	}
	if _, err := s.medicineRepo.FindByID(medicineID); err != nil {
		return nil, ErrMedicineNotFound
	}
	vet, err := s.userRepo.FindByID(vetID)
	if err != nil {
		return nil, ErrVetNotFound
	}
	if !vet.IsActive {
		return nil, ErrVetNotActive
	}

	// 4. Parse expiration if provided
	var expiration *time.Time
	if req.ExpirationDate != nil && *req.ExpirationDate != "" {
		parsed, err := time.Parse("2006-01-02", *req.ExpirationDate)
		if err != nil {
			return nil, errors.New("invalid expiration_date format, use YYYY-MM-DD")
		}
		expiration = &parsed
	}

	// 5. Create prescription in its initial state
	prescription := &model.Prescription{
		PetID:           petID,
		MedicineID:      medicineID,
		VeterinarianID:  vetID,
		MedicalRecordID: recordID,
		Quantity:        req.Quantity,
		Dosage:          req.Dosage,
		Frequency:       req.Frequency,
		Duration:        req.Duration,
		Notes:           req.Notes,
		PurchaseStatus:  model.PurchaseNotPurchased,
		ExpirationDate:  expiration,
	}
	prescription.CreatedBy = creatorID
	prescription.UpdatedBy = creatorID

	if err := s.prescriptionRepo.Create(prescription); err != nil {
		return nil, err
	}

	return s.prescriptionRepo.FindByID(prescription.ID)
}

func (s *prescriptionService) GetAllPrescriptions() ([]model.Prescription, error) {
	return s.prescriptionRepo.FindAll()
}

func (s *prescriptionService) GetPrescriptionByID(id uuid.UUID) (*model.Prescription, error) {
	prescription, err := s.prescriptionRepo.FindByID(id)
	if err != nil {
		return nil, ErrPrescriptionNotFound
	}
	return prescription, nil
}

func (s *prescriptionService) GetPrescriptionsByPet(petID uuid.UUID) ([]model.Prescription, error) {
	if _, err := s.petRepo.FindByID(petID); err != nil {
		return nil, ErrPetNotFound
	}
	return s.prescriptionRepo.FindByPet(petID)
}
