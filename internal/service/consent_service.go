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

var (
	ErrConsentNotFound  = errors.New("consent document not found")
	ErrConsentFinalized = errors.New("consent document is already signed or rejected")
	ErrSignerRequired   = errors.New("signer name is required")
)

type ConsentService interface {
	CreateConsent(doc *model.ConsentDocument, userID string) error
	SignConsent(id uuid.UUID, signedBy, fileKey, fileName, userID string) (*model.ConsentDocument, error)
	RejectConsent(id uuid.UUID, userID string) (*model.ConsentDocument, error)
	GetConsentByID(id uuid.UUID) (*model.ConsentDocument, error)
	GetConsentsByPet(petID uuid.UUID) ([]model.ConsentDocument, error)
	GetPendingConsents() ([]model.ConsentDocument, error)
}

type consentService struct {
	consentRepo repository.ConsentRepository
	petRepo     repository.PetRepository
	clientRepo  repository.ClientRepository
}

func NewConsentService(
	consentRepo repository.ConsentRepository,
	petRepo repository.PetRepository,
	clientRepo repository.ClientRepository,
) ConsentService {
	return &consentService{
		consentRepo: consentRepo,
		petRepo:     petRepo,
		clientRepo:  clientRepo,
	}
}

func (s *consentService) CreateConsent(doc *model.ConsentDocument, userID string) error {
	if errs := validator.ValidateStruct(doc); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	if _, err := s.petRepo.FindByID(doc.PetID); err != nil {
		return ErrPetNotFound
	}
	if _, err := s.clientRepo.FindByID(doc.ClientID); err != nil {
		return ErrClientNotFound
	}

	doc.Status = model.ConsentPending
	doc.SignedBy = ""
	doc.SignedAt = nil
	doc.CreatedBy = userID
	doc.UpdatedBy = userID

	return s.consentRepo.Create(doc)
}

func (s *consentService) SignConsent(id uuid.UUID, signedBy, fileKey, fileName, userID string) (*model.ConsentDocument, error) {
	if signedBy == "" {
		return nil, ErrSignerRequired
	}

	doc, err := s.consentRepo.FindByID(id)
	if err != nil {
		return nil, ErrConsentNotFound
	}
	if doc.Status != model.ConsentPending {
		return nil, ErrConsentFinalized
	}

	now := time.Now()
	doc.Status = model.ConsentSigned
	doc.SignedBy = signedBy
	doc.SignedAt = &now
	if fileKey != "" {
		doc.FileKey = fileKey
		doc.FileName = fileName
	}
	doc.UpdatedBy = userID

	if err := s.consentRepo.Update(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *consentService) RejectConsent(id uuid.UUID, userID string) (*model.ConsentDocument, error) {
	doc, err := s.consentRepo.FindByID(id)
	if err != nil {
		return nil, ErrConsentNotFound
	}
	if doc.Status != model.ConsentPending {
		return nil, ErrConsentFinalized
	}

	doc.Status = model.ConsentRejected
	doc.UpdatedBy = userID

	if err := s.consentRepo.Update(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *consentService) GetConsentByID(id uuid.UUID) (*model.ConsentDocument, error) {
	doc, err := s.consentRepo.FindByID(id)
	if err != nil {
		return nil, ErrConsentNotFound
	}
	return doc, nil
}

func (s *consentService) GetConsentsByPet(petID uuid.UUID) ([]model.ConsentDocument, error) {
	if _, err := s.petRepo.FindByID(petID); err != nil {
		return nil, ErrPetNotFound
	}
	return s.consentRepo.FindByPet(petID)
}

func (s *consentService) GetPendingConsents() ([]model.ConsentDocument, error) {
	return s.consentRepo.FindPending()
}
