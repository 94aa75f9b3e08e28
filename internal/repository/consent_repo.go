package repository

import (
	"github.com/Aioros01/veterinaria-sistema-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConsentRepository interface {
	Create(doc *model.ConsentDocument) error
	FindByID(id uuid.UUID) (*model.ConsentDocument, error)
	FindByPet(petID uuid.UUID) ([]model.ConsentDocument, error)
	FindPending() ([]model.ConsentDocument, error)
	Update(doc *model.ConsentDocument) error
}

type consentRepo struct {
	db *gorm.DB
}

func NewConsentRepo(db *gorm.DB) ConsentRepository {
	return &consentRepo{db}
}

func (r *consentRepo) Create(doc *model.ConsentDocument) error {
	return r.db.Create(doc).Error
}

func (r *consentRepo) FindByID(id uuid.UUID) (*model.ConsentDocument, error) {
	var doc model.ConsentDocument
	err := r.db.Preload("Pet").Preload("Client").First(&doc, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *consentRepo) FindByPet(petID uuid.UUID) ([]model.ConsentDocument, error) {
	var docs []model.ConsentDocument
	err := r.db.Preload("Client").Where("pet_id = ?", petID).
		Order("created_at DESC").Find(&docs).Error
	return docs, err
}

func (r *consentRepo) FindPending() ([]model.ConsentDocument, error) {
	var docs []model.ConsentDocument
	err := r.db.Preload("Pet").Preload("Client").
		Where("status = ?", model.ConsentPending).Order("created_at ASC").Find(&docs).Error
	return docs, err
}

func (r *consentRepo) Update(doc *model.ConsentDocument) error {
	return r.db.Save(doc).Error
}
