package repository

import (
	"github.com/Aioros01/veterinaria-sistema-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PetRepository interface {
	Create(pet *model.Pet) error
	FindAll() ([]model.Pet, error)
	FindByID(id uuid.UUID) (*model.Pet, error)
	FindByClient(clientID uuid.UUID) ([]model.Pet, error)
	Update(pet *model.Pet) error
	Delete(id uuid.UUID, deletedBy string) error
}

type petRepo struct {
	db *gorm.DB
}

func NewPetRepo(db *gorm.DB) PetRepository {
	return &petRepo{db}
}

func (r *petRepo) Create(pet *model.Pet) error {
	return r.db.Create(pet).Error
}

func (r *petRepo) FindAll() ([]model.Pet, error) {
	var pets []model.Pet
	err := r.db.Preload("Client").Order("name ASC").Find(&pets).Error
	return pets, err
}

func (r *petRepo) FindByID(id uuid.UUID) (*model.Pet, error) {
	var pet model.Pet
	err := r.db.Preload("Client").First(&pet, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &pet, nil
}

func (r *petRepo) FindByClient(clientID uuid.UUID) ([]model.Pet, error) {
	var pets []model.Pet
	err := r.db.Where("client_id = ?", clientID).Order("name ASC").Find(&pets).Error
	return pets, err
}

func (r *petRepo) Update(pet *model.Pet) error {
	return r.db.Save(pet).Error
}

func (r *petRepo) Delete(id uuid.UUID, deletedBy string) error {
	if err := r.db.Model(&model.Pet{}).Where("id = ?", id).Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return r.db.Delete(&model.Pet{}, "id = ?", id).Error
}
