package repository

import (
	"github.com/Aioros01/veterinaria-sistema-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClientRepository interface {
	Create(client *model.Client) error
	FindAll() ([]model.Client, error)
	FindByID(id uuid.UUID) (*model.Client, error)
	FindByDocumentID(documentID string) (*model.Client, error)
	Update(client *model.Client) error
	Delete(id uuid.UUID, deletedBy string) error
}

type clientRepo struct {
	db *gorm.DB
}

func NewClientRepo(db *gorm.DB) ClientRepository {
	return &clientRepo{db}
}

func (r *clientRepo) Create(client *model.Client) error {
	return r.db.Create(client).Error
}

func (r *clientRepo) FindAll() ([]model.Client, error) {
	var clients []model.Client
	err := r.db.Preload("Pets").Order("full_name ASC").Find(&clients).Error
	return clients, err
}

func (r *clientRepo) FindByID(id uuid.UUID) (*model.Client, error) {
	var client model.Client
	err := r.db.Preload("Pets").First(&client, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepo) FindByDocumentID(documentID string) (*model.Client, error) {
	var client model.Client
	err := r.db.First(&client, "document_id = ?", documentID).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepo) Update(client *model.Client) error {
	return r.db.Save(client).Error
}

func (r *clientRepo) Delete(id uuid.UUID, deletedBy string) error {
	if err := r.db.Model(&model.Client{}).Where("id = ?", id).Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return r.db.Delete(&model.Client{}, "id = ?", id).Error
}
