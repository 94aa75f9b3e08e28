package repository

import (
	"time"

	"github.com/Aioros01/veterinaria-sistema-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MedicineRepository interface {
	Create(medicine *model.Medicine) error
	FindAll() ([]model.Medicine, error)
	FindByID(id uuid.UUID) (*model.Medicine, error)
	FindByName(name string) (*model.Medicine, error)
	FindForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Medicine, error)
	Update(medicine *model.Medicine) error
	UpdateStock(tx *gorm.DB, id uuid.UUID, newStock int, updatedBy string) error
	FindLowStock() ([]model.Medicine, error)
	FindExpiringBetween(after, cutoff time.Time) ([]model.Medicine, error)
}

type medicineRepo struct {
	db *gorm.DB
}

func NewMedicineRepo(db *gorm.DB) MedicineRepository {
	return &medicineRepo{db}
}

func (r *medicineRepo) Create(medicine *model.Medicine) error {
	return r.db.Create(medicine).Error
}

func (r *medicineRepo) FindAll() ([]model.Medicine, error) {
	var medicines []model.Medicine
	err := r.db.Preload("CreatedByUser").Preload("UpdatedByUser").Order("name ASC").Find(&medicines).Error
	return medicines, err
}

func (r *medicineRepo) FindByID(id uuid.UUID) (*model.Medicine, error) {
	var medicine model.Medicine
	err := r.db.Preload("CreatedByUser").Preload("UpdatedByUser").First(&medicine, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &medicine, nil
}

func (r *medicineRepo) FindByName(name string) (*model.Medicine, error) {
	var medicine model.Medicine
	err := r.db.First(&medicine, "name = ?", name).Error
	if err != nil {
		return nil, err
	}
	return &medicine, nil
}

// FindForUpdate loads the medicine row holding a row-level lock so the
// check-and-decrement in the sale path cannot race. The locking clause is only
// emitted on the postgres dialect; sqlite has a single writer and rejects the
// FOR UPDATE syntax.
func (r *medicineRepo) FindForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Medicine, error) {
	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var medicine model.Medicine
	if err := q.First(&medicine, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &medicine, nil
}

func (r *medicineRepo) Update(medicine *model.Medicine) error {
	return r.db.Save(medicine).Error
}

// UpdateStock takes the tx handle so it participates in the caller's transaction
func (r *medicineRepo) UpdateStock(tx *gorm.DB, id uuid.UUID, newStock int, updatedBy string) error {
	return tx.Model(&model.Medicine{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"current_stock": newStock,
			"updated_by":    updatedBy,
		}).Error
}

func (r *medicineRepo) FindLowStock() ([]model.Medicine, error) {
	var medicines []model.Medicine
	err := r.db.Where("current_stock <= minimum_stock").Order("name ASC").Find(&medicines).Error
	return medicines, err
}

// FindExpiringBetween returns medicines expiring within the window. The lower
// bound keeps already-expired stock out of the listing.
func (r *medicineRepo) FindExpiringBetween(after, cutoff time.Time) ([]model.Medicine, error) {
	var medicines []model.Medicine
	err := r.db.Where("expiration_date > ? AND expiration_date <= ?", after, cutoff).
		Order("expiration_date ASC").Find(&medicines).Error
	return medicines, err
}
