package repository

import (
	"github.com/Aioros01/veterinaria-sistema-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PrescriptionRepository interface {
	Create(p *model.Prescription) error
	FindAll() ([]model.Prescription, error)
	FindByID(id uuid.UUID) (*model.Prescription, error)
	FindByPet(petID uuid.UUID) ([]model.Prescription, error)
	SumFulfilled(tx *gorm.DB, prescriptionID uuid.UUID) (inClinic int, external int, err error)
	UpdatePurchaseStatus(tx *gorm.DB, id uuid.UUID, status model.PurchaseStatus, updatedBy string) error
}

type prescriptionRepo struct {
	db *gorm.DB
}

func NewPrescriptionRepo(db *gorm.DB) PrescriptionRepository {
	return &prescriptionRepo{db}
}

func (r *prescriptionRepo) Create(p *model.Prescription) error {
	return r.db.Create(p).Error
}

func (r *prescriptionRepo) FindAll() ([]model.Prescription, error) {
	var prescriptions []model.Prescription
	err := r.db.Preload("Pet").Preload("Medicine").Preload("Veterinarian").
		Order("created_at DESC").Find(&prescriptions).Error
	return prescriptions, err
}

func (r *prescriptionRepo) FindByID(id uuid.UUID) (*model.Prescription, error) {
	var p model.Prescription
	err := r.db.Preload("Pet").Preload("Medicine").Preload("Veterinarian").Preload("Sales").
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *prescriptionRepo) FindByPet(petID uuid.UUID) ([]model.Prescription, error) {
	var prescriptions []model.Prescription
	err := r.db.Preload("Medicine").Preload("Veterinarian").
		Where("pet_id = ?", petID).Order("created_at DESC").Find(&prescriptions).Error
	return prescriptions, err
}

// SumFulfilled totals the in-clinic and external quantities across all live
// sales referencing the prescription. Runs on the tx handle so the sale being
// inserted in the same transaction is visible.
func (r *prescriptionRepo) SumFulfilled(tx *gorm.DB, prescriptionID uuid.UUID) (int, int, error) {
	var row struct {
		InClinic int
		External int
	}
	err := tx.Model(&model.Sale{}).
		Select("COALESCE(SUM(quantity_in_clinic), 0) as in_clinic, COALESCE(SUM(quantity_external), 0) as external").
		Where("prescription_id = ?", prescriptionID).
		Scan(&row).Error
	return row.InClinic, row.External, err
}

func (r *prescriptionRepo) UpdatePurchaseStatus(tx *gorm.DB, id uuid.UUID, status model.PurchaseStatus, updatedBy string) error {
	return tx.Model(&model.Prescription{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"purchase_status": status,
			"updated_by":      updatedBy,
		}).Error
}
