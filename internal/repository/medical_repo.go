package repository

import (
	"time"

	"github.com/Aioros01/veterinaria-sistema-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MedicalRecordRepository interface {
	Create(record *model.MedicalRecord) error
	FindByID(id uuid.UUID) (*model.MedicalRecord, error)
	FindByPet(petID uuid.UUID) ([]model.MedicalRecord, error)
}

type medicalRecordRepo struct {
	db *gorm.DB
}

func NewMedicalRecordRepo(db *gorm.DB) MedicalRecordRepository {
	return &medicalRecordRepo{db}
}

func (r *medicalRecordRepo) Create(record *model.MedicalRecord) error {
	return r.db.Create(record).Error
}

func (r *medicalRecordRepo) FindByID(id uuid.UUID) (*model.MedicalRecord, error) {
	var record model.MedicalRecord
	err := r.db.Preload("Pet").Preload("Veterinarian").Preload("Appointment").
		First(&record, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *medicalRecordRepo) FindByPet(petID uuid.UUID) ([]model.MedicalRecord, error) {
	var records []model.MedicalRecord
	err := r.db.Preload("Veterinarian").Where("pet_id = ?", petID).
		Order("visit_date DESC").Find(&records).Error
	return records, err
}

type HospitalizationRepository interface {
	Create(h *model.Hospitalization) error
	FindByID(id uuid.UUID) (*model.Hospitalization, error)
	FindByPet(petID uuid.UUID) ([]model.Hospitalization, error)
	FindOpen() ([]model.Hospitalization, error)
	FindOpenByPet(petID uuid.UUID) (*model.Hospitalization, error)
	Discharge(id uuid.UUID, dischargedAt time.Time, summary, updatedBy string) error
}

type hospitalizationRepo struct {
	db *gorm.DB
}

func NewHospitalizationRepo(db *gorm.DB) HospitalizationRepository {
	return &hospitalizationRepo{db}
}

func (r *hospitalizationRepo) Create(h *model.Hospitalization) error {
	return r.db.Create(h).Error
}

func (r *hospitalizationRepo) FindByID(id uuid.UUID) (*model.Hospitalization, error) {
	var h model.Hospitalization
	err := r.db.Preload("Pet").Preload("Pet.Client").Preload("AdmittedBy").
		First(&h, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *hospitalizationRepo) FindByPet(petID uuid.UUID) ([]model.Hospitalization, error) {
	var hs []model.Hospitalization
	err := r.db.Preload("AdmittedBy").Where("pet_id = ?", petID).
		Order("admitted_at DESC").Find(&hs).Error
	return hs, err
}

func (r *hospitalizationRepo) FindOpen() ([]model.Hospitalization, error) {
	var hs []model.Hospitalization
	err := r.db.Preload("Pet").Preload("Pet.Client").
		Where("discharged_at IS NULL").Order("admitted_at ASC").Find(&hs).Error
	return hs, err
}

func (r *hospitalizationRepo) FindOpenByPet(petID uuid.UUID) (*model.Hospitalization, error) {
	var h model.Hospitalization
	err := r.db.Where("pet_id = ? AND discharged_at IS NULL", petID).First(&h).Error
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *hospitalizationRepo) Discharge(id uuid.UUID, dischargedAt time.Time, summary, updatedBy string) error {
	return r.db.Model(&model.Hospitalization{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"discharged_at":     dischargedAt,
			"discharge_summary": summary,
			"updated_by":        updatedBy,
		}).Error
}
