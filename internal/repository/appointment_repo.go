package repository

import (
	"time"

	"github.com/Aioros01/veterinaria-sistema-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(appt *model.Appointment) error
	FindAll() ([]model.Appointment, error)
	FindByID(id uuid.UUID) (*model.Appointment, error)
	FindByPet(petID uuid.UUID) ([]model.Appointment, error)
	FindByDateRange(start, end time.Time) ([]model.Appointment, error)
	FindOverlapping(vetID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]model.Appointment, error)
	CountByDateRange(start, end time.Time) (int64, error)
	Update(appt *model.Appointment) error
}

type appointmentRepo struct {
	db *gorm.DB
}

func NewAppointmentRepo(db *gorm.DB) AppointmentRepository {
	return &appointmentRepo{db}
}

func (r *appointmentRepo) Create(appt *model.Appointment) error {
	return r.db.Create(appt).Error
}

func (r *appointmentRepo) FindAll() ([]model.Appointment, error) {
	var appts []model.Appointment
	err := r.db.Preload("Pet").Preload("Pet.Client").Preload("Veterinarian").
		Order("start_time DESC").Find(&appts).Error
	return appts, err
}

func (r *appointmentRepo) FindByID(id uuid.UUID) (*model.Appointment, error) {
	var appt model.Appointment
	err := r.db.Preload("Pet").Preload("Pet.Client").Preload("Veterinarian").
		First(&appt, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *appointmentRepo) FindByPet(petID uuid.UUID) ([]model.Appointment, error) {
	var appts []model.Appointment
	err := r.db.Preload("Veterinarian").Where("pet_id = ?", petID).
		Order("start_time DESC").Find(&appts).Error
	return appts, err
}

func (r *appointmentRepo) FindByDateRange(start, end time.Time) ([]model.Appointment, error) {
	var appts []model.Appointment
	err := r.db.Preload("Pet").Preload("Veterinarian").
		Where("start_time >= ? AND start_time < ?", start, end).
		Order("start_time ASC").Find(&appts).Error
	return appts, err
}

// FindOverlapping returns scheduled appointments for the veterinarian whose
// interval intersects [start, end). excludeID skips the appointment being
// rescheduled.
func (r *appointmentRepo) FindOverlapping(vetID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]model.Appointment, error) {
	var appts []model.Appointment
	q := r.db.Where("veterinarian_id = ? AND status = ?", vetID, model.AppointmentScheduled).
		Where("start_time < ? AND end_time > ?", end, start)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	err := q.Find(&appts).Error
	return appts, err
}

func (r *appointmentRepo) CountByDateRange(start, end time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.Appointment{}).
		Where("start_time >= ? AND start_time < ?", start, end).
		Count(&count).Error
	return count, err
}

func (r *appointmentRepo) Update(appt *model.Appointment) error {
	return r.db.Save(appt).Error
}
