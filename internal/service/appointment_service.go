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
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrAppointmentConflict  = errors.New("veterinarian already has an appointment in that time slot")
	ErrEndBeforeStart       = errors.New("end time cannot be before start time")
	ErrVetNotFound          = errors.New("veterinarian not found")
	ErrVetNotActive         = errors.New("cannot schedule with an inactive veterinarian")
	ErrAppointmentFinalized = errors.New("appointment is already completed or cancelled")
)

type AppointmentService interface {
	CreateAppointment(req *CreateAppointmentRequest, creatorID string) (*model.Appointment, error)
	CompleteAppointment(id uuid.UUID, notes, updaterID string) (*model.Appointment, error)
	CancelAppointment(id uuid.UUID, updaterID string) (*model.Appointment, error)
	GetAllAppointments() ([]model.Appointment, error)
	GetAppointmentByID(id uuid.UUID) (*model.Appointment, error)
	GetAppointmentsByPet(petID uuid.UUID) ([]model.Appointment, error)
}

type CreateAppointmentRequest struct {
	PetID          string `json:"pet_id" validate:"required"`
	VeterinarianID string `json:"veterinarian_id" validate:"required"`
	StartTime      string `json:"start_time" validate:"required"` // RFC3339
	EndTime        string `json:"end_time" validate:"required"`   // RFC3339
	Reason         string `json:"reason"`
}

type appointmentService struct {
	apptRepo repository.AppointmentRepository
	petRepo  repository.PetRepository
	userRepo repository.UserRepository
	wsHub    *ws.Hub
}

func NewAppointmentService(
	apptRepo repository.AppointmentRepository,
	petRepo repository.PetRepository,
	userRepo repository.UserRepository,
	hub *ws.Hub,
) AppointmentService {
	return &appointmentService{
		apptRepo: apptRepo,
		petRepo:  petRepo,
		userRepo: userRepo,
		wsHub:    hub,
	}
}

func (s *appointmentService) CreateAppointment(req *CreateAppointmentRequest, creatorID string) (*model.Appointment, error) {
	// 1. Validate request
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	// 2. Parse times
	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, errors.New("invalid start_time format, use RFC3339")
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return nil, errors.New("invalid end_time format, use RFC3339")
	}
	if !end.After(start) {
		return nil, ErrEndBeforeStart
	}

	// 3. Parse and validate references
	petID, err := uuid.Parse(req.PetID)
	if err != nil {
		return nil, errors.New("invalid pet ID format")
	}
	vetID, err := uuid.Parse(req.VeterinarianID)
	if err != nil {
		return nil, errors.New("invalid veterinarian ID format")
	}

	pet, err := s.petRepo.FindByID(petID)
	if err != nil {
		return nil, ErrPetNotFound
	}

	vet, err := s.userRepo.FindByID(vetID)
	if err != nil {
		return nil, ErrVetNotFound
	}
	if !vet.IsActive {
		return nil, ErrVetNotActive
	}

	// 4. Double-booking check for the veterinarian
	overlapping, err := s.apptRepo.FindOverlapping(vetID, start, end, nil)
	if err != nil {
		return nil, errors.New("failed to check for appointment conflicts")
	}
	if len(overlapping) > 0 {
		first := overlapping[0]
		return nil, fmt.Errorf("%w: %s - %s",
			ErrAppointmentConflict,
			first.StartTime.Format("2006-01-02 15:04"),
			first.EndTime.Format("15:04"))
	}

	// 5. Create appointment
	appt := &model.Appointment{
		PetID:          petID,
		VeterinarianID: vetID,
		StartTime:      start,
		EndTime:        end,
		Reason:         req.Reason,
		Status:         model.AppointmentScheduled,
	}
	appt.CreatedBy = creatorID
	appt.UpdatedBy = creatorID

	if err := s.apptRepo.Create(appt); err != nil {
		return nil, err
	}

	// 6. Reload with relations
	appt, err = s.apptRepo.FindByID(appt.ID)
	if err != nil {
		return nil, err
	}

	go s.wsHub.Publish(map[string]interface{}{
		"type":   "appointment",
		"action": "appointment_created",
		"appointment": map[string]interface{}{
			"id":         appt.ID,
			"pet":        pet.Name,
			"vet":        vet.FullName,
			"start_time": appt.StartTime,
		},
	})

	return appt, nil
}

func (s *appointmentService) CompleteAppointment(id uuid.UUID, notes, updaterID string) (*model.Appointment, error) {
	return s.transition(id, model.AppointmentCompleted, notes, updaterID)
}

func (s *appointmentService) CancelAppointment(id uuid.UUID, updaterID string) (*model.Appointment, error) {
	return s.transition(id, model.AppointmentCancelled, "", updaterID)
}

func (s *appointmentService) transition(id uuid.UUID, status model.AppointmentStatus, notes, updaterID string) (*model.Appointment, error) {
	appt, err := s.apptRepo.FindByID(id)
	if err != nil {
		return nil, ErrAppointmentNotFound
	}
	if appt.Status != model.AppointmentScheduled {
		return nil, ErrAppointmentFinalized
	}

	appt.Status = status
	if notes != "" {
		appt.Notes = notes
	}
	appt.UpdatedBy = updaterID

	if err := s.apptRepo.Update(appt); err != nil {
		return nil, err
	}
	return appt, nil
}

func (s *appointmentService) GetAllAppointments() ([]model.Appointment, error) {
	return s.apptRepo.FindAll()
}

func (s *appointmentService) GetAppointmentByID(id uuid.UUID) (*model.Appointment, error) {
	appt, err := s.apptRepo.FindByID(id)
	if err != nil {
		return nil, ErrAppointmentNotFound
	}
	return appt, nil
}

func (s *appointmentService) GetAppointmentsByPet(petID uuid.UUID) ([]model.Appointment, error) {
	return s.apptRepo.FindByPet(petID)
}
