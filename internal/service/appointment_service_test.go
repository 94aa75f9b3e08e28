package service

import (
	"testing"
	"time"

	"github.com/Aioros01/veterinaria-sistema-sub000/internal/model"
	"github.com/Aioros01/veterinaria-sistema-sub000/internal/repository"
	"github.com/Aioros01/veterinaria-sistema-sub000/internal/ws"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type apptTestEnv struct {
	db      *gorm.DB
	service AppointmentService
	pet     model.Pet
	vet     model.User
}

func setupApptTest(t *testing.T) *apptTestEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:appt_"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Privilege{}, &model.Role{},
		&model.Client{}, &model.Pet{}, &model.Appointment{},
	))

	hub := ws.NewHub()
	go hub.Run()

	env := &apptTestEnv{
		db: db,
		service: NewAppointmentService(
			repository.NewAppointmentRepo(db),
			repository.NewPetRepo(db),
			repository.NewUserRepo(db),
			hub,
		),
	}

	client := model.Client{FullName: "Carlos Vera", DocumentID: "0923456789"}
	require.NoError(t, db.Create(&client).Error)
	env.pet = model.Pet{ClientID: client.ID, Name: "Michi", Species: "cat"}
	require.NoError(t, db.Create(&env.pet).Error)

	env.vet = model.User{Email: "vet@clinic.test", FullName: "Dr. Salazar", IsActive: true}
	require.NoError(t, env.vet.SetPassword("secret123"))
	require.NoError(t, db.Create(&env.vet).Error)

	return env
}

func (e *apptTestEnv) request(start, end time.Time) *CreateAppointmentRequest {
	return &CreateAppointmentRequest{
		PetID:          e.pet.ID.String(),
		VeterinarianID: e.vet.ID.String(),
		StartTime:      start.Format(time.RFC3339),
		EndTime:        end.Format(time.RFC3339),
		Reason:         "vaccination",
	}
}

func TestCreateAppointment(t *testing.T) {
	env := setupApptTest(t)
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	appt, err := env.service.CreateAppointment(env.request(start, start.Add(30*time.Minute)), "user-1")
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentScheduled, appt.Status)
	assert.Equal(t, env.pet.ID, appt.PetID)
}

func TestCreateAppointmentDoubleBooking(t *testing.T) {
	env := setupApptTest(t)
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	_, err := env.service.CreateAppointment(env.request(start, start.Add(30*time.Minute)), "user-1")
	require.NoError(t, err)

	// Overlapping slot with the same vet is rejected
	_, err = env.service.CreateAppointment(env.request(start.Add(15*time.Minute), start.Add(45*time.Minute)), "user-1")
	assert.ErrorIs(t, err, ErrAppointmentConflict)

	// Back-to-back is fine
	_, err = env.service.CreateAppointment(env.request(start.Add(30*time.Minute), start.Add(60*time.Minute)), "user-1")
	assert.NoError(t, err)
}

func TestCreateAppointmentCancelledSlotIsFree(t *testing.T) {
	env := setupApptTest(t)
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	appt, err := env.service.CreateAppointment(env.request(start, start.Add(30*time.Minute)), "user-1")
	require.NoError(t, err)
	_, err = env.service.CancelAppointment(appt.ID, "user-1")
	require.NoError(t, err)

	// The cancelled slot no longer blocks new bookings
	_, err = env.service.CreateAppointment(env.request(start, start.Add(30*time.Minute)), "user-1")
	assert.NoError(t, err)
}

func TestCreateAppointmentEndBeforeStart(t *testing.T) {
	env := setupApptTest(t)
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	_, err := env.service.CreateAppointment(env.request(start, start.Add(-10*time.Minute)), "user-1")
	assert.ErrorIs(t, err, ErrEndBeforeStart)

	_, err = env.service.CreateAppointment(env.request(start, start), "user-1")
	assert.ErrorIs(t, err, ErrEndBeforeStart, "zero-length appointment")
}

func TestCreateAppointmentInactiveVet(t *testing.T) {
	env := setupApptTest(t)
	require.NoError(t, env.db.Model(&env.vet).Update("is_active", false).Error)

	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	_, err := env.service.CreateAppointment(env.request(start, start.Add(30*time.Minute)), "user-1")
	assert.ErrorIs(t, err, ErrVetNotActive)
}

func TestAppointmentTransitions(t *testing.T) {
	env := setupApptTest(t)
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	appt, err := env.service.CreateAppointment(env.request(start, start.Add(30*time.Minute)), "user-1")
	require.NoError(t, err)

	completed, err := env.service.CompleteAppointment(appt.ID, "routine check done", "user-1")
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentCompleted, completed.Status)

	// Completed appointments cannot change state again
	_, err = env.service.CancelAppointment(appt.ID, "user-1")
	assert.ErrorIs(t, err, ErrAppointmentFinalized)
	_, err = env.service.CompleteAppointment(appt.ID, "", "user-1")
	assert.ErrorIs(t, err, ErrAppointmentFinalized)
}
