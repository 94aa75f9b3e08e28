package service

import (
	"testing"

	"github.com/Aioros01/veterinaria-sistema-sub000/internal/model"
	"github.com/Aioros01/veterinaria-sistema-sub000/internal/repository"
	"github.com/Aioros01/veterinaria-sistema-sub000/internal/ws"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type medicalTestEnv struct {
	db      *gorm.DB
	service MedicalService
	pet     model.Pet
	vetID   uuid.UUID
}

func setupMedicalTest(t *testing.T) *medicalTestEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:med_"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Client{}, &model.Pet{},
		&model.MedicalRecord{}, &model.Hospitalization{},
	))

	hub := ws.NewHub()
	go hub.Run()

	env := &medicalTestEnv{
		db: db,
		service: NewMedicalService(
			repository.NewMedicalRecordRepo(db),
			repository.NewHospitalizationRepo(db),
			repository.NewPetRepo(db),
			hub,
		),
		vetID: uuid.New(),
	}

	client := model.Client{FullName: "Sofia Paredes", DocumentID: "0934567890"}
	require.NoError(t, db.Create(&client).Error)
	env.pet = model.Pet{ClientID: client.ID, Name: "Rocky", Species: "dog", WeightKg: 12}
	require.NoError(t, db.Create(&env.pet).Error)

	return env
}

func TestCreateRecordUpdatesPetWeight(t *testing.T) {
	env := setupMedicalTest(t)

	record := model.MedicalRecord{
		PetID:          env.pet.ID,
		VeterinarianID: env.vetID,
		Diagnosis:      "otitis externa",
		Treatment:      "ear drops for 7 days",
		WeightKg:       13.4,
	}
	require.NoError(t, env.service.CreateRecord(&record, "user-1"))
	assert.False(t, record.VisitDate.IsZero(), "visit date defaults to now")

	var pet model.Pet
	require.NoError(t, env.db.First(&pet, "id = ?", env.pet.ID).Error)
	assert.InDelta(t, 13.4, pet.WeightKg, 0.001, "latest weight carries to the pet")
}

func TestAdmitPetSingleOpenAdmission(t *testing.T) {
	env := setupMedicalTest(t)

	h := model.Hospitalization{PetID: env.pet.ID, AdmittedByID: env.vetID, Reason: "parvovirus observation", Cage: "C-3"}
	require.NoError(t, env.service.AdmitPet(&h, "user-1"))

	second := model.Hospitalization{PetID: env.pet.ID, AdmittedByID: env.vetID, Reason: "duplicate entry"}
	err := env.service.AdmitPet(&second, "user-1")
	assert.ErrorIs(t, err, ErrAlreadyAdmitted)

	// After discharge the pet can be admitted again
	discharged, err := env.service.DischargePet(h.ID, "stable, eating on its own", "user-1")
	require.NoError(t, err)
	assert.False(t, discharged.IsOpen())
	assert.NotNil(t, discharged.DischargedAt)

	third := model.Hospitalization{PetID: env.pet.ID, AdmittedByID: env.vetID, Reason: "relapse"}
	assert.NoError(t, env.service.AdmitPet(&third, "user-1"))
}

func TestDischargeTwice(t *testing.T) {
	env := setupMedicalTest(t)

	h := model.Hospitalization{PetID: env.pet.ID, AdmittedByID: env.vetID, Reason: "post-surgery recovery"}
	require.NoError(t, env.service.AdmitPet(&h, "user-1"))

	_, err := env.service.DischargePet(h.ID, "recovered", "user-1")
	require.NoError(t, err)

	_, err = env.service.DischargePet(h.ID, "again", "user-1")
	assert.ErrorIs(t, err, ErrAlreadyDischarged)

	_, err = env.service.DischargePet(uuid.New(), "", "user-1")
	assert.ErrorIs(t, err, ErrHospitalizationNotFound)
}
