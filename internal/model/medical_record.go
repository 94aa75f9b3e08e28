package model

import (
	"time"

	"github.com/google/uuid"
)

// MedicalRecord is a consultation entry in a pet's clinical history
type MedicalRecord struct {
	BaseModel
	PetID uuid.UUID `gorm:"type:uuid;not null;index" json:"pet_id" validate:"uuid_required"`
	Pet   *Pet      `gorm:"foreignKey:PetID" json:"pet,omitempty"`

	VeterinarianID uuid.UUID `gorm:"type:uuid;not null;index" json:"veterinarian_id" validate:"uuid_required"`
	Veterinarian   *User     `gorm:"foreignKey:VeterinarianID" json:"veterinarian,omitempty"`

	AppointmentID *uuid.UUID   `gorm:"type:uuid;index" json:"appointment_id,omitempty"`
	Appointment   *Appointment `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`

	VisitDate time.Time `gorm:"not null;index" json:"visit_date" validate:"required"`
	Anamnesis string    `gorm:"type:text" json:"anamnesis"` // Owner-reported history
	Diagnosis string    `gorm:"type:text" json:"diagnosis" validate:"required"`
	Treatment string    `gorm:"type:text" json:"treatment"`

	// Vitals taken at consultation time
	WeightKg      float64 `json:"weight_kg"`
	TemperatureC  float64 `json:"temperature_c"`
	HeartRateBPM  int     `json:"heart_rate_bpm"`
	RespRateBPM   int     `json:"resp_rate_bpm"`
}
