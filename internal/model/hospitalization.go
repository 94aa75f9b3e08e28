package model

import (
	"time"

	"github.com/google/uuid"
)

// Hospitalization represents an in-patient stay for a pet
type Hospitalization struct {
	BaseModel
	PetID uuid.UUID `gorm:"type:uuid;not null;index" json:"pet_id" validate:"uuid_required"`
	Pet   *Pet      `gorm:"foreignKey:PetID" json:"pet,omitempty"`

	AdmittedByID uuid.UUID `gorm:"type:uuid;not null" json:"admitted_by_id" validate:"uuid_required"`
	AdmittedBy   *User     `gorm:"foreignKey:AdmittedByID" json:"admitted_by,omitempty"`

	AdmittedAt       time.Time  `gorm:"not null;index" json:"admitted_at"`
	DischargedAt     *time.Time `gorm:"index" json:"discharged_at,omitempty"`
	Reason           string     `gorm:"type:text;not null" json:"reason" validate:"required"`
	Cage             string     `gorm:"type:varchar(20)" json:"cage"`
	DischargeSummary string     `gorm:"type:text" json:"discharge_summary"`
}

// IsOpen reports whether the pet is still admitted.
func (h *Hospitalization) IsOpen() bool {
	return h.DischargedAt == nil
}
