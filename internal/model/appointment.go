package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentNoShow    AppointmentStatus = "no_show"
)

// Appointment represents a scheduled consultation slot for a pet with a veterinarian
type Appointment struct {
	BaseModel
	PetID uuid.UUID `gorm:"type:uuid;not null;index" json:"pet_id" validate:"uuid_required"`
	Pet   *Pet      `gorm:"foreignKey:PetID" json:"pet,omitempty"`

	VeterinarianID uuid.UUID `gorm:"type:uuid;not null;index" json:"veterinarian_id" validate:"uuid_required"`
	Veterinarian   *User     `gorm:"foreignKey:VeterinarianID" json:"veterinarian,omitempty"`

	StartTime time.Time         `gorm:"not null;index" json:"start_time" validate:"required"`
	EndTime   time.Time         `gorm:"not null" json:"end_time" validate:"required"`
	Reason    string            `gorm:"type:text" json:"reason"`
	Status    AppointmentStatus `gorm:"type:varchar(20);not null;default:'scheduled'" json:"status"`
	Notes     string            `gorm:"type:text" json:"notes"`
}

// Overlaps reports whether two time intervals intersect (half-open semantics:
// back-to-back appointments do not conflict).
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return a.StartTime.Before(end) && start.Before(a.EndTime)
}
