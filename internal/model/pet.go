package model

import (
	"time"

	"github.com/google/uuid"
)

// Pet represents an animal patient
type Pet struct {
	BaseModel
	ClientID uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id" validate:"uuid_required"`
	Client   *Client   `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	Name      string     `gorm:"type:varchar(100);not null" json:"name" validate:"required"`
	Species   string     `gorm:"type:varchar(50);not null" json:"species" validate:"required"` // dog, cat, ...
	Breed     string     `gorm:"type:varchar(100)" json:"breed"`
	Sex       string     `gorm:"type:varchar(10)" json:"sex" validate:"omitempty,oneof=male female unknown"`
	BirthDate *time.Time `gorm:"type:date" json:"birth_date,omitempty"`
	Microchip string     `gorm:"type:varchar(50)" json:"microchip"`
	WeightKg  float64    `json:"weight_kg"`
	Notes     string     `gorm:"type:text" json:"notes"`
	IsActive  bool       `gorm:"default:true" json:"is_active"`
}

// AgeYears returns the pet's age in whole years, or -1 when the birth date is unknown.
func (p *Pet) AgeYears(now time.Time) int {
	if p.BirthDate == nil {
		return -1
	}
	years := now.Year() - p.BirthDate.Year()
	anniversary := p.BirthDate.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}
