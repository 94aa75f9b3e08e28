package model

import (
	"time"

	"github.com/google/uuid"
)

type ConsentStatus string

const (
	ConsentPending  ConsentStatus = "pending"
	ConsentSigned   ConsentStatus = "signed"
	ConsentRejected ConsentStatus = "rejected"
)

// ConsentDocument is an informed-consent form presented to a pet owner before a
// procedure. Only the metadata of an uploaded signed copy is stored (key + name),
// not the file itself.
type ConsentDocument struct {
	BaseModel
	PetID uuid.UUID `gorm:"type:uuid;not null;index" json:"pet_id" validate:"uuid_required"`
	Pet   *Pet      `gorm:"foreignKey:PetID" json:"pet,omitempty"`

	ClientID uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id" validate:"uuid_required"`
	Client   *Client   `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	Procedure string `gorm:"type:varchar(255);not null" json:"procedure" validate:"required"`
	Body      string `gorm:"type:text" json:"body"`

	FileKey  string `gorm:"type:varchar(500)" json:"file_key,omitempty"`
	FileName string `gorm:"type:varchar(255)" json:"file_name,omitempty"`

	Status   ConsentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	SignedBy string        `gorm:"type:varchar(255)" json:"signed_by,omitempty"`
	SignedAt *time.Time    `json:"signed_at,omitempty"`
}
