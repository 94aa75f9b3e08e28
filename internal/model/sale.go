package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseLocation indicates where the requested quantity is fulfilled.
type PurchaseLocation string

const (
	LocationInClinic PurchaseLocation = "in_clinic"
	LocationExternal PurchaseLocation = "external"
	LocationSplit    PurchaseLocation = "split"
)

// Sale records a medicine dispensing transaction. Quantities and the unit price
// are immutable snapshots taken at sale time; the external portion is never
// charged and never touches stock.
type Sale struct {
	BaseModel
	ClientID uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id" validate:"uuid_required"`
	Client   *Client   `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	PetID uuid.UUID `gorm:"type:uuid;not null;index" json:"pet_id" validate:"uuid_required"`
	Pet   *Pet      `gorm:"foreignKey:PetID" json:"pet,omitempty"`

	MedicineID uuid.UUID `gorm:"type:uuid;not null;index" json:"medicine_id" validate:"uuid_required"`
	Medicine   *Medicine `gorm:"foreignKey:MedicineID" json:"medicine,omitempty"`

	PrescriptionID *uuid.UUID    `gorm:"type:uuid;index" json:"prescription_id,omitempty"`
	Prescription   *Prescription `gorm:"foreignKey:PrescriptionID" json:"prescription,omitempty"`

	Quantity         int              `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	PurchaseLocation PurchaseLocation `gorm:"type:varchar(10);not null" json:"purchase_location" validate:"required,oneof=in_clinic external split"`
	QuantityInClinic int              `gorm:"not null" json:"quantity_in_clinic"`
	QuantityExternal int              `gorm:"not null" json:"quantity_external"`

	UnitPrice          decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	DiscountPercentage float64         `gorm:"not null;default:0" json:"discount_percentage"`
	TotalPrice         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_price"`

	ExternalPharmacy string `gorm:"type:varchar(255)" json:"external_pharmacy,omitempty"`
	Notes            string `gorm:"type:text" json:"notes"`

	// User tracking
	CreatedByUserID *string `gorm:"type:varchar(255)" json:"created_by_user_id,omitempty"`
	CreatedByUser   *User   `gorm:"foreignKey:CreatedByUserID;references:ID" json:"created_by_user,omitempty"`
}
