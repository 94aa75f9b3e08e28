package model

import (
	"time"

	"github.com/google/uuid"
)

// PurchaseStatus tracks the cumulative fulfillment state of a prescription
// across all sales that reference it.
type PurchaseStatus string

const (
	PurchaseNotPurchased PurchaseStatus = "not_purchased"
	PurchasePartial      PurchaseStatus = "partially_purchased"
	PurchaseInClinic     PurchaseStatus = "purchased_in_clinic"
	PurchaseExternal     PurchaseStatus = "purchased_external"
	PurchaseComplete     PurchaseStatus = "purchased_complete"
)

// IsTerminal reports whether the prescription accepts further sales.
func (s PurchaseStatus) IsTerminal() bool {
	switch s {
	case PurchaseInClinic, PurchaseExternal, PurchaseComplete:
		return true
	}
	return false
}

// ResolvePurchaseStatus derives the purchase status from cumulative fulfilled
// quantities vs the originally prescribed quantity. Transitions always key off
// cumulative totals, not an individual sale's quantity.
func ResolvePurchaseStatus(prescribedQty, fulfilledInClinic, fulfilledExternal int) PurchaseStatus {
	total := fulfilledInClinic + fulfilledExternal
	switch {
	case total <= 0:
		return PurchaseNotPurchased
	case total < prescribedQty:
		return PurchasePartial
	case fulfilledExternal == 0:
		return PurchaseInClinic
	case fulfilledInClinic == 0:
		return PurchaseExternal
	default:
		return PurchaseComplete
	}
}

// Prescription is a veterinarian-issued order to dispense a medicine to a pet
type Prescription struct {
	BaseModel
	PetID uuid.UUID `gorm:"type:uuid;not null;index" json:"pet_id" validate:"uuid_required"`
	Pet   *Pet      `gorm:"foreignKey:PetID" json:"pet,omitempty"`

	MedicineID uuid.UUID `gorm:"type:uuid;not null;index" json:"medicine_id" validate:"uuid_required"`
	Medicine   *Medicine `gorm:"foreignKey:MedicineID" json:"medicine,omitempty"`

	VeterinarianID uuid.UUID `gorm:"type:uuid;not null;index" json:"veterinarian_id" validate:"uuid_required"`
	Veterinarian   *User     `gorm:"foreignKey:VeterinarianID" json:"veterinarian,omitempty"`

	MedicalRecordID *uuid.UUID     `gorm:"type:uuid;index" json:"medical_record_id,omitempty"`
	MedicalRecord   *MedicalRecord `gorm:"foreignKey:MedicalRecordID" json:"medical_record,omitempty"`

	Quantity  int    `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	Dosage    string `gorm:"type:varchar(100)" json:"dosage"`    // e.g. "500mg"
	Frequency string `gorm:"type:varchar(100)" json:"frequency"` // e.g. "twice daily"
	Duration  string `gorm:"type:varchar(100)" json:"duration"`  // e.g. "7 days"
	Notes     string `gorm:"type:text" json:"notes"`

	PurchaseStatus PurchaseStatus `gorm:"type:varchar(30);not null;default:'not_purchased'" json:"purchase_status"`
	ExpirationDate *time.Time     `gorm:"type:date" json:"expiration_date,omitempty"`

	Sales []Sale `json:"sales,omitempty"`
}
