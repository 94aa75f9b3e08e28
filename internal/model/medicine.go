package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Medicine is an inventory-tracked item dispensed by the clinic
type Medicine struct {
	BaseModel
	Name         string          `gorm:"type:varchar(255);not null;uniqueIndex" json:"name" validate:"required"`
	Description  string          `gorm:"type:text" json:"description"`
	Supplier     string          `gorm:"type:varchar(255)" json:"supplier"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	CurrentStock int             `gorm:"not null;default:0" json:"current_stock" validate:"gte=0"`
	MinimumStock int             `gorm:"not null;default:0" json:"minimum_stock" validate:"gte=0"`
	MaximumStock int             `gorm:"not null;default:0" json:"maximum_stock" validate:"gte=0"`

	ExpirationDate *time.Time `gorm:"type:date" json:"expiration_date,omitempty"`

	// User tracking
	CreatedByUserID *string `gorm:"type:varchar(255)" json:"created_by_user_id,omitempty"`
	UpdatedByUserID *string `gorm:"type:varchar(255)" json:"updated_by_user_id,omitempty"`
	CreatedByUser   *User   `gorm:"foreignKey:CreatedByUserID;references:ID" json:"created_by_user,omitempty"`
	UpdatedByUser   *User   `gorm:"foreignKey:UpdatedByUserID;references:ID" json:"updated_by_user,omitempty"`
}

// IsLowStock reports whether the stock level is at or below the reorder threshold.
// Derived on read, never stored.
func (m *Medicine) IsLowStock() bool {
	return m.CurrentStock <= m.MinimumStock
}

// IsExpiringSoon reports whether the medicine expires within daysThreshold days
// (exclusive of already-expired stock).
func (m *Medicine) IsExpiringSoon(now time.Time, daysThreshold int) bool {
	if m.ExpirationDate == nil {
		return false
	}
	until := m.ExpirationDate.Sub(now)
	return until > 0 && until <= time.Duration(daysThreshold)*24*time.Hour
}

// IsExpired reports whether the expiration date has passed.
func (m *Medicine) IsExpired(now time.Time) bool {
	return m.ExpirationDate != nil && m.ExpirationDate.Before(now)
}
