package model

// Client represents a pet owner registered at the clinic
type Client struct {
	BaseModel
	FullName    string `gorm:"type:varchar(255);not null" json:"full_name" validate:"required"`
	DocumentID  string `gorm:"type:varchar(30);uniqueIndex" json:"document_id"` // National ID / cedula
	Email       string `gorm:"type:varchar(255)" json:"email" validate:"omitempty,email"`
	PhoneNumber string `gorm:"type:varchar(20)" json:"phone_number"`
	Address     string `gorm:"type:text" json:"address"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`

	Pets []Pet `json:"pets,omitempty"`
}
