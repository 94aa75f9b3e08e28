package model

// Role represents user roles in the system
type Role struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Code        string      `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // ADMIN, VETERINARIAN, RECEPTIONIST
	Name        string      `gorm:"type:varchar(100)" json:"name"`
	Description string      `gorm:"type:text" json:"description"`
	Privileges  []Privilege `gorm:"many2many:role_privileges;" json:"privileges,omitempty"`
}

// Role codes as constants
const (
	RoleAdmin        = "ADMIN"
	RoleVeterinarian = "VETERINARIAN"
	RoleReceptionist = "RECEPTIONIST"
)

// DefaultRoles defines the default roles in the system
var DefaultRoles = []Role{
	{
		Code:        RoleAdmin,
		Name:        "Administrator",
		Description: "Full system access with all privileges",
	},
	{
		Code:        RoleVeterinarian,
		Name:        "Veterinarian",
		Description: "Clinical access: pets, appointments, records, prescriptions",
	},
	{
		Code:        RoleReceptionist,
		Name:        "Receptionist",
		Description: "Front desk access: clients, pets, appointments, sales",
	},
}

// VeterinarianPrivilegeCodes lists what the VETERINARIAN role may do.
var VeterinarianPrivilegeCodes = []string{
	"client:view", "pet:view", "pet:update",
	"appointment:view", "appointment:create", "appointment:update",
	"record:view", "record:create",
	"hospitalization:view", "hospitalization:create", "hospitalization:update",
	"medicine:view",
	"prescription:view", "prescription:create",
	"consent:view", "consent:create", "consent:update",
	"dashboard:view",
}

// ReceptionistPrivilegeCodes lists what the RECEPTIONIST role may do.
var ReceptionistPrivilegeCodes = []string{
	"client:view", "client:create", "client:update",
	"pet:view", "pet:create", "pet:update",
	"appointment:view", "appointment:create", "appointment:update",
	"medicine:view",
	"prescription:view",
	"sale:view", "sale:create",
	"consent:view", "consent:create",
	"dashboard:view",
}
