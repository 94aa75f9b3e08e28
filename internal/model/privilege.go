package model

// Privilege represents a permission that can be assigned to users
type Privilege struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g., "medicine:create"
	Name string `gorm:"type:varchar(100)" json:"name"`                     // e.g., "Create Medicine"
}

// Default privileges for the system
var DefaultPrivileges = []Privilege{
	// User management
	{Code: "user:view", Name: "View User"},
	{Code: "user:create", Name: "Create User"},
	{Code: "user:update", Name: "Update User"},
	{Code: "user:delete", Name: "Delete User"},
	{Code: "user:update_privilege", Name: "Update User Privileges"},
	// Client management
	{Code: "client:view", Name: "View Client"},
	{Code: "client:create", Name: "Create Client"},
	{Code: "client:update", Name: "Update Client"},
	{Code: "client:delete", Name: "Delete Client"},
	// Pet management
	{Code: "pet:view", Name: "View Pet"},
	{Code: "pet:create", Name: "Create Pet"},
	{Code: "pet:update", Name: "Update Pet"},
	{Code: "pet:delete", Name: "Delete Pet"},
	// Appointments
	{Code: "appointment:view", Name: "View Appointment"},
	{Code: "appointment:create", Name: "Create Appointment"},
	{Code: "appointment:update", Name: "Update Appointment"},
	// Medical records & hospitalizations
	{Code: "record:view", Name: "View Medical Record"},
	{Code: "record:create", Name: "Create Medical Record"},
	{Code: "hospitalization:view", Name: "View Hospitalization"},
	{Code: "hospitalization:create", Name: "Admit Patient"},
	{Code: "hospitalization:update", Name: "Discharge Patient"},
	// Medicine inventory
	{Code: "medicine:view", Name: "View Medicine"},
	{Code: "medicine:create", Name: "Create Medicine"},
	{Code: "medicine:update", Name: "Update Medicine"},
	{Code: "medicine:restock", Name: "Restock Medicine"},
	// Prescriptions
	{Code: "prescription:view", Name: "View Prescription"},
	{Code: "prescription:create", Name: "Create Prescription"},
	// Sales
	{Code: "sale:view", Name: "View Sale"},
	{Code: "sale:create", Name: "Create Sale"},
	{Code: "sale:void", Name: "Void Sale"},
	// Consent documents
	{Code: "consent:view", Name: "View Consent Document"},
	{Code: "consent:create", Name: "Create Consent Document"},
	{Code: "consent:update", Name: "Sign/Reject Consent Document"},
	// Dashboard
	{Code: "dashboard:view", Name: "View Dashboard"},
}
