package domain

import "time"

// ServiceProvider is a maintenance vendor.
type ServiceProvider struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	ServiceTypes []string  `json:"serviceTypes"`
	Location     string    `json:"location"`
	WorkingHours string    `json:"workingHours,omitempty"`
	IsVerified   bool      `json:"isVerified"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

// VendorInput is the create/update payload for a service provider.
type VendorInput struct {
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	ServiceTypes []string `json:"serviceTypes"`
	Location     string   `json:"location"`
	WorkingHours string   `json:"workingHours,omitempty"`
}

// Validate enforces the required vendor fields before any network call.
func (in *VendorInput) Validate() error {
	switch {
	case in.Name == "":
		return &ErrValidation{Field: "name", Message: "name is required"}
	case in.Phone == "":
		return &ErrValidation{Field: "phone", Message: "phone is required"}
	case len(in.ServiceTypes) == 0:
		return &ErrValidation{Field: "serviceTypes", Message: "at least one service type is required"}
	}
	return nil
}
