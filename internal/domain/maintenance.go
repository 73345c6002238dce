package domain

import "time"

// Maintenance request statuses. Transitions driven from this portal:
//
//	pending -> approved | rejected
//	approved -> awaiting_vendor
//	awaiting_vendor -> vendor_assigned
//	vendor_assigned -> in_progress -> completed   (backend-driven)
//	any active state -> cancelled
const (
	MaintenancePending        = "pending"
	MaintenanceApproved       = "approved"
	MaintenanceRejected       = "rejected"
	MaintenanceAwaitingVendor = "awaiting_vendor"
	MaintenanceVendorAssigned = "vendor_assigned"
	MaintenanceInProgress     = "in_progress"
	MaintenanceCompleted      = "completed"
	MaintenanceCancelled      = "cancelled"
)

// Urgency levels.
const (
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"
	UrgencyUrgent = "urgent"
)

// VendorRef is the populated assigned-vendor sub-document.
type VendorRef struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// VendorUpdate is one entry in the append-only vendor update log.
type VendorUpdate struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// MaintenanceRequest is an issue ticket raised against a property.
type MaintenanceRequest struct {
	ID               string         `json:"_id"`
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	Status           string         `json:"status"`
	Urgency          string         `json:"urgency"`
	PropertyID       PropertyRef    `json:"propertyId"`
	TenantID         Party          `json:"tenantId"`
	AssignedVendor   *VendorRef     `json:"assignedVendor,omitempty"`
	VendorUpdates    []VendorUpdate `json:"vendorUpdates,omitempty"`
	EstimatedArrival *time.Time     `json:"estimatedArrival,omitempty"`
	ActualArrival    *time.Time     `json:"actualArrival,omitempty"`
	CreatedAt        time.Time      `json:"createdAt"`
}

// AssignVendorInput is the payload for the assign-vendor action.
type AssignVendorInput struct {
	VendorID         string    `json:"vendorId"`
	EstimatedArrival time.Time `json:"estimatedArrival"`
}
