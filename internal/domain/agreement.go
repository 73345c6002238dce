package domain

import "time"

// Agreement statuses as used by the backend.
const (
	AgreementDraft      = "draft"
	AgreementPending    = "pending"
	AgreementSigned     = "signed"
	AgreementActive     = "active"
	AgreementExpired    = "expired"
	AgreementTerminated = "terminated"
)

// Signature records one party's signing of an agreement.
type Signature struct {
	SignedAt     time.Time `json:"signedAt"`
	SignatureURL string    `json:"signatureUrl"`
}

// Attachment is a named document reference.
type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// PropertyRef is the populated property sub-document on agreements and payments.
type PropertyRef struct {
	ID      string  `json:"_id"`
	Title   string  `json:"title"`
	Address Address `json:"address"`
}

// Agreement is a rental contract between a landlord and a tenant.
type Agreement struct {
	ID                string       `json:"_id"`
	Title             string       `json:"title"`
	Description       string       `json:"description"`
	LandlordID        Party        `json:"landlordId"`
	TenantID          Party        `json:"tenantId"`
	PropertyID        PropertyRef  `json:"propertyId"`
	StartDate         time.Time    `json:"startDate"`
	EndDate           time.Time    `json:"endDate"`
	RentAmount        float64      `json:"rentAmount"`
	DepositAmount     float64      `json:"depositAmount"`
	ZeroDeposit       bool         `json:"zeroDeposit"`
	Status            string       `json:"status"`
	TenantSignature   *Signature   `json:"tenantSignature,omitempty"`
	LandlordSignature *Signature   `json:"landlordSignature,omitempty"`
	PaymentSchedule   string       `json:"paymentSchedule,omitempty"`
	Terms             []string     `json:"terms,omitempty"`
	Attachments       []Attachment `json:"attachments,omitempty"`
	CreatedAt         time.Time    `json:"createdAt"`
}

// CreateAgreementInput is the payload for creating an agreement.
// Validate must pass before any network call is made.
type CreateAgreementInput struct {
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	LandlordID      string    `json:"landlordId"`
	TenantID        string    `json:"tenantId"`
	PropertyID      string    `json:"propertyId"`
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
	RentAmount      float64   `json:"rentAmount"`
	DepositAmount   float64   `json:"depositAmount"`
	ZeroDeposit     bool      `json:"zeroDeposit"`
	PaymentSchedule string    `json:"paymentSchedule,omitempty"`
	Terms           []string  `json:"terms,omitempty"`
}

// Validate enforces the client-side rules: required parties, positive rent,
// end date strictly after start date, and a zero deposit when the zero-deposit
// flag is set.
func (in *CreateAgreementInput) Validate() error {
	switch {
	case in.Title == "":
		return &ErrValidation{Field: "title", Message: "title is required"}
	case in.LandlordID == "":
		return &ErrValidation{Field: "landlordId", Message: "landlord is required"}
	case in.TenantID == "":
		return &ErrValidation{Field: "tenantId", Message: "tenant is required"}
	case in.PropertyID == "":
		return &ErrValidation{Field: "propertyId", Message: "property is required"}
	case in.StartDate.IsZero() || in.EndDate.IsZero():
		return &ErrValidation{Field: "startDate", Message: "start and end dates are required"}
	case !in.StartDate.Before(in.EndDate):
		return &ErrValidation{Field: "endDate", Message: "end date must be after start date"}
	case in.RentAmount <= 0:
		return &ErrValidation{Field: "rentAmount", Message: "rent amount must be positive"}
	case in.ZeroDeposit && in.DepositAmount != 0:
		return &ErrValidation{Field: "depositAmount", Message: "deposit must be zero when zero-deposit is set"}
	case !in.ZeroDeposit && in.DepositAmount < 0:
		return &ErrValidation{Field: "depositAmount", Message: "deposit cannot be negative"}
	}
	return nil
}
