package domain

import "time"

// Payment statuses.
const (
	PaymentPending   = "pending"
	PaymentPaid      = "paid"
	PaymentVerified  = "verified"
	PaymentOverdue   = "overdue"
	PaymentRejected  = "rejected"
	PaymentDisputed  = "disputed"
	PaymentCancelled = "cancelled"
)

// Payment methods.
const (
	PaymentMethodInApp = "in_app"
	PaymentMethodCash  = "cash"
)

// Payment is a rent or fee transaction.
type Payment struct {
	ID              string         `json:"_id"`
	Amount          float64        `json:"amount"`
	LateFee         float64        `json:"lateFee"`
	TotalAmount     float64        `json:"totalAmount"`
	Status          string         `json:"status"`
	PaymentMethod   string         `json:"paymentMethod"`
	PropertyID      PropertyRef    `json:"propertyId"`
	AgreementID     string         `json:"agreementId"`
	LandlordID      Party          `json:"landlordId"`
	TenantID        Party          `json:"tenantId"`
	DueDate         time.Time      `json:"dueDate"`
	PaidAt          *time.Time     `json:"paidAt,omitempty"`
	GatewayResponse map[string]any `json:"gatewayResponse,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
}

// Commission is the per-payment commission breakdown on earnings rows.
type Commission struct {
	Rate        float64 `json:"commissionRate"`
	Amount      float64 `json:"commissionAmount"`
	IsDebt      bool    `json:"isDebt"`
	DebtSettled bool    `json:"debtSettled"`
}

// EarningsPayment is a Payment extended with the commission split the
// backend computes for the earnings report.
type EarningsPayment struct {
	Payment
	Commission         Commission `json:"commission"`
	LandlordAmount     float64    `json:"landlordAmount"`
	PlatformCommission float64    `json:"khayalamiCommission"`
}

// EarningsReport is the payload of GET /payments/admin/earnings.
type EarningsReport struct {
	Payments           []EarningsPayment `json:"payments"`
	TotalEarnings      float64           `json:"totalEarnings"`
	TotalCommission    float64           `json:"totalCommission"`
	TotalLandlordShare float64           `json:"totalLandlordShare"`
	PeriodStart        time.Time         `json:"periodStart"`
	PeriodEnd          time.Time         `json:"periodEnd"`
}

// Transaction is a row in the unified ledger view.
type Transaction struct {
	ID        string    `json:"_id"`
	Type      string    `json:"type"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	Reference string    `json:"reference,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// TransactionSummary aggregates the ledger.
type TransactionSummary struct {
	TotalIn  float64 `json:"totalIn"`
	TotalOut float64 `json:"totalOut"`
	Count    int     `json:"count"`
}

// PaymentRequest is a manually submitted payment proof awaiting admin review.
type PaymentRequest struct {
	ID              string     `json:"_id"`
	PaymentID       string     `json:"paymentId"`
	TenantID        Party      `json:"tenantId"`
	Amount          float64    `json:"amount"`
	ProofURL        string     `json:"proofUrl"`
	Status          string     `json:"status"`
	SubmittedAt     time.Time  `json:"submittedAt"`
	ReviewedAt      *time.Time `json:"reviewedAt,omitempty"`
	RejectionReason string     `json:"rejectionReason,omitempty"`
}
