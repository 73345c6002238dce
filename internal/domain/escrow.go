package domain

import "time"

// Escrow transaction statuses.
const (
	EscrowPending     = "pending"
	EscrowHeld        = "held"
	EscrowDistributed = "distributed"
	EscrowCancelled   = "cancelled"
)

// EscrowTransaction is a held/distributed funds record. The total is split
// into the landlord share and the platform share.
type EscrowTransaction struct {
	ID             string     `json:"_id"`
	PaymentID      string     `json:"paymentId"`
	TotalAmount    float64    `json:"totalAmount"`
	LandlordAmount float64    `json:"landlordAmount"`
	PlatformAmount float64    `json:"khayalamiAmount"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"createdAt"`
	DistributedAt  *time.Time `json:"distributedAt,omitempty"`
}

// EscrowSummary is the payload of GET /escrow/summary.
type EscrowSummary struct {
	HeldCount         int                 `json:"heldCount"`
	HeldAmount        float64             `json:"heldAmount"`
	DistributedCount  int                 `json:"distributedCount"`
	DistributedAmount float64             `json:"distributedAmount"`
	Transactions      []EscrowTransaction `json:"transactions"`
}

// PendingDistribution groups held escrow funds awaiting payout to a landlord.
type PendingDistribution struct {
	LandlordID  Party    `json:"landlordId"`
	EscrowIDs   []string `json:"escrowIds"`
	TotalAmount float64  `json:"totalAmount"`
}

// DistributionSummary is the payload of GET /distribution/summary.
type DistributionSummary struct {
	PendingCount      int     `json:"pendingCount"`
	PendingAmount     float64 `json:"pendingAmount"`
	DistributedCount  int     `json:"distributedCount"`
	DistributedAmount float64 `json:"distributedAmount"`
}

// EscrowDistributeRequest releases a single held escrow to its landlord.
type EscrowDistributeRequest struct {
	EscrowID string `json:"escrowId"`
}

// ManualDistributionRequest triggers a payout batch for the given escrows.
type ManualDistributionRequest struct {
	IdempotencyKey string   `json:"idempotencyKey"`
	EscrowIDs      []string `json:"escrowIds"`
}

// DistributionResult is the backend's response to a manual distribution.
type DistributionResult struct {
	BatchID          string  `json:"batchId"`
	DistributedCount int     `json:"distributedCount"`
	TotalAmount      float64 `json:"totalAmount"`
}
