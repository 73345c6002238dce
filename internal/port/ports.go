// Package port holds the interfaces the service layer is written
// against, keeping it independent of the concrete upstream API clients
// and the session machinery.
package port

import (
	"context"

	"github.com/odlemon/khaya-portal-sub000/internal/domain"
)

// TokenSource yields the bearer token for outgoing backend calls.
// Token returns domain.ErrAuthNotReady while the session is initializing,
// and an empty string (no error) for an anonymous session.
type TokenSource interface {
	Token() (string, error)
}

// SessionStore persists the two session keys between portal runs.
type SessionStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// RealtimeConn is the chat socket opened on login and closed on logout.
type RealtimeConn interface {
	Open(token string) error
	Close() error
}

// Cache is a TTL key-value store for upstream payloads.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}

// AuthAPI wraps the upstream auth endpoints.
type AuthAPI interface {
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.Session, error)
	// Me resolves a profile from a raw bearer token (Google-redirect bootstrap).
	Me(ctx context.Context, token string) (*domain.User, error)
}

// AgreementsAPI wraps the agreement endpoints.
type AgreementsAPI interface {
	ListAgreements(ctx context.Context) ([]domain.Agreement, error)
	CreateAgreement(ctx context.Context, in *domain.CreateAgreementInput) (*domain.Agreement, error)
}

// PaymentsAPI wraps the payment endpoints.
type PaymentsAPI interface {
	ListPayments(ctx context.Context) ([]domain.Payment, error)
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)
	TransactionSummary(ctx context.Context) (*domain.TransactionSummary, error)
}

// EarningsAPI wraps the 304-aware earnings report endpoint.
// Earnings returns domain.ErrNotModified when the backend replies 304.
type EarningsAPI interface {
	Earnings(ctx context.Context, etag string) (*domain.EarningsReport, string, error)
}

// PropertiesAPI wraps the property endpoints.
type PropertiesAPI interface {
	ListProperties(ctx context.Context, page, limit int) (*domain.PropertyPage, error)
	VerifyProperty(ctx context.Context, propertyID string) error
}

// MaintenanceAPI wraps the maintenance-request endpoints.
type MaintenanceAPI interface {
	ListMaintenanceRequests(ctx context.Context) ([]domain.MaintenanceRequest, error)
	AssignVendor(ctx context.Context, requestID string, in *domain.AssignVendorInput) error
	UpdateETA(ctx context.Context, requestID, message string) error
	MarkArrived(ctx context.Context, requestID string) error
}

// VendorsAPI wraps the service-provider endpoints.
type VendorsAPI interface {
	ListVendors(ctx context.Context) ([]domain.ServiceProvider, error)
	CreateVendor(ctx context.Context, in *domain.VendorInput) (*domain.ServiceProvider, error)
	UpdateVendor(ctx context.Context, vendorID string, in *domain.VendorInput) (*domain.ServiceProvider, error)
	DeleteVendor(ctx context.Context, vendorID string) error
	VerifyVendor(ctx context.Context, vendorID string) error
}

// EscrowAPI wraps the escrow and distribution endpoints.
type EscrowAPI interface {
	EscrowSummary(ctx context.Context) (*domain.EscrowSummary, error)
	Distribute(ctx context.Context, escrowID string) (*domain.DistributionResult, error)
	PendingDistributions(ctx context.Context) ([]domain.PendingDistribution, error)
	DistributionSummary(ctx context.Context) (*domain.DistributionSummary, error)
	DistributeManual(ctx context.Context, req *domain.ManualDistributionRequest) (*domain.DistributionResult, error)
}

// PaymentRequestsAPI wraps the manual payment-proof review queue.
type PaymentRequestsAPI interface {
	PendingPaymentRequests(ctx context.Context) ([]domain.PaymentRequest, error)
	ApprovePaymentRequest(ctx context.Context, requestID string) error
	RejectPaymentRequest(ctx context.Context, requestID, reason string) error
}

// DashboardAPI wraps the dashboard metrics and report endpoints.
type DashboardAPI interface {
	DashboardMetrics(ctx context.Context) (*domain.DashboardMetrics, error)
	AdminReport(ctx context.Context) (*domain.AdminReport, error)
}

// ChatAPI wraps the admin chat moderation endpoints.
type ChatAPI interface {
	ListChats(ctx context.Context) ([]domain.ChatSummary, error)
	GetChat(ctx context.Context, chatID string) (*domain.Chat, error)
	SendMessage(ctx context.Context, chatID string, msg *domain.ChatMessage) (*domain.ChatMessage, error)
}
