package client

import (
	"context"

	"go.uber.org/zap"

	"github.com/odlemon/khaya-portal-sub000/internal/domain"
	"github.com/odlemon/khaya-portal-sub000/internal/infra/backend"
)

// PaymentsClient wraps the payment and ledger endpoints.
type PaymentsClient struct {
	backend *backend.Client
	logger  *zap.Logger
}

func NewPaymentsClient(b *backend.Client, logger *zap.Logger) *PaymentsClient {
	return &PaymentsClient{backend: b, logger: logger}
}

// ListPayments fetches every payment for the admin list.
func (c *PaymentsClient) ListPayments(ctx context.Context) ([]domain.Payment, error) {
	ctx, span := tracer.Start(ctx, "PaymentsClient.ListPayments")
	defer span.End()

	var payments []domain.Payment
	if err := c.backend.Get(ctx, "/payments/admin/all", &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// ListTransactions fetches the unified transaction ledger.
func (c *PaymentsClient) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "PaymentsClient.ListTransactions")
	defer span.End()

	var txns []domain.Transaction
	if err := c.backend.Get(ctx, "/transactions", &txns); err != nil {
		return nil, err
	}
	return txns, nil
}

// TransactionSummary fetches the ledger aggregates.
func (c *PaymentsClient) TransactionSummary(ctx context.Context) (*domain.TransactionSummary, error) {
	ctx, span := tracer.Start(ctx, "PaymentsClient.TransactionSummary")
	defer span.End()

	var summary domain.TransactionSummary
	if err := c.backend.Get(ctx, "/transactions/summary", &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// EarningsClient wraps the 304-aware earnings report endpoint.
type EarningsClient struct {
	backend *backend.Client
	logger  *zap.Logger
}

func NewEarningsClient(b *backend.Client, logger *zap.Logger) *EarningsClient {
	return &EarningsClient{backend: b, logger: logger}
}

// Earnings fetches the commission report. The backend's caching layer can
// answer 304 to the conditional request; that surfaces as ErrNotModified
// with the etag unchanged, and the caller decides what to do about it.
func (c *EarningsClient) Earnings(ctx context.Context, etag string) (*domain.EarningsReport, string, error) {
	ctx, span := tracer.Start(ctx, "EarningsClient.Earnings")
	defer span.End()

	var report domain.EarningsReport
	newETag, err := c.backend.GetConditional(ctx, "/payments/admin/earnings", etag, &report)
	if err != nil {
		if err != domain.ErrNotModified && err != domain.ErrAuthNotReady {
			c.logger.Warn("earnings: fetch failed", zap.Error(err))
		}
		return nil, newETag, err
	}
	return &report, newETag, nil
}
