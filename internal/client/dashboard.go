package client

import (
	"context"

	"github.com/odlemon/khaya-portal-sub000/internal/domain"
	"github.com/odlemon/khaya-portal-sub000/internal/infra/backend"
)

// DashboardClient fetches the aggregate admin views.
type DashboardClient struct {
	backend *backend.Client
}

func NewDashboardClient(b *backend.Client) *DashboardClient {
	return &DashboardClient{backend: b}
}

func (c *DashboardClient) DashboardMetrics(ctx context.Context) (*domain.DashboardMetrics, error) {
	ctx, span := tracer.Start(ctx, "DashboardClient.DashboardMetrics")
	defer span.End()

	var metrics domain.DashboardMetrics
	if err := c.backend.Get(ctx, "/admin/dashboard/metrics", &metrics); err != nil {
		return nil, err
	}
	return &metrics, nil
}

func (c *DashboardClient) AdminReport(ctx context.Context) (*domain.AdminReport, error) {
	ctx, span := tracer.Start(ctx, "DashboardClient.AdminReport")
	defer span.End()

	var report domain.AdminReport
	if err := c.backend.Get(ctx, "/admin/reports", &report); err != nil {
		return nil, err
	}
	return &report, nil
}
