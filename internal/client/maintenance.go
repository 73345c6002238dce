package client

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/odlemon/khaya-portal-sub000/internal/domain"
	"github.com/odlemon/khaya-portal-sub000/internal/infra/backend"
)

// MaintenanceClient wraps the maintenance-request endpoints.
type MaintenanceClient struct {
	backend *backend.Client
	logger  *zap.Logger
}

func NewMaintenanceClient(b *backend.Client, logger *zap.Logger) *MaintenanceClient {
	return &MaintenanceClient{backend: b, logger: logger}
}

// ListMaintenanceRequests fetches every ticket for the admin list.
func (c *MaintenanceClient) ListMaintenanceRequests(ctx context.Context) ([]domain.MaintenanceRequest, error) {
	ctx, span := tracer.Start(ctx, "MaintenanceClient.ListMaintenanceRequests")
	defer span.End()

	var requests []domain.MaintenanceRequest
	if err := c.backend.Get(ctx, "/maintenance/admin/all", &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// AssignVendor assigns a vendor and estimated arrival to a ticket.
func (c *MaintenanceClient) AssignVendor(ctx context.Context, requestID string, in *domain.AssignVendorInput) error {
	ctx, span := tracer.Start(ctx, "MaintenanceClient.AssignVendor")
	defer span.End()

	path := fmt.Sprintf("/maintenance/admin/requests/%s/assign-vendor", requestID)
	if err := c.backend.Post(ctx, path, in, nil); err != nil {
		c.logger.Warn("maintenance: assign vendor failed",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// UpdateETA appends a timestamped free-text update to the vendor log.
func (c *MaintenanceClient) UpdateETA(ctx context.Context, requestID, message string) error {
	ctx, span := tracer.Start(ctx, "MaintenanceClient.UpdateETA")
	defer span.End()

	path := fmt.Sprintf("/maintenance/admin/requests/%s/update-eta", requestID)
	body := map[string]string{"message": message}
	if err := c.backend.Post(ctx, path, body, nil); err != nil {
		c.logger.Warn("maintenance: update ETA failed",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// MarkArrived records the vendor's actual arrival time.
func (c *MaintenanceClient) MarkArrived(ctx context.Context, requestID string) error {
	ctx, span := tracer.Start(ctx, "MaintenanceClient.MarkArrived")
	defer span.End()

	path := fmt.Sprintf("/maintenance/admin/requests/%s/mark-arrived", requestID)
	if err := c.backend.Post(ctx, path, nil, nil); err != nil {
		c.logger.Warn("maintenance: mark arrived failed",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return err
	}
	return nil
}
