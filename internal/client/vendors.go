package client

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/odlemon/khaya-portal-sub000/internal/domain"
	"github.com/odlemon/khaya-portal-sub000/internal/infra/backend"
)

// VendorsClient wraps the service-provider endpoints.
type VendorsClient struct {
	backend *backend.Client
	logger  *zap.Logger
}

func NewVendorsClient(b *backend.Client, logger *zap.Logger) *VendorsClient {
	return &VendorsClient{backend: b, logger: logger}
}

func (c *VendorsClient) ListVendors(ctx context.Context) ([]domain.ServiceProvider, error) {
	ctx, span := tracer.Start(ctx, "VendorsClient.ListVendors")
	defer span.End()

	var vendors []domain.ServiceProvider
	if err := c.backend.Get(ctx, "/service-providers", &vendors); err != nil {
		return nil, err
	}
	return vendors, nil
}

func (c *VendorsClient) CreateVendor(ctx context.Context, in *domain.VendorInput) (*domain.ServiceProvider, error) {
	ctx, span := tracer.Start(ctx, "VendorsClient.CreateVendor")
	defer span.End()

	var created domain.ServiceProvider
	if err := c.backend.Post(ctx, "/service-providers", in, &created); err != nil {
		c.logger.Warn("vendors: create failed", zap.Error(err))
		return nil, err
	}
	return &created, nil
}

func (c *VendorsClient) UpdateVendor(ctx context.Context, vendorID string, in *domain.VendorInput) (*domain.ServiceProvider, error) {
	ctx, span := tracer.Start(ctx, "VendorsClient.UpdateVendor")
	defer span.End()

	var updated domain.ServiceProvider
	path := fmt.Sprintf("/service-providers/%s", vendorID)
	if err := c.backend.Put(ctx, path, in, &updated); err != nil {
		c.logger.Warn("vendors: update failed", zap.String("vendor_id", vendorID), zap.Error(err))
		return nil, err
	}
	return &updated, nil
}

func (c *VendorsClient) DeleteVendor(ctx context.Context, vendorID string) error {
	ctx, span := tracer.Start(ctx, "VendorsClient.DeleteVendor")
	defer span.End()

	return c.backend.Delete(ctx, fmt.Sprintf("/service-providers/%s", vendorID))
}

func (c *VendorsClient) VerifyVendor(ctx context.Context, vendorID string) error {
	ctx, span := tracer.Start(ctx, "VendorsClient.VerifyVendor")
	defer span.End()

	path := fmt.Sprintf("/service-providers/%s/verify", vendorID)
	return c.backend.Post(ctx, path, nil, nil)
}
