package service

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/odlemon/khaya-portal-sub000/internal/collection"
	"github.com/odlemon/khaya-portal-sub000/internal/domain"
	"github.com/odlemon/khaya-portal-sub000/internal/infra/observability"
	"github.com/odlemon/khaya-portal-sub000/internal/port"
)

var vendorsTracer = otel.Tracer("service/vendors")

// VendorsService manages the service-provider directory.
type VendorsService struct {
	api     port.VendorsAPI
	list    *collection.Collection[domain.ServiceProvider]
	metrics *observability.Metrics
	logger  *zap.Logger
}

func NewVendorsService(api port.VendorsAPI, metrics *observability.Metrics, logger *zap.Logger, pageSize int) *VendorsService {
	s := &VendorsService{api: api, metrics: metrics, logger: logger}
	s.list = collection.New(
		api.ListVendors,
		vendorSearchFields,
		func(v domain.ServiceProvider) string { return v.ID },
		pageSize,
	)
	return s
}

func vendorSearchFields(v domain.ServiceProvider) []string {
	return []string{v.Name, v.Email, v.Phone, strings.Join(v.ServiceTypes, " ")}
}

func (s *VendorsService) Collection() *collection.Collection[domain.ServiceProvider] {
	return s.list
}

func (s *VendorsService) Refresh(ctx context.Context) error {
	ctx, span := vendorsTracer.Start(ctx, "VendorsService.Refresh")
	defer span.End()
	return s.list.Load(ctx)
}

func (s *VendorsService) Create(ctx context.Context, input *domain.VendorInput) (*domain.ServiceProvider, error) {
	ctx, span := vendorsTracer.Start(ctx, "VendorsService.Create")
	defer span.End()

	if err := input.Validate(); err != nil {
		return nil, err
	}
	created, err := s.api.CreateVendor(ctx, input)
	if err != nil {
		return nil, err
	}
	s.refreshAfterWrite(ctx)
	return created, nil
}

func (s *VendorsService) Update(ctx context.Context, id string, input *domain.VendorInput) (*domain.ServiceProvider, error) {
	ctx, span := vendorsTracer.Start(ctx, "VendorsService.Update")
	defer span.End()

	if err := input.Validate(); err != nil {
		return nil, err
	}
	updated, err := s.api.UpdateVendor(ctx, id, input)
	if err != nil {
		return nil, err
	}
	s.refreshAfterWrite(ctx)
	return updated, nil
}

func (s *VendorsService) Delete(ctx context.Context, id string) error {
	ctx, span := vendorsTracer.Start(ctx, "VendorsService.Delete")
	defer span.End()

	if err := s.api.DeleteVendor(ctx, id); err != nil {
		return err
	}
	s.refreshAfterWrite(ctx)
	return nil
}

func (s *VendorsService) Verify(ctx context.Context, id string) error {
	ctx, span := vendorsTracer.Start(ctx, "VendorsService.Verify")
	defer span.End()

	if err := s.api.VerifyVendor(ctx, id); err != nil {
		return err
	}
	s.refreshAfterWrite(ctx)
	return nil
}

func (s *VendorsService) refreshAfterWrite(ctx context.Context) {
	if err := s.list.Load(ctx); err != nil {
		s.logger.Warn("vendor list refresh failed", zap.Error(err))
		return
	}
	s.metrics.IncrRefetch("vendors")
}
