package service

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/odlemon/khaya-portal-sub000/internal/domain"
	"github.com/odlemon/khaya-portal-sub000/internal/infra/observability"
	"github.com/odlemon/khaya-portal-sub000/internal/port"
)

var propertiesTracer = otel.Tracer("service/properties")

// PropertiesService backs the property moderation screen. Unlike the
// other listings, properties are paginated by the backend, so pages
// are fetched on demand instead of sliced locally.
type PropertiesService struct {
	api      port.PropertiesAPI
	metrics  *observability.Metrics
	logger   *zap.Logger
	pageSize int
}

func NewPropertiesService(api port.PropertiesAPI, metrics *observability.Metrics, logger *zap.Logger, pageSize int) *PropertiesService {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &PropertiesService{api: api, metrics: metrics, logger: logger, pageSize: pageSize}
}

func (s *PropertiesService) Page(ctx context.Context, page int) (*domain.PropertyPage, error) {
	ctx, span := propertiesTracer.Start(ctx, "PropertiesService.Page")
	defer span.End()
	span.SetAttributes(attribute.Int("page", page))

	if page < 1 {
		page = 1
	}
	return s.api.ListProperties(ctx, page, s.pageSize)
}

// Verify marks a listing's proof documents as checked and returns the
// page the caller was on so the listing reflects the new state.
func (s *PropertiesService) Verify(ctx context.Context, propertyID string, page int) (*domain.PropertyPage, error) {
	ctx, span := propertiesTracer.Start(ctx, "PropertiesService.Verify")
	defer span.End()
	span.SetAttributes(attribute.String("property.id", propertyID))

	if err := s.api.VerifyProperty(ctx, propertyID); err != nil {
		s.logger.Warn("property verification failed", zap.String("property_id", propertyID), zap.Error(err))
		return nil, err
	}
	s.metrics.IncrRefetch("properties")
	return s.Page(ctx, page)
}
