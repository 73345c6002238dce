// Package service provides the business logic layer: the listing
// state behind each admin screen, the maintenance workflow gating,
// the earnings consumption rules and the spreadsheet exports.
package service

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/odlemon/khaya-portal-sub000/internal/collection"
	"github.com/odlemon/khaya-portal-sub000/internal/domain"
	"github.com/odlemon/khaya-portal-sub000/internal/infra/observability"
	"github.com/odlemon/khaya-portal-sub000/internal/port"
)

var agreementsTracer = otel.Tracer("service/agreements")

// AgreementsService manages the agreement listing and creation flow.
type AgreementsService struct {
	api     port.AgreementsAPI
	list    *collection.Collection[domain.Agreement]
	metrics *observability.Metrics
	logger  *zap.Logger
}

func NewAgreementsService(api port.AgreementsAPI, metrics *observability.Metrics, logger *zap.Logger, pageSize int) *AgreementsService {
	s := &AgreementsService{api: api, metrics: metrics, logger: logger}
	s.list = collection.New(
		api.ListAgreements,
		agreementSearchFields,
		func(a domain.Agreement) string { return a.ID },
		pageSize,
	)
	return s
}

// agreementSearchFields fixes which fields the listing query matches
// against. Renter and landlord emails are included so an address
// fragment finds the agreement.
func agreementSearchFields(a domain.Agreement) []string {
	return []string{
		a.Title,
		a.Description,
		a.TenantID.FirstName,
		a.TenantID.LastName,
		a.TenantID.Email,
		a.LandlordID.FirstName,
		a.LandlordID.LastName,
		a.LandlordID.Email,
		a.PropertyID.Title,
		a.PropertyID.Address.City,
		a.PropertyID.Address.Street,
	}
}

func (s *AgreementsService) Collection() *collection.Collection[domain.Agreement] {
	return s.list
}

func (s *AgreementsService) Refresh(ctx context.Context) error {
	ctx, span := agreementsTracer.Start(ctx, "AgreementsService.Refresh")
	defer span.End()
	return s.list.Load(ctx)
}

// Create validates the input before any network call; an invalid draft
// never reaches the backend. On success the listing is refreshed so
// the new agreement appears with its server-assigned fields. A write
// failure propagates without a refetch.
func (s *AgreementsService) Create(ctx context.Context, input *domain.CreateAgreementInput) (*domain.Agreement, error) {
	ctx, span := agreementsTracer.Start(ctx, "AgreementsService.Create")
	defer span.End()

	if err := input.Validate(); err != nil {
		return nil, err
	}
	created, err := s.api.CreateAgreement(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := s.list.Load(ctx); err != nil {
		// The create succeeded; a refresh failure only means the
		// listing is momentarily behind.
		s.logger.Warn("agreement list refresh after create failed", zap.Error(err))
	}
	s.metrics.IncrRefetch("agreements")
	return created, nil
}

func (s *AgreementsService) Get(id string) (domain.Agreement, bool) {
	return s.list.FindByID(id)
}
