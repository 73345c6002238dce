package service

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/odlemon/khaya-portal-sub000/internal/domain"
	"github.com/odlemon/khaya-portal-sub000/internal/infra/observability"
	"github.com/odlemon/khaya-portal-sub000/internal/port"
)

var dashboardTracer = otel.Tracer("service/dashboard")

const overviewCacheKey = "dashboard:overview"

// DashboardService assembles the admin overview. The three upstream
// calls fan out concurrently and the combined payload is cached for
// the configured TTL.
type DashboardService struct {
	api      port.DashboardAPI
	payments port.PaymentsAPI
	escrow   port.EscrowAPI
	cache    port.Cache[*domain.DashboardOverview]
	metrics  *observability.Metrics
	logger   *zap.Logger
}

func NewDashboardService(api port.DashboardAPI, payments port.PaymentsAPI, escrow port.EscrowAPI, c port.Cache[*domain.DashboardOverview], metrics *observability.Metrics, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		api:      api,
		payments: payments,
		escrow:   escrow,
		cache:    c,
		metrics:  metrics,
		logger:   logger,
	}
}

func (s *DashboardService) Overview(ctx context.Context) (*domain.DashboardOverview, error) {
	ctx, span := dashboardTracer.Start(ctx, "DashboardService.Overview")
	defer span.End()

	if cached, ok := s.cache.Get(overviewCacheKey); ok {
		s.metrics.IncrCacheHit("dashboard")
		return cached, nil
	}
	s.metrics.IncrCacheMiss("dashboard")

	var (
		metrics *domain.DashboardMetrics
		ledger  *domain.TransactionSummary
		dist    *domain.DistributionSummary
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		metrics, err = s.api.DashboardMetrics(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		ledger, err = s.payments.TransactionSummary(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		dist, err = s.escrow.DistributionSummary(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	overview := &domain.DashboardOverview{
		Metrics:      *metrics,
		Transactions: *ledger,
		Escrow:       *dist,
	}
	s.cache.Set(overviewCacheKey, overview)
	return overview, nil
}

func (s *DashboardService) Report(ctx context.Context) (*domain.AdminReport, error) {
	ctx, span := dashboardTracer.Start(ctx, "DashboardService.Report")
	defer span.End()
	return s.api.AdminReport(ctx)
}
