package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/odlemon/khaya-portal-sub000/internal/domain"
	"github.com/odlemon/khaya-portal-sub000/internal/infra/observability"
	"github.com/odlemon/khaya-portal-sub000/internal/port"
)

var earningsTracer = otel.Tracer("service/earnings")

const earningsCacheKey = "earnings:last-good"

// EarningsService fetches the commission report. The backend answers
// 304 when the report is unchanged since the held ETag; a 304 with no
// held payload is retried a bounded number of times before the
// condition becomes a visible error.
type EarningsService struct {
	api        port.EarningsAPI
	cache      port.Cache[*domain.EarningsReport]
	metrics    *observability.Metrics
	logger     *zap.Logger
	maxRetries int
	retryDelay time.Duration
	sleep      func(time.Duration)

	// mu serializes the fetch loop: the list page and the export
	// download both hit Earnings, and the held etag is read-modify-write
	// state across retries.
	mu   sync.Mutex
	etag string
}

func NewEarningsService(api port.EarningsAPI, c port.Cache[*domain.EarningsReport], metrics *observability.Metrics, logger *zap.Logger, maxRetries int, retryDelay time.Duration) *EarningsService {
	return &EarningsService{
		api:        api,
		cache:      c,
		metrics:    metrics,
		logger:     logger,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		sleep:      time.Sleep,
	}
}

// Earnings returns the current report. A fresh payload replaces the
// cached one; a 304 serves the last good payload when one is held.
func (s *EarningsService) Earnings(ctx context.Context) (*domain.EarningsReport, error) {
	ctx, span := earningsTracer.Start(ctx, "EarningsService.Earnings")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	attempts := s.maxRetries + 1
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			s.sleep(s.retryDelay)
		}
		report, etag, err := s.api.Earnings(ctx, s.etag)
		if err == nil {
			s.etag = etag
			s.cache.Set(earningsCacheKey, report)
			return report, nil
		}
		if !errors.Is(err, domain.ErrNotModified) {
			return nil, err
		}
		if cached, ok := s.cache.Get(earningsCacheKey); ok {
			s.metrics.IncrCacheHit("earnings")
			return cached, nil
		}
		s.metrics.IncrCacheMiss("earnings")
		s.logger.Debug("earnings not modified with no held payload, retrying",
			zap.Int("attempt", attempt+1))
	}

	// The backend keeps answering 304 but we never saw the payload.
	// Dropping the ETag lets the next call start clean.
	s.etag = ""
	return nil, &domain.ErrUpstream{Status: 304, Message: "earnings report unavailable: repeated not-modified responses with no cached payload"}
}
