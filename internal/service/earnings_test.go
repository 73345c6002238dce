package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/odlemon/khaya-portal-sub000/internal/domain"
	"github.com/odlemon/khaya-portal-sub000/internal/infra/cache"
	"github.com/odlemon/khaya-portal-sub000/internal/infra/observability"
	"github.com/odlemon/khaya-portal-sub000/internal/service"
)

type earningsCall struct {
	report *domain.EarningsReport
	etag   string
	err    error
}

type mockEarningsAPI struct {
	calls []earningsCall
	n     int
	etags []string
}

func (m *mockEarningsAPI) Earnings(_ context.Context, etag string) (*domain.EarningsReport, string, error) {
	m.etags = append(m.etags, etag)
	if m.n >= len(m.calls) {
		return nil, etag, domain.ErrNotModified
	}
	c := m.calls[m.n]
	m.n++
	return c.report, c.etag, c.err
}

func newEarningsService(api *mockEarningsAPI) *service.EarningsService {
	return service.NewEarningsService(
		api,
		cache.New[*domain.EarningsReport](time.Minute),
		observability.NewMetrics(),
		zap.NewNop(),
		2,
		time.Millisecond,
	)
}

func TestEarningsFreshPayload(t *testing.T) {
	report := &domain.EarningsReport{TotalEarnings: 1200}
	api := &mockEarningsAPI{calls: []earningsCall{{report: report, etag: `"v1"`}}}
	svc := newEarningsService(api)

	got, err := svc.Earnings(context.Background())
	if err != nil {
		t.Fatalf("earnings: %v", err)
	}
	if got.TotalEarnings != 1200 {
		t.Errorf("total = %v", got.TotalEarnings)
	}
	if api.etags[0] != "" {
		t.Errorf("first call carried etag %q", api.etags[0])
	}
}

func TestEarningsNotModifiedServesCached(t *testing.T) {
	report := &domain.EarningsReport{TotalEarnings: 900}
	api := &mockEarningsAPI{calls: []earningsCall{
		{report: report, etag: `"v1"`},
		{err: domain.ErrNotModified},
	}}
	svc := newEarningsService(api)

	if _, err := svc.Earnings(context.Background()); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	got, err := svc.Earnings(context.Background())
	if err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if got.TotalEarnings != 900 {
		t.Errorf("cached total = %v", got.TotalEarnings)
	}
	// The held etag is sent on the second call.
	if api.etags[1] != `"v1"` {
		t.Errorf("second call etag = %q", api.etags[1])
	}
}

func TestEarningsRepeatedNotModifiedWithoutCacheErrors(t *testing.T) {
	// Every call answers 304 and nothing was ever cached.
	api := &mockEarningsAPI{}
	svc := newEarningsService(api)

	_, err := svc.Earnings(context.Background())
	var upstream *domain.ErrUpstream
	if !errors.As(err, &upstream) {
		t.Fatalf("expected visible error, got %v", err)
	}
	// One initial attempt plus two retries.
	if len(api.etags) != 3 {
		t.Errorf("made %d calls, want 3", len(api.etags))
	}
}

func TestEarningsRetryRecovers(t *testing.T) {
	report := &domain.EarningsReport{TotalEarnings: 700}
	api := &mockEarningsAPI{calls: []earningsCall{
		{err: domain.ErrNotModified},
		{report: report, etag: `"v2"`},
	}}
	svc := newEarningsService(api)

	got, err := svc.Earnings(context.Background())
	if err != nil {
		t.Fatalf("earnings: %v", err)
	}
	if got.TotalEarnings != 700 {
		t.Errorf("total = %v", got.TotalEarnings)
	}
}

func TestEarningsConcurrentFetches(t *testing.T) {
	report := &domain.EarningsReport{TotalEarnings: 500}
	// One fresh payload; every later call answers 304 and is served
	// from the held payload.
	api := &mockEarningsAPI{calls: []earningsCall{{report: report, etag: `"v1"`}}}
	svc := newEarningsService(api)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := svc.Earnings(context.Background())
			if err != nil {
				errs <- err
				return
			}
			if got.TotalEarnings != 500 {
				errs <- errors.New("wrong payload served")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent fetch: %v", err)
	}
}

func TestEarningsOtherErrorNotRetried(t *testing.T) {
	api := &mockEarningsAPI{calls: []earningsCall{
		{err: &domain.ErrUpstream{Status: 502}},
	}}
	svc := newEarningsService(api)

	_, err := svc.Earnings(context.Background())
	var upstream *domain.ErrUpstream
	if !errors.As(err, &upstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if len(api.etags) != 1 {
		t.Errorf("made %d calls, want 1", len(api.etags))
	}
}
