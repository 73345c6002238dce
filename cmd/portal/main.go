package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/odlemon/khaya-portal-sub000/internal/chat"
	"github.com/odlemon/khaya-portal-sub000/internal/client"
	"github.com/odlemon/khaya-portal-sub000/internal/config"
	"github.com/odlemon/khaya-portal-sub000/internal/domain"
	"github.com/odlemon/khaya-portal-sub000/internal/handler"
	"github.com/odlemon/khaya-portal-sub000/internal/infra/backend"
	"github.com/odlemon/khaya-portal-sub000/internal/infra/cache"
	"github.com/odlemon/khaya-portal-sub000/internal/infra/observability"
	"github.com/odlemon/khaya-portal-sub000/internal/infra/resilience"
	"github.com/odlemon/khaya-portal-sub000/internal/service"
	"github.com/odlemon/khaya-portal-sub000/internal/session"

	"go.uber.org/zap"
)

const listingPageSize = 10

func main() {
	// --- Load .env file (for local development) ---
	_ = config.LoadDotEnv(".env")

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.String("api_base_url", cfg.APIBaseURL),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Int("earnings_max_retries", cfg.EarningsMaxRetries),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "khaya-portal")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Caches ---
	earningsCache := cache.New[*domain.EarningsReport](cfg.CacheTTL)
	overviewCache := cache.New[*domain.DashboardOverview](cfg.CacheTTL)

	// --- Resilience ---
	resilienceCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
	}
	cb := resilience.NewCircuitBreaker("khaya-backend")

	// --- Session + upstream clients ---
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	store, err := session.NewFileStore(cfg.SessionDir)
	if err != nil {
		logger.Fatal("failed to open session store", zap.Error(err))
	}
	socket := chat.NewSocket(cfg.SocketURL, logger)

	// The auth client needs no session token, and the session provider
	// needs the auth client; the backend client closes the loop by
	// taking the provider as its token source.
	authClient := client.NewAuthClient(nil, httpClient, cfg.APIBaseURL, logger)
	provider := session.NewProvider(store, authClient, socket, metrics, logger)
	api := backend.NewClient(httpClient, cfg.APIBaseURL, provider, cb, resilienceCfg, metrics, logger)
	authClient.SetBackend(api)

	// Session restore runs alongside server startup; the session gate
	// answers 503 until it settles.
	go func() {
		provider.Initialize(context.Background(), cfg.RedirectToken)
		logger.Info("session initialized", zap.String("state", provider.State().String()))
	}()

	agreementsAPI := client.NewAgreementsClient(api, logger)
	paymentsAPI := client.NewPaymentsClient(api, logger)
	earningsAPI := client.NewEarningsClient(api, logger)
	propertiesAPI := client.NewPropertiesClient(api, logger)
	maintenanceAPI := client.NewMaintenanceClient(api, logger)
	vendorsAPI := client.NewVendorsClient(api, logger)
	escrowAPI := client.NewEscrowClient(api, logger)
	paymentRequestsAPI := client.NewPaymentRequestsClient(api, logger)
	dashboardAPI := client.NewDashboardClient(api)
	chatAPI := client.NewChatClient(api, logger)

	// --- Services ---
	svcs := handler.Services{
		Session:         provider,
		Auth:            authClient,
		Agreements:      service.NewAgreementsService(agreementsAPI, metrics, logger, listingPageSize),
		Payments:        service.NewPaymentsService(paymentsAPI, metrics, logger, listingPageSize),
		Earnings:        service.NewEarningsService(earningsAPI, earningsCache, metrics, logger, cfg.EarningsMaxRetries, cfg.EarningsRetryDelay),
		Properties:      service.NewPropertiesService(propertiesAPI, metrics, logger, listingPageSize),
		Maintenance:     service.NewMaintenanceService(maintenanceAPI, metrics, logger, listingPageSize),
		Vendors:         service.NewVendorsService(vendorsAPI, metrics, logger, listingPageSize),
		Escrow:          service.NewEscrowService(escrowAPI, metrics, logger),
		PaymentRequests: service.NewPaymentRequestsService(paymentRequestsAPI, metrics, logger),
		Dashboard:       service.NewDashboardService(dashboardAPI, paymentsAPI, escrowAPI, overviewCache, metrics, logger),
		Chat:            service.NewChatService(chatAPI, socket, logger),
		Export:          service.NewExportService(metrics, logger),
	}

	// --- Router ---
	router := handler.NewRouter(svcs, metrics, logger)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}
	_ = socket.Close()

	logger.Info("server stopped")
}
