package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/odlemon/khaya-portal-sub000/internal/infra/observability"
	"github.com/odlemon/khaya-portal-sub000/internal/port"
	"github.com/odlemon/khaya-portal-sub000/internal/service"
	"github.com/odlemon/khaya-portal-sub000/internal/session"
)

// Services bundles everything the router serves.
type Services struct {
	Session         *session.Provider
	Auth            port.AuthAPI
	Agreements      *service.AgreementsService
	Payments        *service.PaymentsService
	Earnings        *service.EarningsService
	Properties      *service.PropertiesService
	Maintenance     *service.MaintenanceService
	Vendors         *service.VendorsService
	Escrow          *service.EscrowService
	PaymentRequests *service.PaymentRequestsService
	Dashboard       *service.DashboardService
	Chat            *service.ChatService
	Export          *service.ExportService
}

// NewRouter creates the HTTP router with all routes and middleware.
func NewRouter(svcs Services, metrics *observability.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// Operational endpoints.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svcs.Session.Loading() {
			writeError(w, http.StatusServiceUnavailable, "session initializing")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		// Session endpoints stay outside the gate so login and the
		// loading poll work before the session settles.
		r.Get("/auth/session", getSessionHandler(svcs.Session))
		r.Post("/auth/login", loginHandler(svcs.Session, svcs.Auth, metrics, logger))
		r.Post("/auth/logout", logoutHandler(svcs.Session, metrics))

		r.Get("/metrics/portal", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, metrics.GetSessionSnapshot())
		})

		r.Group(func(r chi.Router) {
			r.Use(SessionGateMiddleware(svcs.Session, logger))

			r.Get("/dashboard", dashboardOverviewHandler(svcs.Dashboard, logger))
			r.Get("/reports", reportHandler(svcs.Dashboard, logger))
			r.Get("/reports/export", exportReportHandler(svcs.Dashboard, svcs.Export, logger))

			r.Get("/agreements", listAgreementsHandler(svcs.Agreements, logger))
			r.Post("/agreements", createAgreementHandler(svcs.Agreements, logger))

			r.Get("/payments", listPaymentsHandler(svcs.Payments, logger))
			r.Get("/transactions", listTransactionsHandler(svcs.Payments, logger))
			r.Get("/transactions/summary", transactionSummaryHandler(svcs.Payments, logger))
			r.Get("/earnings", earningsHandler(svcs.Earnings, logger))
			r.Get("/earnings/export", exportEarningsHandler(svcs.Earnings, svcs.Export, logger))

			r.Get("/properties", listPropertiesHandler(svcs.Properties, logger))
			r.Post("/properties/{propertyId}/verify", verifyPropertyHandler(svcs.Properties, logger))

			r.Get("/maintenance", listMaintenanceHandler(svcs.Maintenance, logger))
			r.Get("/maintenance/{requestId}/actions", maintenanceActionsHandler(svcs.Maintenance, logger))
			r.Post("/maintenance/{requestId}/assign-vendor", assignVendorHandler(svcs.Maintenance, logger))
			r.Post("/maintenance/{requestId}/update-eta", updateETAHandler(svcs.Maintenance, logger))
			r.Post("/maintenance/{requestId}/mark-arrived", markArrivedHandler(svcs.Maintenance, logger))

			r.Get("/vendors", listVendorsHandler(svcs.Vendors, logger))
			r.Post("/vendors", createVendorHandler(svcs.Vendors, logger))
			r.Put("/vendors/{vendorId}", updateVendorHandler(svcs.Vendors, logger))
			r.Delete("/vendors/{vendorId}", deleteVendorHandler(svcs.Vendors, logger))
			r.Post("/vendors/{vendorId}/verify", verifyVendorHandler(svcs.Vendors, logger))

			r.Get("/escrow/summary", escrowSummaryHandler(svcs.Escrow, logger))
			r.Post("/escrow/distribute", distributeEscrowHandler(svcs.Escrow, logger))
			r.Get("/distributions/pending", pendingDistributionsHandler(svcs.Escrow, logger))
			r.Get("/distributions/summary", distributionSummaryHandler(svcs.Escrow, logger))
			r.Post("/distributions/manual", distributeManualHandler(svcs.Escrow, logger))

			r.Get("/payment-requests/pending", pendingPaymentRequestsHandler(svcs.PaymentRequests, logger))
			r.Post("/payment-requests/{requestId}/approve", approvePaymentRequestHandler(svcs.PaymentRequests, logger))
			r.Post("/payment-requests/{requestId}/reject", rejectPaymentRequestHandler(svcs.PaymentRequests, logger))

			r.Get("/chats", listChatsHandler(svcs.Chat, logger))
			r.Get("/chats/{chatId}", openChatHandler(svcs.Chat, logger))
			r.Delete("/chats/{chatId}/presence", closeChatHandler(svcs.Chat))
			r.Post("/chats/{chatId}/messages", sendMessageHandler(svcs.Chat, logger))
		})
	})

	return r
}
