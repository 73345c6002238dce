package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/odlemon/khaya-portal-sub000/internal/service"
)

func listPaymentsHandler(svc *service.PaymentsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serveListing(w, r, svc.Payments(), func() error {
			return svc.RefreshPayments(r.Context())
		}, logger)
	}
}

func listTransactionsHandler(svc *service.PaymentsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serveListing(w, r, svc.Transactions(), func() error {
			return svc.RefreshTransactions(r.Context())
		}, logger)
	}
}

func transactionSummaryHandler(svc *service.PaymentsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := svc.TransactionSummary(r.Context())
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, summary)
	}
}

func earningsHandler(svc *service.EarningsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := svc.Earnings(r.Context())
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, report)
	}
}
