package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/odlemon/khaya-portal-sub000/internal/service"
)

func dashboardOverviewHandler(svc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		overview, err := svc.Overview(r.Context())
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, overview)
	}
}

func reportHandler(svc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := svc.Report(r.Context())
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, report)
	}
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func serveExport(w http.ResponseWriter, export *service.Export) {
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(export.Content)
}

func exportEarningsHandler(earnings *service.EarningsService, exporter *service.ExportService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := earnings.Earnings(r.Context())
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		export, err := exporter.ExportEarnings(r.Context(), report)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		serveExport(w, export)
	}
}

func exportReportHandler(dashboard *service.DashboardService, exporter *service.ExportService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := dashboard.Report(r.Context())
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		export, err := exporter.ExportReport(r.Context(), report)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		serveExport(w, export)
	}
}
