package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/odlemon/khaya-portal-sub000/internal/domain"
	"github.com/odlemon/khaya-portal-sub000/internal/infra/observability"
)

var exportTracer = otel.Tracer("service/export")

// Export is a generated spreadsheet ready for download.
type Export struct {
	Filename string
	Content  []byte
}

// ExportService renders domain payloads into spreadsheets. Filenames
// carry the generation date so repeated downloads don't collide.
type ExportService struct {
	metrics *observability.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

func NewExportService(metrics *observability.Metrics, logger *zap.Logger) *ExportService {
	return &ExportService{metrics: metrics, logger: logger, now: time.Now}
}

// ExportEarnings writes the commission report: a summary sheet with
// the totals and a payments sheet with the per-payment split.
func (s *ExportService) ExportEarnings(ctx context.Context, report *domain.EarningsReport) (*Export, error) {
	_, span := exportTracer.Start(ctx, "ExportService.ExportEarnings")
	defer span.End()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Summary"); err != nil {
		return s.fail("earnings", err)
	}
	summaryRows := [][]any{
		{"Period", report.PeriodStart.Format("2006-01-02") + " to " + report.PeriodEnd.Format("2006-01-02")},
		{"Total Earnings", report.TotalEarnings},
		{"Total Commission", report.TotalCommission},
		{"Landlord Share", report.TotalLandlordShare},
		{"Payments", len(report.Payments)},
	}
	for i, row := range summaryRows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow("Summary", cell, &row); err != nil {
			return s.fail("earnings", err)
		}
	}

	if _, err := f.NewSheet("Payments"); err != nil {
		return s.fail("earnings", err)
	}
	header := []any{"Payment ID", "Tenant", "Amount", "Commission Rate", "Commission", "Landlord Share", "Platform Share", "Status", "Paid At"}
	if err := f.SetSheetRow("Payments", "A1", &header); err != nil {
		return s.fail("earnings", err)
	}
	for i, p := range report.Payments {
		paidAt := ""
		if p.PaidAt != nil {
			paidAt = p.PaidAt.Format("2006-01-02")
		}
		row := []any{
			p.ID,
			p.TenantID.FirstName + " " + p.TenantID.LastName,
			p.TotalAmount,
			p.Commission.Rate,
			p.Commission.Amount,
			p.LandlordAmount,
			p.PlatformCommission,
			p.Status,
			paidAt,
		}
		if err := f.SetSheetRow("Payments", fmt.Sprintf("A%d", i+2), &row); err != nil {
			return s.fail("earnings", err)
		}
	}
	widenColumns(f, "Payments", len(header))

	return s.finish(f, "earnings")
}

// ExportReport writes the unified admin report: metrics, payments and
// escrow each on their own sheet.
func (s *ExportService) ExportReport(ctx context.Context, report *domain.AdminReport) (*Export, error) {
	_, span := exportTracer.Start(ctx, "ExportService.ExportReport")
	defer span.End()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Summary"); err != nil {
		return s.fail("report", err)
	}
	m := report.Metrics
	summaryRows := [][]any{
		{"Generated", report.GeneratedAt.Format("2006-01-02 15:04")},
		{"Landlords", m.TotalLandlords},
		{"Tenants", m.TotalTenants},
		{"Properties", m.TotalProperties},
		{"Active Agreements", m.ActiveAgreements},
		{"Open Maintenance", m.OpenMaintenance},
		{"Pending Payments", m.PendingPayments},
	}
	for i, row := range summaryRows {
		if err := f.SetSheetRow("Summary", fmt.Sprintf("A%d", i+1), &row); err != nil {
			return s.fail("report", err)
		}
	}

	if _, err := f.NewSheet("Payments"); err != nil {
		return s.fail("report", err)
	}
	payHeader := []any{"Payment ID", "Tenant", "Property", "Amount", "Late Fee", "Total", "Status", "Method", "Due Date"}
	if err := f.SetSheetRow("Payments", "A1", &payHeader); err != nil {
		return s.fail("report", err)
	}
	for i, p := range report.Payments {
		row := []any{
			p.ID,
			p.TenantID.FirstName + " " + p.TenantID.LastName,
			p.PropertyID.Title,
			p.Amount,
			p.LateFee,
			p.TotalAmount,
			p.Status,
			p.PaymentMethod,
			p.DueDate.Format("2006-01-02"),
		}
		if err := f.SetSheetRow("Payments", fmt.Sprintf("A%d", i+2), &row); err != nil {
			return s.fail("report", err)
		}
	}
	widenColumns(f, "Payments", len(payHeader))

	if _, err := f.NewSheet("Escrow"); err != nil {
		return s.fail("report", err)
	}
	escHeader := []any{"Escrow ID", "Payment ID", "Total", "Landlord Share", "Platform Share", "Status", "Distributed At"}
	if err := f.SetSheetRow("Escrow", "A1", &escHeader); err != nil {
		return s.fail("report", err)
	}
	for i, e := range report.Escrow {
		distributedAt := ""
		if e.DistributedAt != nil {
			distributedAt = e.DistributedAt.Format("2006-01-02")
		}
		row := []any{e.ID, e.PaymentID, e.TotalAmount, e.LandlordAmount, e.PlatformAmount, e.Status, distributedAt}
		if err := f.SetSheetRow("Escrow", fmt.Sprintf("A%d", i+2), &row); err != nil {
			return s.fail("report", err)
		}
	}
	widenColumns(f, "Escrow", len(escHeader))

	return s.finish(f, "report")
}

// widenColumns applies a uniform readable width. Errors are ignored
// since width is cosmetic.
func widenColumns(f *excelize.File, sheet string, cols int) {
	last, err := excelize.ColumnNumberToName(cols)
	if err != nil {
		return
	}
	_ = f.SetColWidth(sheet, "A", last, 18)
}

func (s *ExportService) finish(f *excelize.File, kind string) (*Export, error) {
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return s.fail(kind, err)
	}
	s.metrics.IncrExport(kind, "ok")
	return &Export{
		Filename: fmt.Sprintf("%s-%s.xlsx", kind, s.now().Format("2006-01-02")),
		Content:  buf.Bytes(),
	}, nil
}

func (s *ExportService) fail(kind string, err error) (*Export, error) {
	s.metrics.IncrExport(kind, "error")
	s.logger.Error("spreadsheet export failed", zap.String("kind", kind), zap.Error(err))
	return nil, fmt.Errorf("export %s: %w", kind, err)
}
