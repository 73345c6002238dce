package domain

import "time"

// DashboardMetrics is the KPI/chart payload of GET /admin/dashboard/metrics.
type DashboardMetrics struct {
	TotalLandlords   int            `json:"totalLandlords"`
	TotalTenants     int            `json:"totalTenants"`
	TotalProperties  int            `json:"totalProperties"`
	ActiveAgreements int            `json:"activeAgreements"`
	MonthlyRevenue   []RevenuePoint `json:"monthlyRevenue"`
	StatusBreakdown  map[string]int `json:"statusBreakdown"`
	OpenMaintenance  int            `json:"openMaintenance"`
	PendingPayments  int            `json:"pendingPayments"`
}

// RevenuePoint is one month on the revenue chart.
type RevenuePoint struct {
	Month      string  `json:"month"`
	Amount     float64 `json:"amount"`
	Commission float64 `json:"commission"`
}

// AdminReport is the unified exportable report of GET /admin/reports.
type AdminReport struct {
	GeneratedAt time.Time           `json:"generatedAt"`
	Metrics     DashboardMetrics    `json:"metrics"`
	Payments    []Payment           `json:"payments"`
	Escrow      []EscrowTransaction `json:"escrow"`
}

// DashboardOverview combines the metrics with the ledger and escrow
// summaries the overview screen renders side by side.
type DashboardOverview struct {
	Metrics      DashboardMetrics   `json:"metrics"`
	Transactions TransactionSummary `json:"transactions"`
	Escrow       DistributionSummary `json:"escrow"`
}
