package domain

// ============================================================
// Reports
// ============================================================

// ReportType selects which projection of the analytics output a report
// carries. Each type has a fixed payload shape (see the report package).
type ReportType string

const (
	ReportSummary      ReportType = "summary"
	ReportDetailed     ReportType = "detailed"
	ReportAnalytics    ReportType = "analytics"
	ReportRisk         ReportType = "risk"
	ReportPerformance  ReportType = "performance"
	ReportTransactions ReportType = "transactions"
)

// Valid reports whether t is a known report type.
func (t ReportType) Valid() bool {
	switch t {
	case ReportSummary, ReportDetailed, ReportAnalytics, ReportRisk, ReportPerformance, ReportTransactions:
		return true
	}
	return false
}

// ExportFormat is the requested serialization of a generated report.
// Serialization is a collaborator concern; the core only shapes the payload.
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatJSON ExportFormat = "json"
)

// ReportConfig describes a report to assemble.
type ReportConfig struct {
	Type        ReportType   `json:"type"`
	DateRange   DateRange    `json:"dateRange"`
	Currency    Currency     `json:"currency,omitempty"`
	AccountIDs  []string     `json:"accountIds,omitempty"`
	Format      ExportFormat `json:"format"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
}

// ReportMetadata tags a generated report with record bookkeeping.
type ReportMetadata struct {
	TotalPages  int           `json:"totalPages"`
	RecordCount int           `json:"recordCount"`
	Filters     FilterOptions `json:"filters"`
}
