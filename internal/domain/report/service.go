package report

import "context"

// ReportService defines the interface for report generation
type ReportService interface {
	// MonthlyGrid classifies every (user, day) of a month as worked, on leave or no data
	MonthlyGrid(ctx context.Context, req MonthlyReportRequest) (MonthlyReport, error)
}
