package report

import "context"

// ReportService builds attendance reports over committed data.
type ReportService interface {
	// Individual walks every date of the range for one employee.
	Individual(ctx context.Context, req IndividualReportRequest) (IndividualReport, error)

	// General totals the same walk for every active employee.
	General(ctx context.Context, req GeneralReportRequest) (GeneralReport, error)
}
