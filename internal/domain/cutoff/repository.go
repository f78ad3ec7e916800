package cutoff

import "context"

type Repository interface {
	// GetDateRange returns ErrDateRangeNotFound when the range is absent.
	GetDateRange(ctx context.Context, rangeID string, companyID string) (DateRange, error)

	// ListAccountIDs returns the employees attached to a cutoff, the
	// population of a bulk recompute.
	ListAccountIDs(ctx context.Context, cutoffID string, companyID string) ([]string, error)
}

// Service is the read-only aggregation surface exposed to payroll.
type Service interface {
	// Totals sums daily records inside the range into per-employee totals.
	Totals(ctx context.Context, rangeID string, companyID string) ([]Totals, error)

	// TotalsForAccount narrows Totals to one employee.
	TotalsForAccount(ctx context.Context, rangeID, accountID, companyID string) (Totals, error)
}
