package timekeeping

import (
	"context"
)

// Service defines the timekeeping engine operations. Company and account IDs
// are explicit parameters; nothing here reads ambient auth state.
type Service interface {
	// IngestPunch validates and stores a raw punch, then recomputes the
	// affected date(s). Nothing is persisted when validation fails.
	IngestPunch(ctx context.Context, req IngestPunchRequest, companyID string) (OutputResponse, error)

	// DeletePunch removes a punch and recomputes the dates it touched.
	DeletePunch(ctx context.Context, id string, companyID string) error

	// GetDay returns the per-date output. A missing record triggers exactly
	// one recompute-then-retry before falling back to a blank response.
	GetDay(ctx context.Context, accountID, dateString, companyID string) (OutputResponse, error)

	// GetRange returns per-date outputs for [fromDate, toDate] inclusive.
	GetRange(ctx context.Context, accountID, fromDate, toDate, companyID string) ([]OutputResponse, error)

	// ListRawLogs returns the paginated raw-segment audit table.
	ListRawLogs(ctx context.Context, filter RawLogFilter, companyID string) (ListLogsResponse, error)

	// SetOverride pins explicit minute values on a day, replacing any prior
	// override for the same day.
	SetOverride(ctx context.Context, req SetOverrideRequest, companyID string) (OutputResponse, error)

	// ClearOverride removes the day's override and recomputes so the day
	// reverts to purely computed values.
	ClearOverride(ctx context.Context, dailyID string, companyID string) (OutputResponse, error)

	// SetDayApproval flips the day-approval flag and re-evaluates the
	// for-approval gate.
	SetDayApproval(ctx context.Context, dailyID string, approved bool, companyID string) (OutputResponse, error)

	// ToggleHolidayEligibility cycles the three-state eligibility override:
	// unset flips the default, set clears back to default.
	ToggleHolidayEligibility(ctx context.Context, dailyID string, companyID string) (OutputResponse, error)

	// Recompute re-derives one date from persisted raw punches.
	Recompute(ctx context.Context, accountID, dateString, companyID string) error

	// RecomputeRange re-derives a date range in chronological order.
	RecomputeRange(ctx context.Context, accountID, fromDate, toDate, companyID string) error
}
