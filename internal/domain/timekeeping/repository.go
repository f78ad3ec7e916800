package timekeeping

import (
	"context"
	"time"
)

// PunchRepository stores raw punches. All methods include companyID to
// prevent cross-company data access.
type PunchRepository interface {
	Create(ctx context.Context, punch RawPunch) (RawPunch, error)

	// Delete removes a punch and returns the deleted row so the caller can
	// recompute the dates it touched.
	Delete(ctx context.Context, id string, companyID string) (RawPunch, error)

	// ListByAccountAndRange returns punches whose interval intersects
	// [from, to), ordered by time in ascending.
	ListByAccountAndRange(ctx context.Context, accountID string, from, to time.Time, companyID string) ([]RawPunch, error)
}

// LogRepository stores the raw and processed log segments of employee-days.
type LogRepository interface {
	// ReplaceForDate atomically swaps all logs of one employee-day for the
	// given set. Recompute calls this with the full regenerated set, which
	// keeps the operation idempotent.
	ReplaceForDate(ctx context.Context, accountID, dateString, companyID string, logs []Log) error

	ListByAccountAndDate(ctx context.Context, accountID, dateString, companyID string) ([]Log, error)

	// ListRaw returns raw log segments for the audit table, paginated.
	ListRaw(ctx context.Context, filter RawLogFilter, companyID string) ([]Log, int64, error)
}

// DailyRepository stores the per-employee-per-date aggregate records.
type DailyRepository interface {
	// Upsert inserts or fully replaces the computed portion of the row keyed
	// by (AccountID, DateString), returning the stored record.
	Upsert(ctx context.Context, daily Daily) (Daily, error)

	// GetByID returns ErrDailyNotFound when no row exists.
	GetByID(ctx context.Context, id string, companyID string) (Daily, error)

	// GetByAccountAndDate returns ErrDailyNotFound when no row exists.
	GetByAccountAndDate(ctx context.Context, accountID, dateString, companyID string) (Daily, error)

	ListByAccountAndRange(ctx context.Context, accountID, fromDate, toDate, companyID string) ([]Daily, error)

	// ListByRange returns all employees' records in a date range, used by
	// the cutoff aggregator.
	ListByRange(ctx context.Context, fromDate, toDate, companyID string) ([]Daily, error)
}

// OverrideRepository stores manual minute overrides, one per daily record.
type OverrideRepository interface {
	// Create inserts an override. Callers delete any prior override for the
	// same daily record first (delete-then-create, not a uniqueness check).
	Create(ctx context.Context, ov Override) (Override, error)

	// GetByDailyID returns ErrOverrideNotFound when the day has no override.
	GetByDailyID(ctx context.Context, dailyID string, companyID string) (Override, error)

	DeleteByDailyID(ctx context.Context, dailyID string, companyID string) error
}
