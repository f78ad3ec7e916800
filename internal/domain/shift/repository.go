package shift

import (
	"context"
	"time"
)

// Repository exposes the five shift sources the resolver picks among.
// Each method returns nil (not an error) when the source has no definition
// for the employee on the given date. All methods include companyID to
// prevent cross-company data access.
type Repository interface {
	// ScheduleAdjustmentFor returns an ad-hoc, filing-driven shift for one day.
	ScheduleAdjustmentFor(ctx context.Context, accountID string, date time.Time, companyID string) (*Shift, error)

	// IndividualScheduleFor returns a per-employee schedule override.
	IndividualScheduleFor(ctx context.Context, accountID string, date time.Time, companyID string) (*Shift, error)

	// TeamScheduleFor returns the schedule of the employee's team.
	TeamScheduleFor(ctx context.Context, accountID string, date time.Time, companyID string) (*Shift, error)

	// ManualScheduleFor returns a manually entered schedule row.
	ManualScheduleFor(ctx context.Context, accountID string, date time.Time, companyID string) (*Shift, error)

	// RegularShiftFor returns the shift derived from the employee's weekly
	// schedule for the date's weekday.
	RegularShiftFor(ctx context.Context, accountID string, date time.Time, companyID string) (*Shift, error)
}
