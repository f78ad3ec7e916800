package timekeeping

import (
	"context"
	"fmt"
	"time"

	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/shift"
)

// ShiftResolver picks the single authoritative shift for an employee-day.
// Sources form a strict priority order, so ties are impossible.
type ShiftResolver struct {
	shifts shift.Repository
}

func NewShiftResolver(shifts shift.Repository) *ShiftResolver {
	return &ShiftResolver{shifts: shifts}
}

type shiftSource struct {
	kind   shift.ActiveShiftType
	lookup func(ctx context.Context, accountID string, date time.Time, companyID string) (*shift.Shift, error)
}

// Resolve evaluates the five sources highest-priority first and returns the
// first hit. No source having a definition is not an error: the result
// carries ActiveNone and downstream classification stays blank.
func (r *ShiftResolver) Resolve(ctx context.Context, accountID string, date time.Time, companyID string) (shift.Resolved, error) {
	sources := []shiftSource{
		{shift.ActiveScheduleAdjustment, r.shifts.ScheduleAdjustmentFor},
		{shift.ActiveIndividualSchedule, r.shifts.IndividualScheduleFor},
		{shift.ActiveTeamSchedule, r.shifts.TeamScheduleFor},
		{shift.ActiveManualSchedule, r.shifts.ManualScheduleFor},
		{shift.ActiveRegularShift, r.shifts.RegularShiftFor},
	}

	for _, src := range sources {
		s, err := src.lookup(ctx, accountID, date, companyID)
		if err != nil {
			return shift.Resolved{}, fmt.Errorf("failed to resolve %s shift: %w", src.kind, err)
		}
		if s != nil {
			return shift.Resolved{Shift: s, Source: src.kind}, nil
		}
	}

	return shift.Resolved{Source: shift.ActiveNone}, nil
}
