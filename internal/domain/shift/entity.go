package shift

import "time"

// ShiftType describes how a shift's expected hours are derived.
type ShiftType string

const (
	ShiftTimeBound ShiftType = "TIME_BOUND"
	ShiftFlexitime ShiftType = "FLEXITIME"
	ShiftExtraDay  ShiftType = "EXTRA_DAY"
	ShiftRestDay   ShiftType = "REST_DAY"
)

// ActiveShiftType identifies which shift source won resolution for a day.
// Sources are a strict priority order, highest first.
type ActiveShiftType string

const (
	ActiveScheduleAdjustment ActiveShiftType = "SCHEDULE_ADJUSTMENT"
	ActiveIndividualSchedule ActiveShiftType = "INDIVIDUAL_SCHEDULE"
	ActiveTeamSchedule       ActiveShiftType = "TEAM_SCHEDULE"
	ActiveManualSchedule     ActiveShiftType = "MANUAL_SCHEDULE"
	ActiveRegularShift       ActiveShiftType = "REGULAR_SHIFT"
	ActiveNone               ActiveShiftType = "NONE"
)

// Window is a single time range within a shift definition. Start and End are
// minutes from midnight local time (0..1439). A window with End <= Start, or
// flagged IsNextDay, extends past midnight into the following calendar day.
type Window struct {
	Start       int  `json:"start"`
	End         int  `json:"end"`
	IsBreakTime bool `json:"is_break_time"`
	IsNextDay   bool `json:"is_next_day"`
}

// Shift is a resolved work-shift definition for one day.
// TargetHours is derived from the windows for TIME_BOUND shifts; for
// FLEXITIME, EXTRA_DAY and REST_DAY it is the configured fixed value.
type Shift struct {
	ID          string
	CompanyID   string
	Name        string
	Type        ShiftType
	Windows     []Window
	TargetHours float64
	BreakHours  float64
}

// IsWorkDay reports whether the shift expects attendance at all.
func (s Shift) IsWorkDay() bool {
	return s.Type == ShiftTimeBound || s.Type == ShiftFlexitime
}

// Resolved pairs the winning shift with the source that produced it.
// A nil Shift with ActiveNone means no source had a definition for the day.
type Resolved struct {
	Shift  *Shift
	Source ActiveShiftType
}

// Snapshot is the frozen copy of a resolved shift stored on the daily record
// at computation time, so later shift edits do not rewrite history. It is a
// plain value object; JSON encoding happens only at the storage boundary.
type Snapshot struct {
	ShiftID     string          `json:"shift_id"`
	Name        string          `json:"name"`
	Type        ShiftType       `json:"type"`
	Source      ActiveShiftType `json:"source"`
	Windows     []Window        `json:"windows"`
	TargetHours float64         `json:"target_hours"`
	BreakHours  float64         `json:"break_hours"`
	FrozenAt    time.Time       `json:"frozen_at"`
}

// SnapshotOf freezes a resolution result.
func SnapshotOf(r Resolved, at time.Time) Snapshot {
	if r.Shift == nil {
		return Snapshot{Source: ActiveNone, FrozenAt: at}
	}
	windows := make([]Window, len(r.Shift.Windows))
	copy(windows, r.Shift.Windows)
	return Snapshot{
		ShiftID:     r.Shift.ID,
		Name:        r.Shift.Name,
		Type:        r.Shift.Type,
		Source:      r.Source,
		Windows:     windows,
		TargetHours: r.Shift.TargetHours,
		BreakHours:  r.Shift.BreakHours,
		FrozenAt:    at,
	}
}
