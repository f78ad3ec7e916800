package timekeeping

import (
	"time"

	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/shift"
)

// PunchSource identifies where a raw punch came from.
type PunchSource string

const (
	SourceManual           PunchSource = "MANUAL"
	SourceBiometric        PunchSource = "BIOMETRIC"
	SourceSystem           PunchSource = "SYSTEM"
	SourceCertificate      PunchSource = "CERTIFICATE_OF_ATTENDANCE"
	SourceOfficialBusiness PunchSource = "OFFICIAL_BUSINESS"
	SourceExcelImport      PunchSource = "EXCEL_IMPORT"
)

// PunchSourceValues lists the accepted punch sources for validation.
var PunchSourceValues = []string{
	string(SourceManual), string(SourceBiometric), string(SourceSystem),
	string(SourceCertificate), string(SourceOfficialBusiness), string(SourceExcelImport),
}

// RawPunch is one immutable time-in/time-out pair in UTC. Punches are never
// edited; administrative delete removes the row and recomputes the affected
// dates.
type RawPunch struct {
	ID        string
	AccountID string
	CompanyID string
	TimeIn    time.Time
	TimeOut   time.Time
	Source    PunchSource
	CreatedAt time.Time
}

// BreakdownType tags a processed log segment with its minute bucket.
type BreakdownType string

const (
	BreakdownWork      BreakdownType = "WORK"
	BreakdownBreak     BreakdownType = "BREAK"
	BreakdownLate      BreakdownType = "LATE"
	BreakdownUndertime BreakdownType = "UNDERTIME"
	BreakdownOvertime  BreakdownType = "OVERTIME"
	BreakdownNightDiff BreakdownType = "NIGHT_DIFFERENTIAL"
)

// Log is a typed time segment attached to one employee-day. Raw logs echo the
// grouped punches; processed logs carry the classification output.
// IsNextDayOverlap marks minutes that belong to the shift's origin date but
// fall after midnight.
type Log struct {
	ID               string
	AccountID        string
	CompanyID        string
	DateString       string
	TimeIn           time.Time
	TimeOut          time.Time
	Type             BreakdownType
	IsRaw            bool
	IsNextDayOverlap bool
}

// Minutes returns the segment length in whole minutes.
func (l Log) Minutes() int {
	return int(l.TimeOut.Sub(l.TimeIn) / time.Minute)
}

// Computed holds the classification output before grace-period zeroing and
// before override shadowing. Kept alongside the adjusted values on the daily
// record so the grace effect is auditable.
type Computed struct {
	RawLateMinutes      int
	RawUndertimeMinutes int
	RawOvertimeMinutes  int
}

// Override pins explicit minute values for one day. When present its values
// fully replace the computed ones downstream; clearing it reverts the day to
// computed values. At most one override exists per daily record.
type Override struct {
	ID                       string
	DailyID                  string
	WorkMinutes              int
	OvertimeMinutes          int
	LateMinutes              int
	UndertimeMinutes         int
	NightDiffMinutes         int
	NightDiffOvertimeMinutes int
	CreatedAt                time.Time
}

// Daily is the per-employee-per-date aggregate record. DateString is the
// local calendar date acting as the grouping key; minute totals are the
// post-grace adjusted values. Exactly one row exists per (AccountID,
// DateString).
type Daily struct {
	ID         string
	AccountID  string
	CompanyID  string
	DateString string

	WorkMinutes              int
	BreakMinutes             int
	LateMinutes              int
	UndertimeMinutes         int
	OvertimeMinutes          int
	NightDiffMinutes         int
	NightDiffOvertimeMinutes int

	Computed Computed

	IsDayApproved      bool
	IsDayForApproval   bool
	IsOvertimeApproved bool
	IsExtraDay         bool
	IsRestDay          bool
	IsAbsent           bool

	IsEligibleHoliday       bool
	EligibleHolidayOverride *bool
	RegularHolidayCount     int
	SpecialHolidayCount     int

	HasApprovedLeave      bool
	LeaveCompensationType string

	OverrideID      *string
	ActiveShiftType shift.ActiveShiftType
	ShiftSnapshot   shift.Snapshot

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectiveSummary is the six-bucket minute view consumers read: override
// values when an override is pinned, computed values otherwise.
type EffectiveSummary struct {
	WorkMinutes              int
	OvertimeMinutes          int
	LateMinutes              int
	UndertimeMinutes         int
	NightDiffMinutes         int
	NightDiffOvertimeMinutes int
	IsOverridden             bool
}

// Effective applies override shadowing. The override, when present, replaces
// the computed values wholesale; it never blends with them.
func (d Daily) Effective(ov *Override) EffectiveSummary {
	if ov == nil {
		return EffectiveSummary{
			WorkMinutes:              d.WorkMinutes,
			OvertimeMinutes:          d.OvertimeMinutes,
			LateMinutes:              d.LateMinutes,
			UndertimeMinutes:         d.UndertimeMinutes,
			NightDiffMinutes:         d.NightDiffMinutes,
			NightDiffOvertimeMinutes: d.NightDiffOvertimeMinutes,
		}
	}
	return EffectiveSummary{
		WorkMinutes:              ov.WorkMinutes,
		OvertimeMinutes:          ov.OvertimeMinutes,
		LateMinutes:              ov.LateMinutes,
		UndertimeMinutes:         ov.UndertimeMinutes,
		NightDiffMinutes:         ov.NightDiffMinutes,
		NightDiffOvertimeMinutes: ov.NightDiffOvertimeMinutes,
		IsOverridden:             true,
	}
}

// DateLayout is the calendar-date key format used throughout the engine.
const DateLayout = "2006-01-02"
