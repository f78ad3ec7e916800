package cutoff

import "time"

// RangeStatus tracks a cutoff date range through the payroll pipeline.
type RangeStatus string

const (
	StatusOpen       RangeStatus = "OPEN"
	StatusProcessing RangeStatus = "PROCESSING"
	StatusClosed     RangeStatus = "CLOSED"
)

// Cutoff is a payroll period definition.
type Cutoff struct {
	ID        string
	CompanyID string
	Name      string
}

// DateRange is one concrete span of a cutoff.
type DateRange struct {
	ID        string
	CutoffID  string
	CompanyID string
	Start     time.Time
	End       time.Time
	Status    RangeStatus
}

// Totals is the per-employee aggregate payroll reads for one cutoff range.
// Minute buckets sum the adjusted (post-grace, override-effective) daily
// values; nothing is recomputed here.
type Totals struct {
	AccountID string

	WorkMinutesApproved        int
	WorkMinutesForApproval     int
	OvertimeMinutesApproved    int
	OvertimeMinutesForApproval int
	LateMinutes                int
	UndertimeMinutes           int
	NightDiffMinutes           int
	NightDiffOvertimeMinutes   int

	PresentDays int
	AbsentDays  int
	LeaveDays   int

	RegularHolidayCount int
	SpecialHolidayCount int
}
