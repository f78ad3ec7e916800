package payrollgroup

// PayrollGroup carries the per-company timekeeping knobs: grace-period
// thresholds and the night-differential window.
//
// Grace values are thresholds, not deductions: an infraction at or below the
// threshold is forgiven entirely, one above it is kept unchanged.
type PayrollGroup struct {
	ID        string
	CompanyID string
	Name      string

	LateGraceMinutes      int
	UndertimeGraceMinutes int
	OvertimeGraceMinutes  int

	// Night window as minutes from midnight local time. The window wraps
	// midnight when end < start (the nominal 22:00-06:00 is 1320 and 360).
	NightDiffStartMinute int
	NightDiffEndMinute   int

	// Fixed target hours for shifts whose hours are not window-derived
	// (FLEXITIME, EXTRA_DAY, REST_DAY).
	FixedTargetHours float64
}

// Default returns the fallback config used when a company has no payroll
// group row yet.
func Default(companyID string) PayrollGroup {
	return PayrollGroup{
		CompanyID:            companyID,
		Name:                 "default",
		NightDiffStartMinute: 22 * 60,
		NightDiffEndMinute:   6 * 60,
		FixedTargetHours:     8,
	}
}
