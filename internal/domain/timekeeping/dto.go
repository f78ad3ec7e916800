package timekeeping

import (
	"strings"
	"time"

	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/shift"
	"github.com/kayod-erp/timekeeping-backend-go/internal/pkg/validator"
)

type IngestPunchRequest struct {
	AccountID string `json:"account_id"`
	TimeIn    string `json:"time_in"`
	TimeOut   string `json:"time_out"`
	Source    string `json:"source"`
}

func (r *IngestPunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AccountID) {
		errs = append(errs, validator.ValidationError{
			Field:   "account_id",
			Message: "account_id is required",
		})
	}

	timeIn, okIn := validator.IsValidDateTime(r.TimeIn)
	if !okIn {
		errs = append(errs, validator.ValidationError{
			Field:   "time_in",
			Message: "time_in must be an RFC3339 timestamp",
		})
	}
	timeOut, okOut := validator.IsValidDateTime(r.TimeOut)
	if !okOut {
		errs = append(errs, validator.ValidationError{
			Field:   "time_out",
			Message: "time_out must be an RFC3339 timestamp",
		})
	}
	if okIn && okOut {
		if !timeIn.Before(timeOut) {
			errs = append(errs, validator.ValidationError{
				Field:   "time_in",
				Message: "time_in must be before time_out",
			})
		}
		if timeOut.Sub(timeIn) > 24*time.Hour {
			errs = append(errs, validator.ValidationError{
				Field:   "time_out",
				Message: "punch must not exceed 24 hours",
			})
		}
	}

	if r.Source == "" {
		r.Source = string(SourceManual)
	}
	if !validator.IsInSlice(r.Source, PunchSourceValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "source",
			Message: "source must be one of: " + strings.Join(PunchSourceValues, ", "),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Punch converts a validated request into the entity. Timestamps are stored
// in UTC regardless of the offset the client sent.
func (r *IngestPunchRequest) Punch(companyID string) RawPunch {
	timeIn, _ := validator.IsValidDateTime(r.TimeIn)
	timeOut, _ := validator.IsValidDateTime(r.TimeOut)
	return RawPunch{
		AccountID: r.AccountID,
		CompanyID: companyID,
		TimeIn:    timeIn.UTC(),
		TimeOut:   timeOut.UTC(),
		Source:    PunchSource(r.Source),
	}
}

type SetOverrideRequest struct {
	DailyID                  string `json:"daily_id"`
	WorkMinutes              int    `json:"work_minutes"`
	OvertimeMinutes          int    `json:"overtime_minutes"`
	LateMinutes              int    `json:"late_minutes"`
	UndertimeMinutes         int    `json:"undertime_minutes"`
	NightDiffMinutes         int    `json:"night_diff_minutes"`
	NightDiffOvertimeMinutes int    `json:"night_diff_overtime_minutes"`
}

func (r *SetOverrideRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.DailyID) {
		errs = append(errs, validator.ValidationError{
			Field:   "daily_id",
			Message: "daily_id is required",
		})
	}

	fields := map[string]int{
		"work_minutes":                r.WorkMinutes,
		"overtime_minutes":            r.OvertimeMinutes,
		"late_minutes":                r.LateMinutes,
		"undertime_minutes":           r.UndertimeMinutes,
		"night_diff_minutes":          r.NightDiffMinutes,
		"night_diff_overtime_minutes": r.NightDiffOvertimeMinutes,
	}
	for field, v := range fields {
		if v < 0 {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must be a non-negative number",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RecomputeRequest struct {
	AccountID string  `json:"account_id"`
	Date      *string `json:"date,omitempty"`
	FromDate  *string `json:"from_date,omitempty"`
	ToDate    *string `json:"to_date,omitempty"`
}

func (r *RecomputeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AccountID) {
		errs = append(errs, validator.ValidationError{
			Field:   "account_id",
			Message: "account_id is required",
		})
	}

	hasSingle := r.Date != nil && *r.Date != ""
	hasRange := r.FromDate != nil && *r.FromDate != "" && r.ToDate != nil && *r.ToDate != ""
	if !hasSingle && !hasRange {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "either date or from_date and to_date are required",
		})
	}
	if hasSingle {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be YYYY-MM-DD",
			})
		}
	}
	if hasRange {
		from, okFrom := validator.IsValidDate(*r.FromDate)
		to, okTo := validator.IsValidDate(*r.ToDate)
		if !okFrom {
			errs = append(errs, validator.ValidationError{
				Field:   "from_date",
				Message: "from_date must be YYYY-MM-DD",
			})
		}
		if !okTo {
			errs = append(errs, validator.ValidationError{
				Field:   "to_date",
				Message: "to_date must be YYYY-MM-DD",
			})
		}
		if okFrom && okTo && from.After(to) {
			errs = append(errs, validator.ValidationError{
				Field:   "from_date",
				Message: "from_date must not be after to_date",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RawLogFilter struct {
	AccountID *string `json:"account_id,omitempty"`
	FromDate  *string `json:"from_date,omitempty"`
	ToDate    *string `json:"to_date,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *RawLogFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// GraceAudit exposes the raw-vs-adjusted pairs so grace forgiveness is
// visible to callers.
type GraceAudit struct {
	RawLateMinutes           int `json:"raw_late_minutes"`
	AdjustedLateMinutes      int `json:"adjusted_late_minutes"`
	RawUndertimeMinutes      int `json:"raw_undertime_minutes"`
	AdjustedUndertimeMinutes int `json:"adjusted_undertime_minutes"`
	RawOvertimeMinutes       int `json:"raw_overtime_minutes"`
	AdjustedOvertimeMinutes  int `json:"adjusted_overtime_minutes"`
}

type HolidayResponse struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

type SummaryResponse struct {
	WorkMinutes              int  `json:"work_minutes"`
	BreakMinutes             int  `json:"break_minutes"`
	OvertimeMinutes          int  `json:"overtime_minutes"`
	LateMinutes              int  `json:"late_minutes"`
	UndertimeMinutes         int  `json:"undertime_minutes"`
	NightDiffMinutes         int  `json:"night_diff_minutes"`
	NightDiffOvertimeMinutes int  `json:"night_diff_overtime_minutes"`
	IsOverridden             bool `json:"is_overridden"`
}

// OutputResponse is the per-date view exposed to payroll and the UI.
type OutputResponse struct {
	ID         string `json:"id,omitempty"`
	AccountID  string `json:"account_id"`
	DateString string `json:"date"`

	ActiveShiftType shift.ActiveShiftType `json:"active_shift_type"`
	ShiftSnapshot   *shift.Snapshot       `json:"shift_snapshot,omitempty"`

	Summary    SummaryResponse `json:"summary"`
	GraceAudit GraceAudit      `json:"grace_audit"`

	IsDayApproved      bool `json:"is_day_approved"`
	IsDayForApproval   bool `json:"is_day_for_approval"`
	IsOvertimeApproved bool `json:"is_overtime_approved"`
	IsExtraDay         bool `json:"is_extra_day"`
	IsRestDay          bool `json:"is_rest_day"`
	IsAbsent           bool `json:"is_absent"`

	IsEligibleHoliday   bool              `json:"is_eligible_holiday"`
	HolidayOverrideSet  bool              `json:"holiday_override_set"`
	RegularHolidayCount int               `json:"regular_holiday_count"`
	SpecialHolidayCount int               `json:"special_holiday_count"`
	Holidays            []HolidayResponse `json:"holidays,omitempty"`

	HasApprovedLeave      bool   `json:"has_approved_leave"`
	LeaveCompensationType string `json:"leave_compensation_type,omitempty"`

	// IsBlank marks the safe empty response returned when no record could be
	// computed for the date.
	IsBlank bool `json:"is_blank,omitempty"`
}

type LogResponse struct {
	ID               string `json:"id"`
	AccountID        string `json:"account_id"`
	DateString       string `json:"date"`
	TimeIn           string `json:"time_in"`
	TimeOut          string `json:"time_out"`
	Type             string `json:"type,omitempty"`
	IsRaw            bool   `json:"is_raw"`
	IsNextDayOverlap bool   `json:"is_next_day_overlap"`
}

type ListLogsResponse struct {
	TotalCount int64         `json:"total_count"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"total_pages"`
	Showing    string        `json:"showing"`
	Logs       []LogResponse `json:"logs"`
}
