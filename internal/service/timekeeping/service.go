package timekeeping

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/holiday"
	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/shift"
	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/timekeeping"
)

type ServiceImpl struct {
	punches    timekeeping.PunchRepository
	logs       timekeeping.LogRepository
	dailies    timekeeping.DailyRepository
	overrides  timekeeping.OverrideRepository
	holidays   holiday.Repository
	recomputer *Recomputer
	loc        *time.Location
}

func NewTimekeepingService(
	punches timekeeping.PunchRepository,
	logs timekeeping.LogRepository,
	dailies timekeeping.DailyRepository,
	overrides timekeeping.OverrideRepository,
	holidays holiday.Repository,
	recomputer *Recomputer,
	loc *time.Location,
) timekeeping.Service {
	return &ServiceImpl{
		punches:    punches,
		logs:       logs,
		dailies:    dailies,
		overrides:  overrides,
		holidays:   holidays,
		recomputer: recomputer,
		loc:        loc,
	}
}

// IngestPunch implements timekeeping.Service.
func (s *ServiceImpl) IngestPunch(ctx context.Context, req timekeeping.IngestPunchRequest, companyID string) (timekeeping.OutputResponse, error) {
	if err := req.Validate(); err != nil {
		return timekeeping.OutputResponse{}, err
	}

	punch := req.Punch(companyID)
	created, err := s.punches.Create(ctx, punch)
	if err != nil {
		return timekeeping.OutputResponse{}, fmt.Errorf("failed to create punch: %w", err)
	}

	origin := created.TimeIn.In(s.loc)
	if err := s.recomputeTouchedDates(ctx, created, companyID); err != nil {
		return timekeeping.OutputResponse{}, err
	}

	return s.GetDay(ctx, created.AccountID, origin.Format(timekeeping.DateLayout), companyID)
}

// DeletePunch implements timekeeping.Service.
func (s *ServiceImpl) DeletePunch(ctx context.Context, id string, companyID string) error {
	deleted, err := s.punches.Delete(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, timekeeping.ErrPunchNotFound) {
			return timekeeping.ErrPunchNotFound
		}
		return fmt.Errorf("failed to delete punch: %w", err)
	}
	return s.recomputeTouchedDates(ctx, deleted, companyID)
}

// recomputeTouchedDates re-derives the punch's origin date, and the checkout
// date when the interval crossed midnight.
func (s *ServiceImpl) recomputeTouchedDates(ctx context.Context, punch timekeeping.RawPunch, companyID string) error {
	origin := punch.TimeIn.In(s.loc)
	if err := s.recomputer.Recompute(ctx, punch.AccountID, origin, companyID); err != nil {
		return err
	}
	out := punch.TimeOut.In(s.loc)
	if out.Format(timekeeping.DateLayout) != origin.Format(timekeeping.DateLayout) {
		if err := s.recomputer.Recompute(ctx, punch.AccountID, out, companyID); err != nil {
			return err
		}
	}
	return nil
}

// GetDay implements timekeeping.Service. A missing record triggers exactly
// one recompute before the retry; the blank response is the terminal
// fallback, so the read path can never loop.
func (s *ServiceImpl) GetDay(ctx context.Context, accountID, dateString, companyID string) (timekeeping.OutputResponse, error) {
	if accountID == "" {
		return timekeeping.OutputResponse{}, timekeeping.ErrAccountRequired
	}
	date, err := time.ParseInLocation(timekeeping.DateLayout, dateString, s.loc)
	if err != nil {
		return timekeeping.OutputResponse{}, timekeeping.ErrInvalidDate
	}

	daily, err := s.dailies.GetByAccountAndDate(ctx, accountID, dateString, companyID)
	if errors.Is(err, timekeeping.ErrDailyNotFound) {
		if recErr := s.recomputer.Recompute(ctx, accountID, date, companyID); recErr != nil {
			return timekeeping.OutputResponse{}, recErr
		}
		daily, err = s.dailies.GetByAccountAndDate(ctx, accountID, dateString, companyID)
		if errors.Is(err, timekeeping.ErrDailyNotFound) {
			return s.blankResponse(accountID, dateString), nil
		}
	}
	if err != nil {
		return timekeeping.OutputResponse{}, fmt.Errorf("failed to get daily record: %w", err)
	}

	return s.buildOutput(ctx, daily, date, companyID)
}

// GetRange implements timekeeping.Service.
func (s *ServiceImpl) GetRange(ctx context.Context, accountID, fromDate, toDate, companyID string) ([]timekeeping.OutputResponse, error) {
	from, err := time.ParseInLocation(timekeeping.DateLayout, fromDate, s.loc)
	if err != nil {
		return nil, timekeeping.ErrInvalidDate
	}
	to, err := time.ParseInLocation(timekeeping.DateLayout, toDate, s.loc)
	if err != nil {
		return nil, timekeeping.ErrInvalidDate
	}
	if from.After(to) {
		return nil, timekeeping.ErrInvalidRange
	}

	var out []timekeeping.OutputResponse
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		resp, err := s.GetDay(ctx, accountID, d.Format(timekeeping.DateLayout), companyID)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

// ListRawLogs implements timekeeping.Service.
func (s *ServiceImpl) ListRawLogs(ctx context.Context, filter timekeeping.RawLogFilter, companyID string) (timekeeping.ListLogsResponse, error) {
	if err := filter.Validate(); err != nil {
		return timekeeping.ListLogsResponse{}, err
	}

	logs, total, err := s.logs.ListRaw(ctx, filter, companyID)
	if err != nil {
		return timekeeping.ListLogsResponse{}, fmt.Errorf("failed to list raw logs: %w", err)
	}

	responses := make([]timekeeping.LogResponse, 0, len(logs))
	for _, l := range logs {
		responses = append(responses, mapLogToResponse(l))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return timekeeping.ListLogsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Logs:       responses,
	}, nil
}

// Recompute implements timekeeping.Service.
func (s *ServiceImpl) Recompute(ctx context.Context, accountID, dateString, companyID string) error {
	date, err := time.ParseInLocation(timekeeping.DateLayout, dateString, s.loc)
	if err != nil {
		return timekeeping.ErrInvalidDate
	}
	return s.recomputer.Recompute(ctx, accountID, date, companyID)
}

// RecomputeRange implements timekeeping.Service.
func (s *ServiceImpl) RecomputeRange(ctx context.Context, accountID, fromDate, toDate, companyID string) error {
	from, err := time.ParseInLocation(timekeeping.DateLayout, fromDate, s.loc)
	if err != nil {
		return timekeeping.ErrInvalidDate
	}
	to, err := time.ParseInLocation(timekeeping.DateLayout, toDate, s.loc)
	if err != nil {
		return timekeeping.ErrInvalidDate
	}
	return s.recomputer.RecomputeRange(ctx, accountID, from, to, companyID)
}

func (s *ServiceImpl) blankResponse(accountID, dateString string) timekeeping.OutputResponse {
	return timekeeping.OutputResponse{
		AccountID:         accountID,
		DateString:        dateString,
		ActiveShiftType:   shift.ActiveNone,
		IsEligibleHoliday: true,
		IsBlank:           true,
	}
}

func (s *ServiceImpl) buildOutput(ctx context.Context, daily timekeeping.Daily, date time.Time, companyID string) (timekeeping.OutputResponse, error) {
	var override *timekeeping.Override
	if daily.OverrideID != nil {
		ov, err := s.overrides.GetByDailyID(ctx, daily.ID, companyID)
		if err == nil {
			override = &ov
		} else if !errors.Is(err, timekeeping.ErrOverrideNotFound) {
			return timekeeping.OutputResponse{}, fmt.Errorf("failed to get override: %w", err)
		}
	}

	entries, err := s.holidays.ListByDate(ctx, date, companyID)
	if err != nil {
		return timekeeping.OutputResponse{}, fmt.Errorf("failed to list holidays: %w", err)
	}
	holidayResponses := make([]timekeeping.HolidayResponse, 0, len(entries))
	for _, h := range entries {
		holidayResponses = append(holidayResponses, timekeeping.HolidayResponse{
			Type: string(h.Type),
			Name: h.Name,
		})
	}

	return mapDailyToResponse(daily, override, holidayResponses), nil
}

func mapDailyToResponse(daily timekeeping.Daily, override *timekeeping.Override, holidays []timekeeping.HolidayResponse) timekeeping.OutputResponse {
	effective := daily.Effective(override)
	snapshot := daily.ShiftSnapshot

	return timekeeping.OutputResponse{
		ID:              daily.ID,
		AccountID:       daily.AccountID,
		DateString:      daily.DateString,
		ActiveShiftType: daily.ActiveShiftType,
		ShiftSnapshot:   &snapshot,
		Summary: timekeeping.SummaryResponse{
			WorkMinutes:              effective.WorkMinutes,
			BreakMinutes:             daily.BreakMinutes,
			OvertimeMinutes:          effective.OvertimeMinutes,
			LateMinutes:              effective.LateMinutes,
			UndertimeMinutes:         effective.UndertimeMinutes,
			NightDiffMinutes:         effective.NightDiffMinutes,
			NightDiffOvertimeMinutes: effective.NightDiffOvertimeMinutes,
			IsOverridden:             effective.IsOverridden,
		},
		GraceAudit: timekeeping.GraceAudit{
			RawLateMinutes:           daily.Computed.RawLateMinutes,
			AdjustedLateMinutes:      daily.LateMinutes,
			RawUndertimeMinutes:      daily.Computed.RawUndertimeMinutes,
			AdjustedUndertimeMinutes: daily.UndertimeMinutes,
			RawOvertimeMinutes:       daily.Computed.RawOvertimeMinutes,
			AdjustedOvertimeMinutes:  daily.OvertimeMinutes,
		},
		IsDayApproved:         daily.IsDayApproved,
		IsDayForApproval:      daily.IsDayForApproval,
		IsOvertimeApproved:    daily.IsOvertimeApproved,
		IsExtraDay:            daily.IsExtraDay,
		IsRestDay:             daily.IsRestDay,
		IsAbsent:              daily.IsAbsent,
		IsEligibleHoliday:     daily.IsEligibleHoliday,
		HolidayOverrideSet:    daily.EligibleHolidayOverride != nil,
		RegularHolidayCount:   daily.RegularHolidayCount,
		SpecialHolidayCount:   daily.SpecialHolidayCount,
		Holidays:              holidays,
		HasApprovedLeave:      daily.HasApprovedLeave,
		LeaveCompensationType: daily.LeaveCompensationType,
	}
}

func mapLogToResponse(l timekeeping.Log) timekeeping.LogResponse {
	return timekeeping.LogResponse{
		ID:               l.ID,
		AccountID:        l.AccountID,
		DateString:       l.DateString,
		TimeIn:           l.TimeIn.Format("2006-01-02 15:04:05"),
		TimeOut:          l.TimeOut.Format("2006-01-02 15:04:05"),
		Type:             string(l.Type),
		IsRaw:            l.IsRaw,
		IsNextDayOverlap: l.IsNextDayOverlap,
	}
}
