package timekeeping

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/leave"
	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/payrollgroup"
	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/shift"
	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/timekeeping"
)

// Recomputer re-derives daily timekeeping records from persisted raw data.
// It never re-ingests punches; running it twice with unchanged inputs yields
// identical output. Overrides and approval flags survive recompute.
type Recomputer struct {
	punches   timekeeping.PunchRepository
	logs      timekeeping.LogRepository
	dailies   timekeeping.DailyRepository
	overrides timekeeping.OverrideRepository
	resolver  *ShiftResolver
	holidays  *HolidayResolver
	groups    payrollgroup.Repository
	leaves    leave.Checker
	filings   timekeeping.OvertimeApprovalSource
	loc       *time.Location
	keys      *keyedMutex
}

func NewRecomputer(
	punches timekeeping.PunchRepository,
	logs timekeeping.LogRepository,
	dailies timekeeping.DailyRepository,
	overrides timekeeping.OverrideRepository,
	resolver *ShiftResolver,
	holidays *HolidayResolver,
	groups payrollgroup.Repository,
	leaves leave.Checker,
	filings timekeeping.OvertimeApprovalSource,
	loc *time.Location,
) *Recomputer {
	return &Recomputer{
		punches:   punches,
		logs:      logs,
		dailies:   dailies,
		overrides: overrides,
		resolver:  resolver,
		holidays:  holidays,
		groups:    groups,
		leaves:    leaves,
		filings:   filings,
		loc:       loc,
		keys:      newKeyedMutex(),
	}
}

// Recompute re-derives one employee-date. Concurrent recomputes for the same
// account are serialized.
func (r *Recomputer) Recompute(ctx context.Context, accountID string, date time.Time, companyID string) error {
	unlock := r.keys.Lock(accountID)
	defer unlock()
	return r.recomputeLocked(ctx, accountID, date, companyID)
}

// RecomputeRange re-derives [from, to] in chronological order. Order matters
// within one employee: midnight-crossing segments and approval state can
// depend on the preceding day.
func (r *Recomputer) RecomputeRange(ctx context.Context, accountID string, from, to time.Time, companyID string) error {
	if from.After(to) {
		return timekeeping.ErrInvalidRange
	}
	unlock := r.keys.Lock(accountID)
	defer unlock()

	for d := r.midnight(from); !d.After(r.midnight(to)); d = d.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.recomputeLocked(ctx, accountID, d, companyID); err != nil {
			return err
		}
	}
	return nil
}

func (r *Recomputer) midnight(t time.Time) time.Time {
	y, m, d := t.In(r.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, r.loc)
}

func (r *Recomputer) recomputeLocked(ctx context.Context, accountID string, date time.Time, companyID string) error {
	if accountID == "" {
		return timekeeping.ErrAccountRequired
	}
	date = r.midnight(date)
	dateString := date.Format(timekeeping.DateLayout)

	// The punch window reaches one day back and two forward so segments
	// spilling over midnight land on their origin date.
	windowFrom := date.AddDate(0, 0, -1).UTC()
	windowTo := date.AddDate(0, 0, 2).UTC()
	punches, err := r.punches.ListByAccountAndRange(ctx, accountID, windowFrom, windowTo, companyID)
	if err != nil {
		return fmt.Errorf("failed to list punches: %w", err)
	}

	grouped, err := GroupPunches(punches, r.loc)
	if err != nil {
		return err
	}
	segments := grouped[dateString]

	resolved, err := r.resolver.Resolve(ctx, accountID, date, companyID)
	if err != nil {
		return err
	}

	group, err := r.groups.GetByAccount(ctx, accountID, companyID)
	if err != nil {
		return fmt.Errorf("failed to get payroll group: %w", err)
	}
	if resolved.Shift != nil && resolved.Shift.Type != shift.ShiftTimeBound && resolved.Shift.TargetHours == 0 {
		resolved.Shift.TargetHours = group.FixedTargetHours
	}

	approval, err := r.leaves.HasApprovedLeave(ctx, accountID, date, companyID)
	if err != nil {
		return fmt.Errorf("failed to check approved leave: %w", err)
	}

	// FrozenAt is the computed date, not wall-clock now, so repeated
	// recomputes with unchanged inputs produce identical snapshots.
	snapshot := shift.SnapshotOf(resolved, date)

	classification := Classify(ClassifyInput{
		Date:             date,
		Shift:            snapshot,
		Segments:         segments,
		Group:            group,
		HasApprovedLeave: approval.Has,
	})

	_, counts, err := r.holidays.Resolve(ctx, date, companyID)
	if err != nil {
		return err
	}

	daily := timekeeping.Daily{
		AccountID:  accountID,
		CompanyID:  companyID,
		DateString: dateString,

		WorkMinutes:              classification.WorkMinutes,
		BreakMinutes:             classification.BreakMinutes,
		LateMinutes:              classification.LateMinutes,
		UndertimeMinutes:         classification.UndertimeMinutes,
		OvertimeMinutes:          classification.OvertimeMinutes,
		NightDiffMinutes:         classification.NightDiffMinutes,
		NightDiffOvertimeMinutes: classification.NightDiffOvertimeMinutes,

		Computed: timekeeping.Computed{
			RawLateMinutes:      classification.RawLateMinutes,
			RawUndertimeMinutes: classification.RawUndertimeMinutes,
			RawOvertimeMinutes:  classification.RawOvertimeMinutes,
		},

		IsExtraDay: classification.IsExtraDay,
		IsRestDay:  classification.IsRestDay,
		IsAbsent:   classification.IsAbsent,

		RegularHolidayCount: counts.Regular,
		SpecialHolidayCount: counts.Special,

		HasApprovedLeave:      approval.Has,
		LeaveCompensationType: approval.CompensationType,

		ActiveShiftType: resolved.Source,
		ShiftSnapshot:   snapshot,
	}

	// Manual state survives recompute: approval flags, the eligibility
	// override, and the override row are carried over from the prior row.
	var override *timekeeping.Override
	existing, err := r.dailies.GetByAccountAndDate(ctx, accountID, dateString, companyID)
	switch {
	case err == nil:
		daily.ID = existing.ID
		daily.IsDayApproved = existing.IsDayApproved
		daily.EligibleHolidayOverride = existing.EligibleHolidayOverride
		daily.OverrideID = existing.OverrideID
		if existing.OverrideID != nil {
			ov, ovErr := r.overrides.GetByDailyID(ctx, existing.ID, companyID)
			if ovErr == nil {
				override = &ov
			} else if !errors.Is(ovErr, timekeeping.ErrOverrideNotFound) {
				return fmt.Errorf("failed to get override: %w", ovErr)
			} else {
				daily.OverrideID = nil
			}
		}
	case errors.Is(err, timekeeping.ErrDailyNotFound):
		// First recompute for this date creates the row.
	default:
		return fmt.Errorf("failed to get daily record: %w", err)
	}

	daily.IsEligibleHoliday = Eligibility(daily.EligibleHolidayOverride)

	// Resync overtime against the approved filing.
	filedMinutes, hasFiling, err := r.filings.ApprovedOvertimeMinutes(ctx, accountID, dateString, companyID)
	if err != nil {
		return fmt.Errorf("failed to resync overtime filing: %w", err)
	}
	if hasFiling {
		daily.IsOvertimeApproved = true
		if daily.OvertimeMinutes > filedMinutes {
			daily.OvertimeMinutes = filedMinutes
			if daily.NightDiffOvertimeMinutes > filedMinutes {
				daily.NightDiffOvertimeMinutes = filedMinutes
			}
		}
	}

	effective := daily.Effective(override)
	daily.IsDayForApproval = !daily.IsDayApproved && effective.WorkMinutes+effective.OvertimeMinutes > 0

	stored, err := r.dailies.Upsert(ctx, daily)
	if err != nil {
		return fmt.Errorf("failed to upsert daily record: %w", err)
	}

	logs := RawLogs(accountID, companyID, segments)
	logs = append(logs, ProcessedLogs(accountID, companyID, dateString, date, classification)...)
	if err := r.logs.ReplaceForDate(ctx, accountID, dateString, companyID, logs); err != nil {
		return fmt.Errorf("failed to replace logs: %w", err)
	}

	// Conflict detection is a reporting side effect: grouping already
	// coalesced the overlap, so the record stays correct either way.
	for _, c := range DetectConflicts(punches) {
		slog.Warn("overlapping punches detected",
			"account_id", accountID,
			"date", dateString,
			"first_punch", c.FirstID,
			"second_punch", c.SecondID,
		)
	}

	slog.Debug("recomputed daily timekeeping",
		"account_id", accountID,
		"date", dateString,
		"work_minutes", stored.WorkMinutes,
		"shift_source", stored.ActiveShiftType,
	)
	return nil
}

// Conflict is one overlapping punch pair found during recompute.
type Conflict struct {
	FirstID  string
	SecondID string
}

// DetectConflicts reports punch pairs whose intervals intersect.
func DetectConflicts(punches []timekeeping.RawPunch) []Conflict {
	var conflicts []Conflict
	for i := 0; i < len(punches); i++ {
		for j := i + 1; j < len(punches); j++ {
			a, b := punches[i], punches[j]
			if a.TimeIn.Before(b.TimeOut) && b.TimeIn.Before(a.TimeOut) {
				conflicts = append(conflicts, Conflict{FirstID: a.ID, SecondID: b.ID})
			}
		}
	}
	return conflicts
}
