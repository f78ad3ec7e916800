package cutoff

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/cutoff"
	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/timekeeping"
)

// AggregatorImpl sums persisted daily records into per-employee cutoff
// totals. It is strictly read-only: nothing here triggers a recompute.
type AggregatorImpl struct {
	cutoffs   cutoff.Repository
	dailies   timekeeping.DailyRepository
	overrides timekeeping.OverrideRepository
}

func NewCutoffService(
	cutoffs cutoff.Repository,
	dailies timekeeping.DailyRepository,
	overrides timekeeping.OverrideRepository,
) cutoff.Service {
	return &AggregatorImpl{
		cutoffs:   cutoffs,
		dailies:   dailies,
		overrides: overrides,
	}
}

// Totals implements cutoff.Service.
func (a *AggregatorImpl) Totals(ctx context.Context, rangeID string, companyID string) ([]cutoff.Totals, error) {
	dateRange, err := a.cutoffs.GetDateRange(ctx, rangeID, companyID)
	if err != nil {
		if errors.Is(err, cutoff.ErrDateRangeNotFound) {
			return nil, cutoff.ErrDateRangeNotFound
		}
		return nil, fmt.Errorf("failed to get cutoff date range: %w", err)
	}

	fromDate := dateRange.Start.Format(timekeeping.DateLayout)
	toDate := dateRange.End.Format(timekeeping.DateLayout)
	dailies, err := a.dailies.ListByRange(ctx, fromDate, toDate, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily records: %w", err)
	}

	byAccount := make(map[string]*cutoff.Totals)
	for _, d := range dailies {
		t, ok := byAccount[d.AccountID]
		if !ok {
			t = &cutoff.Totals{AccountID: d.AccountID}
			byAccount[d.AccountID] = t
		}
		if err := a.accumulate(ctx, t, d, companyID); err != nil {
			return nil, err
		}
	}

	out := make([]cutoff.Totals, 0, len(byAccount))
	for _, t := range byAccount {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountID < out[j].AccountID })
	return out, nil
}

// TotalsForAccount implements cutoff.Service.
func (a *AggregatorImpl) TotalsForAccount(ctx context.Context, rangeID, accountID, companyID string) (cutoff.Totals, error) {
	dateRange, err := a.cutoffs.GetDateRange(ctx, rangeID, companyID)
	if err != nil {
		if errors.Is(err, cutoff.ErrDateRangeNotFound) {
			return cutoff.Totals{}, cutoff.ErrDateRangeNotFound
		}
		return cutoff.Totals{}, fmt.Errorf("failed to get cutoff date range: %w", err)
	}

	fromDate := dateRange.Start.Format(timekeeping.DateLayout)
	toDate := dateRange.End.Format(timekeeping.DateLayout)
	dailies, err := a.dailies.ListByAccountAndRange(ctx, accountID, fromDate, toDate, companyID)
	if err != nil {
		return cutoff.Totals{}, fmt.Errorf("failed to list daily records: %w", err)
	}

	totals := cutoff.Totals{AccountID: accountID}
	for _, d := range dailies {
		if err := a.accumulate(ctx, &totals, d, companyID); err != nil {
			return cutoff.Totals{}, err
		}
	}
	return totals, nil
}

// accumulate folds one daily record into the running totals using the
// override-effective minute values.
func (a *AggregatorImpl) accumulate(ctx context.Context, t *cutoff.Totals, d timekeeping.Daily, companyID string) error {
	var override *timekeeping.Override
	if d.OverrideID != nil {
		ov, err := a.overrides.GetByDailyID(ctx, d.ID, companyID)
		if err == nil {
			override = &ov
		} else if !errors.Is(err, timekeeping.ErrOverrideNotFound) {
			return fmt.Errorf("failed to get override: %w", err)
		}
	}
	effective := d.Effective(override)

	if d.IsDayApproved {
		t.WorkMinutesApproved += effective.WorkMinutes
	} else {
		t.WorkMinutesForApproval += effective.WorkMinutes
	}
	if d.IsDayApproved || d.IsOvertimeApproved {
		t.OvertimeMinutesApproved += effective.OvertimeMinutes
	} else {
		t.OvertimeMinutesForApproval += effective.OvertimeMinutes
	}
	t.LateMinutes += effective.LateMinutes
	t.UndertimeMinutes += effective.UndertimeMinutes
	t.NightDiffMinutes += effective.NightDiffMinutes
	t.NightDiffOvertimeMinutes += effective.NightDiffOvertimeMinutes

	switch {
	case d.HasApprovedLeave:
		// Approved leave adjusts the absence count downward.
		t.LeaveDays++
	case d.IsAbsent:
		t.AbsentDays++
	case effective.WorkMinutes > 0:
		t.PresentDays++
	}

	if d.IsEligibleHoliday {
		t.RegularHolidayCount += d.RegularHolidayCount
		t.SpecialHolidayCount += d.SpecialHolidayCount
	}
	return nil
}
