package timekeeping

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/timekeeping"
)

// The mutating operations below share the recomputer's per-account lock, so
// a manual change and a recompute for the same employee never interleave.
// Each one re-reads the daily row after acquiring the lock; the unlocked
// read only learns the account key.

// SetOverride implements timekeeping.Service. An override fully replaces the
// six computed minute buckets downstream; creating one first deletes any
// prior override for the day, keeping at most one active.
func (s *ServiceImpl) SetOverride(ctx context.Context, req timekeeping.SetOverrideRequest, companyID string) (timekeeping.OutputResponse, error) {
	if err := req.Validate(); err != nil {
		return timekeeping.OutputResponse{}, err
	}

	daily, err := s.getDaily(ctx, req.DailyID, companyID)
	if err != nil {
		return timekeeping.OutputResponse{}, err
	}

	if err := s.applyOverrideLocked(ctx, req, daily.AccountID, companyID); err != nil {
		return timekeeping.OutputResponse{}, err
	}
	return s.GetDay(ctx, daily.AccountID, daily.DateString, companyID)
}

func (s *ServiceImpl) applyOverrideLocked(ctx context.Context, req timekeeping.SetOverrideRequest, accountID, companyID string) error {
	unlock := s.recomputer.keys.Lock(accountID)
	defer unlock()

	daily, err := s.getDaily(ctx, req.DailyID, companyID)
	if err != nil {
		return err
	}

	// Delete-then-create: the prior override, if any, is removed rather than
	// checked against a uniqueness constraint.
	if err := s.overrides.DeleteByDailyID(ctx, daily.ID, companyID); err != nil {
		return fmt.Errorf("failed to delete prior override: %w", err)
	}

	override, err := s.overrides.Create(ctx, timekeeping.Override{
		DailyID:                  daily.ID,
		WorkMinutes:              req.WorkMinutes,
		OvertimeMinutes:          req.OvertimeMinutes,
		LateMinutes:              req.LateMinutes,
		UndertimeMinutes:         req.UndertimeMinutes,
		NightDiffMinutes:         req.NightDiffMinutes,
		NightDiffOvertimeMinutes: req.NightDiffOvertimeMinutes,
	})
	if err != nil {
		return fmt.Errorf("failed to create override: %w", err)
	}

	daily.OverrideID = &override.ID
	effective := daily.Effective(&override)
	daily.IsDayForApproval = !daily.IsDayApproved && effective.WorkMinutes+effective.OvertimeMinutes > 0
	if _, err := s.dailies.Upsert(ctx, daily); err != nil {
		return fmt.Errorf("failed to link override: %w", err)
	}
	return nil
}

// ClearOverride implements timekeeping.Service. Clearing forces a recompute
// so the day reverts to purely computed values; the raw punches are not
// re-ingested.
func (s *ServiceImpl) ClearOverride(ctx context.Context, dailyID string, companyID string) (timekeeping.OutputResponse, error) {
	daily, err := s.getDaily(ctx, dailyID, companyID)
	if err != nil {
		return timekeeping.OutputResponse{}, err
	}

	if err := s.clearOverrideLocked(ctx, dailyID, daily.AccountID, companyID); err != nil {
		return timekeeping.OutputResponse{}, err
	}
	return s.GetDay(ctx, daily.AccountID, daily.DateString, companyID)
}

func (s *ServiceImpl) clearOverrideLocked(ctx context.Context, dailyID, accountID, companyID string) error {
	unlock := s.recomputer.keys.Lock(accountID)
	defer unlock()

	daily, err := s.getDaily(ctx, dailyID, companyID)
	if err != nil {
		return err
	}

	if err := s.overrides.DeleteByDailyID(ctx, daily.ID, companyID); err != nil {
		return fmt.Errorf("failed to delete override: %w", err)
	}
	daily.OverrideID = nil
	if _, err := s.dailies.Upsert(ctx, daily); err != nil {
		return fmt.Errorf("failed to unlink override: %w", err)
	}

	return s.recomputeDateString(ctx, accountID, daily.DateString, companyID)
}

// SetDayApproval implements timekeeping.Service.
func (s *ServiceImpl) SetDayApproval(ctx context.Context, dailyID string, approved bool, companyID string) (timekeeping.OutputResponse, error) {
	daily, err := s.getDaily(ctx, dailyID, companyID)
	if err != nil {
		return timekeeping.OutputResponse{}, err
	}

	if err := s.setDayApprovalLocked(ctx, dailyID, daily.AccountID, approved, companyID); err != nil {
		return timekeeping.OutputResponse{}, err
	}
	return s.GetDay(ctx, daily.AccountID, daily.DateString, companyID)
}

func (s *ServiceImpl) setDayApprovalLocked(ctx context.Context, dailyID, accountID string, approved bool, companyID string) error {
	unlock := s.recomputer.keys.Lock(accountID)
	defer unlock()

	daily, err := s.getDaily(ctx, dailyID, companyID)
	if err != nil {
		return err
	}

	daily.IsDayApproved = approved
	if _, err := s.dailies.Upsert(ctx, daily); err != nil {
		return fmt.Errorf("failed to update approval: %w", err)
	}

	// Approval is a recompute trigger: the gate and dependent flags are
	// re-derived rather than patched in place.
	return s.recomputeDateString(ctx, accountID, daily.DateString, companyID)
}

// ToggleHolidayEligibility implements timekeeping.Service. Three states:
// unset flips to the opposite of the default, set clears back to unset.
func (s *ServiceImpl) ToggleHolidayEligibility(ctx context.Context, dailyID string, companyID string) (timekeeping.OutputResponse, error) {
	daily, err := s.getDaily(ctx, dailyID, companyID)
	if err != nil {
		return timekeeping.OutputResponse{}, err
	}

	if err := s.toggleEligibilityLocked(ctx, dailyID, daily.AccountID, companyID); err != nil {
		return timekeeping.OutputResponse{}, err
	}
	return s.GetDay(ctx, daily.AccountID, daily.DateString, companyID)
}

func (s *ServiceImpl) toggleEligibilityLocked(ctx context.Context, dailyID, accountID, companyID string) error {
	unlock := s.recomputer.keys.Lock(accountID)
	defer unlock()

	daily, err := s.getDaily(ctx, dailyID, companyID)
	if err != nil {
		return err
	}

	if daily.EligibleHolidayOverride == nil {
		flipped := !Eligibility(nil)
		daily.EligibleHolidayOverride = &flipped
	} else {
		daily.EligibleHolidayOverride = nil
	}
	daily.IsEligibleHoliday = Eligibility(daily.EligibleHolidayOverride)
	if _, err := s.dailies.Upsert(ctx, daily); err != nil {
		return fmt.Errorf("failed to update eligibility: %w", err)
	}

	return s.recomputeDateString(ctx, accountID, daily.DateString, companyID)
}

func (s *ServiceImpl) getDaily(ctx context.Context, dailyID, companyID string) (timekeeping.Daily, error) {
	daily, err := s.dailies.GetByID(ctx, dailyID, companyID)
	if err != nil {
		if errors.Is(err, timekeeping.ErrDailyNotFound) {
			return timekeeping.Daily{}, timekeeping.ErrDailyNotFound
		}
		return timekeeping.Daily{}, fmt.Errorf("failed to get daily record: %w", err)
	}
	return daily, nil
}

// recomputeDateString re-derives one date; the caller must already hold the
// account lock.
func (s *ServiceImpl) recomputeDateString(ctx context.Context, accountID, dateString, companyID string) error {
	date, err := time.ParseInLocation(timekeeping.DateLayout, dateString, s.loc)
	if err != nil {
		return timekeeping.ErrInvalidDate
	}
	return s.recomputer.recomputeLocked(ctx, accountID, date, companyID)
}
