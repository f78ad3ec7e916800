package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/shift"
	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/timekeeping"
	"github.com/kayod-erp/timekeeping-backend-go/internal/pkg/database"
)

type dailyRepository struct {
	db *database.DB
}

const dailyColumns = `
	id, account_id, company_id, date_string,
	work_minutes, break_minutes, late_minutes, undertime_minutes,
	overtime_minutes, night_diff_minutes, night_diff_overtime_minutes,
	raw_late_minutes, raw_undertime_minutes, raw_overtime_minutes,
	is_day_approved, is_day_for_approval, is_overtime_approved,
	is_extra_day, is_rest_day, is_absent,
	is_eligible_holiday, eligible_holiday_override,
	regular_holiday_count, special_holiday_count,
	has_approved_leave, leave_compensation_type,
	override_id, active_shift_type, shift_snapshot,
	created_at, updated_at
`

// Upsert implements timekeeping.DailyRepository. The row is keyed by
// (account_id, date_string); a conflict replaces every computed column while
// the insert-time id and created_at survive.
func (d *dailyRepository) Upsert(ctx context.Context, daily timekeeping.Daily) (timekeeping.Daily, error) {
	q := GetQuerier(ctx, d.db)

	snapshot, err := json.Marshal(daily.ShiftSnapshot)
	if err != nil {
		return timekeeping.Daily{}, fmt.Errorf("failed to encode shift snapshot: %w", err)
	}

	query := `
		INSERT INTO daily_timekeeping (
			account_id, company_id, date_string,
			work_minutes, break_minutes, late_minutes, undertime_minutes,
			overtime_minutes, night_diff_minutes, night_diff_overtime_minutes,
			raw_late_minutes, raw_undertime_minutes, raw_overtime_minutes,
			is_day_approved, is_day_for_approval, is_overtime_approved,
			is_extra_day, is_rest_day, is_absent,
			is_eligible_holiday, eligible_holiday_override,
			regular_holiday_count, special_holiday_count,
			has_approved_leave, leave_compensation_type,
			override_id, active_shift_type, shift_snapshot
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28
		)
		ON CONFLICT (account_id, date_string) DO UPDATE SET
			work_minutes = EXCLUDED.work_minutes,
			break_minutes = EXCLUDED.break_minutes,
			late_minutes = EXCLUDED.late_minutes,
			undertime_minutes = EXCLUDED.undertime_minutes,
			overtime_minutes = EXCLUDED.overtime_minutes,
			night_diff_minutes = EXCLUDED.night_diff_minutes,
			night_diff_overtime_minutes = EXCLUDED.night_diff_overtime_minutes,
			raw_late_minutes = EXCLUDED.raw_late_minutes,
			raw_undertime_minutes = EXCLUDED.raw_undertime_minutes,
			raw_overtime_minutes = EXCLUDED.raw_overtime_minutes,
			is_day_approved = EXCLUDED.is_day_approved,
			is_day_for_approval = EXCLUDED.is_day_for_approval,
			is_overtime_approved = EXCLUDED.is_overtime_approved,
			is_extra_day = EXCLUDED.is_extra_day,
			is_rest_day = EXCLUDED.is_rest_day,
			is_absent = EXCLUDED.is_absent,
			is_eligible_holiday = EXCLUDED.is_eligible_holiday,
			eligible_holiday_override = EXCLUDED.eligible_holiday_override,
			regular_holiday_count = EXCLUDED.regular_holiday_count,
			special_holiday_count = EXCLUDED.special_holiday_count,
			has_approved_leave = EXCLUDED.has_approved_leave,
			leave_compensation_type = EXCLUDED.leave_compensation_type,
			override_id = EXCLUDED.override_id,
			active_shift_type = EXCLUDED.active_shift_type,
			shift_snapshot = EXCLUDED.shift_snapshot,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		daily.AccountID, daily.CompanyID, daily.DateString,
		daily.WorkMinutes, daily.BreakMinutes, daily.LateMinutes, daily.UndertimeMinutes,
		daily.OvertimeMinutes, daily.NightDiffMinutes, daily.NightDiffOvertimeMinutes,
		daily.Computed.RawLateMinutes, daily.Computed.RawUndertimeMinutes, daily.Computed.RawOvertimeMinutes,
		daily.IsDayApproved, daily.IsDayForApproval, daily.IsOvertimeApproved,
		daily.IsExtraDay, daily.IsRestDay, daily.IsAbsent,
		daily.IsEligibleHoliday, daily.EligibleHolidayOverride,
		daily.RegularHolidayCount, daily.SpecialHolidayCount,
		daily.HasApprovedLeave, daily.LeaveCompensationType,
		daily.OverrideID, daily.ActiveShiftType, snapshot,
	).Scan(&daily.ID, &daily.CreatedAt, &daily.UpdatedAt)

	if err != nil {
		return timekeeping.Daily{}, fmt.Errorf("failed to upsert daily record: %w", err)
	}

	return daily, nil
}

// GetByID implements timekeeping.DailyRepository.
func (d *dailyRepository) GetByID(ctx context.Context, id string, companyID string) (timekeeping.Daily, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		SELECT ` + dailyColumns + `
		FROM daily_timekeeping
		WHERE id = $1
		  AND company_id = $2
	`

	daily, err := scanDaily(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timekeeping.Daily{}, timekeeping.ErrDailyNotFound
		}
		return timekeeping.Daily{}, fmt.Errorf("failed to get daily record: %w", err)
	}

	return daily, nil
}

// GetByAccountAndDate implements timekeeping.DailyRepository.
func (d *dailyRepository) GetByAccountAndDate(ctx context.Context, accountID, dateString, companyID string) (timekeeping.Daily, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		SELECT ` + dailyColumns + `
		FROM daily_timekeeping
		WHERE account_id = $1
		  AND date_string = $2
		  AND company_id = $3
	`

	daily, err := scanDaily(q.QueryRow(ctx, query, accountID, dateString, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timekeeping.Daily{}, timekeeping.ErrDailyNotFound
		}
		return timekeeping.Daily{}, fmt.Errorf("failed to get daily record: %w", err)
	}

	return daily, nil
}

// ListByAccountAndRange implements timekeeping.DailyRepository.
func (d *dailyRepository) ListByAccountAndRange(ctx context.Context, accountID, fromDate, toDate, companyID string) ([]timekeeping.Daily, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		SELECT ` + dailyColumns + `
		FROM daily_timekeeping
		WHERE account_id = $1
		  AND date_string >= $2
		  AND date_string <= $3
		  AND company_id = $4
		ORDER BY date_string ASC
	`

	rows, err := q.Query(ctx, query, accountID, fromDate, toDate, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily records: %w", err)
	}
	defer rows.Close()

	return collectDaily(rows)
}

// ListByRange implements timekeeping.DailyRepository.
func (d *dailyRepository) ListByRange(ctx context.Context, fromDate, toDate, companyID string) ([]timekeeping.Daily, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		SELECT ` + dailyColumns + `
		FROM daily_timekeeping
		WHERE date_string >= $1
		  AND date_string <= $2
		  AND company_id = $3
		ORDER BY account_id ASC, date_string ASC
	`

	rows, err := q.Query(ctx, query, fromDate, toDate, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily records: %w", err)
	}
	defer rows.Close()

	return collectDaily(rows)
}

func scanDaily(row pgx.Row) (timekeeping.Daily, error) {
	var daily timekeeping.Daily
	var snapshot []byte

	err := row.Scan(
		&daily.ID, &daily.AccountID, &daily.CompanyID, &daily.DateString,
		&daily.WorkMinutes, &daily.BreakMinutes, &daily.LateMinutes, &daily.UndertimeMinutes,
		&daily.OvertimeMinutes, &daily.NightDiffMinutes, &daily.NightDiffOvertimeMinutes,
		&daily.Computed.RawLateMinutes, &daily.Computed.RawUndertimeMinutes, &daily.Computed.RawOvertimeMinutes,
		&daily.IsDayApproved, &daily.IsDayForApproval, &daily.IsOvertimeApproved,
		&daily.IsExtraDay, &daily.IsRestDay, &daily.IsAbsent,
		&daily.IsEligibleHoliday, &daily.EligibleHolidayOverride,
		&daily.RegularHolidayCount, &daily.SpecialHolidayCount,
		&daily.HasApprovedLeave, &daily.LeaveCompensationType,
		&daily.OverrideID, &daily.ActiveShiftType, &snapshot,
		&daily.CreatedAt, &daily.UpdatedAt,
	)
	if err != nil {
		return timekeeping.Daily{}, err
	}

	if len(snapshot) > 0 {
		var snap shift.Snapshot
		if err := json.Unmarshal(snapshot, &snap); err != nil {
			return timekeeping.Daily{}, fmt.Errorf("failed to decode shift snapshot: %w", err)
		}
		daily.ShiftSnapshot = snap
	}

	return daily, nil
}

func collectDaily(rows pgx.Rows) ([]timekeeping.Daily, error) {
	var records []timekeeping.Daily
	for rows.Next() {
		daily, err := scanDaily(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily record: %w", err)
		}
		records = append(records, daily)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate daily records: %w", err)
	}

	return records, nil
}

func NewDailyRepository(db *database.DB) timekeeping.DailyRepository {
	return &dailyRepository{db: db}
}
