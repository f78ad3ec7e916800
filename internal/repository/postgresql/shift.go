package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/shift"
	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/timekeeping"
	"github.com/kayod-erp/timekeeping-backend-go/internal/pkg/database"
)

type shiftRepository struct {
	db *database.DB
}

const shiftColumns = `s.id, s.company_id, s.name, s.type, s.windows, s.target_hours, s.break_hours`

// ScheduleAdjustmentFor implements shift.Repository.
func (r *shiftRepository) ScheduleAdjustmentFor(ctx context.Context, accountID string, date time.Time, companyID string) (*shift.Shift, error) {
	query := `
		SELECT ` + shiftColumns + `
		FROM schedule_adjustments sa
		JOIN shifts s ON s.id = sa.shift_id
		WHERE sa.account_id = $1
		  AND sa.date_string = $2
		  AND s.company_id = $3
		ORDER BY sa.created_at DESC
		LIMIT 1
	`
	return r.queryShift(ctx, query, accountID, date.Format(timekeeping.DateLayout), companyID)
}

// IndividualScheduleFor implements shift.Repository.
func (r *shiftRepository) IndividualScheduleFor(ctx context.Context, accountID string, date time.Time, companyID string) (*shift.Shift, error) {
	query := `
		SELECT ` + shiftColumns + `
		FROM individual_schedules ind
		JOIN shifts s ON s.id = ind.shift_id
		WHERE ind.account_id = $1
		  AND ind.date_string = $2
		  AND s.company_id = $3
		LIMIT 1
	`
	return r.queryShift(ctx, query, accountID, date.Format(timekeeping.DateLayout), companyID)
}

// TeamScheduleFor implements shift.Repository. The employee's team membership
// routes to the team's schedule row for the date.
func (r *shiftRepository) TeamScheduleFor(ctx context.Context, accountID string, date time.Time, companyID string) (*shift.Shift, error) {
	query := `
		SELECT ` + shiftColumns + `
		FROM team_members tm
		JOIN team_schedules ts ON ts.team_id = tm.team_id AND ts.date_string = $2
		JOIN shifts s ON s.id = ts.shift_id
		WHERE tm.account_id = $1
		  AND s.company_id = $3
		LIMIT 1
	`
	return r.queryShift(ctx, query, accountID, date.Format(timekeeping.DateLayout), companyID)
}

// ManualScheduleFor implements shift.Repository.
func (r *shiftRepository) ManualScheduleFor(ctx context.Context, accountID string, date time.Time, companyID string) (*shift.Shift, error) {
	query := `
		SELECT ` + shiftColumns + `
		FROM manual_schedules ms
		JOIN shifts s ON s.id = ms.shift_id
		WHERE ms.account_id = $1
		  AND ms.date_string = $2
		  AND s.company_id = $3
		LIMIT 1
	`
	return r.queryShift(ctx, query, accountID, date.Format(timekeeping.DateLayout), companyID)
}

// RegularShiftFor implements shift.Repository. The weekly pattern keys on the
// date's weekday, 0 = Sunday.
func (r *shiftRepository) RegularShiftFor(ctx context.Context, accountID string, date time.Time, companyID string) (*shift.Shift, error) {
	query := `
		SELECT ` + shiftColumns + `
		FROM regular_shifts rs
		JOIN shifts s ON s.id = rs.shift_id
		WHERE rs.account_id = $1
		  AND rs.weekday = $2
		  AND s.company_id = $3
		LIMIT 1
	`
	return r.queryShift(ctx, query, accountID, int(date.Weekday()), companyID)
}

func (r *shiftRepository) queryShift(ctx context.Context, query string, args ...interface{}) (*shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	var sh shift.Shift
	var windows []byte
	err := q.QueryRow(ctx, query, args...).Scan(
		&sh.ID, &sh.CompanyID, &sh.Name, &sh.Type, &windows,
		&sh.TargetHours, &sh.BreakHours,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query shift: %w", err)
	}

	if len(windows) > 0 {
		if err := json.Unmarshal(windows, &sh.Windows); err != nil {
			return nil, fmt.Errorf("failed to decode shift windows: %w", err)
		}
	}

	return &sh, nil
}

func NewShiftRepository(db *database.DB) shift.Repository {
	return &shiftRepository{db: db}
}
