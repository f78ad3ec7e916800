package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/timekeeping"
	"github.com/kayod-erp/timekeeping-backend-go/internal/pkg/database"
)

type overrideRepository struct {
	db *database.DB
}

// Create implements timekeeping.OverrideRepository.
func (o *overrideRepository) Create(ctx context.Context, ov timekeeping.Override) (timekeeping.Override, error) {
	q := GetQuerier(ctx, o.db)

	query := `
		INSERT INTO timekeeping_overrides (
			daily_id, work_minutes, overtime_minutes, late_minutes,
			undertime_minutes, night_diff_minutes, night_diff_overtime_minutes
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		ov.DailyID,
		ov.WorkMinutes,
		ov.OvertimeMinutes,
		ov.LateMinutes,
		ov.UndertimeMinutes,
		ov.NightDiffMinutes,
		ov.NightDiffOvertimeMinutes,
	).Scan(&ov.ID, &ov.CreatedAt)

	if err != nil {
		return timekeeping.Override{}, fmt.Errorf("failed to create override: %w", err)
	}

	return ov, nil
}

// GetByDailyID implements timekeeping.OverrideRepository.
func (o *overrideRepository) GetByDailyID(ctx context.Context, dailyID string, companyID string) (timekeeping.Override, error) {
	q := GetQuerier(ctx, o.db)

	query := `
		SELECT ov.id, ov.daily_id, ov.work_minutes, ov.overtime_minutes,
			   ov.late_minutes, ov.undertime_minutes, ov.night_diff_minutes,
			   ov.night_diff_overtime_minutes, ov.created_at
		FROM timekeeping_overrides ov
		JOIN daily_timekeeping d ON d.id = ov.daily_id
		WHERE ov.daily_id = $1
		  AND d.company_id = $2
	`

	var ov timekeeping.Override
	err := q.QueryRow(ctx, query, dailyID, companyID).Scan(
		&ov.ID, &ov.DailyID, &ov.WorkMinutes, &ov.OvertimeMinutes,
		&ov.LateMinutes, &ov.UndertimeMinutes, &ov.NightDiffMinutes,
		&ov.NightDiffOvertimeMinutes, &ov.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timekeeping.Override{}, timekeeping.ErrOverrideNotFound
		}
		return timekeeping.Override{}, fmt.Errorf("failed to get override: %w", err)
	}

	return ov, nil
}

// DeleteByDailyID implements timekeeping.OverrideRepository. Deleting a day
// with no override is not an error.
func (o *overrideRepository) DeleteByDailyID(ctx context.Context, dailyID string, companyID string) error {
	q := GetQuerier(ctx, o.db)

	query := `
		DELETE FROM timekeeping_overrides ov
		USING daily_timekeeping d
		WHERE d.id = ov.daily_id
		  AND ov.daily_id = $1
		  AND d.company_id = $2
	`

	if _, err := q.Exec(ctx, query, dailyID, companyID); err != nil {
		return fmt.Errorf("failed to delete override: %w", err)
	}

	return nil
}

func NewOverrideRepository(db *database.DB) timekeeping.OverrideRepository {
	return &overrideRepository{db: db}
}
