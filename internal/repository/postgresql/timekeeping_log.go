package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/timekeeping"
	"github.com/kayod-erp/timekeeping-backend-go/internal/pkg/database"
)

type logRepository struct {
	db *database.DB
}

// ReplaceForDate implements timekeeping.LogRepository. The delete and the
// inserts run in one transaction so a recompute swaps the employee-day's
// logs atomically.
func (l *logRepository) ReplaceForDate(ctx context.Context, accountID, dateString, companyID string, logs []timekeeping.Log) error {
	return WithTransaction(ctx, l.db, func(tx pgx.Tx) error {
		deleteQuery := `
			DELETE FROM timekeeping_logs
			WHERE account_id = $1
			  AND date_string = $2
			  AND company_id = $3
		`
		if _, err := tx.Exec(ctx, deleteQuery, accountID, dateString, companyID); err != nil {
			return fmt.Errorf("failed to delete logs: %w", err)
		}

		insertQuery := `
			INSERT INTO timekeeping_logs (
				account_id, company_id, date_string, time_in, time_out,
				type, is_raw, is_next_day_overlap
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`
		for _, log := range logs {
			_, err := tx.Exec(ctx, insertQuery,
				accountID, companyID, dateString,
				log.TimeIn, log.TimeOut, log.Type, log.IsRaw, log.IsNextDayOverlap,
			)
			if err != nil {
				return fmt.Errorf("failed to insert log: %w", err)
			}
		}

		return nil
	})
}

// ListByAccountAndDate implements timekeeping.LogRepository.
func (l *logRepository) ListByAccountAndDate(ctx context.Context, accountID, dateString, companyID string) ([]timekeeping.Log, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT id, account_id, company_id, date_string, time_in, time_out,
			   type, is_raw, is_next_day_overlap
		FROM timekeeping_logs
		WHERE account_id = $1
		  AND date_string = $2
		  AND company_id = $3
		ORDER BY time_in ASC
	`

	rows, err := q.Query(ctx, query, accountID, dateString, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}
	defer rows.Close()

	var logs []timekeeping.Log
	for rows.Next() {
		var log timekeeping.Log
		if err := rows.Scan(
			&log.ID, &log.AccountID, &log.CompanyID, &log.DateString,
			&log.TimeIn, &log.TimeOut, &log.Type, &log.IsRaw, &log.IsNextDayOverlap,
		); err != nil {
			return nil, fmt.Errorf("failed to scan log: %w", err)
		}
		logs = append(logs, log)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate logs: %w", err)
	}

	return logs, nil
}

// ListRaw implements timekeeping.LogRepository.
func (l *logRepository) ListRaw(ctx context.Context, filter timekeeping.RawLogFilter, companyID string) ([]timekeeping.Log, int64, error) {
	q := GetQuerier(ctx, l.db)

	where := `
		WHERE company_id = $1
		  AND is_raw = TRUE
		  AND ($2::text IS NULL OR account_id = $2)
		  AND ($3::text IS NULL OR date_string >= $3)
		  AND ($4::text IS NULL OR date_string <= $4)
	`

	countQuery := `SELECT COUNT(*) FROM timekeeping_logs ` + where

	var total int64
	err := q.QueryRow(ctx, countQuery, companyID, filter.AccountID, filter.FromDate, filter.ToDate).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count raw logs: %w", err)
	}

	listQuery := `
		SELECT id, account_id, company_id, date_string, time_in, time_out,
			   type, is_raw, is_next_day_overlap
		FROM timekeeping_logs ` + where + `
		ORDER BY date_string DESC, time_in ASC
		LIMIT $5 OFFSET $6
	`

	offset := (filter.Page - 1) * filter.Limit
	rows, err := q.Query(ctx, listQuery,
		companyID, filter.AccountID, filter.FromDate, filter.ToDate,
		filter.Limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list raw logs: %w", err)
	}
	defer rows.Close()

	var logs []timekeeping.Log
	for rows.Next() {
		var log timekeeping.Log
		if err := rows.Scan(
			&log.ID, &log.AccountID, &log.CompanyID, &log.DateString,
			&log.TimeIn, &log.TimeOut, &log.Type, &log.IsRaw, &log.IsNextDayOverlap,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan raw log: %w", err)
		}
		logs = append(logs, log)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate raw logs: %w", err)
	}

	return logs, total, nil
}

func NewLogRepository(db *database.DB) timekeeping.LogRepository {
	return &logRepository{db: db}
}
