package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/holiday"
	"github.com/kayod-erp/timekeeping-backend-go/internal/pkg/database"
)

type holidayRepository struct {
	db *database.DB
}

// ListByDate implements holiday.Repository.
func (h *holidayRepository) ListByDate(ctx context.Context, date time.Time, companyID string) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, h.db)

	query := `
		SELECT id, company_id, name, type, date
		FROM holidays
		WHERE date = $1
		  AND (company_id = $2 OR company_id IS NULL)
		ORDER BY type ASC
	`

	rows, err := q.Query(ctx, query, date, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	return collectHolidays(rows)
}

// ListByRange implements holiday.Repository.
func (h *holidayRepository) ListByRange(ctx context.Context, from, to time.Time, companyID string) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, h.db)

	query := `
		SELECT id, company_id, name, type, date
		FROM holidays
		WHERE date >= $1
		  AND date <= $2
		  AND (company_id = $3 OR company_id IS NULL)
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, from, to, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	return collectHolidays(rows)
}

func collectHolidays(rows pgx.Rows) ([]holiday.Holiday, error) {
	var holidays []holiday.Holiday
	for rows.Next() {
		var hol holiday.Holiday
		if err := rows.Scan(&hol.ID, &hol.CompanyID, &hol.Name, &hol.Type, &hol.Date); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, hol)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate holidays: %w", err)
	}

	return holidays, nil
}

func NewHolidayRepository(db *database.DB) holiday.Repository {
	return &holidayRepository{db: db}
}
