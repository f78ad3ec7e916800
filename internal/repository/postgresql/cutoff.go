package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/cutoff"
	"github.com/kayod-erp/timekeeping-backend-go/internal/pkg/database"
)

type cutoffRepository struct {
	db *database.DB
}

// GetDateRange implements cutoff.Repository.
func (c *cutoffRepository) GetDateRange(ctx context.Context, rangeID string, companyID string) (cutoff.DateRange, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT id, cutoff_id, company_id, start_date, end_date, status
		FROM cutoff_date_ranges
		WHERE id = $1
		  AND company_id = $2
	`

	var dr cutoff.DateRange
	err := q.QueryRow(ctx, query, rangeID, companyID).Scan(
		&dr.ID, &dr.CutoffID, &dr.CompanyID, &dr.Start, &dr.End, &dr.Status,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return cutoff.DateRange{}, cutoff.ErrDateRangeNotFound
		}
		return cutoff.DateRange{}, fmt.Errorf("failed to get cutoff date range: %w", err)
	}

	return dr, nil
}

// ListAccountIDs implements cutoff.Repository.
func (c *cutoffRepository) ListAccountIDs(ctx context.Context, cutoffID string, companyID string) ([]string, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT account_id
		FROM cutoff_members
		WHERE cutoff_id = $1
		  AND company_id = $2
		ORDER BY account_id ASC
	`

	rows, err := q.Query(ctx, query, cutoffID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cutoff members: %w", err)
	}
	defer rows.Close()

	var accountIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan cutoff member: %w", err)
		}
		accountIDs = append(accountIDs, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cutoff members: %w", err)
	}

	return accountIDs, nil
}

func NewCutoffRepository(db *database.DB) cutoff.Repository {
	return &cutoffRepository{db: db}
}
