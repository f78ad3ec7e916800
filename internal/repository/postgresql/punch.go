package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/timekeeping"
	"github.com/kayod-erp/timekeeping-backend-go/internal/pkg/database"
)

type punchRepository struct {
	db *database.DB
}

// Create implements timekeeping.PunchRepository.
func (p *punchRepository) Create(ctx context.Context, punch timekeeping.RawPunch) (timekeeping.RawPunch, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		INSERT INTO raw_punches (account_id, company_id, time_in, time_out, source)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		punch.AccountID,
		punch.CompanyID,
		punch.TimeIn,
		punch.TimeOut,
		punch.Source,
	).Scan(&punch.ID, &punch.CreatedAt)

	if err != nil {
		return timekeeping.RawPunch{}, fmt.Errorf("failed to create punch: %w", err)
	}

	return punch, nil
}

// Delete implements timekeeping.PunchRepository.
func (p *punchRepository) Delete(ctx context.Context, id string, companyID string) (timekeeping.RawPunch, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		DELETE FROM raw_punches
		WHERE id = $1
		  AND company_id = $2
		RETURNING id, account_id, company_id, time_in, time_out, source, created_at
	`

	var punch timekeeping.RawPunch
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&punch.ID, &punch.AccountID, &punch.CompanyID,
		&punch.TimeIn, &punch.TimeOut, &punch.Source, &punch.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timekeeping.RawPunch{}, timekeeping.ErrPunchNotFound
		}
		return timekeeping.RawPunch{}, fmt.Errorf("failed to delete punch: %w", err)
	}

	return punch, nil
}

// ListByAccountAndRange implements timekeeping.PunchRepository.
func (p *punchRepository) ListByAccountAndRange(ctx context.Context, accountID string, from, to time.Time, companyID string) ([]timekeeping.RawPunch, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT id, account_id, company_id, time_in, time_out, source, created_at
		FROM raw_punches
		WHERE account_id = $1
		  AND company_id = $2
		  AND time_out > $3
		  AND time_in < $4
		ORDER BY time_in ASC
	`

	rows, err := q.Query(ctx, query, accountID, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list punches: %w", err)
	}
	defer rows.Close()

	var punches []timekeeping.RawPunch
	for rows.Next() {
		var punch timekeeping.RawPunch
		if err := rows.Scan(
			&punch.ID, &punch.AccountID, &punch.CompanyID,
			&punch.TimeIn, &punch.TimeOut, &punch.Source, &punch.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan punch: %w", err)
		}
		punches = append(punches, punch)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate punches: %w", err)
	}

	return punches, nil
}

func NewPunchRepository(db *database.DB) timekeeping.PunchRepository {
	return &punchRepository{db: db}
}
