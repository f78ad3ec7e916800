package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/leave"
	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/timekeeping"
	"github.com/kayod-erp/timekeeping-backend-go/internal/pkg/database"
)

type leaveChecker struct {
	db *database.DB
}

// HasApprovedLeave implements leave.Checker. Only approved, full-day filings
// whose date span covers the given date count.
func (l *leaveChecker) HasApprovedLeave(ctx context.Context, accountID string, date time.Time, companyID string) (leave.Approval, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT compensation_type
		FROM leave_requests
		WHERE account_id = $1
		  AND company_id = $2
		  AND status = 'APPROVED'
		  AND start_date <= $3
		  AND end_date >= $3
		LIMIT 1
	`

	dateString := date.Format(timekeeping.DateLayout)

	var compensationType string
	err := q.QueryRow(ctx, query, accountID, companyID, dateString).Scan(&compensationType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Approval{}, nil
		}
		return leave.Approval{}, fmt.Errorf("failed to check approved leave: %w", err)
	}

	return leave.Approval{Has: true, CompensationType: compensationType}, nil
}

func NewLeaveChecker(db *database.DB) leave.Checker {
	return &leaveChecker{db: db}
}
