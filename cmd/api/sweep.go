package main

import (
	"context"
	"fmt"
	"time"

	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/timekeeping"
	"github.com/kayod-erp/timekeeping-backend-go/internal/pkg/database"
)

// sweepYesterday re-derives yesterday's record for every employee who punched
// that day, so days whose output was never requested still end up computed
// before payroll reads them.
func sweepYesterday(ctx context.Context, db *database.DB, svc timekeeping.Service, loc *time.Location) error {
	now := time.Now().In(loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -1)
	dayEnd := dayStart.AddDate(0, 0, 1)
	dateString := dayStart.Format(timekeeping.DateLayout)

	query := `
		SELECT DISTINCT account_id, company_id
		FROM raw_punches
		WHERE time_out > $1
		  AND time_in < $2
	`

	rows, err := db.Query(ctx, query, dayStart.UTC(), dayEnd.UTC())
	if err != nil {
		return fmt.Errorf("failed to list punched accounts: %w", err)
	}
	defer rows.Close()

	type member struct {
		accountID string
		companyID string
	}
	var members []member
	for rows.Next() {
		var m member
		if err := rows.Scan(&m.accountID, &m.companyID); err != nil {
			return fmt.Errorf("failed to scan punched account: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate punched accounts: %w", err)
	}

	for _, m := range members {
		if err := svc.Recompute(ctx, m.accountID, dateString, m.companyID); err != nil {
			return fmt.Errorf("failed to recompute %s for %s: %w", dateString, m.accountID, err)
		}
	}

	return nil
}
