package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/timekeeping"
	"github.com/kayod-erp/timekeeping-backend-go/internal/pkg/database"
)

type overtimeFilingSource struct {
	db *database.DB
}

// ApprovedOvertimeMinutes implements timekeeping.OvertimeApprovalSource.
// Multiple approved filings on one date sum into a single cap.
func (o *overtimeFilingSource) ApprovedOvertimeMinutes(ctx context.Context, accountID, dateString, companyID string) (int, bool, error) {
	q := GetQuerier(ctx, o.db)

	query := `
		SELECT COALESCE(SUM(minutes), 0)
		FROM overtime_filings
		WHERE account_id = $1
		  AND company_id = $2
		  AND date_string = $3
		  AND status = 'APPROVED'
		HAVING COUNT(*) > 0
	`

	var minutes int
	err := q.QueryRow(ctx, query, accountID, companyID, dateString).Scan(&minutes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to get approved overtime filings: %w", err)
	}

	return minutes, true, nil
}

func NewOvertimeFilingSource(db *database.DB) timekeeping.OvertimeApprovalSource {
	return &overtimeFilingSource{db: db}
}
