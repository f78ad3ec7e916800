package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/payrollgroup"
	"github.com/kayod-erp/timekeeping-backend-go/internal/pkg/database"
)

type payrollGroupRepository struct {
	db *database.DB
}

// GetByAccount implements payrollgroup.Repository. Employees without an
// assignment fall back to their company's group, and a company without any
// group row gets the package default. Missing config never fails a compute.
func (p *payrollGroupRepository) GetByAccount(ctx context.Context, accountID string, companyID string) (payrollgroup.PayrollGroup, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT g.id, g.company_id, g.name,
			   g.late_grace_minutes, g.undertime_grace_minutes, g.overtime_grace_minutes,
			   g.night_diff_start_minute, g.night_diff_end_minute, g.fixed_target_hours
		FROM payroll_groups g
		LEFT JOIN payroll_group_members m ON m.payroll_group_id = g.id AND m.account_id = $1
		WHERE g.company_id = $2
		ORDER BY m.account_id NULLS LAST
		LIMIT 1
	`

	var g payrollgroup.PayrollGroup
	err := q.QueryRow(ctx, query, accountID, companyID).Scan(
		&g.ID, &g.CompanyID, &g.Name,
		&g.LateGraceMinutes, &g.UndertimeGraceMinutes, &g.OvertimeGraceMinutes,
		&g.NightDiffStartMinute, &g.NightDiffEndMinute, &g.FixedTargetHours,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payrollgroup.Default(companyID), nil
		}
		return payrollgroup.PayrollGroup{}, fmt.Errorf("failed to get payroll group: %w", err)
	}

	return g, nil
}

func NewPayrollGroupRepository(db *database.DB) payrollgroup.Repository {
	return &payrollGroupRepository{db: db}
}
