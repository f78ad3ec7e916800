package payrollgroup

import "context"

type Repository interface {
	// GetByAccount returns the payroll group governing an employee.
	GetByAccount(ctx context.Context, accountID string, companyID string) (PayrollGroup, error)
}
