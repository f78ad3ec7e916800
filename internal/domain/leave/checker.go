// Package leave holds the collaborator interface the timekeeping engine
// needs from the leave module. Quota and filing logic live elsewhere.
package leave

import (
	"context"
	"time"
)

// Approval is the answer to "does this employee have an approved full-day
// leave on this date".
type Approval struct {
	Has              bool
	CompensationType string
}

type Checker interface {
	HasApprovedLeave(ctx context.Context, accountID string, date time.Time, companyID string) (Approval, error)
}
