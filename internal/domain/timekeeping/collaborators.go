package timekeeping

import "context"

// OvertimeApprovalSource is the filing-system collaborator. A recompute
// resyncs the day's overtime against the approved filing: overtime on a day
// with an approved filing counts as approved and is capped at the filed
// minutes; without one it stays in the for-approval bucket.
type OvertimeApprovalSource interface {
	// ApprovedOvertimeMinutes returns the approved filed minutes for the day
	// and whether such a filing exists.
	ApprovedOvertimeMinutes(ctx context.Context, accountID, dateString, companyID string) (int, bool, error)
}
