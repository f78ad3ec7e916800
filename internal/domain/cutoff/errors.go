package cutoff

import "errors"

var (
	ErrCutoffNotFound    = errors.New("cutoff not found")
	ErrDateRangeNotFound = errors.New("cutoff date range not found")
)
