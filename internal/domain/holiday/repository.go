package holiday

import (
	"context"
	"time"
)

// Repository is the read side of the external holiday calendar.
type Repository interface {
	// ListByDate returns the holiday records falling on one calendar date.
	// An empty slice means the date is an ordinary day.
	ListByDate(ctx context.Context, date time.Time, companyID string) ([]Holiday, error)

	// ListByRange returns holiday records with dates in [from, to] inclusive.
	ListByRange(ctx context.Context, from, to time.Time, companyID string) ([]Holiday, error)
}
