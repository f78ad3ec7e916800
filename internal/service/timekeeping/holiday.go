package timekeeping

import (
	"context"
	"fmt"
	"time"

	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/holiday"
)

// HolidayResolver attaches holiday calendar data and eligibility to a day.
type HolidayResolver struct {
	holidays holiday.Repository
}

func NewHolidayResolver(holidays holiday.Repository) *HolidayResolver {
	return &HolidayResolver{holidays: holidays}
}

// Resolve returns the calendar entries for a date plus their counts.
// An empty calendar is a safe default, not an error.
func (h *HolidayResolver) Resolve(ctx context.Context, date time.Time, companyID string) ([]holiday.Holiday, holiday.Counts, error) {
	entries, err := h.holidays.ListByDate(ctx, date, companyID)
	if err != nil {
		return nil, holiday.Counts{}, fmt.Errorf("failed to list holidays: %w", err)
	}
	return entries, holiday.CountOf(entries), nil
}

// Eligibility resolves the three-state manual override: unset means the
// default (eligible), set means the override wins until cleared.
func Eligibility(override *bool) bool {
	if override != nil {
		return *override
	}
	return true
}
