package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/holiday"
)

type HolidayRepository struct {
	mu       sync.RWMutex
	holidays []holiday.Holiday
}

func NewHolidayRepository() *HolidayRepository {
	return &HolidayRepository{}
}

func (r *HolidayRepository) Add(h holiday.Holiday) holiday.Holiday {
	r.mu.Lock()
	defer r.mu.Unlock()
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	r.holidays = append(r.holidays, h)
	return h
}

// ListByDate implements holiday.Repository.
func (r *HolidayRepository) ListByDate(_ context.Context, date time.Time, companyID string) ([]holiday.Holiday, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	y, m, d := date.Date()
	var out []holiday.Holiday
	for _, h := range r.holidays {
		if h.CompanyID != "" && h.CompanyID != companyID {
			continue
		}
		hy, hm, hd := h.Date.Date()
		if hy == y && hm == m && hd == d {
			out = append(out, h)
		}
	}
	return out, nil
}

// ListByRange implements holiday.Repository.
func (r *HolidayRepository) ListByRange(_ context.Context, from, to time.Time, companyID string) ([]holiday.Holiday, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []holiday.Holiday
	for _, h := range r.holidays {
		if h.CompanyID != "" && h.CompanyID != companyID {
			continue
		}
		if h.Date.Before(from) || h.Date.After(to) {
			continue
		}
		out = append(out, h)
	}
	return out, nil
}
