// Package memory provides mutex-guarded in-memory repository
// implementations used by the simulation ingest path and service tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/timekeeping"
)

type PunchRepository struct {
	mu      sync.RWMutex
	punches map[string]timekeeping.RawPunch
}

func NewPunchRepository() *PunchRepository {
	return &PunchRepository{punches: make(map[string]timekeeping.RawPunch)}
}

// Create implements timekeeping.PunchRepository.
func (r *PunchRepository) Create(_ context.Context, punch timekeeping.RawPunch) (timekeeping.RawPunch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if punch.ID == "" {
		punch.ID = uuid.NewString()
	}
	if punch.CreatedAt.IsZero() {
		punch.CreatedAt = time.Now().UTC()
	}
	r.punches[punch.ID] = punch
	return punch, nil
}

// Delete implements timekeeping.PunchRepository.
func (r *PunchRepository) Delete(_ context.Context, id string, companyID string) (timekeeping.RawPunch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	punch, ok := r.punches[id]
	if !ok || punch.CompanyID != companyID {
		return timekeeping.RawPunch{}, timekeeping.ErrPunchNotFound
	}
	delete(r.punches, id)
	return punch, nil
}

// ListByAccountAndRange implements timekeeping.PunchRepository.
func (r *PunchRepository) ListByAccountAndRange(_ context.Context, accountID string, from, to time.Time, companyID string) ([]timekeeping.RawPunch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []timekeeping.RawPunch
	for _, p := range r.punches {
		if p.AccountID != accountID || p.CompanyID != companyID {
			continue
		}
		if p.TimeOut.Before(from) || !p.TimeIn.Before(to) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TimeIn.Before(out[j].TimeIn) })
	return out, nil
}
