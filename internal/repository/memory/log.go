package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/timekeeping"
)

type LogRepository struct {
	mu   sync.RWMutex
	logs map[dailyKey][]timekeeping.Log
}

func NewLogRepository() *LogRepository {
	return &LogRepository{logs: make(map[dailyKey][]timekeeping.Log)}
}

// ReplaceForDate implements timekeeping.LogRepository.
func (r *LogRepository) ReplaceForDate(_ context.Context, accountID, dateString, companyID string, logs []timekeeping.Log) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := make([]timekeeping.Log, 0, len(logs))
	for _, l := range logs {
		if l.ID == "" {
			l.ID = uuid.NewString()
		}
		stored = append(stored, l)
	}
	r.logs[dailyKey{accountID, dateString}] = stored
	return nil
}

// ListByAccountAndDate implements timekeeping.LogRepository.
func (r *LogRepository) ListByAccountAndDate(_ context.Context, accountID, dateString, companyID string) ([]timekeeping.Log, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	logs := r.logs[dailyKey{accountID, dateString}]
	out := make([]timekeeping.Log, len(logs))
	copy(out, logs)
	return out, nil
}

// ListRaw implements timekeeping.LogRepository.
func (r *LogRepository) ListRaw(_ context.Context, filter timekeeping.RawLogFilter, companyID string) ([]timekeeping.Log, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []timekeeping.Log
	for _, logs := range r.logs {
		for _, l := range logs {
			if !l.IsRaw || l.CompanyID != companyID {
				continue
			}
			if filter.AccountID != nil && l.AccountID != *filter.AccountID {
				continue
			}
			if filter.FromDate != nil && l.DateString < *filter.FromDate {
				continue
			}
			if filter.ToDate != nil && l.DateString > *filter.ToDate {
				continue
			}
			all = append(all, l)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].DateString != all[j].DateString {
			return all[i].DateString < all[j].DateString
		}
		return all[i].TimeIn.Before(all[j].TimeIn)
	})

	total := int64(len(all))
	start := (filter.Page - 1) * filter.Limit
	if start >= len(all) {
		return nil, total, nil
	}
	end := min(start+filter.Limit, len(all))
	return all[start:end], total, nil
}
