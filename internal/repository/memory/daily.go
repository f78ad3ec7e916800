package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/timekeeping"
)

type dailyKey struct {
	accountID  string
	dateString string
}

type DailyRepository struct {
	mu      sync.RWMutex
	byKey   map[dailyKey]timekeeping.Daily
	keyByID map[string]dailyKey
}

func NewDailyRepository() *DailyRepository {
	return &DailyRepository{
		byKey:   make(map[dailyKey]timekeeping.Daily),
		keyByID: make(map[string]dailyKey),
	}
}

// Upsert implements timekeeping.DailyRepository.
func (r *DailyRepository) Upsert(_ context.Context, daily timekeeping.Daily) (timekeeping.Daily, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := dailyKey{daily.AccountID, daily.DateString}
	if existing, ok := r.byKey[key]; ok {
		daily.ID = existing.ID
		daily.CreatedAt = existing.CreatedAt
	}
	if daily.ID == "" {
		daily.ID = uuid.NewString()
		daily.CreatedAt = time.Now().UTC()
	}
	daily.UpdatedAt = time.Now().UTC()

	r.byKey[key] = daily
	r.keyByID[daily.ID] = key
	return daily, nil
}

// GetByID implements timekeeping.DailyRepository.
func (r *DailyRepository) GetByID(_ context.Context, id string, companyID string) (timekeeping.Daily, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key, ok := r.keyByID[id]
	if !ok {
		return timekeeping.Daily{}, timekeeping.ErrDailyNotFound
	}
	daily := r.byKey[key]
	if daily.CompanyID != companyID {
		return timekeeping.Daily{}, timekeeping.ErrDailyNotFound
	}
	return daily, nil
}

// GetByAccountAndDate implements timekeeping.DailyRepository.
func (r *DailyRepository) GetByAccountAndDate(_ context.Context, accountID, dateString, companyID string) (timekeeping.Daily, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	daily, ok := r.byKey[dailyKey{accountID, dateString}]
	if !ok || daily.CompanyID != companyID {
		return timekeeping.Daily{}, timekeeping.ErrDailyNotFound
	}
	return daily, nil
}

// ListByAccountAndRange implements timekeeping.DailyRepository.
func (r *DailyRepository) ListByAccountAndRange(_ context.Context, accountID, fromDate, toDate, companyID string) ([]timekeeping.Daily, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []timekeeping.Daily
	for key, d := range r.byKey {
		if key.accountID != accountID || d.CompanyID != companyID {
			continue
		}
		if key.dateString < fromDate || key.dateString > toDate {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateString < out[j].DateString })
	return out, nil
}

// ListByRange implements timekeeping.DailyRepository.
func (r *DailyRepository) ListByRange(_ context.Context, fromDate, toDate, companyID string) ([]timekeeping.Daily, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []timekeeping.Daily
	for key, d := range r.byKey {
		if d.CompanyID != companyID {
			continue
		}
		if key.dateString < fromDate || key.dateString > toDate {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AccountID != out[j].AccountID {
			return out[i].AccountID < out[j].AccountID
		}
		return out[i].DateString < out[j].DateString
	})
	return out, nil
}
