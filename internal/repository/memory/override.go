package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/timekeeping"
)

type OverrideRepository struct {
	mu        sync.RWMutex
	byDailyID map[string]timekeeping.Override
}

func NewOverrideRepository() *OverrideRepository {
	return &OverrideRepository{byDailyID: make(map[string]timekeeping.Override)}
}

// Create implements timekeeping.OverrideRepository.
func (r *OverrideRepository) Create(_ context.Context, ov timekeeping.Override) (timekeeping.Override, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ov.ID == "" {
		ov.ID = uuid.NewString()
	}
	ov.CreatedAt = time.Now().UTC()
	r.byDailyID[ov.DailyID] = ov
	return ov, nil
}

// GetByDailyID implements timekeeping.OverrideRepository.
func (r *OverrideRepository) GetByDailyID(_ context.Context, dailyID string, companyID string) (timekeeping.Override, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ov, ok := r.byDailyID[dailyID]
	if !ok {
		return timekeeping.Override{}, timekeeping.ErrOverrideNotFound
	}
	return ov, nil
}

// DeleteByDailyID implements timekeeping.OverrideRepository. Deleting an
// absent override is a no-op so delete-then-create stays simple.
func (r *OverrideRepository) DeleteByDailyID(_ context.Context, dailyID string, companyID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byDailyID, dailyID)
	return nil
}
