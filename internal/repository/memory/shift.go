package memory

import (
	"context"
	"sync"
	"time"

	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/shift"
	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/timekeeping"
)

// ShiftRepository holds shift definitions for each of the five resolution
// sources. Tests and the simulation API populate it directly through the
// Set* methods.
type ShiftRepository struct {
	mu          sync.RWMutex
	adjustments map[dailyKey]shift.Shift
	individual  map[dailyKey]shift.Shift
	team        map[dailyKey]shift.Shift
	manual      map[dailyKey]shift.Shift
	regular     map[string]map[time.Weekday]shift.Shift
}

func NewShiftRepository() *ShiftRepository {
	return &ShiftRepository{
		adjustments: make(map[dailyKey]shift.Shift),
		individual:  make(map[dailyKey]shift.Shift),
		team:        make(map[dailyKey]shift.Shift),
		manual:      make(map[dailyKey]shift.Shift),
		regular:     make(map[string]map[time.Weekday]shift.Shift),
	}
}

func (r *ShiftRepository) SetScheduleAdjustment(accountID, dateString string, s shift.Shift) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.adjustments[dailyKey{accountID, dateString}] = s
}

func (r *ShiftRepository) SetIndividualSchedule(accountID, dateString string, s shift.Shift) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.individual[dailyKey{accountID, dateString}] = s
}

func (r *ShiftRepository) SetTeamSchedule(accountID, dateString string, s shift.Shift) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.team[dailyKey{accountID, dateString}] = s
}

func (r *ShiftRepository) SetManualSchedule(accountID, dateString string, s shift.Shift) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.manual[dailyKey{accountID, dateString}] = s
}

func (r *ShiftRepository) SetRegularShift(accountID string, weekday time.Weekday, s shift.Shift) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.regular[accountID] == nil {
		r.regular[accountID] = make(map[time.Weekday]shift.Shift)
	}
	r.regular[accountID][weekday] = s
}

func (r *ShiftRepository) lookup(m map[dailyKey]shift.Shift, accountID string, date time.Time, companyID string) (*shift.Shift, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := m[dailyKey{accountID, date.Format(timekeeping.DateLayout)}]
	if !ok || (s.CompanyID != "" && s.CompanyID != companyID) {
		return nil, nil
	}
	out := s
	return &out, nil
}

// ScheduleAdjustmentFor implements shift.Repository.
func (r *ShiftRepository) ScheduleAdjustmentFor(ctx context.Context, accountID string, date time.Time, companyID string) (*shift.Shift, error) {
	return r.lookup(r.adjustments, accountID, date, companyID)
}

// IndividualScheduleFor implements shift.Repository.
func (r *ShiftRepository) IndividualScheduleFor(ctx context.Context, accountID string, date time.Time, companyID string) (*shift.Shift, error) {
	return r.lookup(r.individual, accountID, date, companyID)
}

// TeamScheduleFor implements shift.Repository.
func (r *ShiftRepository) TeamScheduleFor(ctx context.Context, accountID string, date time.Time, companyID string) (*shift.Shift, error) {
	return r.lookup(r.team, accountID, date, companyID)
}

// ManualScheduleFor implements shift.Repository.
func (r *ShiftRepository) ManualScheduleFor(ctx context.Context, accountID string, date time.Time, companyID string) (*shift.Shift, error) {
	return r.lookup(r.manual, accountID, date, companyID)
}

// RegularShiftFor implements shift.Repository.
func (r *ShiftRepository) RegularShiftFor(_ context.Context, accountID string, date time.Time, companyID string) (*shift.Shift, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	week, ok := r.regular[accountID]
	if !ok {
		return nil, nil
	}
	s, ok := week[date.Weekday()]
	if !ok || (s.CompanyID != "" && s.CompanyID != companyID) {
		return nil, nil
	}
	out := s
	return &out, nil
}
