package memory

import (
	"context"
	"sync"
	"time"

	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/cutoff"
	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/leave"
	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/payrollgroup"
	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/timekeeping"
)

// PayrollGroupRepository keys groups by company. GetByAccount falls back to
// the package default when the company has no row, which keeps missing
// config a safe, non-fatal condition.
type PayrollGroupRepository struct {
	mu        sync.RWMutex
	byCompany map[string]payrollgroup.PayrollGroup
}

func NewPayrollGroupRepository() *PayrollGroupRepository {
	return &PayrollGroupRepository{byCompany: make(map[string]payrollgroup.PayrollGroup)}
}

func (r *PayrollGroupRepository) Set(companyID string, g payrollgroup.PayrollGroup) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g.CompanyID = companyID
	r.byCompany[companyID] = g
}

// GetByAccount implements payrollgroup.Repository.
func (r *PayrollGroupRepository) GetByAccount(_ context.Context, accountID string, companyID string) (payrollgroup.PayrollGroup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if g, ok := r.byCompany[companyID]; ok {
		return g, nil
	}
	return payrollgroup.Default(companyID), nil
}

// LeaveChecker answers approved-leave lookups from a fixed set of filings.
type LeaveChecker struct {
	mu        sync.RWMutex
	approvals map[dailyKey]leave.Approval
}

func NewLeaveChecker() *LeaveChecker {
	return &LeaveChecker{approvals: make(map[dailyKey]leave.Approval)}
}

func (c *LeaveChecker) Approve(accountID, dateString, compensationType string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.approvals[dailyKey{accountID, dateString}] = leave.Approval{
		Has:              true,
		CompensationType: compensationType,
	}
}

// HasApprovedLeave implements leave.Checker.
func (c *LeaveChecker) HasApprovedLeave(_ context.Context, accountID string, date time.Time, companyID string) (leave.Approval, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	key := dailyKey{accountID, date.Format(timekeeping.DateLayout)}
	if a, ok := c.approvals[key]; ok {
		return a, nil
	}
	return leave.Approval{}, nil
}

// OvertimeFilings is the in-memory filing-system collaborator.
type OvertimeFilings struct {
	mu      sync.RWMutex
	minutes map[dailyKey]int
}

func NewOvertimeFilings() *OvertimeFilings {
	return &OvertimeFilings{minutes: make(map[dailyKey]int)}
}

func (f *OvertimeFilings) Approve(accountID, dateString string, minutes int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.minutes[dailyKey{accountID, dateString}] = minutes
}

func (f *OvertimeFilings) Revoke(accountID, dateString string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.minutes, dailyKey{accountID, dateString})
}

// ApprovedOvertimeMinutes implements timekeeping.OvertimeApprovalSource.
func (f *OvertimeFilings) ApprovedOvertimeMinutes(_ context.Context, accountID, dateString, companyID string) (int, bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	m, ok := f.minutes[dailyKey{accountID, dateString}]
	return m, ok, nil
}

// CutoffRepository stores cutoff ranges and their employee populations.
type CutoffRepository struct {
	mu       sync.RWMutex
	ranges   map[string]cutoff.DateRange
	accounts map[string][]string
}

func NewCutoffRepository() *CutoffRepository {
	return &CutoffRepository{
		ranges:   make(map[string]cutoff.DateRange),
		accounts: make(map[string][]string),
	}
}

func (r *CutoffRepository) AddDateRange(dr cutoff.DateRange, accountIDs []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ranges[dr.ID] = dr
	r.accounts[dr.CutoffID] = append([]string(nil), accountIDs...)
}

// GetDateRange implements cutoff.Repository.
func (r *CutoffRepository) GetDateRange(_ context.Context, rangeID string, companyID string) (cutoff.DateRange, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dr, ok := r.ranges[rangeID]
	if !ok || (dr.CompanyID != "" && dr.CompanyID != companyID) {
		return cutoff.DateRange{}, cutoff.ErrDateRangeNotFound
	}
	return dr, nil
}

// ListAccountIDs implements cutoff.Repository.
func (r *CutoffRepository) ListAccountIDs(_ context.Context, cutoffID string, companyID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.accounts[cutoffID]...), nil
}
