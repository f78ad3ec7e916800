package timekeeping

import (
	"context"
	"sync"
	"testing"

	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/timekeeping"
	"github.com/kayod-erp/timekeeping-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// interleavingDailyRepository hands back the row as read before a competing
// punch-and-recompute landed, reproducing a recompute racing a manual change
// on the same employee-day.
type interleavingDailyRepository struct {
	*memory.DailyRepository
	once       sync.Once
	interleave func()
}

func (r *interleavingDailyRepository) GetByID(ctx context.Context, id, companyID string) (timekeeping.Daily, error) {
	daily, err := r.DailyRepository.GetByID(ctx, id, companyID)
	if err != nil {
		return daily, err
	}
	if r.interleave != nil {
		r.once.Do(r.interleave)
	}
	return daily, nil
}

func seededDay(t *testing.T) (*fixture, timekeeping.Daily) {
	t.Helper()
	f := newFixture()
	f.withDayShift("emp-1")
	f.ingest(t, "2026-03-02 09:00", "2026-03-02 19:00")
	require.NoError(t, f.recomputer.Recompute(context.Background(), "emp-1", testDate, "co-1"))
	return f, f.daily(t, "2026-03-02")
}

func TestSetOverride_ShadowsComputedValues(t *testing.T) {
	f, d := seededDay(t)

	resp, err := f.service.SetOverride(context.Background(), timekeeping.SetOverrideRequest{
		DailyID:         d.ID,
		WorkMinutes:     300,
		OvertimeMinutes: 45,
	}, "co-1")
	require.NoError(t, err)

	assert.True(t, resp.Summary.IsOverridden)
	assert.Equal(t, 300, resp.Summary.WorkMinutes)
	assert.Equal(t, 45, resp.Summary.OvertimeMinutes)
	// The computed record keeps its derived values under the override.
	stored := f.daily(t, "2026-03-02")
	assert.Equal(t, 480, stored.WorkMinutes)
	require.NotNil(t, stored.OverrideID)
}

func TestSetOverride_ReplacesPriorOverride(t *testing.T) {
	f, d := seededDay(t)
	ctx := context.Background()

	_, err := f.service.SetOverride(ctx, timekeeping.SetOverrideRequest{DailyID: d.ID, WorkMinutes: 300}, "co-1")
	require.NoError(t, err)
	resp, err := f.service.SetOverride(ctx, timekeeping.SetOverrideRequest{DailyID: d.ID, WorkMinutes: 200}, "co-1")
	require.NoError(t, err)

	assert.Equal(t, 200, resp.Summary.WorkMinutes)
	ov, err := f.overrides.GetByDailyID(ctx, d.ID, "co-1")
	require.NoError(t, err)
	assert.Equal(t, 200, ov.WorkMinutes)
}

func TestSetOverride_SurvivesRecompute(t *testing.T) {
	f, d := seededDay(t)
	ctx := context.Background()

	_, err := f.service.SetOverride(ctx, timekeeping.SetOverrideRequest{DailyID: d.ID, WorkMinutes: 300}, "co-1")
	require.NoError(t, err)
	require.NoError(t, f.recomputer.Recompute(ctx, "emp-1", testDate, "co-1"))

	resp, err := f.service.GetDay(ctx, "emp-1", "2026-03-02", "co-1")
	require.NoError(t, err)
	assert.True(t, resp.Summary.IsOverridden)
	assert.Equal(t, 300, resp.Summary.WorkMinutes)
}

func TestSetOverride_ConcurrentRecomputeNotLost(t *testing.T) {
	base := newFixture()
	base.withDayShift("emp-1")
	base.ingest(t, "2026-03-02 09:00", "2026-03-02 18:00")

	wrapped := &interleavingDailyRepository{DailyRepository: base.dailies}
	recomputer := NewRecomputer(
		base.punches, base.logs, wrapped, base.overrides,
		NewShiftResolver(base.shifts), NewHolidayResolver(base.holidays),
		base.groups, base.leaves, base.filings, testLoc,
	)
	service := NewTimekeepingService(base.punches, base.logs, wrapped, base.overrides, base.holidays, recomputer, testLoc)

	ctx := context.Background()
	require.NoError(t, recomputer.Recompute(ctx, "emp-1", testDate, "co-1"))
	d, err := base.dailies.GetByAccountAndDate(ctx, "emp-1", "2026-03-02", "co-1")
	require.NoError(t, err)

	// A punch lands and is recomputed after SetOverride read the row.
	wrapped.interleave = func() {
		base.ingest(t, "2026-03-02 18:00", "2026-03-02 20:00")
		require.NoError(t, recomputer.Recompute(ctx, "emp-1", testDate, "co-1"))
	}

	resp, err := service.SetOverride(ctx, timekeeping.SetOverrideRequest{DailyID: d.ID, WorkMinutes: 300}, "co-1")
	require.NoError(t, err)
	assert.True(t, resp.Summary.IsOverridden)

	// The recomputed columns survive; the override is linked on top of them.
	stored, err := base.dailies.GetByAccountAndDate(ctx, "emp-1", "2026-03-02", "co-1")
	require.NoError(t, err)
	assert.Equal(t, 120, stored.Computed.RawOvertimeMinutes)
	require.NotNil(t, stored.OverrideID)
}

func TestSetOverride_RejectsNegativeMinutes(t *testing.T) {
	f, d := seededDay(t)

	_, err := f.service.SetOverride(context.Background(), timekeeping.SetOverrideRequest{
		DailyID:     d.ID,
		WorkMinutes: -5,
	}, "co-1")
	assert.Error(t, err)
}

func TestSetOverride_UnknownDaily(t *testing.T) {
	f := newFixture()
	_, err := f.service.SetOverride(context.Background(), timekeeping.SetOverrideRequest{DailyID: "missing"}, "co-1")
	assert.ErrorIs(t, err, timekeeping.ErrDailyNotFound)
}

func TestClearOverride_RevertsToComputed(t *testing.T) {
	f, d := seededDay(t)
	ctx := context.Background()

	_, err := f.service.SetOverride(ctx, timekeeping.SetOverrideRequest{DailyID: d.ID, WorkMinutes: 300}, "co-1")
	require.NoError(t, err)

	resp, err := f.service.ClearOverride(ctx, d.ID, "co-1")
	require.NoError(t, err)
	assert.False(t, resp.Summary.IsOverridden)
	assert.Equal(t, 480, resp.Summary.WorkMinutes)

	_, err = f.overrides.GetByDailyID(ctx, d.ID, "co-1")
	assert.ErrorIs(t, err, timekeeping.ErrOverrideNotFound)
}

func TestSetDayApproval_TogglesGate(t *testing.T) {
	f, d := seededDay(t)
	ctx := context.Background()

	resp, err := f.service.SetDayApproval(ctx, d.ID, true, "co-1")
	require.NoError(t, err)
	assert.True(t, resp.IsDayApproved)
	assert.False(t, resp.IsDayForApproval)

	resp, err = f.service.SetDayApproval(ctx, d.ID, false, "co-1")
	require.NoError(t, err)
	assert.False(t, resp.IsDayApproved)
	assert.True(t, resp.IsDayForApproval)
}

func TestToggleHolidayEligibility_ThreeStates(t *testing.T) {
	f, d := seededDay(t)
	ctx := context.Background()

	// Unset -> forced opposite of the default.
	resp, err := f.service.ToggleHolidayEligibility(ctx, d.ID, "co-1")
	require.NoError(t, err)
	assert.True(t, resp.HolidayOverrideSet)
	assert.False(t, resp.IsEligibleHoliday)

	// Set -> cleared back to the default.
	resp, err = f.service.ToggleHolidayEligibility(ctx, d.ID, "co-1")
	require.NoError(t, err)
	assert.False(t, resp.HolidayOverrideSet)
	assert.True(t, resp.IsEligibleHoliday)
}
