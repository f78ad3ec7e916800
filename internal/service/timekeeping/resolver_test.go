package timekeeping

import (
	"context"
	"testing"
	"time"

	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/shift"
	"github.com/kayod-erp/timekeeping-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func namedShift(id string) shift.Shift {
	return shift.Shift{
		ID:        id,
		CompanyID: "co-1",
		Name:      id,
		Type:      shift.ShiftTimeBound,
		Windows:   []shift.Window{{Start: 540, End: 1080}},
	}
}

func TestShiftResolver_NoSourceYieldsNone(t *testing.T) {
	resolver := NewShiftResolver(memory.NewShiftRepository())

	resolved, err := resolver.Resolve(context.Background(), "emp-1", testDate, "co-1")
	require.NoError(t, err)
	assert.Nil(t, resolved.Shift)
	assert.Equal(t, shift.ActiveNone, resolved.Source)
}

func TestShiftResolver_RegularShiftIsFallback(t *testing.T) {
	repo := memory.NewShiftRepository()
	repo.SetRegularShift("emp-1", time.Monday, namedShift("regular"))
	resolver := NewShiftResolver(repo)

	resolved, err := resolver.Resolve(context.Background(), "emp-1", testDate, "co-1")
	require.NoError(t, err)
	require.NotNil(t, resolved.Shift)
	assert.Equal(t, "regular", resolved.Shift.ID)
	assert.Equal(t, shift.ActiveRegularShift, resolved.Source)
}

func TestShiftResolver_PriorityOrder(t *testing.T) {
	repo := memory.NewShiftRepository()
	repo.SetRegularShift("emp-1", time.Monday, namedShift("regular"))
	repo.SetManualSchedule("emp-1", "2026-03-02", namedShift("manual"))
	repo.SetTeamSchedule("emp-1", "2026-03-02", namedShift("team"))
	repo.SetIndividualSchedule("emp-1", "2026-03-02", namedShift("individual"))
	repo.SetScheduleAdjustment("emp-1", "2026-03-02", namedShift("adjustment"))
	resolver := NewShiftResolver(repo)

	resolved, err := resolver.Resolve(context.Background(), "emp-1", testDate, "co-1")
	require.NoError(t, err)
	assert.Equal(t, "adjustment", resolved.Shift.ID)
	assert.Equal(t, shift.ActiveScheduleAdjustment, resolved.Source)
}

func TestShiftResolver_ManualBeatsRegular(t *testing.T) {
	repo := memory.NewShiftRepository()
	repo.SetRegularShift("emp-1", time.Monday, namedShift("regular"))
	repo.SetManualSchedule("emp-1", "2026-03-02", namedShift("manual"))
	resolver := NewShiftResolver(repo)

	resolved, err := resolver.Resolve(context.Background(), "emp-1", testDate, "co-1")
	require.NoError(t, err)
	assert.Equal(t, "manual", resolved.Shift.ID)
	assert.Equal(t, shift.ActiveManualSchedule, resolved.Source)
}

func TestShiftResolver_TeamBeatsManual(t *testing.T) {
	repo := memory.NewShiftRepository()
	repo.SetManualSchedule("emp-1", "2026-03-02", namedShift("manual"))
	repo.SetTeamSchedule("emp-1", "2026-03-02", namedShift("team"))
	resolver := NewShiftResolver(repo)

	resolved, err := resolver.Resolve(context.Background(), "emp-1", testDate, "co-1")
	require.NoError(t, err)
	assert.Equal(t, "team", resolved.Shift.ID)
	assert.Equal(t, shift.ActiveTeamSchedule, resolved.Source)
}

func TestEligibility(t *testing.T) {
	assert.True(t, Eligibility(nil))

	no := false
	assert.False(t, Eligibility(&no))

	yes := true
	assert.True(t, Eligibility(&yes))
}
