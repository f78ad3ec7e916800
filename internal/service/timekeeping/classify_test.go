package timekeeping

import (
	"testing"
	"time"

	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/payrollgroup"
	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/shift"
	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/timekeeping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDate = time.Date(2026, 3, 2, 0, 0, 0, 0, testLoc)

// dayShift is 09:00-18:00 with a 12:00-13:00 break.
func dayShiftSnapshot() shift.Snapshot {
	return shift.Snapshot{
		ShiftID: "shift-1",
		Name:    "Day Shift",
		Type:    shift.ShiftTimeBound,
		Source:  shift.ActiveRegularShift,
		Windows: []shift.Window{
			{Start: 540, End: 720},
			{Start: 720, End: 780, IsBreakTime: true},
			{Start: 780, End: 1080},
		},
		TargetHours: 8,
	}
}

func segmentsFor(t *testing.T, in, out string) []Segment {
	t.Helper()
	grouped, err := GroupPunches([]timekeeping.RawPunch{punchAt(t, in, out)}, testLoc)
	require.NoError(t, err)
	return grouped[in[:10]]
}

func TestApplyGrace(t *testing.T) {
	assert.Equal(t, 0, applyGrace(0, 15))
	assert.Equal(t, 0, applyGrace(15, 15))
	assert.Equal(t, 16, applyGrace(16, 15))
	assert.Equal(t, 45, applyGrace(45, 0))
}

func TestClassify_NoShiftIsBlank(t *testing.T) {
	c := Classify(ClassifyInput{
		Date:     testDate,
		Shift:    shift.Snapshot{Source: shift.ActiveNone},
		Segments: segmentsFor(t, "2026-03-02 09:00", "2026-03-02 18:00"),
		Group:    payrollgroup.Default("co-1"),
	})

	assert.Zero(t, c.WorkMinutes)
	assert.Zero(t, c.RawOvertimeMinutes)
	assert.False(t, c.IsAbsent)
}

func TestClassify_TimeBound_FullDay(t *testing.T) {
	c := Classify(ClassifyInput{
		Date:     testDate,
		Shift:    dayShiftSnapshot(),
		Segments: segmentsFor(t, "2026-03-02 09:00", "2026-03-02 18:00"),
		Group:    payrollgroup.Default("co-1"),
	})

	assert.Equal(t, 480, c.WorkMinutes)
	assert.Equal(t, 60, c.BreakMinutes)
	assert.Zero(t, c.RawLateMinutes)
	assert.Zero(t, c.RawUndertimeMinutes)
	assert.Zero(t, c.RawOvertimeMinutes)
	assert.False(t, c.IsAbsent)
}

func TestClassify_TimeBound_LateAndUndertime(t *testing.T) {
	c := Classify(ClassifyInput{
		Date:     testDate,
		Shift:    dayShiftSnapshot(),
		Segments: segmentsFor(t, "2026-03-02 09:20", "2026-03-02 17:40"),
		Group:    payrollgroup.Default("co-1"),
	})

	assert.Equal(t, 20, c.RawLateMinutes)
	assert.Equal(t, 20, c.RawUndertimeMinutes)
	assert.Equal(t, 20, c.LateMinutes)
	assert.Equal(t, 20, c.UndertimeMinutes)
}

func TestClassify_GraceForgivesAtThreshold(t *testing.T) {
	group := payrollgroup.Default("co-1")
	group.LateGraceMinutes = 20
	group.UndertimeGraceMinutes = 20

	c := Classify(ClassifyInput{
		Date:     testDate,
		Shift:    dayShiftSnapshot(),
		Segments: segmentsFor(t, "2026-03-02 09:20", "2026-03-02 17:40"),
		Group:    group,
	})

	// At the threshold the infraction is forgiven entirely; the raw values
	// stay for the audit trail.
	assert.Equal(t, 20, c.RawLateMinutes)
	assert.Zero(t, c.LateMinutes)
	assert.Equal(t, 20, c.RawUndertimeMinutes)
	assert.Zero(t, c.UndertimeMinutes)
}

func TestClassify_GraceKeepsAboveThreshold(t *testing.T) {
	group := payrollgroup.Default("co-1")
	group.LateGraceMinutes = 19

	c := Classify(ClassifyInput{
		Date:     testDate,
		Shift:    dayShiftSnapshot(),
		Segments: segmentsFor(t, "2026-03-02 09:20", "2026-03-02 18:00"),
		Group:    group,
	})

	// One minute above grace keeps the full raw value, not the difference.
	assert.Equal(t, 20, c.LateMinutes)
}

func TestClassify_TimeBound_Overtime(t *testing.T) {
	c := Classify(ClassifyInput{
		Date:     testDate,
		Shift:    dayShiftSnapshot(),
		Segments: segmentsFor(t, "2026-03-02 09:00", "2026-03-02 20:00"),
		Group:    payrollgroup.Default("co-1"),
	})

	assert.Equal(t, 480, c.WorkMinutes)
	assert.Equal(t, 120, c.RawOvertimeMinutes)
	assert.Equal(t, 120, c.OvertimeMinutes)
}

func TestClassify_OvertimeGraceZeroesNightPremium(t *testing.T) {
	group := payrollgroup.Default("co-1")
	group.OvertimeGraceMinutes = 180

	c := Classify(ClassifyInput{
		Date:     testDate,
		Shift:    dayShiftSnapshot(),
		Segments: segmentsFor(t, "2026-03-02 09:00", "2026-03-02 20:00"),
		Group:    group,
	})

	assert.Equal(t, 120, c.RawOvertimeMinutes)
	assert.Zero(t, c.OvertimeMinutes)
	assert.Zero(t, c.NightDiffOvertimeMinutes)
}

func TestClassify_TimeBound_Absent(t *testing.T) {
	c := Classify(ClassifyInput{
		Date:  testDate,
		Shift: dayShiftSnapshot(),
		Group: payrollgroup.Default("co-1"),
	})

	assert.True(t, c.IsAbsent)
	assert.Zero(t, c.WorkMinutes)
}

func TestClassify_ApprovedLeaveSuppressesAbsence(t *testing.T) {
	c := Classify(ClassifyInput{
		Date:             testDate,
		Shift:            dayShiftSnapshot(),
		Group:            payrollgroup.Default("co-1"),
		HasApprovedLeave: true,
	})

	assert.False(t, c.IsAbsent)
}

func TestClassify_Flexitime(t *testing.T) {
	snapshot := shift.Snapshot{
		ShiftID:     "flexi-1",
		Type:        shift.ShiftFlexitime,
		Source:      shift.ActiveIndividualSchedule,
		TargetHours: 8,
	}

	c := Classify(ClassifyInput{
		Date:     testDate,
		Shift:    snapshot,
		Segments: segmentsFor(t, "2026-03-02 10:00", "2026-03-02 20:00"),
		Group:    payrollgroup.Default("co-1"),
	})

	// 10 hours present against an 8 hour target: the tail is overtime, and
	// lateness does not apply without fixed windows.
	assert.Equal(t, 480, c.WorkMinutes)
	assert.Equal(t, 120, c.RawOvertimeMinutes)
	assert.Zero(t, c.RawLateMinutes)
	assert.Zero(t, c.RawUndertimeMinutes)
}

func TestClassify_RestDayFlag(t *testing.T) {
	snapshot := shift.Snapshot{
		ShiftID:     "rest-1",
		Type:        shift.ShiftRestDay,
		Source:      shift.ActiveRegularShift,
		TargetHours: 8,
	}

	c := Classify(ClassifyInput{
		Date:     testDate,
		Shift:    snapshot,
		Segments: segmentsFor(t, "2026-03-02 09:00", "2026-03-02 13:00"),
		Group:    payrollgroup.Default("co-1"),
	})

	assert.True(t, c.IsRestDay)
	assert.False(t, c.IsAbsent)
	assert.Equal(t, 240, c.WorkMinutes)
}

func TestClassify_ExtraDayFlag(t *testing.T) {
	snapshot := shift.Snapshot{
		ShiftID:     "extra-1",
		Type:        shift.ShiftExtraDay,
		Source:      shift.ActiveScheduleAdjustment,
		TargetHours: 8,
	}

	c := Classify(ClassifyInput{
		Date:     testDate,
		Shift:    snapshot,
		Segments: segmentsFor(t, "2026-03-02 09:00", "2026-03-02 18:00"),
		Group:    payrollgroup.Default("co-1"),
	})

	assert.True(t, c.IsExtraDay)
}

func TestClassify_NightShiftDifferential(t *testing.T) {
	snapshot := shift.Snapshot{
		ShiftID: "night-1",
		Type:    shift.ShiftTimeBound,
		Source:  shift.ActiveTeamSchedule,
		Windows: []shift.Window{
			{Start: 1320, End: 360},
		},
	}

	c := Classify(ClassifyInput{
		Date:     testDate,
		Shift:    snapshot,
		Segments: segmentsFor(t, "2026-03-02 22:00", "2026-03-03 06:00"),
		Group:    payrollgroup.Default("co-1"),
	})

	// The whole 22:00-06:00 shift sits inside the default night window.
	assert.Equal(t, 480, c.WorkMinutes)
	assert.Equal(t, 480, c.NightDiffMinutes)
	assert.Zero(t, c.RawOvertimeMinutes)
}

func TestClassify_PartialNightOverlap(t *testing.T) {
	c := Classify(ClassifyInput{
		Date:     testDate,
		Shift:    dayShiftSnapshot(),
		Segments: segmentsFor(t, "2026-03-02 09:00", "2026-03-02 23:00"),
		Group:    payrollgroup.Default("co-1"),
	})

	// Overtime runs 18:00-23:00; only 22:00-23:00 is inside the night window.
	assert.Equal(t, 300, c.RawOvertimeMinutes)
	assert.Equal(t, 60, c.NightDiffOvertimeMinutes)
	assert.Zero(t, c.NightDiffMinutes)
}

func TestNightSpans_WrappingWindow(t *testing.T) {
	spans := nightSpans(1320, 360)
	assert.Equal(t, []span{{0, 360}, {1320, 1800}, {2760, 2880}}, spans)
}

func TestNightSpans_NonWrappingWindow(t *testing.T) {
	spans := nightSpans(1200, 1380)
	assert.Equal(t, []span{{1200, 1380}, {2640, 2820}}, spans)
}

func TestProcessedLogs_SplitsMidnightBoundary(t *testing.T) {
	snapshot := shift.Snapshot{
		ShiftID: "night-1",
		Type:    shift.ShiftTimeBound,
		Source:  shift.ActiveTeamSchedule,
		Windows: []shift.Window{
			{Start: 1320, End: 360},
		},
	}

	c := Classify(ClassifyInput{
		Date:     testDate,
		Shift:    snapshot,
		Segments: segmentsFor(t, "2026-03-02 22:00", "2026-03-03 06:00"),
		Group:    payrollgroup.Default("co-1"),
	})

	logs := ProcessedLogs("emp-1", "co-1", "2026-03-02", testDate, c)

	var work []timekeeping.Log
	for _, l := range logs {
		if l.Type == timekeeping.BreakdownWork {
			work = append(work, l)
		}
	}
	require.Len(t, work, 2)
	assert.False(t, work[0].IsNextDayOverlap)
	assert.True(t, work[1].IsNextDayOverlap)
	assert.Equal(t, "2026-03-02", work[1].DateString)
	assert.Equal(t, 120, work[0].Minutes())
	assert.Equal(t, 360, work[1].Minutes())
}
