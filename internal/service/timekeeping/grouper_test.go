package timekeeping

import (
	"testing"
	"time"

	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/timekeeping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLoc = time.FixedZone("PHT", 8*3600)

func punchAt(t *testing.T, in, out string) timekeeping.RawPunch {
	t.Helper()
	timeIn, err := time.ParseInLocation("2006-01-02 15:04", in, testLoc)
	require.NoError(t, err)
	timeOut, err := time.ParseInLocation("2006-01-02 15:04", out, testLoc)
	require.NoError(t, err)
	return timekeeping.RawPunch{
		AccountID: "emp-1",
		CompanyID: "co-1",
		TimeIn:    timeIn.UTC(),
		TimeOut:   timeOut.UTC(),
		Source:    timekeeping.SourceBiometric,
	}
}

func TestGroupPunches_SingleDay(t *testing.T) {
	grouped, err := GroupPunches([]timekeeping.RawPunch{
		punchAt(t, "2026-03-02 09:00", "2026-03-02 18:00"),
	}, testLoc)
	require.NoError(t, err)

	segments := grouped["2026-03-02"]
	require.Len(t, segments, 1)
	assert.Equal(t, 540, segments[0].Minutes())
	assert.False(t, segments[0].IsNextDayOverlap)
}

func TestGroupPunches_CoalescesOverlapping(t *testing.T) {
	grouped, err := GroupPunches([]timekeeping.RawPunch{
		punchAt(t, "2026-03-02 09:00", "2026-03-02 12:00"),
		punchAt(t, "2026-03-02 11:00", "2026-03-02 17:00"),
	}, testLoc)
	require.NoError(t, err)

	segments := grouped["2026-03-02"]
	require.Len(t, segments, 1)
	assert.Equal(t, 480, segments[0].Minutes())
}

func TestGroupPunches_CoalescesTouching(t *testing.T) {
	grouped, err := GroupPunches([]timekeeping.RawPunch{
		punchAt(t, "2026-03-02 09:00", "2026-03-02 12:00"),
		punchAt(t, "2026-03-02 12:00", "2026-03-02 15:00"),
	}, testLoc)
	require.NoError(t, err)

	require.Len(t, grouped["2026-03-02"], 1)
	assert.Equal(t, 360, grouped["2026-03-02"][0].Minutes())
}

func TestGroupPunches_SplitsAtMidnight(t *testing.T) {
	grouped, err := GroupPunches([]timekeeping.RawPunch{
		punchAt(t, "2026-03-02 22:00", "2026-03-03 02:00"),
	}, testLoc)
	require.NoError(t, err)

	segments := grouped["2026-03-02"]
	require.Len(t, segments, 2)

	assert.Equal(t, "2026-03-02", segments[0].DateString)
	assert.Equal(t, 120, segments[0].Minutes())
	assert.False(t, segments[0].IsNextDayOverlap)

	// The after-midnight tail stays attributed to the origin date.
	assert.Equal(t, "2026-03-02", segments[1].DateString)
	assert.Equal(t, 120, segments[1].Minutes())
	assert.True(t, segments[1].IsNextDayOverlap)

	assert.Empty(t, grouped["2026-03-03"])
}

func TestGroupPunches_SeparatePunchesStaySplit(t *testing.T) {
	grouped, err := GroupPunches([]timekeeping.RawPunch{
		punchAt(t, "2026-03-02 09:00", "2026-03-02 12:00"),
		punchAt(t, "2026-03-02 13:00", "2026-03-02 18:00"),
	}, testLoc)
	require.NoError(t, err)

	segments := grouped["2026-03-02"]
	require.Len(t, segments, 2)
	assert.Equal(t, 180, segments[0].Minutes())
	assert.Equal(t, 300, segments[1].Minutes())
}

func TestGroupPunches_RejectsInvertedRange(t *testing.T) {
	p := punchAt(t, "2026-03-02 18:00", "2026-03-02 09:00")
	_, err := GroupPunches([]timekeeping.RawPunch{p}, testLoc)
	assert.ErrorIs(t, err, timekeeping.ErrInvalidPunchRange)
}

func TestGroupPunches_RejectsOverlongSession(t *testing.T) {
	p := punchAt(t, "2026-03-02 09:00", "2026-03-03 10:00")
	_, err := GroupPunches([]timekeeping.RawPunch{p}, testLoc)
	assert.ErrorIs(t, err, timekeeping.ErrPunchTooLong)
}

func TestRawLogs(t *testing.T) {
	grouped, err := GroupPunches([]timekeeping.RawPunch{
		punchAt(t, "2026-03-02 22:00", "2026-03-03 02:00"),
	}, testLoc)
	require.NoError(t, err)

	logs := RawLogs("emp-1", "co-1", grouped["2026-03-02"])
	require.Len(t, logs, 2)
	assert.True(t, logs[0].IsRaw)
	assert.Equal(t, "2026-03-02", logs[1].DateString)
	assert.True(t, logs[1].IsNextDayOverlap)
}
