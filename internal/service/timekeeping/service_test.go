package timekeeping

import (
	"context"
	"testing"
	"time"

	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/timekeeping"
	"github.com/kayod-erp/timekeeping-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// droppingDailyRepository discards every write, so recompute can never
// materialize a record.
type droppingDailyRepository struct {
	*memory.DailyRepository
}

func (r *droppingDailyRepository) Upsert(_ context.Context, daily timekeeping.Daily) (timekeeping.Daily, error) {
	return daily, nil
}

func TestIngestPunch_ReturnsRecomputedDay(t *testing.T) {
	f := newFixture()
	f.withDayShift("emp-1")

	resp, err := f.service.IngestPunch(context.Background(), timekeeping.IngestPunchRequest{
		AccountID: "emp-1",
		TimeIn:    "2026-03-02T09:00:00+08:00",
		TimeOut:   "2026-03-02T18:00:00+08:00",
	}, "co-1")
	require.NoError(t, err)

	assert.Equal(t, "2026-03-02", resp.DateString)
	assert.Equal(t, 480, resp.Summary.WorkMinutes)
	assert.False(t, resp.IsBlank)
}

func TestIngestPunch_ValidationFailurePersistsNothing(t *testing.T) {
	f := newFixture()

	_, err := f.service.IngestPunch(context.Background(), timekeeping.IngestPunchRequest{
		AccountID: "emp-1",
		TimeIn:    "2026-03-02T18:00:00+08:00",
		TimeOut:   "2026-03-02T09:00:00+08:00",
	}, "co-1")
	require.Error(t, err)

	punches, err := f.punches.ListByAccountAndRange(context.Background(),
		"emp-1", testDate.AddDate(0, 0, -1), testDate.AddDate(0, 0, 2), "co-1")
	require.NoError(t, err)
	assert.Empty(t, punches)
}

func TestIngestPunch_MidnightCrossingRecomputesBothDates(t *testing.T) {
	f := newFixture()
	f.withDayShift("emp-1")

	_, err := f.service.IngestPunch(context.Background(), timekeeping.IngestPunchRequest{
		AccountID: "emp-1",
		TimeIn:    "2026-03-02T22:00:00+08:00",
		TimeOut:   "2026-03-03T02:00:00+08:00",
	}, "co-1")
	require.NoError(t, err)

	// Both calendar dates got a record; the minutes stay with the origin.
	f.daily(t, "2026-03-02")
	f.daily(t, "2026-03-03")
}

func TestDeletePunch_RecomputesTouchedDate(t *testing.T) {
	f := newFixture()
	f.withDayShift("emp-1")
	punch := f.ingest(t, "2026-03-02 09:00", "2026-03-02 18:00")

	ctx := context.Background()
	require.NoError(t, f.recomputer.Recompute(ctx, "emp-1", testDate, "co-1"))
	require.Equal(t, 480, f.daily(t, "2026-03-02").WorkMinutes)

	require.NoError(t, f.service.DeletePunch(ctx, punch.ID, "co-1"))

	d := f.daily(t, "2026-03-02")
	assert.Zero(t, d.WorkMinutes)
	assert.True(t, d.IsAbsent)
}

func TestDeletePunch_UnknownID(t *testing.T) {
	f := newFixture()
	err := f.service.DeletePunch(context.Background(), "missing", "co-1")
	assert.ErrorIs(t, err, timekeeping.ErrPunchNotFound)
}

func TestGetDay_RecomputesMissingRecord(t *testing.T) {
	f := newFixture()
	f.withDayShift("emp-1")
	f.ingest(t, "2026-03-02 09:00", "2026-03-02 18:00")

	// No recompute ran yet; the read path derives the record on demand.
	resp, err := f.service.GetDay(context.Background(), "emp-1", "2026-03-02", "co-1")
	require.NoError(t, err)
	assert.Equal(t, 480, resp.Summary.WorkMinutes)
	assert.False(t, resp.IsBlank)
}

func TestGetDay_BlankResponseWhenRecomputeYieldsNothing(t *testing.T) {
	f := newFixture()
	dropping := &droppingDailyRepository{memory.NewDailyRepository()}
	recomputer := NewRecomputer(
		f.punches, f.logs, dropping, f.overrides,
		NewShiftResolver(f.shifts), NewHolidayResolver(f.holidays),
		f.groups, f.leaves, f.filings, testLoc,
	)
	service := NewTimekeepingService(f.punches, f.logs, dropping, f.overrides, f.holidays, recomputer, testLoc)

	resp, err := service.GetDay(context.Background(), "emp-1", "2026-03-02", "co-1")
	require.NoError(t, err)
	assert.True(t, resp.IsBlank)
	assert.Equal(t, "emp-1", resp.AccountID)
	assert.Equal(t, "2026-03-02", resp.DateString)
	assert.True(t, resp.IsEligibleHoliday)
}

func TestGetDay_InvalidInput(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.service.GetDay(ctx, "", "2026-03-02", "co-1")
	assert.ErrorIs(t, err, timekeeping.ErrAccountRequired)

	_, err = f.service.GetDay(ctx, "emp-1", "03/02/2026", "co-1")
	assert.ErrorIs(t, err, timekeeping.ErrInvalidDate)
}

func TestGetRange_OneResponsePerDate(t *testing.T) {
	f := newFixture()
	f.withDayShift("emp-1")
	f.ingest(t, "2026-03-02 09:00", "2026-03-02 18:00")

	responses, err := f.service.GetRange(context.Background(), "emp-1", "2026-03-02", "2026-03-04", "co-1")
	require.NoError(t, err)
	require.Len(t, responses, 3)
	assert.Equal(t, "2026-03-02", responses[0].DateString)
	assert.Equal(t, 480, responses[0].Summary.WorkMinutes)
	assert.Equal(t, "2026-03-04", responses[2].DateString)
	assert.True(t, responses[2].IsAbsent)
}

func TestGetRange_RejectsInvertedRange(t *testing.T) {
	f := newFixture()
	_, err := f.service.GetRange(context.Background(), "emp-1", "2026-03-04", "2026-03-02", "co-1")
	assert.ErrorIs(t, err, timekeeping.ErrInvalidRange)
}

func TestListRawLogs_Pagination(t *testing.T) {
	f := newFixture()
	f.withDayShift("emp-1")
	ctx := context.Background()
	for day := 2; day <= 6; day++ {
		date := time.Date(2026, 3, day, 0, 0, 0, 0, testLoc)
		f.ingest(t,
			date.Format("2006-01-02")+" 09:00",
			date.Format("2006-01-02")+" 18:00",
		)
		require.NoError(t, f.recomputer.Recompute(ctx, "emp-1", date, "co-1"))
	}

	accountID := "emp-1"
	resp, err := f.service.ListRawLogs(ctx, timekeeping.RawLogFilter{
		AccountID: &accountID,
		Page:      1,
		Limit:     3,
	}, "co-1")
	require.NoError(t, err)

	assert.Equal(t, int64(5), resp.TotalCount)
	assert.Equal(t, 2, resp.TotalPages)
	assert.Equal(t, "1-3 of 5", resp.Showing)
	require.Len(t, resp.Logs, 3)
	assert.Equal(t, "2026-03-02", resp.Logs[0].DateString)
	assert.True(t, resp.Logs[0].IsRaw)

	resp, err = f.service.ListRawLogs(ctx, timekeeping.RawLogFilter{
		AccountID: &accountID,
		Page:      2,
		Limit:     3,
	}, "co-1")
	require.NoError(t, err)
	assert.Equal(t, "4-5 of 5", resp.Showing)
	require.Len(t, resp.Logs, 2)
}

func TestListRawLogs_DateFilter(t *testing.T) {
	f := newFixture()
	f.withDayShift("emp-1")
	ctx := context.Background()
	f.ingest(t, "2026-03-02 09:00", "2026-03-02 18:00")
	f.ingest(t, "2026-03-03 09:00", "2026-03-03 18:00")
	require.NoError(t, f.recomputer.RecomputeRange(ctx, "emp-1", testDate, testDate.AddDate(0, 0, 1), "co-1"))

	from, to := "2026-03-03", "2026-03-03"
	resp, err := f.service.ListRawLogs(ctx, timekeeping.RawLogFilter{FromDate: &from, ToDate: &to}, "co-1")
	require.NoError(t, err)
	require.Len(t, resp.Logs, 1)
	assert.Equal(t, "2026-03-03", resp.Logs[0].DateString)
}

func TestListRawLogs_Empty(t *testing.T) {
	f := newFixture()
	resp, err := f.service.ListRawLogs(context.Background(), timekeeping.RawLogFilter{}, "co-1")
	require.NoError(t, err)
	assert.Equal(t, "0 of 0", resp.Showing)
	assert.Zero(t, resp.TotalCount)
	assert.Empty(t, resp.Logs)
}

func TestServiceRecompute_Dispatch(t *testing.T) {
	f := newFixture()
	f.withDayShift("emp-1")
	f.ingest(t, "2026-03-02 09:00", "2026-03-02 18:00")
	ctx := context.Background()

	require.NoError(t, f.service.Recompute(ctx, "emp-1", "2026-03-02", "co-1"))
	assert.Equal(t, 480, f.daily(t, "2026-03-02").WorkMinutes)

	assert.ErrorIs(t, f.service.Recompute(ctx, "emp-1", "bad-date", "co-1"), timekeeping.ErrInvalidDate)
	assert.ErrorIs(t, f.service.RecomputeRange(ctx, "emp-1", "2026-03-02", "bad", "co-1"), timekeeping.ErrInvalidDate)
}
