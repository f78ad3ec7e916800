package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/cutoff"
	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/timekeeping"
	"github.com/kayod-erp/timekeeping-backend-go/internal/pkg/sse"
	"github.com/kayod-erp/timekeeping-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTimekeepingService stubs RecomputeRange; the embedded interface covers
// the methods the runner never calls.
type fakeTimekeepingService struct {
	timekeeping.Service

	mu            sync.Mutex
	calls         []string
	recomputeFunc func(ctx context.Context, accountID string) error
}

func (f *fakeTimekeepingService) RecomputeRange(ctx context.Context, accountID, fromDate, toDate, companyID string) error {
	f.mu.Lock()
	f.calls = append(f.calls, accountID)
	f.mu.Unlock()
	if f.recomputeFunc != nil {
		return f.recomputeFunc(ctx, accountID)
	}
	return nil
}

func (f *fakeTimekeepingService) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newBulkCutoffs(accountIDs []string) *memory.CutoffRepository {
	cutoffs := memory.NewCutoffRepository()
	cutoffs.AddDateRange(cutoff.DateRange{
		ID:        "range-1",
		CutoffID:  "cutoff-1",
		CompanyID: "co-1",
		Start:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		End:       time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
	}, accountIDs)
	return cutoffs
}

func waitForStatus(t *testing.T, runner *BulkRecomputeRunner, jobID string, want JobStatus) BulkResult {
	t.Helper()
	var result BulkResult
	require.Eventually(t, func() bool {
		r, err := runner.Status(jobID)
		if err != nil {
			return false
		}
		result = r
		return r.Status == want
	}, 5*time.Second, 10*time.Millisecond)
	return result
}

func TestBulkRecompute_ProcessesEveryAccount(t *testing.T) {
	svc := &fakeTimekeepingService{}
	runner := NewBulkRecomputeRunner(svc, newBulkCutoffs([]string{"emp-1", "emp-2", "emp-3"}), sse.NewHub(), 2)

	jobID, err := runner.Start(context.Background(), "range-1", "co-1")
	require.NoError(t, err)

	result := waitForStatus(t, runner, jobID, StatusCompleted)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 3, result.Processed)
	assert.Empty(t, result.FailedAccountIDs)
	assert.Equal(t, 3, svc.callCount())
}

func TestBulkRecompute_OneFailureDoesNotAbortBatch(t *testing.T) {
	svc := &fakeTimekeepingService{
		recomputeFunc: func(_ context.Context, accountID string) error {
			if accountID == "emp-2" {
				return errors.New("boom")
			}
			return nil
		},
	}
	runner := NewBulkRecomputeRunner(svc, newBulkCutoffs([]string{"emp-1", "emp-2", "emp-3"}), sse.NewHub(), 2)

	jobID, err := runner.Start(context.Background(), "range-1", "co-1")
	require.NoError(t, err)

	result := waitForStatus(t, runner, jobID, StatusCompleted)
	assert.Equal(t, 3, result.Processed)
	assert.Equal(t, []string{"emp-2"}, result.FailedAccountIDs)
}

func TestBulkRecompute_PublishesDoneEvent(t *testing.T) {
	// The worker blocks until the subscription exists, so the done event
	// cannot be missed.
	subscribed := make(chan struct{})
	svc := &fakeTimekeepingService{
		recomputeFunc: func(ctx context.Context, _ string) error {
			select {
			case <-subscribed:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	}
	hub := sse.NewHub()

	runner := NewBulkRecomputeRunner(svc, newBulkCutoffs([]string{"emp-1"}), hub, 1)
	jobID, err := runner.Start(context.Background(), "range-1", "co-1")
	require.NoError(t, err)
	ch, cleanup := hub.Subscribe(jobID)
	defer cleanup()
	close(subscribed)

	waitForStatus(t, runner, jobID, StatusCompleted)

	select {
	case ev := <-ch:
		for ev.Event != "bulk_recompute_done" {
			ev = <-ch
		}
		result, ok := ev.Data.(BulkResult)
		require.True(t, ok)
		assert.Equal(t, StatusCompleted, result.Status)
	case <-time.After(5 * time.Second):
		t.Fatal("no event received")
	}
}

func TestBulkRecompute_Cancel(t *testing.T) {
	release := make(chan struct{})
	svc := &fakeTimekeepingService{
		recomputeFunc: func(ctx context.Context, _ string) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-release:
				return nil
			}
		},
	}
	runner := NewBulkRecomputeRunner(svc, newBulkCutoffs([]string{"emp-1", "emp-2", "emp-3", "emp-4"}), sse.NewHub(), 1)

	jobID, err := runner.Start(context.Background(), "range-1", "co-1")
	require.NoError(t, err)
	require.Eventually(t, func() bool { return svc.callCount() > 0 }, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, runner.Cancel(jobID))
	result := waitForStatus(t, runner, jobID, StatusCancelled)
	assert.Equal(t, StatusCancelled, result.Status)
	close(release)
}

func TestBulkRecompute_UnknownJob(t *testing.T) {
	runner := NewBulkRecomputeRunner(&fakeTimekeepingService{}, newBulkCutoffs(nil), sse.NewHub(), 1)

	_, err := runner.Status("missing")
	assert.ErrorIs(t, err, ErrJobNotFound)
	assert.ErrorIs(t, runner.Cancel("missing"), ErrJobNotFound)
}

func TestBulkRecompute_UnknownRange(t *testing.T) {
	runner := NewBulkRecomputeRunner(&fakeTimekeepingService{}, newBulkCutoffs(nil), sse.NewHub(), 1)

	_, err := runner.Start(context.Background(), "missing", "co-1")
	assert.ErrorIs(t, err, cutoff.ErrDateRangeNotFound)
}
