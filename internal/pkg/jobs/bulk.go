package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/cutoff"
	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/timekeeping"
	"github.com/kayod-erp/timekeeping-backend-go/internal/pkg/sse"
	"golang.org/x/sync/errgroup"
)

type JobStatus string

const (
	StatusRunning   JobStatus = "RUNNING"
	StatusCompleted JobStatus = "COMPLETED"
	StatusCancelled JobStatus = "CANCELLED"
)

var ErrJobNotFound = errors.New("bulk job not found")

// BulkResult is the pollable state of one bulk recompute job.
type BulkResult struct {
	JobID            string    `json:"job_id"`
	Status           JobStatus `json:"status"`
	Total            int       `json:"total"`
	Processed        int       `json:"processed"`
	FailedAccountIDs []string  `json:"failed_account_ids,omitempty"`
}

type jobState struct {
	result BulkResult
	cancel context.CancelFunc
}

// BulkRecomputeRunner runs "recompute all for cutoff" asynchronously.
// Employees are processed in parallel up to the worker cap; dates within one
// employee stay chronological because each employee is one RecomputeRange
// call. One employee failing never aborts the batch.
type BulkRecomputeRunner struct {
	timekeepingSvc timekeeping.Service
	cutoffs        cutoff.Repository
	hub            *sse.Hub
	workers        int

	mu   sync.RWMutex
	jobs map[string]*jobState
}

func NewBulkRecomputeRunner(
	timekeepingSvc timekeeping.Service,
	cutoffs cutoff.Repository,
	hub *sse.Hub,
	workers int,
) *BulkRecomputeRunner {
	if workers <= 0 {
		workers = 4
	}
	return &BulkRecomputeRunner{
		timekeepingSvc: timekeepingSvc,
		cutoffs:        cutoffs,
		hub:            hub,
		workers:        workers,
		jobs:           make(map[string]*jobState),
	}
}

// Start launches a bulk recompute for every employee in the cutoff range and
// returns the job ID immediately. Progress is pollable via Status and pushed
// through the SSE hub keyed by job ID.
func (r *BulkRecomputeRunner) Start(ctx context.Context, rangeID, companyID string) (string, error) {
	dateRange, err := r.cutoffs.GetDateRange(ctx, rangeID, companyID)
	if err != nil {
		return "", err
	}
	accountIDs, err := r.cutoffs.ListAccountIDs(ctx, dateRange.CutoffID, companyID)
	if err != nil {
		return "", fmt.Errorf("failed to list cutoff accounts: %w", err)
	}

	jobID := uuid.NewString()
	// Detached from the request context: the job outlives the HTTP call.
	jobCtx, cancel := context.WithCancel(context.Background())

	r.mu.Lock()
	r.jobs[jobID] = &jobState{
		result: BulkResult{JobID: jobID, Status: StatusRunning, Total: len(accountIDs)},
		cancel: cancel,
	}
	r.mu.Unlock()

	go r.run(jobCtx, jobID, dateRange, accountIDs, companyID)

	return jobID, nil
}

func (r *BulkRecomputeRunner) run(ctx context.Context, jobID string, dateRange cutoff.DateRange, accountIDs []string, companyID string) {
	fromDate := dateRange.Start.Format(timekeeping.DateLayout)
	toDate := dateRange.End.Format(timekeeping.DateLayout)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for _, accountID := range accountIDs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return nil
			}
			if err := r.timekeepingSvc.RecomputeRange(gctx, accountID, fromDate, toDate, companyID); err != nil {
				slog.Error("bulk recompute failed for employee",
					"job_id", jobID,
					"account_id", accountID,
					"error", err,
				)
				r.markFailed(jobID, accountID)
			}
			r.markProcessed(jobID)
			return nil
		})
	}
	_ = g.Wait()

	r.mu.Lock()
	state, ok := r.jobs[jobID]
	if ok {
		if ctx.Err() != nil {
			state.result.Status = StatusCancelled
		} else {
			state.result.Status = StatusCompleted
		}
	}
	var final BulkResult
	if ok {
		final = state.result
	}
	r.mu.Unlock()

	if ok {
		r.hub.Publish(jobID, sse.Event{Key: jobID, Event: "bulk_recompute_done", Data: final})
		slog.Info("bulk recompute finished",
			"job_id", jobID,
			"status", final.Status,
			"processed", final.Processed,
			"failed", len(final.FailedAccountIDs),
		)
	}
}

func (r *BulkRecomputeRunner) markProcessed(jobID string) {
	r.mu.Lock()
	state, ok := r.jobs[jobID]
	if ok {
		state.result.Processed++
	}
	var snapshot BulkResult
	if ok {
		snapshot = state.result
	}
	r.mu.Unlock()

	if ok {
		r.hub.Publish(jobID, sse.Event{Key: jobID, Event: "bulk_recompute_progress", Data: snapshot})
	}
}

func (r *BulkRecomputeRunner) markFailed(jobID, accountID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if state, ok := r.jobs[jobID]; ok {
		state.result.FailedAccountIDs = append(state.result.FailedAccountIDs, accountID)
	}
}

// Status returns the current state of a job.
func (r *BulkRecomputeRunner) Status(jobID string) (BulkResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	state, ok := r.jobs[jobID]
	if !ok {
		return BulkResult{}, ErrJobNotFound
	}
	return state.result, nil
}

// Cancel stops a running job. Employees already recomputed stay recomputed;
// the job is resumable by starting it again, recompute being idempotent.
func (r *BulkRecomputeRunner) Cancel(jobID string) error {
	r.mu.RLock()
	state, ok := r.jobs[jobID]
	r.mu.RUnlock()
	if !ok {
		return ErrJobNotFound
	}
	state.cancel()
	return nil
}
