package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/cutoff"
	"github.com/kayod-erp/timekeeping-backend-go/internal/handler/http/middleware"
	"github.com/kayod-erp/timekeeping-backend-go/internal/handler/http/response"
	"github.com/kayod-erp/timekeeping-backend-go/internal/pkg/jobs"
	"github.com/kayod-erp/timekeeping-backend-go/internal/pkg/sse"
)

type CutoffHandler interface {
	Totals(w http.ResponseWriter, r *http.Request)
	TotalsForAccount(w http.ResponseWriter, r *http.Request)
	StartBulkRecompute(w http.ResponseWriter, r *http.Request)
	JobStatus(w http.ResponseWriter, r *http.Request)
	CancelJob(w http.ResponseWriter, r *http.Request)
	StreamJob(w http.ResponseWriter, r *http.Request)
}

type cutoffHandlerImpl struct {
	cutoffService cutoff.Service
	bulkRunner    *jobs.BulkRecomputeRunner
	hub           *sse.Hub
}

func NewCutoffHandler(cutoffService cutoff.Service, bulkRunner *jobs.BulkRecomputeRunner, hub *sse.Hub) CutoffHandler {
	return &cutoffHandlerImpl{
		cutoffService: cutoffService,
		bulkRunner:    bulkRunner,
		hub:           hub,
	}
}

// Totals implements CutoffHandler.
func (h *cutoffHandlerImpl) Totals(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	rangeID := chi.URLParam(r, "rangeID")
	totals, err := h.cutoffService.Totals(r.Context(), rangeID, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, totals)
}

// TotalsForAccount implements CutoffHandler.
func (h *cutoffHandlerImpl) TotalsForAccount(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	rangeID := chi.URLParam(r, "rangeID")
	accountID := chi.URLParam(r, "accountID")
	totals, err := h.cutoffService.TotalsForAccount(r.Context(), rangeID, accountID, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, totals)
}

// StartBulkRecompute implements CutoffHandler. The job runs detached; the
// response carries the job ID for status polling or the SSE stream.
func (h *cutoffHandlerImpl) StartBulkRecompute(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	rangeID := chi.URLParam(r, "rangeID")
	jobID, err := h.bulkRunner.Start(r.Context(), rangeID, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Bulk recompute started", map[string]string{"job_id": jobID})
}

// JobStatus implements CutoffHandler.
func (h *cutoffHandlerImpl) JobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	result, err := h.bulkRunner.Status(jobID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CancelJob implements CutoffHandler.
func (h *cutoffHandlerImpl) CancelJob(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	if err := h.bulkRunner.Cancel(jobID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Job cancelled", nil)
}

// StreamJob handles the SSE connection for bulk recompute progress.
func (h *cutoffHandlerImpl) StreamJob(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")

	if _, err := h.bulkRunner.Status(jobID); err != nil {
		response.HandleError(w, err)
		return
	}

	// Check if streaming is supported
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(jobID)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"job_id\":%q}\n\n", jobID)
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
