package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/kayod-erp/timekeeping-backend-go/internal/domain/timekeeping"
	"github.com/kayod-erp/timekeeping-backend-go/internal/handler/http/middleware"
	"github.com/kayod-erp/timekeeping-backend-go/internal/handler/http/response"
	"github.com/kayod-erp/timekeeping-backend-go/internal/pkg/validator"
)

type TimekeepingHandler interface {
	IngestPunch(w http.ResponseWriter, r *http.Request)
	DeletePunch(w http.ResponseWriter, r *http.Request)
	GetDay(w http.ResponseWriter, r *http.Request)
	GetRange(w http.ResponseWriter, r *http.Request)
	ListRawLogs(w http.ResponseWriter, r *http.Request)
	SetOverride(w http.ResponseWriter, r *http.Request)
	ClearOverride(w http.ResponseWriter, r *http.Request)
	ApproveDay(w http.ResponseWriter, r *http.Request)
	UnapproveDay(w http.ResponseWriter, r *http.Request)
	ToggleHolidayEligibility(w http.ResponseWriter, r *http.Request)
	Recompute(w http.ResponseWriter, r *http.Request)
}

type timekeepingHandlerImpl struct {
	timekeepingService timekeeping.Service
}

func NewTimekeepingHandler(timekeepingService timekeeping.Service) TimekeepingHandler {
	return &timekeepingHandlerImpl{
		timekeepingService: timekeepingService,
	}
}

// IngestPunch implements TimekeepingHandler.
func (h *timekeepingHandlerImpl) IngestPunch(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req timekeeping.IngestPunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.timekeepingService.IngestPunch(r.Context(), req, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Punch recorded", result)
}

// DeletePunch implements TimekeepingHandler.
func (h *timekeepingHandlerImpl) DeletePunch(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	punchID := chi.URLParam(r, "punchID")
	if err := h.timekeepingService.DeletePunch(r.Context(), punchID, companyID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Punch deleted", nil)
}

// GetDay implements TimekeepingHandler.
func (h *timekeepingHandlerImpl) GetDay(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	accountID := chi.URLParam(r, "accountID")
	date := chi.URLParam(r, "date")

	result, err := h.timekeepingService.GetDay(r.Context(), accountID, date, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetRange implements TimekeepingHandler.
func (h *timekeepingHandlerImpl) GetRange(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	accountID := chi.URLParam(r, "accountID")
	fromDate := r.URL.Query().Get("from")
	toDate := r.URL.Query().Get("to")

	results, err := h.timekeepingService.GetRange(r.Context(), accountID, fromDate, toDate, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// ListRawLogs implements TimekeepingHandler.
func (h *timekeepingHandlerImpl) ListRawLogs(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	filter := timekeeping.RawLogFilter{}
	query := r.URL.Query()
	if v := query.Get("account_id"); v != "" {
		filter.AccountID = &v
	}
	if v := query.Get("from"); v != "" {
		filter.FromDate = &v
	}
	if v := query.Get("to"); v != "" {
		filter.ToDate = &v
	}
	if v := query.Get("page"); validator.IsNumeric(v) {
		filter.Page, _ = strconv.Atoi(v)
	}
	if v := query.Get("limit"); validator.IsNumeric(v) {
		filter.Limit, _ = strconv.Atoi(v)
	}

	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.timekeepingService.ListRawLogs(r.Context(), filter, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	totalPages := result.TotalPages
	response.SuccessWithMeta(w, result.Logs, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: totalPages,
	})
}

// SetOverride implements TimekeepingHandler.
func (h *timekeepingHandlerImpl) SetOverride(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req timekeeping.SetOverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.DailyID = chi.URLParam(r, "dailyID")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.timekeepingService.SetOverride(r.Context(), req, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Override applied", result)
}

// ClearOverride implements TimekeepingHandler.
func (h *timekeepingHandlerImpl) ClearOverride(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	dailyID := chi.URLParam(r, "dailyID")
	result, err := h.timekeepingService.ClearOverride(r.Context(), dailyID, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Override cleared", result)
}

// ApproveDay implements TimekeepingHandler.
func (h *timekeepingHandlerImpl) ApproveDay(w http.ResponseWriter, r *http.Request) {
	h.setDayApproval(w, r, true)
}

// UnapproveDay implements TimekeepingHandler.
func (h *timekeepingHandlerImpl) UnapproveDay(w http.ResponseWriter, r *http.Request) {
	h.setDayApproval(w, r, false)
}

func (h *timekeepingHandlerImpl) setDayApproval(w http.ResponseWriter, r *http.Request, approved bool) {
	companyID, err := middleware.CompanyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	dailyID := chi.URLParam(r, "dailyID")
	result, err := h.timekeepingService.SetDayApproval(r.Context(), dailyID, approved, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	message := "Day approved"
	if !approved {
		message = "Day approval removed"
	}
	response.SuccessWithMessage(w, message, result)
}

// ToggleHolidayEligibility implements TimekeepingHandler.
func (h *timekeepingHandlerImpl) ToggleHolidayEligibility(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	dailyID := chi.URLParam(r, "dailyID")
	result, err := h.timekeepingService.ToggleHolidayEligibility(r.Context(), dailyID, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holiday eligibility updated", result)
}

// Recompute implements TimekeepingHandler.
func (h *timekeepingHandlerImpl) Recompute(w http.ResponseWriter, r *http.Request) {
	companyID, err := middleware.CompanyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req timekeeping.RecomputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if req.Date != nil && *req.Date != "" {
		err = h.timekeepingService.Recompute(r.Context(), req.AccountID, *req.Date, companyID)
	} else {
		err = h.timekeepingService.RecomputeRange(r.Context(), req.AccountID, *req.FromDate, *req.ToDate, companyID)
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Recompute completed", nil)
}
