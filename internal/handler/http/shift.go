package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/shift"
	"github.com/mesaitak/mesaitak-backend-go/internal/handler/http/response"
)

type ShiftHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)

	WeekPlan(w http.ResponseWriter, r *http.Request)
	CopyWeek(w http.ResponseWriter, r *http.Request)
	ClearWeek(w http.ResponseWriter, r *http.Request)
}

type shiftHandlerImpl struct {
	shiftService shift.ShiftService
}

func NewShiftHandler(shiftService shift.ShiftService) ShiftHandler {
	return &shiftHandlerImpl{shiftService: shiftService}
}

// List handles GET /shifts?from=&to=&user_id=
func (h *shiftHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := shift.ListShiftsQuery{
		From:      q.Get("from"),
		To:        q.Get("to"),
		UserID:    q.Get("user_id"),
		CompanyID: scopedCompanyID(r, q.Get("company_id")),
	}

	if err := query.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	shifts, err := h.shiftService.List(r.Context(), query)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, shifts)
}

// Create handles POST /shifts
func (h *shiftHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req shift.CreateShiftRequest
	if !decodeJSON(w, r, &req, "Create shift") {
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.shiftService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift created successfully", created)
}

// Update handles PUT /shifts/{id}
func (h *shiftHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req shift.UpdateShiftRequest
	if !decodeJSON(w, r, &req, "Update shift") {
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.shiftService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift updated successfully", updated)
}

// Delete handles DELETE /shifts/{id}
func (h *shiftHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.shiftService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift deleted successfully", nil)
}

// WeekPlan handles GET /shifts/week?date=&company_id=&branch_id=
func (h *shiftHandlerImpl) WeekPlan(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := shift.WeekPlanQuery{
		Date:      q.Get("date"),
		CompanyID: scopedCompanyID(r, q.Get("company_id")),
		BranchID:  q.Get("branch_id"),
	}

	if err := query.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	plan, err := h.shiftService.WeekPlan(r.Context(), query)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, plan)
}

// CopyWeek handles POST /shifts/week/copy
func (h *shiftHandlerImpl) CopyWeek(w http.ResponseWriter, r *http.Request) {
	var req shift.CopyWeekRequest
	if !decodeJSON(w, r, &req, "Copy week") {
		return
	}

	req.CompanyID = scopedCompanyID(r, req.CompanyID)

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.shiftService.CopyWeek(r.Context(), req)
	if err != nil {
		slog.Error("Copy week stopped early", "week", req.Week, "result", result, "error", err)
		response.HandleErrorWithData(w, err, result)
		return
	}

	response.SuccessWithMessage(w, "Week copied successfully", result)
}

// ClearWeek handles DELETE /shifts/week?date=&company_id=
func (h *shiftHandlerImpl) ClearWeek(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := shift.ClearWeekRequest{
		Date:      q.Get("date"),
		CompanyID: scopedCompanyID(r, q.Get("company_id")),
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.shiftService.ClearWeek(r.Context(), req)
	if err != nil {
		slog.Error("Clear week stopped early", "date", req.Date, "result", result, "error", err)
		response.HandleErrorWithData(w, err, result)
		return
	}

	response.SuccessWithMessage(w, "Week cleared successfully", result)
}
