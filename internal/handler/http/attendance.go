package http

import (
	"net/http"

	"github.com/mesaitak/mesaitak-backend-go/internal/domain/attendance"
	"github.com/mesaitak/mesaitak-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	StartBreak(w http.ResponseWriter, r *http.Request)
	EndBreak(w http.ResponseWriter, r *http.Request)
	ListDay(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

// record decodes an event, defaults the uid to the caller and runs fn.
func (h *attendanceHandlerImpl) record(w http.ResponseWriter, r *http.Request, op string, message string, fn func(req attendance.EventRequest) (attendance.AttendanceResponse, error)) {
	var req attendance.EventRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &req, op) {
		return
	}
	if req.UserID == "" {
		req.UserID = claimString(r, "user_id")
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := fn(req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, record)
}

// CheckIn handles POST /attendance/check-in
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	h.record(w, r, "Check in", "Checked in successfully", func(req attendance.EventRequest) (attendance.AttendanceResponse, error) {
		return h.attendanceService.CheckIn(r.Context(), req)
	})
}

// CheckOut handles POST /attendance/check-out
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	h.record(w, r, "Check out", "Checked out successfully", func(req attendance.EventRequest) (attendance.AttendanceResponse, error) {
		return h.attendanceService.CheckOut(r.Context(), req)
	})
}

// StartBreak handles POST /attendance/break/start
func (h *attendanceHandlerImpl) StartBreak(w http.ResponseWriter, r *http.Request) {
	h.record(w, r, "Start break", "Break started", func(req attendance.EventRequest) (attendance.AttendanceResponse, error) {
		return h.attendanceService.StartBreak(r.Context(), req)
	})
}

// EndBreak handles POST /attendance/break/end
func (h *attendanceHandlerImpl) EndBreak(w http.ResponseWriter, r *http.Request) {
	h.record(w, r, "End break", "Break ended", func(req attendance.EventRequest) (attendance.AttendanceResponse, error) {
		return h.attendanceService.EndBreak(r.Context(), req)
	})
}

// ListDay handles GET /attendance?date=&q=&status=&sort=&dir=&company_id=
func (h *attendanceHandlerImpl) ListDay(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := attendance.ListDayQuery{
		Date:      q.Get("date"),
		Search:    q.Get("q"),
		Status:    q.Get("status"),
		SortBy:    q.Get("sort"),
		SortOrder: q.Get("dir"),
		CompanyID: scopedCompanyID(r, q.Get("company_id")),
	}

	if err := query.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	records, err := h.attendanceService.ListDay(r.Context(), query)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}
