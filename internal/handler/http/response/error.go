package response

import (
	"errors"
	"net/http"

	"github.com/mesaitak/mesaitak-backend-go/internal/domain/attendance"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/branch"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/company"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/holiday"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/leave"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/shift"
	"github.com/mesaitak/mesaitak-backend-go/internal/domain/user"
	"github.com/mesaitak/mesaitak-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	HandleErrorWithData(w, err, nil)
}

// HandleErrorWithData writes the error envelope for err and carries data alongside it,
// such as the progress of a batch that stopped early.
func HandleErrorWithData(w http.ResponseWriter, err error, data interface{}) {
	status, detail := errorDetail(err)
	writeJSON(w, status, Response{
		Success: false,
		Data:    data,
		Error:   &detail,
	})
}

func errorDetail(err error) (int, ErrorDetail) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return http.StatusUnprocessableEntity, ErrorDetail{Code: "VALIDATION_ERROR", Message: "Validation failed", Details: validationErrs.ToMap()}
	}

	switch {
	// Master data
	case errors.Is(err, company.ErrCompanyNotFound):
		return http.StatusNotFound, ErrorDetail{Code: "NOT_FOUND", Message: "Company not found"}
	case errors.Is(err, branch.ErrBranchNotFound):
		return http.StatusNotFound, ErrorDetail{Code: "NOT_FOUND", Message: "Branch not found"}
	case errors.Is(err, branch.ErrCompanyIDRequired):
		return http.StatusBadRequest, ErrorDetail{Code: "BAD_REQUEST", Message: err.Error()}

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		return http.StatusNotFound, ErrorDetail{Code: "NOT_FOUND", Message: "User not found"}
	case errors.Is(err, user.ErrUserEmailExists):
		return http.StatusConflict, ErrorDetail{Code: "CONFLICT", Message: "Email already registered"}
	case errors.Is(err, user.ErrBranchCompanyMismatch):
		return http.StatusBadRequest, ErrorDetail{Code: "BAD_REQUEST", Message: err.Error()}
	case errors.Is(err, user.ErrManagerAccessRequired):
		return http.StatusForbidden, ErrorDetail{Code: "FORBIDDEN", Message: "Manager access required"}
	case errors.Is(err, user.ErrInsufficientPermissions):
		return http.StatusForbidden, ErrorDetail{Code: "FORBIDDEN", Message: "Insufficient permissions"}
	case errors.Is(err, user.ErrOtherCompany):
		return http.StatusForbidden, ErrorDetail{Code: "FORBIDDEN", Message: err.Error()}

	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		return http.StatusNotFound, ErrorDetail{Code: "NOT_FOUND", Message: "Shift not found"}
	case errors.Is(err, shift.ErrShiftExistsOnDay):
		return http.StatusConflict, ErrorDetail{Code: "CONFLICT", Message: err.Error()}
	case errors.Is(err, shift.ErrUserNotEligible):
		return http.StatusBadRequest, ErrorDetail{Code: "BAD_REQUEST", Message: err.Error()}
	case errors.Is(err, shift.ErrInvalidDateRange):
		return http.StatusBadRequest, ErrorDetail{Code: "BAD_REQUEST", Message: err.Error()}

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveNotFound):
		return http.StatusNotFound, ErrorDetail{Code: "NOT_FOUND", Message: "Leave request not found"}
	case errors.Is(err, leave.ErrLeaveAlreadyProcessed):
		return http.StatusConflict, ErrorDetail{Code: "CONFLICT", Message: "Leave request already processed"}
	case errors.Is(err, leave.ErrLeaveNotDeletable):
		return http.StatusConflict, ErrorDetail{Code: "CONFLICT", Message: err.Error()}
	case errors.Is(err, leave.ErrInvalidDateRange), errors.Is(err, leave.ErrRejectReasonRequired):
		return http.StatusBadRequest, ErrorDetail{Code: "BAD_REQUEST", Message: err.Error()}

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn),
		errors.Is(err, attendance.ErrAlreadyCheckedOut),
		errors.Is(err, attendance.ErrBreakInProgress):
		return http.StatusConflict, ErrorDetail{Code: "CONFLICT", Message: err.Error()}
	case errors.Is(err, attendance.ErrNotCheckedIn),
		errors.Is(err, attendance.ErrNoBreakInProgress),
		errors.Is(err, attendance.ErrUserNotEligible):
		return http.StatusBadRequest, ErrorDetail{Code: "BAD_REQUEST", Message: err.Error()}
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		return http.StatusNotFound, ErrorDetail{Code: "NOT_FOUND", Message: "Attendance record not found"}
	case errors.Is(err, attendance.ErrUnauthorized):
		return http.StatusForbidden, ErrorDetail{Code: "FORBIDDEN", Message: err.Error()}

	// Holidays
	case errors.Is(err, holiday.ErrYearNotAvailable):
		return http.StatusNotFound, ErrorDetail{Code: "NOT_FOUND", Message: err.Error()}

	// Default
	default:
		return http.StatusInternalServerError, ErrorDetail{Code: "INTERNAL_SERVER_ERROR", Message: "An unexpected error occurred"}
	}
}
