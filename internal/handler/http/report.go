package http

import (
	"net/http"

	"github.com/mesaitak/mesaitak-backend-go/internal/domain/report"
	"github.com/mesaitak/mesaitak-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	MonthlyGrid(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

// MonthlyGrid handles GET /reports/monthly?year=&month=&company_id=&branch_id=
func (h *reportHandlerImpl) MonthlyGrid(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := report.MonthlyReportRequest{
		Year:      getIntQueryParam(r, "year", 0),
		Month:     getIntQueryParam(r, "month", 0),
		CompanyID: scopedCompanyID(r, q.Get("company_id")),
		BranchID:  q.Get("branch_id"),
	}

	result, err := h.reportService.MonthlyGrid(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
