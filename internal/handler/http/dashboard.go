package http

import (
	"net/http"

	"github.com/workzen/hrms-backend-go/internal/domain/report"
	"github.com/workzen/hrms-backend-go/internal/handler/http/response"
	"github.com/workzen/hrms-backend-go/internal/pkg/clock"
)

// DashboardHandler serves organisation-wide summaries.
type DashboardHandler interface {
	// GetAttendance returns the attendance summary of every employee for a month
	GetAttendance(w http.ResponseWriter, r *http.Request)
	// GetLeaves returns leave counts of every employee and the newest requests
	GetLeaves(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	reportService report.ReportService
	clock         clock.Clock
}

func NewDashboardHandler(reportService report.ReportService, clk clock.Clock) DashboardHandler {
	return &dashboardHandlerImpl{reportService: reportService, clock: clk}
}

// GetAttendance handles GET /dashboard/attendance?year=&month=, defaulting to the current month
func (h *dashboardHandlerImpl) GetAttendance(w http.ResponseWriter, r *http.Request) {
	today := h.clock.Today()
	req := report.AttendanceSummaryRequest{
		Year:  queryInt(r, "year", today.Year()),
		Month: queryInt(r, "month", int(today.Month())),
	}

	summary, err := h.reportService.AttendanceSummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// GetLeaves handles GET /dashboard/leaves
func (h *dashboardHandlerImpl) GetLeaves(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reportService.LeaveSummary(r.Context(), "")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}
