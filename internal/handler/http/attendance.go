package http

import (
	"net/http"

	"github.com/workzen/hrms-backend-go/internal/domain/attendance"
	"github.com/workzen/hrms-backend-go/internal/domain/report"
	"github.com/workzen/hrms-backend-go/internal/handler/http/response"
	"github.com/workzen/hrms-backend-go/internal/pkg/clock"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	GetDaily(w http.ResponseWriter, r *http.Request)
	GetMonthly(w http.ResponseWriter, r *http.Request)
	GetSummary(w http.ResponseWriter, r *http.Request)
	ListForDate(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	reportService     report.ReportService
	clock             clock.Clock
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, reportService report.ReportService, clk clock.Clock) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		reportService:     reportService,
		clock:             clk,
	}
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	claims, ok := callerClaims(w, r)
	if !ok {
		return
	}

	resp, err := h.attendanceService.CheckIn(r.Context(), claims.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in successfully", resp)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	claims, ok := callerClaims(w, r)
	if !ok {
		return
	}

	resp, err := h.attendanceService.CheckOut(r.Context(), claims.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out successfully", resp)
}

// GetDaily implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetDaily(w http.ResponseWriter, r *http.Request) {
	claims, ok := callerClaims(w, r)
	if !ok {
		return
	}

	date, ok := queryDate(r, "date", h.clock.Today())
	if !ok {
		response.BadRequest(w, "date must be in YYYY-MM-DD format", nil)
		return
	}

	resp, err := h.attendanceService.GetDaily(r.Context(), claims.UserID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if resp == nil {
		response.SuccessWithMessage(w, "No attendance recorded for this date", nil)
		return
	}
	response.Success(w, resp)
}

// GetMonthly implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMonthly(w http.ResponseWriter, r *http.Request) {
	claims, ok := callerClaims(w, r)
	if !ok {
		return
	}
	employeeID, ok := targetEmployee(w, r, claims)
	if !ok {
		return
	}

	today := h.clock.Today()
	filter := attendance.MonthlyFilter{
		EmployeeID: employeeID,
		Year:       queryInt(r, "year", today.Year()),
		Month:      queryInt(r, "month", int(today.Month())),
	}

	records, err := h.attendanceService.GetMonthly(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// GetSummary implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetSummary(w http.ResponseWriter, r *http.Request) {
	claims, ok := callerClaims(w, r)
	if !ok {
		return
	}
	employeeID, ok := targetEmployee(w, r, claims)
	if !ok {
		return
	}

	today := h.clock.Today()
	req := report.AttendanceSummaryRequest{
		EmployeeID: employeeID,
		Year:       queryInt(r, "year", today.Year()),
		Month:      queryInt(r, "month", int(today.Month())),
	}

	summary, err := h.reportService.AttendanceSummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// ListForDate implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListForDate(w http.ResponseWriter, r *http.Request) {
	var filter attendance.DateFilter

	if date := r.URL.Query().Get("date"); date != "" {
		filter.Date = &date
	}

	// Pagination
	filter.Page = queryInt(r, "page", 1)
	filter.Limit = queryInt(r, "limit", 10)

	list, err := h.attendanceService.ListForDate(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, list.Attendances, &response.Meta{
		Page:       list.Page,
		Limit:      list.Limit,
		TotalItems: list.TotalCount,
		TotalPages: list.TotalPages,
		Showing:    list.Showing,
	})
}

