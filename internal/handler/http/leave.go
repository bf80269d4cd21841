package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/workzen/hrms-backend-go/internal/domain/leave"
	"github.com/workzen/hrms-backend-go/internal/domain/report"
	"github.com/workzen/hrms-backend-go/internal/handler/http/response"
	"github.com/workzen/hrms-backend-go/internal/pkg/clock"
	"github.com/workzen/hrms-backend-go/internal/pkg/jwt"
	"github.com/workzen/hrms-backend-go/internal/pkg/utils"
)

type LeaveHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)

	GetMy(w http.ResponseWriter, r *http.Request)
	GetForEmployee(w http.ResponseWriter, r *http.Request)
	GetPending(w http.ResponseWriter, r *http.Request)
	GetHistory(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)

	GetSummary(w http.ResponseWriter, r *http.Request)
	GetUnpaidDays(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService  leave.LeaveService
	reportService report.ReportService
	clock         clock.Clock
}

func NewLeaveHandler(leaveService leave.LeaveService, reportService report.ReportService, clk clock.Clock) LeaveHandler {
	return &LeaveHandlerImpl{
		leaveService:  leaveService,
		reportService: reportService,
		clock:         clk,
	}
}

// Apply implements LeaveHandler.
func (l *LeaveHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	claims, ok := callerClaims(w, r)
	if !ok {
		return
	}

	var req leave.ApplyLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Apply leave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = claims.UserID

	created, err := l.leaveService.Apply(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted successfully", created)
}

// Decide implements LeaveHandler.
func (l *LeaveHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	claims, ok := callerClaims(w, r)
	if !ok {
		return
	}

	var req leave.DecideLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Decide leave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")
	req.ApproverID = claims.UserID

	decided, err := l.leaveService.Decide(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request "+decided.Status+" successfully", decided)
}

// GetMy implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMy(w http.ResponseWriter, r *http.Request) {
	claims, ok := callerClaims(w, r)
	if !ok {
		return
	}
	l.writeEmployeeList(w, r, claims.UserID)
}

// GetForEmployee implements LeaveHandler.
func (l *LeaveHandlerImpl) GetForEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}
	l.writeEmployeeList(w, r, employeeID)
}

func (l *LeaveHandlerImpl) writeEmployeeList(w http.ResponseWriter, r *http.Request, employeeID string) {
	list, err := l.leaveService.GetForEmployee(r.Context(), employeeID, pageFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	writeLeaveList(w, list)
}

// GetPending implements LeaveHandler.
func (l *LeaveHandlerImpl) GetPending(w http.ResponseWriter, r *http.Request) {
	list, err := l.leaveService.GetPending(r.Context(), pageFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	writeLeaveList(w, list)
}

// GetHistory implements LeaveHandler.
func (l *LeaveHandlerImpl) GetHistory(w http.ResponseWriter, r *http.Request) {
	list, err := l.leaveService.GetHistory(r.Context(), pageFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	writeLeaveList(w, list)
}

// GetByID implements LeaveHandler.
func (l *LeaveHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	claims, ok := callerClaims(w, r)
	if !ok {
		return
	}

	leaveRequest, err := l.leaveService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	// Employees only see their own requests.
	if leaveRequest.EmployeeID != claims.UserID && claims.Role == jwt.RoleEmployee {
		response.HandleError(w, leave.ErrNotFound)
		return
	}

	response.Success(w, leaveRequest)
}

// GetSummary implements LeaveHandler.
func (l *LeaveHandlerImpl) GetSummary(w http.ResponseWriter, r *http.Request) {
	claims, ok := callerClaims(w, r)
	if !ok {
		return
	}
	employeeID, ok := targetEmployee(w, r, claims)
	if !ok {
		return
	}

	summary, err := l.reportService.LeaveSummary(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// GetUnpaidDays implements LeaveHandler.
func (l *LeaveHandlerImpl) GetUnpaidDays(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		response.BadRequest(w, "employee_id is required", nil)
		return
	}

	monthStart, monthEnd := utils.MonthRange(l.clock.Today().Year(), l.clock.Today().Month())
	start, ok := queryDate(r, "start", monthStart)
	if !ok {
		response.BadRequest(w, "start must be in YYYY-MM-DD format", nil)
		return
	}
	end, ok := queryDate(r, "end", monthEnd)
	if !ok {
		response.BadRequest(w, "end must be in YYYY-MM-DD format", nil)
		return
	}

	unpaid, err := l.reportService.UnpaidLeaveDaysInPeriod(r.Context(), employeeID, start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, unpaid)
}

func pageFilter(r *http.Request) leave.PageFilter {
	return leave.PageFilter{
		Page:  queryInt(r, "page", 1),
		Limit: queryInt(r, "limit", 10),
	}
}

func writeLeaveList(w http.ResponseWriter, list leave.ListLeaveRequestResponse) {
	response.SuccessWithMeta(w, list.LeaveRequests, &response.Meta{
		Page:       list.Page,
		Limit:      list.Limit,
		TotalItems: list.TotalCount,
		TotalPages: list.TotalPages,
		Showing:    list.Showing,
	})
}
