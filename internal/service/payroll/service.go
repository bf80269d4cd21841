package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/workzen/hrms-backend-go/internal/domain/payroll"
	"github.com/workzen/hrms-backend-go/internal/domain/report"
	"github.com/workzen/hrms-backend-go/internal/pkg/utils"
)

type PayrollServiceImpl struct {
	reportService report.ReportService
}

// Preview implements payroll.PayrollService.
func (s *PayrollServiceImpl) Preview(ctx context.Context, req payroll.PreviewPayrollRequest) (payroll.PayrollPreviewResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollPreviewResponse{}, err
	}

	month := time.Month(req.PeriodMonth)
	periodStart, periodEnd := utils.MonthRange(req.PeriodYear, month)

	unpaid, err := s.reportService.UnpaidLeaveDaysInPeriod(ctx, req.EmployeeID, periodStart, periodEnd)
	if err != nil {
		return payroll.PayrollPreviewResponse{}, fmt.Errorf("failed to get unpaid leave days: %w", err)
	}

	breakdown := CalculateSalary(req, utils.DaysInMonth(req.PeriodYear, month), unpaid.Days)

	slog.Info("Payroll preview calculated",
		"employee_id", req.EmployeeID,
		"period", fmt.Sprintf("%04d-%02d", req.PeriodYear, req.PeriodMonth),
		"unpaid_days", unpaid.Days,
		"net_salary", breakdown.NetSalary.StringFixed(2),
	)
	return payroll.ToResponse(breakdown), nil
}

// CalculateSalary builds the breakdown for one month. Amounts are rounded to two decimals.
func CalculateSalary(req payroll.PreviewPayrollRequest, daysInPeriod, unpaidDays int) payroll.SalaryBreakdown {
	basic := req.BasicSalary.Round(2)
	hra := req.HRA.Round(2)
	allowances := req.Allowances.Round(2)

	gross := basic.Add(hra).Add(allowances)
	pf := basic.Mul(payroll.ProvidentFundRate).Round(2)

	unpaidDeduction := decimal.Zero
	if daysInPeriod > 0 && unpaidDays > 0 {
		unpaidDeduction = basic.
			Mul(decimal.NewFromInt(int64(unpaidDays))).
			Div(decimal.NewFromInt(int64(daysInPeriod))).
			Round(2)
	}

	deductions := pf.Add(payroll.ProfessionalTax).Add(unpaidDeduction)

	return payroll.SalaryBreakdown{
		EmployeeID:           req.EmployeeID,
		PeriodMonth:          req.PeriodMonth,
		PeriodYear:           req.PeriodYear,
		BasicSalary:          basic,
		HRA:                  hra,
		Allowances:           allowances,
		GrossSalary:          gross,
		ProvidentFund:        pf,
		ProfessionalTax:      payroll.ProfessionalTax,
		DaysInPeriod:         daysInPeriod,
		UnpaidLeaveDays:      unpaidDays,
		UnpaidLeaveDeduction: unpaidDeduction,
		TotalDeductions:      deductions,
		NetSalary:            gross.Sub(deductions),
	}
}

func NewPayrollService(reportService report.ReportService) payroll.PayrollService {
	return &PayrollServiceImpl{
		reportService: reportService,
	}
}
