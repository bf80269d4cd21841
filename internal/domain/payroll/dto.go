package payroll

import (
	"github.com/shopspring/decimal"
	"github.com/workzen/hrms-backend-go/internal/pkg/validator"
)

type PreviewPayrollRequest struct {
	EmployeeID  string          `json:"employee_id"`
	PeriodMonth int             `json:"period_month"`
	PeriodYear  int             `json:"period_year"`
	BasicSalary decimal.Decimal `json:"basic_salary"`
	HRA         decimal.Decimal `json:"hra"`
	Allowances  decimal.Decimal `json:"allowances"`
}

func (r *PreviewPayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if r.PeriodMonth < 1 || r.PeriodMonth > 12 {
		errs = append(errs, validator.ValidationError{Field: "period_month", Message: "must be between 1 and 12"})
	}
	if r.PeriodYear < 1970 || r.PeriodYear > 9999 {
		errs = append(errs, validator.ValidationError{Field: "period_year", Message: "must be a four digit year"})
	}
	if !r.BasicSalary.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "basic_salary", Message: "must be greater than 0"})
	}
	if r.HRA.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "hra", Message: ErrNegativeMoney.Error()})
	}
	if r.Allowances.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "allowances", Message: ErrNegativeMoney.Error()})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayrollPreviewResponse struct {
	EmployeeID           string          `json:"employee_id"`
	PeriodMonth          int             `json:"period_month"`
	PeriodYear           int             `json:"period_year"`
	BasicSalary          decimal.Decimal `json:"basic_salary"`
	HRA                  decimal.Decimal `json:"hra"`
	Allowances           decimal.Decimal `json:"allowances"`
	GrossSalary          decimal.Decimal `json:"gross_salary"`
	ProvidentFund        decimal.Decimal `json:"provident_fund"`
	ProfessionalTax      decimal.Decimal `json:"professional_tax"`
	DaysInPeriod         int             `json:"days_in_period"`
	UnpaidLeaveDays      int             `json:"unpaid_leave_days"`
	UnpaidLeaveDeduction decimal.Decimal `json:"unpaid_leave_deduction"`
	TotalDeductions      decimal.Decimal `json:"total_deductions"`
	NetSalary            decimal.Decimal `json:"net_salary"`
}

// ToResponse maps a SalaryBreakdown to its API shape.
func ToResponse(b SalaryBreakdown) PayrollPreviewResponse {
	return PayrollPreviewResponse{
		EmployeeID:           b.EmployeeID,
		PeriodMonth:          b.PeriodMonth,
		PeriodYear:           b.PeriodYear,
		BasicSalary:          b.BasicSalary,
		HRA:                  b.HRA,
		Allowances:           b.Allowances,
		GrossSalary:          b.GrossSalary,
		ProvidentFund:        b.ProvidentFund,
		ProfessionalTax:      b.ProfessionalTax,
		DaysInPeriod:         b.DaysInPeriod,
		UnpaidLeaveDays:      b.UnpaidLeaveDays,
		UnpaidLeaveDeduction: b.UnpaidLeaveDeduction,
		TotalDeductions:      b.TotalDeductions,
		NetSalary:            b.NetSalary,
	}
}
