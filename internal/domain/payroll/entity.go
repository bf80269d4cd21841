package payroll

import (
	"github.com/shopspring/decimal"
)

var (
	// ProvidentFundRate is the employee's provident fund share of basic salary.
	ProvidentFundRate = decimal.RequireFromString("0.12")

	// ProfessionalTax is the flat monthly professional tax.
	ProfessionalTax = decimal.NewFromInt(200)
)

// SalaryBreakdown - Computed payslip preview, never persisted
type SalaryBreakdown struct {
	EmployeeID  string
	PeriodMonth int
	PeriodYear  int

	BasicSalary decimal.Decimal
	HRA         decimal.Decimal
	Allowances  decimal.Decimal
	GrossSalary decimal.Decimal

	ProvidentFund   decimal.Decimal
	ProfessionalTax decimal.Decimal

	// Days in the period and unpaid leave days inside it
	DaysInPeriod         int
	UnpaidLeaveDays      int
	UnpaidLeaveDeduction decimal.Decimal
	TotalDeductions      decimal.Decimal

	NetSalary decimal.Decimal
}
