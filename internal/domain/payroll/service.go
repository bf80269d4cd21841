package payroll

import "context"

type PayrollService interface {
	// Preview computes a salary breakdown for one month, deducting approved unpaid leave.
	Preview(ctx context.Context, req PreviewPayrollRequest) (PayrollPreviewResponse, error)
}
