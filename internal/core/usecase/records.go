package usecase

import (
	"context"
	"fmt"

	"github.com/Stratos359/Company-App/internal/core/domain"
	"github.com/Stratos359/Company-App/internal/core/ports"
)

// RecordsUseCase is the read/update surface over persisted records.
type RecordsUseCase struct {
	payrolls ports.PayrollRepository
	invoices ports.InvoiceRepository
}

func NewRecordsUseCase(payrolls ports.PayrollRepository, invoices ports.InvoiceRepository) *RecordsUseCase {
	return &RecordsUseCase{payrolls: payrolls, invoices: invoices}
}

func (uc *RecordsUseCase) ListPayrolls(ctx context.Context, filter ports.RecordFilter) ([]domain.PayrollRecord, error) {
	records, err := uc.payrolls.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list payroll records: %w", err)
	}
	return records, nil
}

func (uc *RecordsUseCase) ListInvoices(ctx context.Context, filter ports.RecordFilter) ([]domain.InvoiceRecord, error) {
	records, err := uc.invoices.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list invoice records: %w", err)
	}
	return records, nil
}

func (uc *RecordsUseCase) MarkPayrollPaid(ctx context.Context, id string) error {
	if err := uc.payrolls.MarkPaid(ctx, id); err != nil {
		return fmt.Errorf("mark payroll paid: %w", err)
	}
	return nil
}

func (uc *RecordsUseCase) MarkInvoicePaid(ctx context.Context, id string) error {
	if err := uc.invoices.MarkPaid(ctx, id); err != nil {
		return fmt.Errorf("mark invoice paid: %w", err)
	}
	return nil
}
