package usecase

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Stratos359/Company-App/internal/core/domain"
	"github.com/Stratos359/Company-App/internal/core/ports"
)

// ExportUseCase renders stored records as a spreadsheet for the accountant.
type ExportUseCase struct {
	payrolls ports.PayrollRepository
	invoices ports.InvoiceRepository
}

func NewExportUseCase(payrolls ports.PayrollRepository, invoices ports.InvoiceRepository) *ExportUseCase {
	return &ExportUseCase{payrolls: payrolls, invoices: invoices}
}

func (uc *ExportUseCase) ExportXLSX(ctx context.Context, folder domain.Folder, filter ports.RecordFilter) ([]byte, error) {
	switch folder {
	case domain.FolderPayrolls:
		records, err := uc.payrolls.List(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("list payroll records: %w", err)
		}
		return payrollSheet(records)
	case domain.FolderInvoices:
		records, err := uc.invoices.List(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("list invoice records: %w", err)
		}
		return invoiceSheet(records)
	default:
		return nil, domain.WrapError(domain.ErrInvalidInput, "export", fmt.Errorf("unknown folder %q", folder))
	}
}

func payrollSheet(records []domain.PayrollRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := []interface{}{"Reason", "Date", "Amount", "Code", "Surname", "Name", "Paid", "File URL"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header row: %w", err)
	}
	for i, rec := range records {
		row := []interface{}{
			deref(rec.Reason), deref(rec.Date), deref(rec.Amount), deref(rec.Code),
			deref(rec.Surname), deref(rec.Name), rec.Paid, rec.FileURL,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("row coordinates: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write record row: %w", err)
		}
	}
	return sheetBytes(f)
}

func invoiceSheet(records []domain.InvoiceRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := []interface{}{"Vendor", "Date", "Amount", "Paid", "File URL"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header row: %w", err)
	}
	for i, rec := range records {
		row := []interface{}{deref(rec.Vendor), deref(rec.Date), deref(rec.Amount), rec.Paid, rec.FileURL}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("row coordinates: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write record row: %w", err)
		}
	}
	return sheetBytes(f)
}

func sheetBytes(f *excelize.File) ([]byte, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
