package ports

import (
	"context"

	"github.com/Stratos359/Company-App/internal/core/domain"
)

// AttachmentIngestor stores an attachment and schedules it for processing.
type AttachmentIngestor interface {
	Ingest(ctx context.Context, att domain.Attachment) (*domain.Document, error)
}

// ProcessResult reports what one pipeline run produced. Folder is empty
// when the document could not be fetched at all.
type ProcessResult struct {
	Folder  domain.Folder
	Records int
}

// DocumentProcessor runs the extraction pipeline for one stored document.
type DocumentProcessor interface {
	ProcessByID(ctx context.Context, documentID string) (ProcessResult, error)
}

// RecordService is the read/update surface of the HTTP API.
type RecordService interface {
	ListPayrolls(ctx context.Context, filter RecordFilter) ([]domain.PayrollRecord, error)
	ListInvoices(ctx context.Context, filter RecordFilter) ([]domain.InvoiceRecord, error)
	MarkPayrollPaid(ctx context.Context, id string) error
	MarkInvoicePaid(ctx context.Context, id string) error
}

// RecordExporter renders records as a spreadsheet.
type RecordExporter interface {
	ExportXLSX(ctx context.Context, folder domain.Folder, filter RecordFilter) ([]byte, error)
}
