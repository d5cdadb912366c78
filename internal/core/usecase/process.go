package usecase

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/Stratos359/Company-App/internal/core/domain"
	"github.com/Stratos359/Company-App/internal/core/invoice"
	"github.com/Stratos359/Company-App/internal/core/payroll"
	"github.com/Stratos359/Company-App/internal/core/ports"
)

type ProcessDocumentUseCase struct {
	docs      ports.DocumentRepository
	storage   ports.ObjectStorage
	extractor ports.DocumentTextExtractor
	payrolls  ports.PayrollRepository
	invoices  ports.InvoiceRepository
	parser    *payroll.Parser
}

func NewProcessDocumentUseCase(
	docs ports.DocumentRepository,
	storage ports.ObjectStorage,
	extractor ports.DocumentTextExtractor,
	payrolls ports.PayrollRepository,
	invoices ports.InvoiceRepository,
	parser *payroll.Parser,
) *ProcessDocumentUseCase {
	return &ProcessDocumentUseCase{
		docs:      docs,
		storage:   storage,
		extractor: extractor,
		payrolls:  payrolls,
		invoices:  invoices,
		parser:    parser,
	}
}

// ProcessByID runs extract -> classify -> parse -> persist for one document.
// A failure marks that document failed and propagates; the caller isolates
// it so one bad PDF never halts the batch. The result carries the folder
// and record count even on failure, once the document row was read.
func (uc *ProcessDocumentUseCase) ProcessByID(ctx context.Context, documentID string) (ports.ProcessResult, error) {
	if err := uc.docs.UpdateStatus(ctx, documentID, domain.StatusProcessing, ""); err != nil {
		return ports.ProcessResult{}, fmt.Errorf("set status=processing: %w", err)
	}

	result, err := uc.pipeline(ctx, documentID)
	if err != nil {
		if failErr := uc.docs.UpdateStatus(ctx, documentID, domain.StatusFailed, err.Error()); failErr != nil {
			return result, fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return result, err
	}

	if err := uc.docs.UpdateStatus(ctx, documentID, domain.StatusProcessed, ""); err != nil {
		return result, fmt.Errorf("set status=processed: %w", err)
	}
	return result, nil
}

func (uc *ProcessDocumentUseCase) pipeline(ctx context.Context, documentID string) (ports.ProcessResult, error) {
	doc, err := uc.docs.GetByID(ctx, documentID)
	if err != nil {
		return ports.ProcessResult{}, fmt.Errorf("fetch document by id: %w", err)
	}
	result := ports.ProcessResult{Folder: doc.Folder}

	pdfData, err := uc.readOriginal(ctx, doc)
	if err != nil {
		return result, err
	}

	switch doc.Folder {
	case domain.FolderPayrolls:
		result.Records, err = uc.processPayroll(ctx, doc, pdfData)
	case domain.FolderInvoices:
		result.Records, err = uc.processInvoice(ctx, doc, pdfData)
	default:
		err = domain.WrapError(domain.ErrInvalidInput, "dispatch folder", fmt.Errorf("unknown folder %q", doc.Folder))
	}
	return result, err
}

func (uc *ProcessDocumentUseCase) readOriginal(ctx context.Context, doc *domain.Document) ([]byte, error) {
	reader, err := uc.storage.Open(ctx, doc.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("open stored pdf: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read stored pdf: %w", err)
	}
	return data, nil
}

func (uc *ProcessDocumentUseCase) processPayroll(ctx context.Context, doc *domain.Document, pdfData []byte) (int, error) {
	pages, err := uc.extractor.PayrollPages(ctx, pdfData)
	if err != nil {
		return 0, fmt.Errorf("extract payroll pages: %w", err)
	}

	records := uc.parser.ParsePages(pages)
	if len(records) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	for i := range records {
		records[i].ID = uuid.NewString()
		records[i].DocumentID = doc.ID
		records[i].FileURL = doc.FileURL
		records[i].CreatedAt = now
	}

	if err := uc.payrolls.InsertBatch(ctx, records); err != nil {
		return 0, fmt.Errorf("insert payroll records: %w", err)
	}
	return len(records), nil
}

func (uc *ProcessDocumentUseCase) processInvoice(ctx context.Context, doc *domain.Document, pdfData []byte) (int, error) {
	text, err := uc.extractor.InvoiceText(ctx, pdfData)
	if err != nil {
		return 0, fmt.Errorf("extract invoice text: %w", err)
	}

	rec := invoice.Parse(text)
	if !rec.HasFields() {
		return 0, nil
	}

	rec.ID = uuid.NewString()
	rec.DocumentID = doc.ID
	rec.FileURL = doc.FileURL
	rec.CreatedAt = time.Now().UTC()

	if err := uc.invoices.Insert(ctx, &rec); err != nil {
		return 0, fmt.Errorf("insert invoice record: %w", err)
	}
	return 1, nil
}
