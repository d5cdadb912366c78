package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/Stratos359/Company-App/internal/core/domain"
	"github.com/Stratos359/Company-App/internal/core/payroll"
)

const payrollPageText = `ΕΞΟΦΛΗΤΙΚΗ ΑΠΟΔΕΙΞΗ ΜΙΣΘΟΔΟΣΙΑΣ ΙΟΥΛΙΟΥ
ΣΤΟΙΧΕΙΑ ΕΡΓΑΖΟΜΕΝΟΥ
ΝΙΚΟΛΑΟΥ ΜΑΡΙΑ
Πληρωτέες Αποδοχές 980,10
`

func payrollDoc() *domain.Document {
	return &domain.Document{
		ID:         "doc-1",
		Folder:     domain.FolderPayrolls,
		StorageKey: "1721037600_payslip.pdf",
		FileURL:    "https://files.example.com/1721037600_payslip.pdf",
	}
}

func TestProcessPayrollDocument(t *testing.T) {
	docs := &fakeDocRepo{getDoc: payrollDoc()}
	storage := &fakeStorage{openData: []byte("%PDF")}
	extractor := &fakeExtractor{pages: []string{payrollPageText, "κενή σελίδα"}}
	payrolls := &fakePayrollRepo{}
	invoices := &fakeInvoiceRepo{}

	uc := NewProcessDocumentUseCase(docs, storage, extractor, payrolls, invoices, payroll.NewParser(true))
	result, err := uc.ProcessByID(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if result.Folder != domain.FolderPayrolls {
		t.Fatalf("result must carry the document folder, got %q", result.Folder)
	}
	if result.Records != 1 {
		t.Fatalf("expected 1 extracted record in result, got %d", result.Records)
	}

	if len(payrolls.inserted) != 1 {
		t.Fatalf("expected 1 payroll record, got %d", len(payrolls.inserted))
	}
	rec := payrolls.inserted[0]
	if rec.DocumentID != "doc-1" {
		t.Fatalf("record not stamped with document id: %+v", rec)
	}
	if rec.FileURL != "https://files.example.com/1721037600_payslip.pdf" {
		t.Fatalf("record not stamped with file url: %+v", rec)
	}
	if rec.ID == "" {
		t.Fatalf("record id must be generated")
	}

	want := []domain.DocumentStatus{domain.StatusProcessing, domain.StatusProcessed}
	if len(docs.statusHistory) != 2 || docs.statusHistory[0] != want[0] || docs.statusHistory[1] != want[1] {
		t.Fatalf("unexpected status history %v", docs.statusHistory)
	}
	if len(invoices.inserted) != 0 {
		t.Fatalf("payroll document must not create invoice records")
	}
}

func TestProcessInvoiceDocument(t *testing.T) {
	doc := payrollDoc()
	doc.Folder = domain.FolderInvoices
	docs := &fakeDocRepo{getDoc: doc}
	extractor := &fakeExtractor{text: "Επωνυμία: ΑΦΟΙ ΔΗΜΗΤΡΙΟΥ ΑΕ\nΣυνολική Αξία: 150,00\n"}
	invoices := &fakeInvoiceRepo{}

	uc := NewProcessDocumentUseCase(docs, &fakeStorage{openData: []byte("%PDF")}, extractor, &fakePayrollRepo{}, invoices, payroll.NewParser(true))
	result, err := uc.ProcessByID(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if result.Folder != domain.FolderInvoices || result.Records != 1 {
		t.Fatalf("unexpected result %+v", result)
	}

	if len(invoices.inserted) != 1 {
		t.Fatalf("expected 1 invoice record, got %d", len(invoices.inserted))
	}
	if invoices.inserted[0].Vendor == nil || *invoices.inserted[0].Vendor != "ΑΦΟΙ ΔΗΜΗΤΡΙΟΥ ΑΕ" {
		t.Fatalf("unexpected invoice record %+v", invoices.inserted[0])
	}
}

func TestProcessSucceedsWithZeroRecords(t *testing.T) {
	docs := &fakeDocRepo{getDoc: payrollDoc()}
	extractor := &fakeExtractor{pages: []string{"σελίδα χωρίς αναγνωρίσιμα πεδία"}}
	payrolls := &fakePayrollRepo{}

	uc := NewProcessDocumentUseCase(docs, &fakeStorage{openData: []byte("%PDF")}, extractor, payrolls, &fakeInvoiceRepo{}, payroll.NewParser(true))
	result, err := uc.ProcessByID(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if result.Records != 0 {
		t.Fatalf("expected zero extracted records in result, got %d", result.Records)
	}

	if len(payrolls.inserted) != 0 {
		t.Fatalf("expected no inserts, got %d", len(payrolls.inserted))
	}
	if docs.statusHistory[len(docs.statusHistory)-1] != domain.StatusProcessed {
		t.Fatalf("empty extraction is still a processed document, got %v", docs.statusHistory)
	}
}

func TestProcessExtractionFailureMarksFailed(t *testing.T) {
	docs := &fakeDocRepo{getDoc: payrollDoc()}
	extractor := &fakeExtractor{pagesErr: errors.New("tesseract exited with status 1")}

	uc := NewProcessDocumentUseCase(docs, &fakeStorage{openData: []byte("%PDF")}, extractor, &fakePayrollRepo{}, &fakeInvoiceRepo{}, payroll.NewParser(true))
	result, err := uc.ProcessByID(context.Background(), "doc-1")
	if err == nil {
		t.Fatalf("expected extraction error")
	}
	if result.Folder != domain.FolderPayrolls {
		t.Fatalf("folder must survive a pipeline failure, got %q", result.Folder)
	}

	last := docs.statusHistory[len(docs.statusHistory)-1]
	if last != domain.StatusFailed {
		t.Fatalf("expected failed status, got %q", last)
	}
	if docs.lastError == "" {
		t.Fatalf("failure reason must be recorded on the document")
	}
}

func TestProcessInsertFailurePreventsProcessedStatus(t *testing.T) {
	docs := &fakeDocRepo{getDoc: payrollDoc()}
	extractor := &fakeExtractor{pages: []string{payrollPageText}}
	payrolls := &fakePayrollRepo{err: errors.New("connection refused")}

	uc := NewProcessDocumentUseCase(docs, &fakeStorage{openData: []byte("%PDF")}, extractor, payrolls, &fakeInvoiceRepo{}, payroll.NewParser(true))
	if _, err := uc.ProcessByID(context.Background(), "doc-1"); err == nil {
		t.Fatalf("expected insert error")
	}

	for _, status := range docs.statusHistory {
		if status == domain.StatusProcessed {
			t.Fatalf("document must not be marked processed after failed insert")
		}
	}
}
