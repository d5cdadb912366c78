package ports

import (
	"context"
	"image"
	"io"
	"time"

	"github.com/Stratos359/Company-App/internal/core/domain"
)

// DocumentRepository persists and reads document state.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, errMessage string) error
}

// RecordFilter narrows record listings.
type RecordFilter struct {
	Paid *bool
	From *time.Time
	To   *time.Time
}

// PayrollRepository persists extracted payroll records.
type PayrollRepository interface {
	// InsertBatch writes all records of one document in a single transaction.
	InsertBatch(ctx context.Context, records []domain.PayrollRecord) error
	List(ctx context.Context, filter RecordFilter) ([]domain.PayrollRecord, error)
	MarkPaid(ctx context.Context, id string) error
}

// InvoiceRepository persists extracted invoice records.
type InvoiceRepository interface {
	Insert(ctx context.Context, record *domain.InvoiceRecord) error
	List(ctx context.Context, filter RecordFilter) ([]domain.InvoiceRecord, error)
	MarkPaid(ctx context.Context, id string) error
}

// ObjectStorage stores the original PDF bytes and hands back a public URL.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data io.Reader) (url string, err error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MessageQueue publishes/consumes document-received events.
type MessageQueue interface {
	PublishDocumentReceived(ctx context.Context, documentID string) error
	SubscribeDocumentReceived(ctx context.Context, handler func(context.Context, string) error) error
}

// Mailbox yields the unseen PDF attachments of the monitored inbox.
type Mailbox interface {
	FetchUnseen(ctx context.Context) ([]domain.Attachment, error)
}

// TextLayerReader extracts the embedded text layer of a PDF, one string per page.
type TextLayerReader interface {
	TextLayer(ctx context.Context, pdfData []byte) ([]string, error)
}

// PageRenderer rasterizes every PDF page to an image.
type PageRenderer interface {
	RenderPages(ctx context.Context, pdfData []byte) ([]image.Image, error)
}

// OCREngine recognizes text on a page image. lang is a tesseract language
// spec such as "ell" or "ell+eng".
type OCREngine interface {
	Recognize(ctx context.Context, img image.Image, lang string) (string, error)
}

// DocumentTextExtractor produces the raw text the parsers run on.
type DocumentTextExtractor interface {
	// PayrollPages always rasterizes and OCRs; one text block per page.
	PayrollPages(ctx context.Context, pdfData []byte) ([]string, error)
	// InvoiceText prefers the text layer, falling back to OCR with a
	// header-band pass when the layer is absent or too short.
	InvoiceText(ctx context.Context, pdfData []byte) (string, error)
}
