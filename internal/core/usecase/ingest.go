package usecase

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Stratos359/Company-App/internal/core/domain"
	"github.com/Stratos359/Company-App/internal/core/ports"
	"github.com/Stratos359/Company-App/internal/core/textutil"
)

type IngestAttachmentUseCase struct {
	docs    ports.DocumentRepository
	storage ports.ObjectStorage
	queue   ports.MessageQueue

	payrollSender   string
	invoiceKeywords []string

	now func() time.Time
}

func NewIngestAttachmentUseCase(
	docs ports.DocumentRepository,
	storage ports.ObjectStorage,
	queue ports.MessageQueue,
	payrollSender string,
	invoiceKeywords []string,
) *IngestAttachmentUseCase {
	return &IngestAttachmentUseCase{
		docs:            docs,
		storage:         storage,
		queue:           queue,
		payrollSender:   payrollSender,
		invoiceKeywords: invoiceKeywords,
		now:             time.Now,
	}
}

// Ingest uploads the original PDF, records the document and schedules it
// for processing. The storage key carries a unix timestamp prefix so
// repeated filenames never collide.
func (uc *IngestAttachmentUseCase) Ingest(ctx context.Context, att domain.Attachment) (*domain.Document, error) {
	now := uc.now().UTC()
	storageKey := fmt.Sprintf("%d_%s", now.Unix(), textutil.SanitizeFilename(att.Filename))

	fileURL, err := uc.storage.Upload(ctx, storageKey, bytes.NewReader(att.Data))
	if err != nil {
		return nil, fmt.Errorf("upload original pdf: %w", err)
	}

	doc := &domain.Document{
		ID:         uuid.NewString(),
		Filename:   att.Filename,
		Folder:     uc.routeFolder(att.Sender, att.Subject),
		Sender:     att.Sender,
		Subject:    att.Subject,
		StorageKey: storageKey,
		FileURL:    fileURL,
		Status:     domain.StatusReceived,
		ReceivedAt: now,
		UpdatedAt:  now,
	}

	if err := uc.docs.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("create document row: %w", err)
	}

	if err := uc.queue.PublishDocumentReceived(ctx, doc.ID); err != nil {
		return nil, fmt.Errorf("publish document event: %w", err)
	}

	return doc, nil
}

// routeFolder applies the mailbox heuristic: a known payroll sender wins,
// an invoice keyword in the subject comes next, and everything else lands
// in invoices. Matching is accent- and case-insensitive.
func (uc *IngestAttachmentUseCase) routeFolder(sender, subject string) domain.Folder {
	if uc.payrollSender != "" &&
		strings.Contains(textutil.Normalize(sender), textutil.Normalize(uc.payrollSender)) {
		return domain.FolderPayrolls
	}
	normalizedSubject := textutil.Normalize(subject)
	for _, kw := range uc.invoiceKeywords {
		if kw == "" {
			continue
		}
		if strings.Contains(normalizedSubject, textutil.Normalize(kw)) {
			return domain.FolderInvoices
		}
	}
	return domain.FolderInvoices
}
