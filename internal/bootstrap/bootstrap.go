// Package bootstrap wires infrastructure into the use cases shared by
// the poller, worker and api binaries.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Stratos359/Company-App/internal/config"
	"github.com/Stratos359/Company-App/internal/core/payroll"
	"github.com/Stratos359/Company-App/internal/core/ports"
	"github.com/Stratos359/Company-App/internal/core/usecase"
	"github.com/Stratos359/Company-App/internal/infrastructure/extractor/doctext"
	"github.com/Stratos359/Company-App/internal/infrastructure/extractor/pagerender"
	"github.com/Stratos359/Company-App/internal/infrastructure/extractor/pdftext"
	"github.com/Stratos359/Company-App/internal/infrastructure/extractor/tesseract"
	"github.com/Stratos359/Company-App/internal/infrastructure/mailbox/imap"
	"github.com/Stratos359/Company-App/internal/infrastructure/queue/nats"
	"github.com/Stratos359/Company-App/internal/infrastructure/repository/postgres"
	"github.com/Stratos359/Company-App/internal/infrastructure/resilience"
	"github.com/Stratos359/Company-App/internal/infrastructure/storage/gcs"
	"github.com/Stratos359/Company-App/internal/infrastructure/storage/localfs"
)

type App struct {
	Config config.Config

	Queue   ports.MessageQueue
	Docs    ports.DocumentRepository
	Mailbox ports.Mailbox

	IngestUC  ports.AttachmentIngestor
	ProcessUC ports.DocumentProcessor
	RecordsUC ports.RecordService
	ExportUC  ports.RecordExporter

	closeFn func()
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	docs := postgres.NewDocumentRepository(db)
	payrolls := postgres.NewPayrollRepository(db)
	invoices := postgres.NewInvoiceRepository(db)

	storage, storageClose, err := newObjectStorage(ctx, cfg)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: resilience.NewExecutor(resilience.DefaultConfig()),
	})
	if err != nil {
		storageClose()
		_ = db.Close()
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	ocr := tesseract.New(tesseract.Config{
		Binary:      cfg.TesseractBin,
		TessdataDir: cfg.TessdataDir,
	})
	extractor := doctext.New(
		pdftext.New(),
		pagerender.New(cfg.RenderDPI),
		ocr,
		doctext.Config{
			MinTextLayerChars: cfg.MinTextLayerChars,
			HeaderCropPx:      cfg.HeaderCropPx,
		},
		logger,
	)

	mailbox := imap.New(imap.Config{
		Addr:     cfg.IMAPAddr,
		Username: cfg.IMAPUsername,
		Password: cfg.IMAPPassword,
		Mailbox:  cfg.IMAPMailbox,
	}, logger)

	parser := payroll.NewParser(cfg.PayrollIKACodeStrict)

	ingestUC := usecase.NewIngestAttachmentUseCase(docs, storage, queue, cfg.PayrollSender, cfg.InvoiceKeywordList())
	processUC := usecase.NewProcessDocumentUseCase(docs, storage, extractor, payrolls, invoices, parser)
	recordsUC := usecase.NewRecordsUseCase(payrolls, invoices)
	exportUC := usecase.NewExportUseCase(payrolls, invoices)

	return &App{
		Config: cfg,

		Queue:   queue,
		Docs:    docs,
		Mailbox: mailbox,

		IngestUC:  ingestUC,
		ProcessUC: processUC,
		RecordsUC: recordsUC,
		ExportUC:  exportUC,

		closeFn: func() {
			queue.Close()
			storageClose()
			_ = db.Close()
		},
	}, nil
}

func newObjectStorage(ctx context.Context, cfg config.Config) (ports.ObjectStorage, func(), error) {
	switch cfg.StorageBackend {
	case "gcs":
		store, err := gcs.New(ctx, cfg.GCSBucket)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	default:
		store, err := localfs.New(cfg.StoragePath, cfg.StoragePublicBaseURL)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
