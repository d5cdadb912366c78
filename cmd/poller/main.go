package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Stratos359/Company-App/internal/bootstrap"
	"github.com/Stratos359/Company-App/internal/config"
	"github.com/Stratos359/Company-App/internal/observability/logging"
	"github.com/Stratos359/Company-App/internal/observability/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	logger := logging.NewLogger("poller", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	pollerMetrics := metrics.NewWorkerMetrics("poller")
	metricsServer := &http.Server{
		Addr:    ":" + cfg.PollerMetricsPort,
		Handler: pollerMetrics.Handler(),
	}
	go func() {
		logger.Info("poller metrics listening", "port", cfg.PollerMetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	logger.Info("poller started", "interval", cfg.PollInterval.String(), "mailbox", cfg.IMAPMailbox)

	pollOnce(ctx, app, pollerMetrics, logger)

	ticker := time.NewTicker(cfg.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info("poller stopping")
			return
		case <-ticker.C:
			pollOnce(ctx, app, pollerMetrics, logger)
		}
	}
}

// pollOnce fetches unseen mail and ingests every PDF attachment. One
// bad attachment is logged and skipped so the rest of the batch lands.
func pollOnce(ctx context.Context, app *bootstrap.App, pollerMetrics *metrics.WorkerMetrics, logger *slog.Logger) {
	attachments, err := app.Mailbox.FetchUnseen(ctx)
	pollerMetrics.RecordPollCycle("poller", err)
	if err != nil {
		logger.Error("mailbox poll failed", "error", err)
		return
	}
	pollerMetrics.AddPolledAttachments(len(attachments))
	if len(attachments) == 0 {
		logger.Debug("no new attachments")
		return
	}

	logger.Info("fetched attachments", "count", len(attachments))
	for _, att := range attachments {
		doc, err := app.IngestUC.Ingest(ctx, att)
		if err != nil {
			logger.Error("ingest failed",
				"filename", att.Filename,
				"sender", att.Sender,
				"error", err,
			)
			continue
		}
		logger.Info("document ingested",
			"document_id", doc.ID,
			"filename", doc.Filename,
			"folder", doc.Folder,
		)
	}
}
