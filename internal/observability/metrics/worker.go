package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type WorkerMetrics struct {
	registry *prometheus.Registry

	processTotal      *prometheus.CounterVec
	processDuration   *prometheus.HistogramVec
	processInFlight   prometheus.Gauge
	recordsExtracted  *prometheus.CounterVec
	pollCyclesTotal   *prometheus.CounterVec
	attachmentsPolled prometheus.Counter
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	processTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "companyapp",
			Subsystem: "worker",
			Name:      "document_process_total",
			Help:      "Total processed documents by folder and status.",
		},
		[]string{"service", "folder", "status"},
	)
	processDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "companyapp",
			Subsystem: "worker",
			Name:      "document_process_duration_seconds",
			Help:      "Document processing duration in seconds by folder and status.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 40, 60, 120},
		},
		[]string{"service", "folder", "status"},
	)
	processInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "companyapp",
			Subsystem: "worker",
			Name:      "document_process_in_flight",
			Help:      "Number of in-flight document processing tasks.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	recordsExtracted := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "companyapp",
			Subsystem: "worker",
			Name:      "records_extracted_total",
			Help:      "Total structured records extracted by folder.",
		},
		[]string{"service", "folder"},
	)
	pollCyclesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "companyapp",
			Subsystem: "poller",
			Name:      "cycles_total",
			Help:      "Total mailbox poll cycles by status.",
		},
		[]string{"service", "status"},
	)
	attachmentsPolled := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "companyapp",
			Subsystem: "poller",
			Name:      "attachments_total",
			Help:      "Total PDF attachments fetched from the mailbox.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)

	registry.MustRegister(
		processTotal,
		processDuration,
		processInFlight,
		recordsExtracted,
		pollCyclesTotal,
		attachmentsPolled,
	)

	return &WorkerMetrics{
		registry:          registry,
		processTotal:      processTotal,
		processDuration:   processDuration,
		processInFlight:   processInFlight,
		recordsExtracted:  recordsExtracted,
		pollCyclesTotal:   pollCyclesTotal,
		attachmentsPolled: attachmentsPolled,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) StartDocument() {
	m.processInFlight.Inc()
}

func (m *WorkerMetrics) FinishDocument(service, folder string, duration time.Duration, err error) {
	m.processInFlight.Dec()

	status := "success"
	if err != nil {
		status = "error"
	}

	m.processTotal.WithLabelValues(service, folder, status).Inc()
	m.processDuration.WithLabelValues(service, folder, status).Observe(duration.Seconds())
}

func (m *WorkerMetrics) AddExtractedRecords(service, folder string, count int) {
	if count <= 0 {
		return
	}
	m.recordsExtracted.WithLabelValues(service, folder).Add(float64(count))
}

func (m *WorkerMetrics) RecordPollCycle(service string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.pollCyclesTotal.WithLabelValues(service, status).Inc()
}

func (m *WorkerMetrics) AddPolledAttachments(count int) {
	if count <= 0 {
		return
	}
	m.attachmentsPolled.Add(float64(count))
}
