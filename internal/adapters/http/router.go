// Package httpadapter exposes stored documents and extracted records
// over a small JSON API for the accounting frontend.
package httpadapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Stratos359/Company-App/internal/core/domain"
	"github.com/Stratos359/Company-App/internal/core/ports"
	"github.com/Stratos359/Company-App/internal/observability/metrics"
)

type Router struct {
	records  ports.RecordService
	exporter ports.RecordExporter
	docs     ports.DocumentRepository
	metrics  *metrics.HTTPServerMetrics
	service  string

	rateLimitRPS   float64
	rateLimitBurst int
}

type RouterOptions struct {
	Metrics        *metrics.HTTPServerMetrics
	Service        string
	RateLimitRPS   float64
	RateLimitBurst int
}

func NewRouter(
	records ports.RecordService,
	exporter ports.RecordExporter,
	docs ports.DocumentRepository,
	options RouterOptions,
) *Router {
	service := options.Service
	if service == "" {
		service = "api"
	}
	return &Router{
		records:        records,
		exporter:       exporter,
		docs:           docs,
		metrics:        options.Metrics,
		service:        service,
		rateLimitRPS:   options.RateLimitRPS,
		rateLimitBurst: options.RateLimitBurst,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/payrolls", rt.listPayrolls)
	mux.HandleFunc("/v1/payrolls/", rt.markPayrollPaid)
	mux.HandleFunc("/v1/invoices", rt.listInvoices)
	mux.HandleFunc("/v1/invoices/", rt.markInvoicePaid)
	mux.HandleFunc("/v1/documents/", rt.getDocumentByID)
	mux.HandleFunc("/v1/exports/", rt.exportFolder)

	var handler http.Handler = mux
	handler = rateLimitMiddleware(handler, rt.rateLimitRPS, rt.rateLimitBurst)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
		handler = rt.metrics.Middleware(rt.service, handler)
	}
	return requestIDMiddleware(accessLogMiddleware(handler))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) listPayrolls(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	filter, err := parseRecordFilter(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	records, err := rt.records.ListPayrolls(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	if records == nil {
		records = []domain.PayrollRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (rt *Router) listInvoices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	filter, err := parseRecordFilter(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	records, err := rt.records.ListInvoices(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	if records == nil {
		records = []domain.InvoiceRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (rt *Router) markPayrollPaid(w http.ResponseWriter, r *http.Request) {
	id, ok := paidActionID(w, r, "/v1/payrolls/")
	if !ok {
		return
	}
	if err := rt.records.MarkPayrollPaid(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordPaidMark(rt.service, string(domain.FolderPayrolls))
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id, "paid": "true"})
}

func (rt *Router) markInvoicePaid(w http.ResponseWriter, r *http.Request) {
	id, ok := paidActionID(w, r, "/v1/invoices/")
	if !ok {
		return
	}
	if err := rt.records.MarkInvoicePaid(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordPaidMark(rt.service, string(domain.FolderInvoices))
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id, "paid": "true"})
}

func (rt *Router) getDocumentByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/v1/documents/")
	if id == "" || strings.Contains(id, "/") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "document id is required"})
		return
	}

	doc, err := rt.docs.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (rt *Router) exportFolder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	folder := domain.Folder(strings.TrimPrefix(r.URL.Path, "/v1/exports/"))
	filter, err := parseRecordFilter(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	data, err := rt.exporter.ExportXLSX(r.Context(), folder, filter)
	if err != nil {
		writeError(w, err)
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordExport(rt.service, string(folder))
	}

	filename := fmt.Sprintf("%s_%s.xlsx", folder, time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// paidActionID validates POST /v1/{payrolls,invoices}/{id}/paid and
// returns the record ID.
func paidActionID(w http.ResponseWriter, r *http.Request, prefix string) (string, bool) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return "", false
	}
	rest := strings.TrimPrefix(r.URL.Path, prefix)
	id, action, ok := strings.Cut(rest, "/")
	if !ok || id == "" || action != "paid" {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return "", false
	}
	return id, true
}

func parseRecordFilter(r *http.Request) (ports.RecordFilter, error) {
	var filter ports.RecordFilter
	query := r.URL.Query()

	if raw := query.Get("paid"); raw != "" {
		paid, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, fmt.Errorf("invalid paid value %q", raw)
		}
		filter.Paid = &paid
	}
	if raw := query.Get("from"); raw != "" {
		from, err := parseDateParam(raw)
		if err != nil {
			return filter, fmt.Errorf("invalid from value %q", raw)
		}
		filter.From = &from
	}
	if raw := query.Get("to"); raw != "" {
		to, err := parseDateParam(raw)
		if err != nil {
			return filter, fmt.Errorf("invalid to value %q", raw)
		}
		filter.To = &to
	}
	return filter, nil
}

func parseDateParam(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
