package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Stratos359/Company-App/internal/core/domain"
	"github.com/Stratos359/Company-App/internal/core/ports"
)

type fakeRecordService struct {
	payrolls []domain.PayrollRecord
	invoices []domain.InvoiceRecord

	lastFilter ports.RecordFilter
	paidIDs    []string
	markErr    error
}

func (f *fakeRecordService) ListPayrolls(_ context.Context, filter ports.RecordFilter) ([]domain.PayrollRecord, error) {
	f.lastFilter = filter
	return f.payrolls, nil
}

func (f *fakeRecordService) ListInvoices(_ context.Context, filter ports.RecordFilter) ([]domain.InvoiceRecord, error) {
	f.lastFilter = filter
	return f.invoices, nil
}

func (f *fakeRecordService) MarkPayrollPaid(_ context.Context, id string) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.paidIDs = append(f.paidIDs, id)
	return nil
}

func (f *fakeRecordService) MarkInvoicePaid(_ context.Context, id string) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.paidIDs = append(f.paidIDs, id)
	return nil
}

type fakeExporter struct {
	data   []byte
	folder domain.Folder
	err    error
}

func (f *fakeExporter) ExportXLSX(_ context.Context, folder domain.Folder, _ ports.RecordFilter) ([]byte, error) {
	f.folder = folder
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

type fakeDocumentRepo struct {
	doc *domain.Document
	err error
}

func (f *fakeDocumentRepo) Create(context.Context, *domain.Document) error { return nil }

func (f *fakeDocumentRepo) GetByID(context.Context, string) (*domain.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.doc, nil
}

func (f *fakeDocumentRepo) UpdateStatus(context.Context, string, domain.DocumentStatus, string) error {
	return nil
}

func newTestRouter(records *fakeRecordService, exporter *fakeExporter, docs *fakeDocumentRepo) http.Handler {
	return NewRouter(records, exporter, docs, RouterOptions{}).Handler()
}

func TestListPayrollsAppliesPaidFilter(t *testing.T) {
	amount := "1.234,50"
	records := &fakeRecordService{
		payrolls: []domain.PayrollRecord{{ID: "p1", Subtype: domain.SubtypeStandard, Amount: &amount}},
	}
	handler := newTestRouter(records, &fakeExporter{}, &fakeDocumentRepo{})

	req := httptest.NewRequest(http.MethodGet, "/v1/payrolls?paid=false", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if records.lastFilter.Paid == nil || *records.lastFilter.Paid {
		t.Fatalf("expected paid=false filter, got %+v", records.lastFilter.Paid)
	}

	var payload []domain.PayrollRecord
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload) != 1 || payload[0].ID != "p1" {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestListPayrollsRejectsBadPaidValue(t *testing.T) {
	handler := newTestRouter(&fakeRecordService{}, &fakeExporter{}, &fakeDocumentRepo{})

	req := httptest.NewRequest(http.MethodGet, "/v1/payrolls?paid=maybe", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestListInvoicesReturnsEmptyArray(t *testing.T) {
	handler := newTestRouter(&fakeRecordService{}, &fakeExporter{}, &fakeDocumentRepo{})

	req := httptest.NewRequest(http.MethodGet, "/v1/invoices", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if body := res.Body.String(); body != "[]\n" {
		t.Fatalf("expected empty JSON array, got %q", body)
	}
}

func TestMarkPayrollPaid(t *testing.T) {
	records := &fakeRecordService{}
	handler := newTestRouter(records, &fakeExporter{}, &fakeDocumentRepo{})

	req := httptest.NewRequest(http.MethodPost, "/v1/payrolls/p1/paid", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if len(records.paidIDs) != 1 || records.paidIDs[0] != "p1" {
		t.Fatalf("expected p1 marked paid, got %v", records.paidIDs)
	}
}

func TestMarkInvoicePaidMapsNotFound(t *testing.T) {
	records := &fakeRecordService{
		markErr: domain.WrapError(domain.ErrRecordNotFound, "mark invoice paid", errors.New("no rows")),
	}
	handler := newTestRouter(records, &fakeExporter{}, &fakeDocumentRepo{})

	req := httptest.NewRequest(http.MethodPost, "/v1/invoices/missing/paid", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
}

func TestMarkPaidRejectsUnknownAction(t *testing.T) {
	handler := newTestRouter(&fakeRecordService{}, &fakeExporter{}, &fakeDocumentRepo{})

	req := httptest.NewRequest(http.MethodPost, "/v1/payrolls/p1/void", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown action, got %d", res.Code)
	}
}

func TestGetDocumentByID(t *testing.T) {
	docs := &fakeDocumentRepo{
		doc: &domain.Document{
			ID:         "d1",
			Filename:   "misthodosia.pdf",
			Folder:     domain.FolderPayrolls,
			Status:     domain.StatusProcessed,
			ReceivedAt: time.Now().UTC(),
		},
	}
	handler := newTestRouter(&fakeRecordService{}, &fakeExporter{}, docs)

	req := httptest.NewRequest(http.MethodGet, "/v1/documents/d1", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}

	var doc domain.Document
	if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if doc.ID != "d1" || doc.Folder != domain.FolderPayrolls {
		t.Fatalf("unexpected document %+v", doc)
	}
}

func TestExportSetsSpreadsheetHeaders(t *testing.T) {
	exporter := &fakeExporter{data: []byte("xlsx-bytes")}
	handler := newTestRouter(&fakeRecordService{}, exporter, &fakeDocumentRepo{})

	req := httptest.NewRequest(http.MethodGet, "/v1/exports/payrolls?paid=false", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if exporter.folder != domain.FolderPayrolls {
		t.Fatalf("expected payrolls folder, got %q", exporter.folder)
	}
	if got := res.Header().Get("Content-Type"); got != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Fatalf("unexpected content type %q", got)
	}
	if res.Header().Get("Content-Disposition") == "" {
		t.Fatalf("expected attachment disposition header")
	}
}

func TestExportUnknownFolderMapsBadRequest(t *testing.T) {
	exporter := &fakeExporter{
		err: domain.WrapError(domain.ErrInvalidInput, "export", errors.New(`unknown folder "receipts"`)),
	}
	handler := newTestRouter(&fakeRecordService{}, exporter, &fakeDocumentRepo{})

	req := httptest.NewRequest(http.MethodGet, "/v1/exports/receipts", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestRateLimitMiddlewareReturns429(t *testing.T) {
	handler := NewRouter(&fakeRecordService{}, &fakeExporter{}, &fakeDocumentRepo{}, RouterOptions{
		RateLimitRPS:   1,
		RateLimitBurst: 1,
	}).Handler()

	req1 := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	res1 := httptest.NewRecorder()
	handler.ServeHTTP(res1, req1)
	if res1.Code != http.StatusOK {
		t.Fatalf("first request expected 200, got %d", res1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	res2 := httptest.NewRecorder()
	handler.ServeHTTP(res2, req2)
	if res2.Code != http.StatusTooManyRequests {
		t.Fatalf("second request expected 429, got %d", res2.Code)
	}
	if res2.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header for 429 response")
	}
}

func TestRequestIDHeaderIsEchoed(t *testing.T) {
	handler := newTestRouter(&fakeRecordService{}, &fakeExporter{}, &fakeDocumentRepo{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "req-42")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if got := res.Header().Get(requestIDHeader); got != "req-42" {
		t.Fatalf("expected request id echoed, got %q", got)
	}
}
