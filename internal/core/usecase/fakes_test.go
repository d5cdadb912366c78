package usecase

import (
	"bytes"
	"context"
	"io"

	"github.com/Stratos359/Company-App/internal/core/domain"
	"github.com/Stratos359/Company-App/internal/core/ports"
)

type fakeDocRepo struct {
	created *domain.Document
	getDoc  *domain.Document
	getErr  error

	statusHistory []domain.DocumentStatus
	lastError     string
}

func (f *fakeDocRepo) Create(_ context.Context, doc *domain.Document) error {
	f.created = doc
	return nil
}

func (f *fakeDocRepo) GetByID(context.Context, string) (*domain.Document, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getDoc, nil
}

func (f *fakeDocRepo) UpdateStatus(_ context.Context, _ string, status domain.DocumentStatus, errMessage string) error {
	f.statusHistory = append(f.statusHistory, status)
	f.lastError = errMessage
	return nil
}

type fakeStorage struct {
	uploadedKey  string
	uploadedData []byte
	uploadErr    error

	openData []byte
	openErr  error
}

func (f *fakeStorage) Upload(_ context.Context, key string, data io.Reader) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.uploadedKey = key
	f.uploadedData, _ = io.ReadAll(data)
	return "https://files.example.com/" + key, nil
}

func (f *fakeStorage) Open(context.Context, string) (io.ReadCloser, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	return io.NopCloser(bytes.NewReader(f.openData)), nil
}

type fakeQueue struct {
	published  []string
	publishErr error
}

func (f *fakeQueue) PublishDocumentReceived(_ context.Context, documentID string) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, documentID)
	return nil
}

func (f *fakeQueue) SubscribeDocumentReceived(context.Context, func(context.Context, string) error) error {
	return nil
}

type fakeExtractor struct {
	pages    []string
	text     string
	pagesErr error
	textErr  error
}

func (f *fakeExtractor) PayrollPages(context.Context, []byte) ([]string, error) {
	return f.pages, f.pagesErr
}

func (f *fakeExtractor) InvoiceText(context.Context, []byte) (string, error) {
	return f.text, f.textErr
}

type fakePayrollRepo struct {
	inserted []domain.PayrollRecord
	listed   []domain.PayrollRecord
	paidIDs  []string
	err      error
}

func (f *fakePayrollRepo) InsertBatch(_ context.Context, records []domain.PayrollRecord) error {
	if f.err != nil {
		return f.err
	}
	f.inserted = append(f.inserted, records...)
	return nil
}

func (f *fakePayrollRepo) List(context.Context, ports.RecordFilter) ([]domain.PayrollRecord, error) {
	return f.listed, f.err
}

func (f *fakePayrollRepo) MarkPaid(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.paidIDs = append(f.paidIDs, id)
	return nil
}

type fakeInvoiceRepo struct {
	inserted []domain.InvoiceRecord
	listed   []domain.InvoiceRecord
	paidIDs  []string
	err      error
}

func (f *fakeInvoiceRepo) Insert(_ context.Context, rec *domain.InvoiceRecord) error {
	if f.err != nil {
		return f.err
	}
	f.inserted = append(f.inserted, *rec)
	return nil
}

func (f *fakeInvoiceRepo) List(context.Context, ports.RecordFilter) ([]domain.InvoiceRecord, error) {
	return f.listed, f.err
}

func (f *fakeInvoiceRepo) MarkPaid(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.paidIDs = append(f.paidIDs, id)
	return nil
}
