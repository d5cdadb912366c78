package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Stratos359/Company-App/internal/core/domain"
	"github.com/Stratos359/Company-App/internal/core/ports"
)

func newInvoiceRepoWithMock(t *testing.T) (*InvoiceRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	return &InvoiceRepository{db: db}, mock, func() { _ = db.Close() }
}

func TestInsertInvoiceRecord(t *testing.T) {
	repo, mock, done := newInvoiceRepoWithMock(t)
	defer done()

	vendor := "ΕΜΠΟΡΙΚΗ ΕΠΕ"
	amount := "150.00"
	now := time.Now().UTC()
	rec := &domain.InvoiceRecord{
		ID:         "i1",
		DocumentID: "d1",
		Vendor:     &vendor,
		Amount:     &amount,
		FileURL:    "u",
		CreatedAt:  now,
	}

	mock.ExpectExec("INSERT INTO invoices").
		WithArgs("i1", "d1", "ΕΜΠΟΡΙΚΗ ΕΠΕ", nil, "150.00", false, "u", now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Insert(context.Background(), rec); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestListInvoicesAppliesDateRange(t *testing.T) {
	repo, mock, done := newInvoiceRepoWithMock(t)
	defer done()

	from := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 7, 31, 23, 59, 59, 0, time.UTC)
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"id", "document_id", "vendor", "date", "amount", "paid", "file_url", "created_at",
	}).AddRow("i1", "d1", "ΕΜΠΟΡΙΚΗ ΕΠΕ", nil, "150.00", true, "u", now)

	mock.ExpectQuery("SELECT (.+) FROM invoices WHERE created_at >= \\$1 AND created_at <= \\$2 ORDER BY created_at DESC").
		WithArgs(from, to).
		WillReturnRows(rows)

	records, err := repo.List(context.Background(), ports.RecordFilter{From: &from, To: &to})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 || !records[0].Paid {
		t.Fatalf("unexpected records %+v", records)
	}
	if records[0].Date != nil {
		t.Fatalf("null date must scan to nil pointer")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestMarkInvoicePaidReturnsRecordNotFound(t *testing.T) {
	repo, mock, done := newInvoiceRepoWithMock(t)
	defer done()

	mock.ExpectExec("UPDATE invoices SET paid").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.MarkPaid(context.Background(), "missing")
	if !domain.IsKind(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
