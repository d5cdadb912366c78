package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Stratos359/Company-App/internal/core/domain"
	"github.com/Stratos359/Company-App/internal/core/ports"
)

type InvoiceRepository struct {
	db *sql.DB
}

func NewInvoiceRepository(db *sql.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

func (r *InvoiceRepository) Insert(ctx context.Context, rec *domain.InvoiceRecord) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO invoices (
	id, document_id, vendor, date, amount, paid, file_url, created_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
`,
		rec.ID, rec.DocumentID, rec.Vendor, rec.Date, rec.Amount, rec.Paid, rec.FileURL, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert invoice record: %w", err)
	}
	return nil
}

func (r *InvoiceRepository) List(ctx context.Context, filter ports.RecordFilter) ([]domain.InvoiceRecord, error) {
	query := `
SELECT id, document_id, vendor, date, amount, paid, file_url, created_at
FROM invoices`
	where, args := filterClauses(filter)
	if where != "" {
		query += where
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query invoices: %w", err)
	}
	defer rows.Close()

	var records []domain.InvoiceRecord
	for rows.Next() {
		var rec domain.InvoiceRecord
		err := rows.Scan(
			&rec.ID, &rec.DocumentID, &rec.Vendor, &rec.Date, &rec.Amount,
			&rec.Paid, &rec.FileURL, &rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan invoice record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invoices: %w", err)
	}
	return records, nil
}

func (r *InvoiceRepository) MarkPaid(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE invoices SET paid = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark invoice paid: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark invoice paid rows: %w", err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrRecordNotFound, "mark invoice paid", sql.ErrNoRows)
	}
	return nil
}
