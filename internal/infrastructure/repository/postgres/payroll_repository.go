package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/Stratos359/Company-App/internal/core/domain"
	"github.com/Stratos359/Company-App/internal/core/ports"
)

type PayrollRepository struct {
	db *sql.DB
}

func NewPayrollRepository(db *sql.DB) *PayrollRepository {
	return &PayrollRepository{db: db}
}

// InsertBatch writes every record of one document in a single transaction:
// either all pages land or none do.
func (r *PayrollRepository) InsertBatch(ctx context.Context, records []domain.PayrollRecord) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, rec := range records {
		_, err := tx.ExecContext(ctx, `
INSERT INTO payrolls (
	id, document_id, subtype, reason, date, amount, code, surname, name, paid, file_url, created_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
`,
			rec.ID, rec.DocumentID, string(rec.Subtype), rec.Reason, rec.Date, rec.Amount,
			rec.Code, rec.Surname, rec.Name, rec.Paid, rec.FileURL, rec.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert payroll record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert tx: %w", err)
	}
	return nil
}

func (r *PayrollRepository) List(ctx context.Context, filter ports.RecordFilter) ([]domain.PayrollRecord, error) {
	query := `
SELECT id, document_id, subtype, reason, date, amount, code, surname, name, paid, file_url, created_at
FROM payrolls`
	where, args := filterClauses(filter)
	if where != "" {
		query += where
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query payrolls: %w", err)
	}
	defer rows.Close()

	var records []domain.PayrollRecord
	for rows.Next() {
		var rec domain.PayrollRecord
		var subtype string
		err := rows.Scan(
			&rec.ID, &rec.DocumentID, &subtype, &rec.Reason, &rec.Date, &rec.Amount,
			&rec.Code, &rec.Surname, &rec.Name, &rec.Paid, &rec.FileURL, &rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan payroll record: %w", err)
		}
		rec.Subtype = domain.PayrollSubtype(subtype)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payrolls: %w", err)
	}
	return records, nil
}

func (r *PayrollRepository) MarkPaid(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE payrolls SET paid = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark payroll paid: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark payroll paid rows: %w", err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrRecordNotFound, "mark payroll paid", sql.ErrNoRows)
	}
	return nil
}

// filterClauses builds the WHERE fragment shared by both record tables.
func filterClauses(filter ports.RecordFilter) (string, []any) {
	var clauses []string
	var args []any
	if filter.Paid != nil {
		args = append(args, *filter.Paid)
		clauses = append(clauses, "paid = $"+strconv.Itoa(len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		clauses = append(clauses, "created_at >= $"+strconv.Itoa(len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		clauses = append(clauses, "created_at <= $"+strconv.Itoa(len(args)))
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}
