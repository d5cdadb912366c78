package domain

import "time"

// PayrollRecord is one extracted payroll page. Every extracted field is
// optional: a pattern that does not match leaves the field nil, never errors.
type PayrollRecord struct {
	ID         string         `json:"id"`
	DocumentID string         `json:"document_id"`
	Subtype    PayrollSubtype `json:"subtype"`
	Reason     *string        `json:"reason"`
	Date       *string        `json:"date"`
	Amount     *string        `json:"amount"`
	Code       *string        `json:"code"`
	Surname    *string        `json:"surname"`
	Name       *string        `json:"name"`
	Paid       bool           `json:"paid"`
	FileURL    string         `json:"file_url"`
	CreatedAt  time.Time      `json:"created_at"`
}

// HasFields reports whether at least one extracted field is present.
// All-nil records are dropped before persistence.
func (r PayrollRecord) HasFields() bool {
	for _, f := range []*string{r.Reason, r.Date, r.Amount, r.Code, r.Surname, r.Name} {
		if f != nil {
			return true
		}
	}
	return false
}

// InvoiceRecord is the single record extracted from one invoice PDF.
type InvoiceRecord struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	Vendor     *string   `json:"vendor"`
	Date       *string   `json:"date"`
	Amount     *string   `json:"amount"`
	Paid       bool      `json:"paid"`
	FileURL    string    `json:"file_url"`
	CreatedAt  time.Time `json:"created_at"`
}

func (r InvoiceRecord) HasFields() bool {
	return r.Vendor != nil || r.Date != nil || r.Amount != nil
}
