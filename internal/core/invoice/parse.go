// Package invoice extracts vendor, date and amount from invoice text.
package invoice

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Stratos359/Company-App/internal/core/domain"
	"github.com/Stratos359/Company-App/internal/core/textutil"
)

var invoiceDate = regexp.MustCompile(`[0-3]?\d/[0-1]?\d/[0-9]{4}`)

// amountPatterns are tried in priority order; the first label that matches
// wins and no merging happens across labels.
var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Πληρωτ[έε]ο\s*\(ε\)\s*:\s*([\d.,]+)`),
	regexp.MustCompile(`(?i)Πληρωτ[έε]ο Ποσό\s*:\s*([\d.,]+)`),
	regexp.MustCompile(`(?i)Συνολική Αξία\s*:\s*([\d.,]+)`),
	regexp.MustCompile(`(?i)Τελική Αξία\s*:\s*([\d.,]+)`),
	regexp.MustCompile(`(?i)Συν\. Αξία\s*:\s*([\d.,]+)`),
}

// Parse extracts the invoice record from the document's raw text. Exactly
// one record per invoice; missing fields stay nil.
func Parse(text string) domain.InvoiceRecord {
	rec := domain.InvoiceRecord{}
	rec.Vendor = vendor(text)

	if m := invoiceDate.FindString(text); m != "" {
		rec.Date = &m
	}

	for _, pattern := range amountPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if value, ok := textutil.NormalizeInvoiceAmount(m[1]); ok {
			amount := fmt.Sprintf("%.2f", value)
			rec.Amount = &amount
		}
		break
	}
	return rec
}

// vendor takes the Επωνυμία line when present (text after the colon, or
// after the label itself), otherwise the document's first non-empty line.
func vendor(text string) *string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "Επωνυμία") {
			continue
		}
		var name string
		if _, after, found := strings.Cut(line, ":"); found {
			name = strings.TrimSpace(after)
		} else {
			name = strings.TrimSpace(strings.TrimPrefix(line, "Επωνυμία"))
		}
		return &name
	}
	if len(lines) > 0 {
		return &lines[0]
	}
	return nil
}
