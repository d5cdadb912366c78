package payroll

import (
	"strings"

	"github.com/Stratos359/Company-App/internal/core/domain"
)

// Parser turns OCR'd payroll pages into records.
type Parser struct {
	strictIKACode bool
}

// NewParser builds a parser. strictIKACode selects the acceptance rule for
// the IKA payment reference: true only admits RF-prefixed codes, false
// falls back to any digits/capitals/dash token.
func NewParser(strictIKACode bool) *Parser {
	return &Parser{strictIKACode: strictIKACode}
}

// ParsePage classifies one page and runs the matching extractor.
func (p *Parser) ParsePage(pageText string) domain.PayrollRecord {
	lines := splitLines(pageText)
	switch Classify(lines) {
	case domain.SubtypeIKA:
		return parseIKA(lines, p.strictIKACode)
	case domain.SubtypeDebt:
		return parseDebt(lines)
	default:
		return parseStandard(lines)
	}
}

// ParsePages processes every page independently and keeps only records with
// at least one extracted field. A document may yield zero, one or many
// records; page order is preserved.
func (p *Parser) ParsePages(pages []string) []domain.PayrollRecord {
	var records []domain.PayrollRecord
	for _, page := range pages {
		rec := p.ParsePage(page)
		if rec.HasFields() {
			records = append(records, rec)
		}
	}
	return records
}

func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
