// Package payroll classifies payroll pages into one of three shapes and
// extracts their semantic fields from OCR text. Classification and
// extraction are pure functions over the page lines; a pattern that does not
// match leaves its field nil.
package payroll

import (
	"strings"

	"github.com/Stratos359/Company-App/internal/core/domain"
)

// rule is one classification step. Rules are evaluated in order and the
// first match wins, so precedence stays auditable per rule.
type rule struct {
	subtype domain.PayrollSubtype
	match   func(lines []string) bool
}

var rules = []rule{
	{domain.SubtypeIKA, matchIKA},
	{domain.SubtypeDebt, matchDebt},
}

// Classify picks the record shape for one page. Pages are classified
// independently: a multi-page PDF may mix subtypes. The standard payslip is
// the fallback, never an error.
func Classify(lines []string) domain.PayrollSubtype {
	for _, r := range rules {
		if r.match(lines) {
			return r.subtype
		}
	}
	return domain.SubtypeStandard
}

// Social-insurance remittances carry a copy marker and the declaration
// acronym on the same line. "ANA" covers the Latin OCR misread of ΑΠΔ.
func matchIKA(lines []string) bool {
	for _, line := range lines {
		if strings.Contains(line, "ΑΝΤΙΓΡΑΦΟ") &&
			(strings.Contains(line, "ΑΠΔ") || strings.Contains(line, "ANA")) {
			return true
		}
	}
	return false
}

func matchDebt(lines []string) bool {
	for _, line := range lines {
		if strings.Contains(strings.ToLower(line), "πληρωμή βεβαιωμένων οφειλών") {
			return true
		}
	}
	return false
}
