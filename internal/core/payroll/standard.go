package payroll

import (
	"regexp"
	"strings"

	"github.com/Stratos359/Company-App/internal/core/domain"
	"github.com/Stratos359/Company-App/internal/core/textutil"
)

var (
	nameToken = regexp.MustCompile(`^[A-Za-zΑ-Ωα-ωΆ-Ώά-ώ]+$`)
	numberRun = regexp.MustCompile(`[\d.,]+`)
)

func parseStandard(lines []string) domain.PayrollRecord {
	rec := domain.PayrollRecord{Subtype: domain.SubtypeStandard}
	rec.Surname, rec.Name = employeeName(lines)
	if raw, ok := grossAmount(lines); ok {
		amount := textutil.FormatAmount(raw)
		rec.Amount = &amount
	}
	rec.Reason = payslipReason(lines)
	return rec
}

// employeeName looks for the employee details header, then scans the next
// three lines for the first one carrying at least two letter-only tokens:
// (surname, name) in that order.
func employeeName(lines []string) (surname, name *string) {
	for i, line := range lines {
		if !strings.Contains(line, "ΣΤΟΙΧΕΙΑ ΕΡΓΑΖΟΜΕΝΟΥ") {
			continue
		}
		for j := i + 1; j < min(i+4, len(lines)); j++ {
			var words []string
			for _, w := range strings.Fields(strings.TrimSpace(lines[j])) {
				if nameToken.MatchString(w) {
					words = append(words, w)
				}
			}
			if len(words) >= 2 {
				return &words[0], &words[1]
			}
		}
	}
	return nil, nil
}

func grossAmount(lines []string) (string, bool) {
	for _, line := range lines {
		if strings.Contains(line, "Πληρωτέες Αποδοχές") {
			if m := numberRun.FindString(line); m != "" {
				return m, true
			}
		}
	}
	return "", false
}

func payslipReason(lines []string) *string {
	for _, line := range lines {
		if strings.Contains(line, "ΜΙΣΘΟΔΟΣΙΑΣ") {
			reason := strings.ReplaceAll(line, "ΕΞΟΦΛΗΤΙΚΗ ΑΠΟΔΕΙΞΗ ", "")
			reason = strings.ReplaceAll(reason, "ΜΙΣΘΟΔΟΣΙΑΣ", "ΜΙΣΘΟΔΟΣΙΑ")
			reason = strings.TrimSpace(reason)
			return &reason
		}
	}
	return nil
}
