package payroll

import (
	"regexp"
	"strings"

	"github.com/Stratos359/Company-App/internal/core/domain"
	"github.com/Stratos359/Company-App/internal/core/textutil"
)

const ikaReason = "ΙΚΑ"

var (
	slashDate    = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`)
	ikaAmountRun = regexp.MustCompile(`\d+[.,]?\d*`)
	tpteLabel    = regexp.MustCompile(`Τ\.Π\.Τ\.Ε`)
	laxCodeToken = regexp.MustCompile(`^[\dA-Z-]+`)
)

func parseIKA(lines []string, strictCode bool) domain.PayrollRecord {
	reason := ikaReason
	rec := domain.PayrollRecord{Subtype: domain.SubtypeIKA, Reason: &reason}

	for i, line := range lines {
		compact := strings.NewReplacer(" ", "", ";", "", ":", "").Replace(line)

		if strings.Contains(compact, "ΗμερομηνίαΥποβολής") {
			if m := slashDate.FindString(line); m != "" {
				m = fixMisreadDay(m)
				rec.Date = &m
			}
		}

		if strings.Contains(compact, "ΣύνολοΕισφορών") {
			if m := ikaAmountRun.FindString(line); m != "" {
				amount := textutil.FormatAmount(m)
				rec.Amount = &amount
			}
		}

		// Every label reassigns, so with repeated labels the last
		// candidate wins.
		if tpteLabel.MatchString(compact) {
			rec.Code = paymentCode(lines, i, strictCode)
		}
	}
	return rec
}

// paymentCode scans up to five lines past the Τ.Π.Τ.Ε label for the payment
// reference. Strict mode only accepts RF-prefixed codes; lax mode takes the
// first line opening with digits, capitals or dashes.
func paymentCode(lines []string, labelIdx int, strict bool) *string {
	for j := labelIdx + 1; j < min(labelIdx+6, len(lines)); j++ {
		candidate := strings.TrimSpace(lines[j])
		if candidate == "" {
			continue
		}
		if strict {
			if strings.HasPrefix(strings.ToUpper(candidate), "RF") {
				return &candidate
			}
			continue
		}
		if laxCodeToken.MatchString(candidate) {
			return &candidate
		}
	}
	return nil
}

// fixMisreadDay corrects a systematic OCR confusion: a leading day of "96"
// is always a misread "06". Any other day prefix is left untouched.
func fixMisreadDay(date string) string {
	if strings.HasPrefix(date, "96/") {
		return "06/" + date[3:]
	}
	return date
}
