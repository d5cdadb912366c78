package payroll

import (
	"regexp"
	"strings"

	"github.com/Stratos359/Company-App/internal/core/domain"
	"github.com/Stratos359/Company-App/internal/core/textutil"
)

const debtReason = "ΒΕΒΑΙΩΜΕΝΕΣ ΟΦΕΙΛΕΣ"

var (
	// Thousands-grouped decimal immediately followed by the euro sign.
	debtAmount = regexp.MustCompile(`(\d{1,3}(?:[.,]\d{3})*(?:[.,]\d{1,2}))\s*€`)
	longDigits = regexp.MustCompile(`\d{9,}`)
	issueDate  = regexp.MustCompile(`(?i)Ημ/νία\s*Έκδοσης\s*(\d{1,2}/\d{1,2}/\d{4})`)
)

// parseDebt extracts from the certified-debt statement. The page is searched
// as a single space-joined string: the statement's layout puts labels and
// values on unpredictable lines.
func parseDebt(lines []string) domain.PayrollRecord {
	reason := debtReason
	rec := domain.PayrollRecord{Subtype: domain.SubtypeDebt, Reason: &reason}
	text := strings.Join(lines, " ")

	if m := debtAmount.FindStringSubmatch(text); m != nil {
		amount := textutil.FormatAmount(m[1])
		rec.Amount = &amount
	}

	// The first 9+ digit run is the AFM tax identifier, not a payment code.
	if runs := longDigits.FindAllString(text, -1); len(runs) > 1 {
		code := strings.Join(runs[1:], " ")
		rec.Code = &code
	}

	if m := issueDate.FindStringSubmatch(text); m != nil {
		rec.Date = &m[1]
	}
	return rec
}
