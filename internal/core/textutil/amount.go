package textutil

import (
	"strconv"
	"strings"
)

// FormatAmount renders an OCR'd payroll amount in Greek form: two fraction
// digits, comma decimal separator, dot thousands separator ("1.234,50").
// On parse failure the input is returned unchanged; amounts that already
// carry thousands grouping fail the parse and pass through as-is.
func FormatAmount(raw string) string {
	cleaned := strings.ReplaceAll(raw, ",", ".")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return raw
	}
	return greekDecimal(value)
}

func greekDecimal(value float64) string {
	fixed := strconv.FormatFloat(value, 'f', 2, 64)
	intPart, frac, _ := strings.Cut(fixed, ".")
	sign := ""
	if strings.HasPrefix(intPart, "-") {
		sign = "-"
		intPart = intPart[1:]
	}
	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)
	return sign + strings.Join(groups, ".") + "," + frac
}

// NormalizeInvoiceAmount parses a locale-ambiguous invoice amount. A single
// comma is taken as the decimal separator and any dots as thousands
// separators; with no comma, multiple dots can only be thousands separators.
// Returns false when no number can be recovered. Kept separate from
// FormatAmount on purpose: the two document families see different value
// ranges and punctuation mixes.
func NormalizeInvoiceAmount(raw string) (float64, bool) {
	s := strings.NewReplacer("€", "", " ", "").Replace(raw)
	if s == "" {
		return 0, false
	}
	if strings.Count(s, ",") == 1 {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	} else if strings.Count(s, ".") > 1 {
		s = strings.ReplaceAll(s, ".", "")
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
