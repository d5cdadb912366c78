package payroll

import (
	"testing"

	"github.com/Stratos359/Company-App/internal/core/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  domain.PayrollSubtype
	}{
		{
			"ika copy marker with acronym",
			[]string{"ΑΝΤΙΓΡΑΦΟ ΑΠΔ", "Ημερομηνία Υποβολής: 06/07/2024"},
			domain.SubtypeIKA,
		},
		{
			"ika with latin ocr misread",
			[]string{"ΑΝΤΙΓΡΑΦΟ ANA"},
			domain.SubtypeIKA,
		},
		{
			"copy marker alone is not ika",
			[]string{"ΑΝΤΙΓΡΑΦΟ", "ΑΠΔ"},
			domain.SubtypeStandard,
		},
		{
			"certified debt",
			[]string{"Ταυτότητα Πληρωμής", "πληρωμή βεβαιωμένων οφειλών"},
			domain.SubtypeDebt,
		},
		{
			"debt match is case insensitive",
			[]string{"ΠΛΗΡΩΜΉ ΒΕΒΑΙΩΜΈΝΩΝ ΟΦΕΙΛΏΝ"},
			domain.SubtypeDebt,
		},
		{
			"payslip falls through to standard",
			[]string{"ΕΞΟΦΛΗΤΙΚΗ ΑΠΟΔΕΙΞΗ ΜΙΣΘΟΔΟΣΙΑΣ ΙΟΥΛΙΟΥ"},
			domain.SubtypeStandard,
		},
		{
			"empty page is standard",
			nil,
			domain.SubtypeStandard,
		},
		{
			"ika wins over debt when both match",
			[]string{"ΑΝΤΙΓΡΑΦΟ ΑΠΔ", "πληρωμή βεβαιωμένων οφειλών"},
			domain.SubtypeIKA,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.lines); got != tt.want {
				t.Fatalf("Classify(%v) = %q, want %q", tt.lines, got, tt.want)
			}
		})
	}
}
