package domain

import "testing"

func TestPayrollRecordHasFields(t *testing.T) {
	var rec PayrollRecord
	if rec.HasFields() {
		t.Fatalf("zero record must report no fields")
	}

	code := "RF123"
	rec.Code = &code
	if !rec.HasFields() {
		t.Fatalf("record with a code must report fields")
	}

	rec = PayrollRecord{ID: "p1", DocumentID: "d1", Paid: true, FileURL: "u"}
	if rec.HasFields() {
		t.Fatalf("bookkeeping columns alone must not count as extracted fields")
	}
}

func TestInvoiceRecordHasFields(t *testing.T) {
	var rec InvoiceRecord
	if rec.HasFields() {
		t.Fatalf("zero record must report no fields")
	}

	vendor := "ΕΜΠΟΡΙΚΗ ΕΠΕ"
	rec.Vendor = &vendor
	if !rec.HasFields() {
		t.Fatalf("record with a vendor must report fields")
	}
}
