package reconcile

import (
	"testing"
	"time"

	"github.com/wisnuaga/e-faktur/internal/model"
)

func fullFieldSet() model.InvoiceFieldSet {
	return model.InvoiceFieldSet{
		SellerTaxID:   "012345678901234",
		SellerName:    "PT MAJU BERSAMA",
		BuyerTaxID:    "023456789012345",
		BuyerName:     "CV SUMBER REJEKI",
		InvoiceNumber: "0100002412345678",
		InvoiceDate:   model.Date(2024, time.August, 17),
		TaxBase:       model.Amount(36364855.00),
		VAT:           model.Amount(4000000.00),
	}
}

func TestReconcile_IdenticalRecords(t *testing.T) {
	result := Reconcile(fullFieldSet(), fullFieldSet())

	if result.Status != model.StatusValidated {
		t.Errorf("Status = %q, want %q", result.Status, model.StatusValidated)
	}
	if len(result.Deviations) != 0 {
		t.Errorf("Deviations = %v, want none", result.Deviations)
	}
	if result.Message != "Validation complete" {
		t.Errorf("Message = %q", result.Message)
	}
}

func TestReconcile_Classification(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		ref      string
		wantKind model.DeviationKind
		wantDev  bool
	}{
		{"equal values", "PT MAJU BERSAMA", "PT MAJU BERSAMA", "", false},
		{"both absent", "", "", "", false},
		{"missing in document", "", "PT MAJU BERSAMA", model.KindMissingInDocument, true},
		{"missing in reference", "PT MAJU BERSAMA", "", model.KindMissingInReference, true},
		{"mismatch", "PT MAJU BERSAMA", "PT MAJU JAYA", model.KindMismatch, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := model.InvoiceFieldSet{SellerName: tt.doc}
			ref := model.InvoiceFieldSet{SellerName: tt.ref}

			result := Reconcile(doc, ref)

			var dev *model.Deviation
			for i := range result.Deviations {
				if result.Deviations[i].Field == model.FieldSellerName {
					dev = &result.Deviations[i]
				}
			}

			if !tt.wantDev {
				if dev != nil {
					t.Fatalf("unexpected deviation: %+v", dev)
				}
				return
			}
			if dev == nil {
				t.Fatal("expected a sellerName deviation")
			}
			if dev.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", dev.Kind, tt.wantKind)
			}
			if dev.DocumentValue != tt.doc || dev.ReferenceValue != tt.ref {
				t.Errorf("values = (%q, %q), want (%q, %q)",
					dev.DocumentValue, dev.ReferenceValue, tt.doc, tt.ref)
			}
		})
	}
}

func TestReconcile_MissingDateInDocument(t *testing.T) {
	doc := fullFieldSet()
	doc.InvoiceDate = nil
	ref := fullFieldSet()

	result := Reconcile(doc, ref)

	if result.Status != model.StatusWithDeviations {
		t.Fatalf("Status = %q", result.Status)
	}
	if len(result.Deviations) != 1 {
		t.Fatalf("Deviations = %+v, want exactly one", result.Deviations)
	}
	dev := result.Deviations[0]
	if dev.Field != model.FieldInvoiceDate || dev.Kind != model.KindMissingInDocument {
		t.Errorf("deviation = %+v", dev)
	}
	if dev.ReferenceValue != "2024-08-17" {
		t.Errorf("ReferenceValue = %q, want 2024-08-17", dev.ReferenceValue)
	}
}

func TestReconcile_DeviationsKeepFieldOrder(t *testing.T) {
	doc := fullFieldSet()
	doc.SellerTaxID = "999999999999999"
	doc.InvoiceNumber = ""
	doc.VAT = model.Amount(1.00)

	result := Reconcile(doc, fullFieldSet())

	want := []string{model.FieldSellerTaxID, model.FieldInvoiceNumber, model.FieldVAT}
	if len(result.Deviations) != len(want) {
		t.Fatalf("Deviations = %+v", result.Deviations)
	}
	for i, field := range want {
		if result.Deviations[i].Field != field {
			t.Errorf("Deviations[%d].Field = %q, want %q", i, result.Deviations[i].Field, field)
		}
	}
}

func TestReconcile_AmountComparesNumerically(t *testing.T) {
	doc := model.InvoiceFieldSet{TaxBase: model.Amount(36364855)}
	ref := model.InvoiceFieldSet{TaxBase: model.Amount(36364855.00)}

	result := Reconcile(doc, ref)
	for _, dev := range result.Deviations {
		if dev.Field == model.FieldTaxBase {
			t.Errorf("unexpected taxBase deviation: %+v", dev)
		}
	}
}

func TestReconcile_OptionalLuxuryVAT(t *testing.T) {
	// Absent on both sides: not a deviation. Present on one side only:
	// classified like any other field.
	result := Reconcile(fullFieldSet(), fullFieldSet())
	if len(result.Deviations) != 0 {
		t.Fatalf("Deviations = %+v", result.Deviations)
	}

	ref := fullFieldSet()
	ref.LuxuryVAT = model.Amount(50000)
	result = Reconcile(fullFieldSet(), ref)
	if len(result.Deviations) != 1 || result.Deviations[0].Kind != model.KindMissingInDocument {
		t.Fatalf("Deviations = %+v", result.Deviations)
	}
}

func TestReconcile_ReferenceDataEchoed(t *testing.T) {
	ref := fullFieldSet()
	result := Reconcile(model.InvoiceFieldSet{}, ref)

	if result.ReferenceData.SellerName != ref.SellerName {
		t.Errorf("ReferenceData not echoed: %+v", result.ReferenceData)
	}
}
