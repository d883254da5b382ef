package extract

import (
	"testing"
	"time"
)

const sampleInvoice = `Faktur Pajak

Kode dan Nomor Seri Faktur Pajak : 010.000-24.12345678

Pengusaha Kena Pajak
Nama : PT. MAJU BERSAMA
Alamat : Jl. Jend. Sudirman Kav. 1, Jakarta Selatan
NPWP : 01.234.567.8-901.234

Pembeli Barang Kena Pajak / Penerima Jasa Kena Pajak
Nama : CV SUMBER REJEKI
Alamat : Jl. Gatot Subroto No. 12, Bandung
NPWP : 02.345.678.9-012.345

Harga Jual / Penggantian 36.364.855,00
Dasar Pengenaan Pajak 36.364.855,00
Jumlah PPN (Pajak Pertambahan Nilai) 4.000.000,00

Jakarta, 17 Agustus 2024`

func TestExtract_FullInvoice(t *testing.T) {
	e := NewFieldExtractor()
	fields := e.Extract(sampleInvoice)

	if fields.SellerTaxID != "012345678901234" {
		t.Errorf("SellerTaxID = %q, want 012345678901234", fields.SellerTaxID)
	}
	if fields.BuyerTaxID != "023456789012345" {
		t.Errorf("BuyerTaxID = %q, want 023456789012345", fields.BuyerTaxID)
	}
	if fields.SellerName != "PT MAJU BERSAMA" {
		t.Errorf("SellerName = %q, want PT MAJU BERSAMA", fields.SellerName)
	}
	if fields.BuyerName != "CV SUMBER REJEKI" {
		t.Errorf("BuyerName = %q, want CV SUMBER REJEKI", fields.BuyerName)
	}
	if fields.InvoiceNumber != "0100002412345678" {
		t.Errorf("InvoiceNumber = %q, want 0100002412345678", fields.InvoiceNumber)
	}

	wantDate := time.Date(2024, time.August, 17, 0, 0, 0, 0, time.UTC)
	if fields.InvoiceDate == nil || !fields.InvoiceDate.Equal(wantDate) {
		t.Errorf("InvoiceDate = %v, want %v", fields.InvoiceDate, wantDate)
	}

	if fields.TaxBase == nil || *fields.TaxBase != 36364855.00 {
		t.Errorf("TaxBase = %v, want 36364855.00", fields.TaxBase)
	}
	if fields.VAT == nil || *fields.VAT != 4000000.00 {
		t.Errorf("VAT = %v, want 4000000.00", fields.VAT)
	}
	if fields.LuxuryVAT != nil {
		t.Errorf("LuxuryVAT = %v, want absent", fields.LuxuryVAT)
	}
}

func TestExtract_IndividualBuyerKeepsCasing(t *testing.T) {
	text := `Nama : PT. MAJU BERSAMA NIK/Paspor :
NPWP : 01.234.567.8-901.234

Nama : Budi Santoso NIK/Paspor : 3171234567890001
NPWP : 02.345.678.9-012.345`

	e := NewFieldExtractor()
	fields := e.Extract(text)

	if fields.SellerName != "PT MAJU BERSAMA" {
		t.Errorf("SellerName = %q, want PT MAJU BERSAMA", fields.SellerName)
	}
	// Individuals are never company-normalized: no prefix rewrite, no
	// case change.
	if fields.BuyerName != "Budi Santoso" {
		t.Errorf("BuyerName = %q, want Budi Santoso", fields.BuyerName)
	}
}

func TestExtract_LabeledValueBeatsBarePattern(t *testing.T) {
	// A labeled NPWP and a conflicting bare 15-digit number: the labeled
	// value must win.
	text := `NPWP : 01.234.567.8-901.234
Nomor referensi internal 999888777666555`

	e := NewFieldExtractor()
	fields := e.Extract(text)

	if fields.SellerTaxID != "012345678901234" {
		t.Errorf("SellerTaxID = %q, want labeled value 012345678901234", fields.SellerTaxID)
	}
}

func TestExtract_BareFallbacks(t *testing.T) {
	// No labels at all: bare patterns must resolve IDs, serial and date.
	text := `Dokumen tanpa label
012345678901234 dan 023456789012345
seri 010.000-24.12345678
tertanggal 17/08/2024`

	e := NewFieldExtractor()
	fields := e.Extract(text)

	if fields.SellerTaxID != "012345678901234" {
		t.Errorf("SellerTaxID = %q", fields.SellerTaxID)
	}
	if fields.BuyerTaxID != "023456789012345" {
		t.Errorf("BuyerTaxID = %q", fields.BuyerTaxID)
	}
	if fields.InvoiceNumber != "0100002412345678" {
		t.Errorf("InvoiceNumber = %q", fields.InvoiceNumber)
	}
	wantDate := time.Date(2024, time.August, 17, 0, 0, 0, 0, time.UTC)
	if fields.InvoiceDate == nil || !fields.InvoiceDate.Equal(wantDate) {
		t.Errorf("InvoiceDate = %v, want %v", fields.InvoiceDate, wantDate)
	}
}

func TestExtract_SectionalFallbackForNames(t *testing.T) {
	// No "Nama :" labels anywhere; names come from fixed block positions.
	text := `Faktur Pajak 010.000-24.12345678

PT. ABC JAYA
Jl. Merdeka No. 1

CV MAKMUR SENTOSA
Jl. Pahlawan No. 2`

	e := NewFieldExtractor()
	fields := e.Extract(text)

	if fields.SellerName != "PT ABC JAYA" {
		t.Errorf("SellerName = %q, want PT ABC JAYA", fields.SellerName)
	}
	if fields.BuyerName != "CV MAKMUR SENTOSA" {
		t.Errorf("BuyerName = %q, want CV MAKMUR SENTOSA", fields.BuyerName)
	}
}

func TestExtract_NeverFails(t *testing.T) {
	inputs := []string{"", "\n\n\n", "completely unrelated text", "NPWP : garbage"}

	e := NewFieldExtractor()
	for _, in := range inputs {
		fields := e.Extract(in)

		if fields.SellerTaxID != "" || fields.BuyerTaxID != "" {
			t.Errorf("Extract(%q): expected absent tax IDs", in)
		}
		if fields.InvoiceDate != nil {
			t.Errorf("Extract(%q): expected absent date", in)
		}
		// Amounts degrade to zero, never to an error.
		if fields.TaxBase == nil || *fields.TaxBase != 0.0 {
			t.Errorf("Extract(%q): TaxBase = %v, want 0.0", in, fields.TaxBase)
		}
		if fields.VAT == nil || *fields.VAT != 0.0 {
			t.Errorf("Extract(%q): VAT = %v, want 0.0", in, fields.VAT)
		}
	}
}

func TestExtract_MalformedTaxIDIsAbsent(t *testing.T) {
	// 14 digits after normalization: the invariant rejects it and no
	// placeholder leaks through.
	text := "NPWP : 01.234.567.8-901.23"

	e := NewFieldExtractor()
	fields := e.Extract(text)

	if fields.SellerTaxID != "" {
		t.Errorf("SellerTaxID = %q, want absent", fields.SellerTaxID)
	}
}

func TestExtract_LuxuryVATOnlyWhenPresent(t *testing.T) {
	text := `Dasar Pengenaan Pajak 1.000.000,00
Jumlah PPN 110.000,00
Jumlah PPnBM (Pajak Penjualan atas Barang Mewah) 50.000,00`

	e := NewFieldExtractor()
	fields := e.Extract(text)

	if fields.LuxuryVAT == nil || *fields.LuxuryVAT != 50000.00 {
		t.Errorf("LuxuryVAT = %v, want 50000.00", fields.LuxuryVAT)
	}
}
