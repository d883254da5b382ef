package model

import (
	"strconv"
	"time"
)

// Canonical field names, using the DJP wire vocabulary so document-derived
// and reference-derived data share one schema.
const (
	FieldSellerTaxID   = "npwpPenjual"
	FieldSellerName    = "namaPenjual"
	FieldBuyerTaxID    = "npwpPembeli"
	FieldBuyerName     = "namaPembeli"
	FieldInvoiceNumber = "nomorFaktur"
	FieldInvoiceDate   = "tanggalFaktur"
	FieldTaxBase       = "jumlahDpp"   // DPP: VAT base amount
	FieldVAT           = "jumlahPpn"   // PPN: value-added tax
	FieldLuxuryVAT     = "jumlahPpnBm" // PPnBM: luxury-goods VAT, optional
)

// FieldOrder is the fixed comparison and reporting order. Reconciliation
// iterates this slice, never a map, so output is deterministic.
var FieldOrder = []string{
	FieldSellerTaxID,
	FieldSellerName,
	FieldBuyerTaxID,
	FieldBuyerName,
	FieldInvoiceNumber,
	FieldInvoiceDate,
	FieldTaxBase,
	FieldVAT,
	FieldLuxuryVAT,
}

// InvoiceFieldSet is the canonical invoice record. The same shape is produced
// by the text extractor and the DJP parser. Empty strings and nil pointers
// mean "not found" - never a placeholder value.
type InvoiceFieldSet struct {
	SellerTaxID   string     `json:"npwpPenjual,omitempty"`
	SellerName    string     `json:"namaPenjual,omitempty"`
	BuyerTaxID    string     `json:"npwpPembeli,omitempty"`
	BuyerName     string     `json:"namaPembeli,omitempty"`
	InvoiceNumber string     `json:"nomorFaktur,omitempty"`
	InvoiceDate   *time.Time `json:"tanggalFaktur,omitempty"`
	TaxBase       *float64   `json:"jumlahDpp,omitempty"`
	VAT           *float64   `json:"jumlahPpn,omitempty"`
	LuxuryVAT     *float64   `json:"jumlahPpnBm,omitempty"`
}

// FieldValue is one canonical field rendered into its comparable string form.
type FieldValue struct {
	Name    string
	Value   string
	Present bool
}

// Fields renders the record into FieldOrder for reconciliation. Amounts are
// formatted with two decimals and dates as YYYY-MM-DD, so equality on Value
// is exact post-normalization equality.
func (s InvoiceFieldSet) Fields() []FieldValue {
	return []FieldValue{
		stringField(FieldSellerTaxID, s.SellerTaxID),
		stringField(FieldSellerName, s.SellerName),
		stringField(FieldBuyerTaxID, s.BuyerTaxID),
		stringField(FieldBuyerName, s.BuyerName),
		stringField(FieldInvoiceNumber, s.InvoiceNumber),
		dateField(FieldInvoiceDate, s.InvoiceDate),
		amountField(FieldTaxBase, s.TaxBase),
		amountField(FieldVAT, s.VAT),
		amountField(FieldLuxuryVAT, s.LuxuryVAT),
	}
}

func stringField(name, v string) FieldValue {
	return FieldValue{Name: name, Value: v, Present: v != ""}
}

func dateField(name string, t *time.Time) FieldValue {
	if t == nil {
		return FieldValue{Name: name}
	}
	return FieldValue{Name: name, Value: t.Format("2006-01-02"), Present: true}
}

func amountField(name string, v *float64) FieldValue {
	if v == nil {
		return FieldValue{Name: name}
	}
	return FieldValue{Name: name, Value: strconv.FormatFloat(*v, 'f', 2, 64), Present: true}
}

// Amount returns a pointer to v, for building field sets inline.
func Amount(v float64) *float64 {
	return &v
}

// Date returns a pointer to a UTC calendar date.
func Date(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}
