package djp

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/wisnuaga/e-faktur/internal/model"
	"github.com/wisnuaga/e-faktur/internal/normalize"
)

// referencePayload mirrors the fixed-tag DJP response. No XMLName: the root
// element name is not part of the contract, only the child tags are.
type referencePayload struct {
	SellerTaxID   string `xml:"npwpPenjual"`
	SellerName    string `xml:"namaPenjual"`
	BuyerTaxID    string `xml:"npwpLawanTransaksi"`
	BuyerName     string `xml:"namaLawanTransaksi"`
	InvoiceNumber string `xml:"nomorFaktur"`
	InvoiceDate   string `xml:"tanggalFaktur"`
	TaxBase       string `xml:"jumlahDpp"`
	VAT           string `xml:"jumlahPpn"`
	LuxuryVAT     string `xml:"jumlahPpnBm"`
}

// ParseRecord decodes a DJP XML payload into the canonical field shape.
// Missing tags become absent fields; a payload that cannot be decoded, or
// whose present values violate the schema, is a ParseError.
func ParseRecord(payload []byte) (model.InvoiceFieldSet, error) {
	var raw referencePayload
	if err := xml.Unmarshal(payload, &raw); err != nil {
		return model.InvoiceFieldSet{}, &ParseError{Err: err}
	}

	fields := model.InvoiceFieldSet{
		SellerTaxID:   strings.TrimSpace(raw.SellerTaxID),
		SellerName:    companyOrEmpty(raw.SellerName),
		BuyerTaxID:    strings.TrimSpace(raw.BuyerTaxID),
		BuyerName:     companyOrEmpty(raw.BuyerName),
		InvoiceNumber: strings.TrimSpace(raw.InvoiceNumber),
	}

	if s := strings.TrimSpace(raw.InvoiceDate); s != "" {
		t, ok := normalize.GenericDate(s)
		if !ok {
			return model.InvoiceFieldSet{}, &ParseError{Err: fmt.Errorf("tanggalFaktur %q: not a DD/MM/YYYY date", s)}
		}
		fields.InvoiceDate = &t
	}

	var err error
	if fields.TaxBase, err = plainAmount("jumlahDpp", raw.TaxBase); err != nil {
		return model.InvoiceFieldSet{}, err
	}
	if fields.VAT, err = plainAmount("jumlahPpn", raw.VAT); err != nil {
		return model.InvoiceFieldSet{}, err
	}
	if fields.LuxuryVAT, err = plainAmount("jumlahPpnBm", raw.LuxuryVAT); err != nil {
		return model.InvoiceFieldSet{}, err
	}

	return fields, nil
}

func companyOrEmpty(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return normalize.CompanyName(s)
}

// plainAmount parses a reference-side amount. Unlike document text, these
// carry no locale punctuation: they are plain decimal strings by contract.
func plainAmount(tag, s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return nil, &ParseError{Err: fmt.Errorf("%s %q: not a non-negative decimal", tag, s)}
	}
	return &v, nil
}
