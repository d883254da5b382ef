// Package extract resolves typed invoice fields from raw e-Faktur document
// text. Each field is evaluated through an ordered strategy chain
// (label-anchored search, bare-pattern fallback, sectional fallback); the
// first strategy that yields a non-empty normalized value wins and no
// merging or voting happens across strategies. Extraction never fails:
// unresolved fields are simply absent from the result.
package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/wisnuaga/e-faktur/internal/model"
	"github.com/wisnuaga/e-faktur/internal/normalize"
)

// Ordinal positions for fields whose label text is shared between the two
// counterparties. First occurrence is the seller, second the buyer. This is
// fragile when a document's layout order deviates, and is preserved as
// observed behavior rather than silently strengthened.
const (
	ordinalSeller = 0
	ordinalBuyer  = 1
)

// FieldExtractor holds the compiled label and pattern tables. Construct once
// and share freely; it is immutable after construction.
type FieldExtractor struct {
	labelNPWP     *regexp.Regexp
	labelName     *regexp.Regexp
	labelInvoice  *regexp.Regexp
	labelTaxBase  *regexp.Regexp
	labelVAT      *regexp.Regexp
	labelLuxury   *regexp.Regexp
	idClause      *regexp.Regexp
	bareTaxID     *regexp.Regexp
	bareInvoice16 *regexp.Regexp
	bareInvoiceFm *regexp.Regexp
	bareIndoDate  *regexp.Regexp
	bareSlashDate *regexp.Regexp
	legalPrefix   *regexp.Regexp
}

// NewFieldExtractor compiles the extraction tables.
func NewFieldExtractor() *FieldExtractor {
	return &FieldExtractor{
		labelNPWP:    regexp.MustCompile(`(?i)NPWP\s*:\s*([^\n]+)`),
		labelName:    regexp.MustCompile(`(?i)Nama\s*:\s*([^\n]+)`),
		labelInvoice: regexp.MustCompile(`(?i)Kode\s+dan\s+Nomor\s+Seri\s+Faktur\s+Pajak\s*:\s*([^\n]+)`),
		labelTaxBase: regexp.MustCompile(`(?i)Dasar\s+Pengenaan\s+Pajak\s+([\d.,]+)`),
		// Case-sensitive: "PPnBM" must not satisfy the PPN label.
		labelVAT:    regexp.MustCompile(`PPN[^\n]*?([\d.]+,\d{2})`),
		labelLuxury: regexp.MustCompile(`PPnBM[^\n]*?([\d.]+,\d{2})`),
		// Trailing ID-card/passport clause that contaminates counterparty
		// name lines ("Nama : Budi NIK/Paspor : 317..." ).
		idClause:      regexp.MustCompile(`(?i)\s*NIK\s*/?\s*Paspor\s*[:\-,.]*\s*([A-Z0-9]*)`),
		bareTaxID:     regexp.MustCompile(`\b\d{2}\.\d{3}\.\d{3}\.\d-\d{3}\.\d{3}\b|\b\d{15}\b`),
		bareInvoice16: regexp.MustCompile(`\b\d{16}\b`),
		bareInvoiceFm: regexp.MustCompile(`\b\d{3}\.\d{3}-\d{2}\.\d{8}\b`),
		bareIndoDate:  regexp.MustCompile(`\d{1,2}\s+[A-Za-z]+\s+\d{4}`),
		bareSlashDate: regexp.MustCompile(`\b\d{2}[/-]\d{2}[/-]\d{4}\b`),
		legalPrefix:   regexp.MustCompile(`(?i)^(CV|PT)[\s.]`),
	}
}

// Extract resolves every canonical field from rawText. The DPP and PPN
// amounts are always populated: an unparsable or missing amount becomes 0.0
// by policy. All other fields stay absent on a miss.
func (e *FieldExtractor) Extract(rawText string) model.InvoiceFieldSet {
	doc := newDocumentText(rawText)

	var fields model.InvoiceFieldSet

	fields.SellerTaxID = firstHit(doc, e.taxIDChain(ordinalSeller))
	fields.BuyerTaxID = firstHit(doc, e.taxIDChain(ordinalBuyer))
	fields.SellerName = firstHit(doc, e.nameChain(ordinalSeller))
	fields.BuyerName = firstHit(doc, e.nameChain(ordinalBuyer))
	fields.InvoiceNumber = firstHit(doc, e.invoiceNumberChain())
	fields.InvoiceDate = e.extractDate(doc)

	fields.TaxBase = model.Amount(e.extractAmount(doc, e.labelTaxBase))
	fields.VAT = model.Amount(e.extractAmount(doc, e.labelVAT))
	if m := e.labelLuxury.FindStringSubmatch(doc.raw); m != nil {
		fields.LuxuryVAT = model.Amount(normalize.CurrencyAmount(m[1]))
	}

	return fields
}

// strategy is a single attempt at resolving one field. An empty return is a
// miss and evaluation moves to the next entry in the chain.
type strategy struct {
	name string
	run  func(doc *documentText) string
}

// firstHit evaluates a chain in strict priority order with early exit.
func firstHit(doc *documentText, chain []strategy) string {
	for _, s := range chain {
		if v := s.run(doc); v != "" {
			return v
		}
	}
	return ""
}

// taxIDChain resolves the 15-digit NPWP for the counterparty at the given
// ordinal: labeled lines first, bare 15-digit patterns second.
func (e *FieldExtractor) taxIDChain(ordinal int) []strategy {
	return []strategy{
		{name: "label:npwp", run: func(doc *documentText) string {
			return nthTaxID(e.labelNPWP.FindAllStringSubmatch(doc.raw, -1), ordinal)
		}},
		{name: "bare:15-digit", run: func(doc *documentText) string {
			matches := e.bareTaxID.FindAllString(doc.raw, -1)
			groups := make([][]string, len(matches))
			for i, m := range matches {
				groups[i] = []string{m, m}
			}
			return nthTaxID(groups, ordinal)
		}},
	}
}

// nthTaxID normalizes the ordinal-th captured value and enforces the
// 15-digit invariant. Anything else is a miss, never a placeholder.
func nthTaxID(groups [][]string, ordinal int) string {
	if len(groups) <= ordinal {
		return ""
	}
	digits := normalize.Digits(groups[ordinal][1])
	if len(digits) != 15 {
		return ""
	}
	return digits
}

// nameChain resolves a counterparty name: labeled "Nama" lines first, then
// the sectional fallback. There is no bare pattern for names.
func (e *FieldExtractor) nameChain(ordinal int) []strategy {
	return []strategy{
		{name: "label:nama", run: func(doc *documentText) string {
			groups := e.labelName.FindAllStringSubmatch(doc.raw, -1)
			if len(groups) <= ordinal {
				return ""
			}
			return e.cleanName(groups[ordinal][1])
		}},
		{name: "sectional", run: func(doc *documentText) string {
			// Template family order: header block, seller block, buyer
			// block. Brittle by design and only reached when the label
			// strategy found nothing.
			block := ordinal + 1
			if len(doc.blocks) <= block {
				return ""
			}
			line := doc.blocks[block].firstLine()
			if line == "" {
				return ""
			}
			if e.legalPrefix.MatchString(line) {
				return normalize.CompanyName(line)
			}
			return line
		}},
	}
}

// cleanName strips the ID-card/passport clause and applies company
// canonicalization. A name carrying an actual NIK/Paspor value belongs to an
// individual and keeps its original casing: individuals and companies have
// different canonical forms, so the distinction must survive extraction.
func (e *FieldExtractor) cleanName(raw string) string {
	raw = strings.TrimSpace(raw)

	if m := e.idClause.FindStringSubmatch(raw); m != nil && m[1] != "" {
		if idx := e.idClause.FindStringIndex(raw); idx != nil {
			return strings.TrimSpace(raw[:idx[0]])
		}
	}

	// Company: drop any empty clause remnant, then canonicalize.
	raw = e.idClause.ReplaceAllString(raw, "")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	return normalize.CompanyName(raw)
}

// invoiceNumberChain resolves the 16-digit administrative serial number.
func (e *FieldExtractor) invoiceNumberChain() []strategy {
	return []strategy{
		{name: "label:kode-nomor-seri", run: func(doc *documentText) string {
			m := e.labelInvoice.FindStringSubmatch(doc.raw)
			if m == nil {
				return ""
			}
			return sixteenDigits(m[1])
		}},
		{name: "bare:serial-template", run: func(doc *documentText) string {
			return sixteenDigits(e.bareInvoiceFm.FindString(doc.raw))
		}},
		{name: "bare:16-digit", run: func(doc *documentText) string {
			return sixteenDigits(e.bareInvoice16.FindString(doc.raw))
		}},
	}
}

func sixteenDigits(s string) string {
	digits := normalize.Digits(s)
	if len(digits) != 16 {
		return ""
	}
	return digits
}

// extractDate tries every Indonesian-shaped date token before falling back
// to DD/MM/YYYY shapes. Within one strategy the first parseable token wins.
func (e *FieldExtractor) extractDate(doc *documentText) *time.Time {
	for _, m := range e.bareIndoDate.FindAllString(doc.raw, -1) {
		if t, ok := normalize.IndonesianDate(m); ok {
			return &t
		}
	}
	for _, m := range e.bareSlashDate.FindAllString(doc.raw, -1) {
		if t, ok := normalize.GenericDate(m); ok {
			return &t
		}
	}
	return nil
}

// extractAmount resolves a labeled monetary amount, degrading to 0.0 when
// the label is absent or the value unparsable.
func (e *FieldExtractor) extractAmount(doc *documentText, label *regexp.Regexp) float64 {
	m := label.FindStringSubmatch(doc.raw)
	if m == nil {
		return 0.0
	}
	return normalize.CurrencyAmount(m[1])
}
