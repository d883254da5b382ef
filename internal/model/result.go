package model

import "time"

// DeviationKind classifies a single field-level disagreement.
type DeviationKind string

const (
	KindMismatch           DeviationKind = "mismatch"
	KindMissingInDocument  DeviationKind = "missing_in_document"
	KindMissingInReference DeviationKind = "missing_in_reference"
)

// Deviation records one field where the document and the authoritative
// record disagree after normalization.
type Deviation struct {
	Field          string        `json:"field"`
	DocumentValue  string        `json:"document_value,omitempty"`
	ReferenceValue string        `json:"reference_value,omitempty"`
	Kind           DeviationKind `json:"kind"`
}

// Validation statuses.
const (
	StatusValidated      = "validated_successfully"
	StatusWithDeviations = "validated_with_deviations"
)

// ReconciliationResult is the outcome of comparing a document-derived field
// set against the authoritative one. Constructed once per request, immutable
// after construction.
type ReconciliationResult struct {
	Status        string          `json:"status"`
	Message       string          `json:"message"`
	Deviations    []Deviation     `json:"deviations"`
	ReferenceData InvoiceFieldSet `json:"reference_data"`
}

// ReferenceOrigin says where the authoritative record came from.
type ReferenceOrigin string

const (
	OriginQRCode ReferenceOrigin = "qr_code"
	OriginMock   ReferenceOrigin = "mock"
)

// ValidationReport is the complete per-document result the pipeline hands to
// the CLI and the HTTP layer.
type ValidationReport struct {
	ReconciliationResult

	DocumentData InvoiceFieldSet `json:"document_data"`
	ReferenceURL string          `json:"reference_url,omitempty"`
	Origin       ReferenceOrigin `json:"reference_origin"`
	ValidatedAt  time.Time       `json:"validated_at"`

	// LLM is an optional generated explanation of the deviations.
	// It never influences the reconciliation outcome.
	LLM *LLMSummary `json:"llm,omitempty"`
}

// LLMSummary contains the optional LLM-generated explanation.
type LLMSummary struct {
	Enabled   bool     `json:"enabled"`
	Provider  string   `json:"provider,omitempty"`
	Model     string   `json:"model,omitempty"`
	SummaryMD string   `json:"summary_md,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}
