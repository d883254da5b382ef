// Package llm generates optional plain-language summaries of validation
// reports. The reconciliation verdict is always computed independently; a
// summary only restates it for accounting staff.
package llm

import (
	"context"
	"fmt"

	"github.com/wisnuaga/e-faktur/internal/model"
)

// Provider defines the interface for LLM providers.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates a summary of the validation report
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for LLM summarization.
type SummarizeRequest struct {
	// Report is the validation report to summarize
	Report model.ValidationReport

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the LLM's summary output.
type SummarizeResponse struct {
	// Summary is the generated summary text
	Summary string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration.
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Model:     "",
		Timeout:   30,
		MaxTokens: 600,
	}
}

const systemPrompt = "You are a helpful assistant that explains Indonesian e-Faktur validation reports to accounting staff in plain language."

// fieldLabels maps DJP wire names to readable descriptions for prompts.
var fieldLabels = map[string]string{
	model.FieldSellerTaxID:   "seller tax ID (NPWP)",
	model.FieldSellerName:    "seller name",
	model.FieldBuyerTaxID:    "buyer tax ID (NPWP)",
	model.FieldBuyerName:     "buyer name",
	model.FieldInvoiceNumber: "invoice serial number",
	model.FieldInvoiceDate:   "invoice date",
	model.FieldTaxBase:       "tax base (DPP)",
	model.FieldVAT:           "VAT amount (PPN)",
	model.FieldLuxuryVAT:     "luxury goods VAT (PPnBM)",
}

// BuildPrompt constructs the default summarization prompt from a report.
func BuildPrompt(report model.ValidationReport) string {
	prompt := fmt.Sprintf(`You are summarizing an Indonesian e-Faktur (tax invoice) validation report. The document was compared field by field against the authoritative record published by DJP (the tax authority).

CRITICAL RULES:
1. Only describe the fields and values listed below. DO NOT infer or invent values.
2. Never accuse anyone of fraud or wrongdoing - describe discrepancies neutrally.
3. Do not restate the verdict as your own judgement; it was computed independently.
4. Keep the summary to 3-4 sentences aimed at accounting staff.

Validation Result:
- Status: %s
- Message: %s
- Fields compared: %d
- Deviations found: %d
`, report.Status, report.Message, len(model.FieldOrder), len(report.Deviations))

	for _, dev := range report.Deviations {
		label := fieldLabels[dev.Field]
		if label == "" {
			label = dev.Field
		}
		switch dev.Kind {
		case model.KindMissingInDocument:
			prompt += fmt.Sprintf("- %s: absent from the document, authoritative record has %q\n", label, dev.ReferenceValue)
		case model.KindMissingInReference:
			prompt += fmt.Sprintf("- %s: document has %q, absent from the authoritative record\n", label, dev.DocumentValue)
		default:
			prompt += fmt.Sprintf("- %s: document has %q, authoritative record has %q\n", label, dev.DocumentValue, dev.ReferenceValue)
		}
	}

	if len(report.Deviations) == 0 {
		prompt += "\nEvery field extracted from the document matched the authoritative record."
	}

	prompt += "\nProvide a 3-4 sentence summary of the comparison outcome."

	return prompt
}
