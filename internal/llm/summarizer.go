package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/wisnuaga/e-faktur/internal/model"
)

// Summarizer generates report summaries when a provider is configured.
// Summary generation never fails a validation run: errors degrade to
// warnings on the summary itself.
type Summarizer struct {
	provider Provider
	config   Config
}

// NewSummarizer creates a summarizer from configuration. An empty provider
// name yields a disabled summarizer, not an error.
func NewSummarizer(config Config) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}

	return &Summarizer{
		provider: provider,
		config:   config,
	}, nil
}

// IsEnabled reports whether a provider is configured.
func (s *Summarizer) IsEnabled() bool {
	return s.provider != nil
}

// ProviderName returns the configured provider's name, or "" when disabled.
func (s *Summarizer) ProviderName() string {
	if s.provider == nil {
		return ""
	}
	return s.provider.Name()
}

// GenerateSummary produces a summary of the validation report. When the
// summarizer is disabled it returns (nil, nil).
func (s *Summarizer) GenerateSummary(ctx context.Context, report model.ValidationReport) (*model.LLMSummary, error) {
	if s.provider == nil {
		return nil, nil
	}

	if !s.provider.IsAvailable(ctx) {
		return &model.LLMSummary{
			Enabled:  false,
			Provider: s.provider.Name(),
			Warnings: []string{
				fmt.Sprintf("LLM provider %s is not available; summary skipped", s.provider.Name()),
			},
		}, nil
	}

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Report:    report,
		Model:     s.config.Model,
		MaxTokens: s.config.MaxTokens,
	})
	if err != nil {
		return &model.LLMSummary{
			Enabled:  true,
			Provider: s.provider.Name(),
			Model:    s.config.Model,
			Warnings: []string{
				fmt.Sprintf("summary generation failed: %v", err),
			},
		}, nil
	}

	return &model.LLMSummary{
		Enabled:   true,
		Provider:  s.provider.Name(),
		Model:     resp.Model,
		SummaryMD: resp.Summary,
		Warnings: []string{
			fmt.Sprintf("Tokens used: %d", resp.TokensUsed),
		},
	}, nil
}

// RenderMarkdown renders the summary as a standalone markdown section for
// CLI output. Disabled or nil summaries render to "".
func RenderMarkdown(summary *model.LLMSummary) string {
	if summary == nil || !summary.Enabled {
		return ""
	}

	var b strings.Builder
	b.WriteString("# LLM Summary\n\n")
	b.WriteString("> GENERATED CONTENT. The validation verdict above was determined independently of this summary.\n\n")
	fmt.Fprintf(&b, "- Provider: %s\n", summary.Provider)
	fmt.Fprintf(&b, "- Model: %s\n\n", summary.Model)

	if summary.SummaryMD == "" {
		b.WriteString("No summary generated.\n")
	} else {
		b.WriteString(summary.SummaryMD)
		b.WriteString("\n")
	}

	if len(summary.Warnings) > 0 {
		b.WriteString("\n## Notes\n\n")
		for _, warning := range summary.Warnings {
			fmt.Fprintf(&b, "- %s\n", warning)
		}
	}

	return b.String()
}
