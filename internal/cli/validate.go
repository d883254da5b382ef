package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wisnuaga/e-faktur/internal/model"
	"github.com/wisnuaga/e-faktur/internal/pipeline"
)

var (
	outJSON     string
	timeout     time.Duration
	userAgent   string
	noCache     bool
	useMock     bool
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a single e-Faktur document against the DJP record",
	Long: `Validate extracts the invoice fields from a PDF or raster image,
decodes the embedded QR code, fetches the authoritative record from the
URL it carries, and reports every deviation between the two field sets.

Example:
  efaktur validate invoice.pdf
  efaktur validate invoice.pdf --json report.json
  efaktur validate scan.jpg --mock
  efaktur validate invoice.pdf --llm --llm-provider openai`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	// Output flags
	validateCmd.Flags().StringVar(&outJSON, "json", "", "write the full report as JSON to this path (\"-\" for stdout)")

	// HTTP flags
	validateCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "overall validation timeout")
	validateCmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent override")
	validateCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the reference-record cache (force a fresh fetch)")
	validateCmd.Flags().BoolVar(&useMock, "mock", false, "validate against the embedded mock DJP record instead of fetching")

	// LLM flags
	validateCmd.Flags().BoolVar(&llmEnabled, "llm", false, "generate an LLM summary of the deviations")
	validateCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	validateCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Cache.Enabled = cfg.Cache.Enabled && !noCache
	if userAgent != "" {
		cfg.HTTP.UserAgent = userAgent
	}
	if llmEnabled {
		if err := applyLLMFlags(cfg, llmProvider, llmModel); err != nil {
			return err
		}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Validating: %s\n", path)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeout)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}

	reportOut, err := validateDocument(ctx, p, content, useMock)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Reference origin: %s\n", reportOut.Origin)
		fmt.Fprintf(os.Stderr, "✓ Deviations: %d\n", len(reportOut.Deviations))
		fmt.Fprintln(os.Stderr)
	}

	renderer := pipeline.NewRenderer(os.Stdout)
	renderer.RenderSummary(reportOut)

	if outJSON != "" {
		if err := renderer.RenderJSON(reportOut, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose && outJSON != "-" {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}

	return nil
}

func validateDocument(ctx context.Context, p *pipeline.Pipeline, content []byte, mock bool) (*model.ValidationReport, error) {
	if mock {
		return p.ValidateMock(ctx, content)
	}
	return p.Validate(ctx, content)
}
