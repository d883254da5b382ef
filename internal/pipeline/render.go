package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/wisnuaga/e-faktur/internal/llm"
	"github.com/wisnuaga/e-faktur/internal/model"
)

// Renderer writes validation reports to files and the terminal.
type Renderer struct {
	out io.Writer
}

// NewRenderer creates a renderer writing terminal output to out.
func NewRenderer(out io.Writer) *Renderer {
	if out == nil {
		out = os.Stdout
	}
	return &Renderer{out: out}
}

// RenderJSON writes the report as indented JSON to path ("-" for stdout).
func (r *Renderer) RenderJSON(report *model.ValidationReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')

	if path == "-" {
		_, err = r.out.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderSummary prints a human-readable verdict to the terminal.
func (r *Renderer) RenderSummary(report *model.ValidationReport) {
	fmt.Fprintf(r.out, "Status:    %s\n", report.Status)
	fmt.Fprintf(r.out, "Message:   %s\n", report.Message)
	fmt.Fprintf(r.out, "Reference: %s", report.Origin)
	if report.ReferenceURL != "" {
		fmt.Fprintf(r.out, " (%s)", report.ReferenceURL)
	}
	fmt.Fprintln(r.out)

	if len(report.Deviations) > 0 {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, "Deviations:")
		for _, dev := range report.Deviations {
			switch dev.Kind {
			case model.KindMissingInDocument:
				fmt.Fprintf(r.out, "  %-22s document: (absent)  reference: %q\n", dev.Field, dev.ReferenceValue)
			case model.KindMissingInReference:
				fmt.Fprintf(r.out, "  %-22s document: %q  reference: (absent)\n", dev.Field, dev.DocumentValue)
			default:
				fmt.Fprintf(r.out, "  %-22s document: %q  reference: %q\n", dev.Field, dev.DocumentValue, dev.ReferenceValue)
			}
		}
	}

	if md := llm.RenderMarkdown(report.LLM); md != "" {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, strings.TrimRight(md, "\n"))
	}
}
