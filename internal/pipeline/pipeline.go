// Package pipeline orchestrates one validation request: render the document,
// extract fields, locate the QR code, fetch the authoritative record, and
// reconcile the two field sets.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/wisnuaga/e-faktur/internal/cache"
	"github.com/wisnuaga/e-faktur/internal/djp"
	"github.com/wisnuaga/e-faktur/internal/extract"
	"github.com/wisnuaga/e-faktur/internal/llm"
	"github.com/wisnuaga/e-faktur/internal/model"
	"github.com/wisnuaga/e-faktur/internal/qr"
	"github.com/wisnuaga/e-faktur/internal/reconcile"
	"github.com/wisnuaga/e-faktur/internal/worker"
)

// Error classes the CLI and the HTTP layer map to exit codes and statuses.
var (
	// ErrEmptyDocument means the uploaded content was empty.
	ErrEmptyDocument = errors.New("document is empty")

	// ErrUnsupportedDocument means the container format is neither PDF nor
	// a supported raster image.
	ErrUnsupportedDocument = errors.New("unsupported document format")

	// ErrNoCodeFound means no QR code could be decoded and no substitute
	// reference source was allowed.
	ErrNoCodeFound = errors.New("no QR code found in document")
)

// Pipeline runs the validation stages. One instance is safe for concurrent
// use: every stage is stateless per invocation.
type Pipeline struct {
	reader     DocumentReader
	extractor  *extract.FieldExtractor
	locator    *qr.Locator
	source     djp.Source
	mock       djp.Source
	summarizer *llm.Summarizer // nil when disabled
	config     *model.Config
}

// NewPipeline wires the production pipeline from configuration.
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	limiter := worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)

	var source djp.Source = djp.NewClient(cfg.HTTP, limiter)
	if cfg.Cache.Enabled {
		layered := cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		source = djp.NewCachedSource(source, layered, cfg.Cache.DiskTTL)
	}

	var mock djp.Source
	if cfg.Mock.DataFile != "" {
		m, err := djp.NewMockSourceFromFile(cfg.Mock.DataFile)
		if err != nil {
			return nil, fmt.Errorf("load mock data: %w", err)
		}
		mock = m
	} else {
		mock = djp.NewMockSource()
	}

	var summarizer *llm.Summarizer
	if cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			summarizer = s
		}
	}

	return &Pipeline{
		reader:     NewStandardReader(),
		extractor:  extract.NewFieldExtractor(),
		locator:    qr.NewLocator(qr.QRDecoder{}),
		source:     source,
		mock:       mock,
		summarizer: summarizer,
		config:     cfg,
	}, nil
}

// Validate runs the full validation sequence over raw document bytes.
func (p *Pipeline) Validate(ctx context.Context, content []byte) (*model.ValidationReport, error) {
	// 1. Render the document
	text, err := p.reader.ExtractText(content)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}

	surfaces, err := p.reader.RenderSurfaces(content)
	if err != nil {
		return nil, fmt.Errorf("render surfaces: %w", err)
	}

	// 2. Extract document fields (never fails; missing fields stay absent)
	document := p.extractor.Extract(text)

	// 3. Locate the QR code, then fetch the authoritative record
	referenceURL, found := p.locator.Locate(surfaces)

	var reference model.InvoiceFieldSet
	var origin model.ReferenceOrigin

	switch {
	case found:
		reference, err = p.source.Fetch(ctx, referenceURL)
		if err != nil {
			return nil, fmt.Errorf("fetch reference record: %w", err)
		}
		origin = model.OriginQRCode

	case p.config.Mock.FallbackEnabled:
		reference, err = p.mock.Fetch(ctx, "")
		if err != nil {
			return nil, fmt.Errorf("fetch mock reference record: %w", err)
		}
		origin = model.OriginMock

	default:
		return nil, ErrNoCodeFound
	}

	// 4. Reconcile
	result := reconcile.Reconcile(document, reference)

	report := &model.ValidationReport{
		ReconciliationResult: result,
		DocumentData:         document,
		ReferenceURL:         referenceURL,
		Origin:               origin,
		ValidatedAt:          time.Now().UTC(),
	}

	// 5. Optional LLM summary, generated after reconciliation so it can
	// never influence the verdict
	if p.summarizer != nil && p.summarizer.IsEnabled() {
		summary, err := p.summarizer.GenerateSummary(ctx, *report)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: LLM summary generation failed: %v\n", err)
		} else if summary != nil {
			report.LLM = summary
		}
	}

	return report, nil
}

// ValidateMock validates against the embedded mock record regardless of
// whether the document carries a QR code.
func (p *Pipeline) ValidateMock(ctx context.Context, content []byte) (*model.ValidationReport, error) {
	text, err := p.reader.ExtractText(content)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}

	document := p.extractor.Extract(text)

	reference, err := p.mock.Fetch(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("fetch mock reference record: %w", err)
	}

	result := reconcile.Reconcile(document, reference)

	return &model.ValidationReport{
		ReconciliationResult: result,
		DocumentData:         document,
		Origin:               model.OriginMock,
		ValidatedAt:          time.Now().UTC(),
	}, nil
}

// ValidateFile reads a document from disk and validates it. It satisfies
// the batch worker's Validator contract.
func (p *Pipeline) ValidateFile(ctx context.Context, path string) (*model.ValidationReport, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return p.Validate(ctx, content)
}
