package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/wisnuaga/e-faktur/internal/model"
)

// Validator validates a single invoice document on disk.
type Validator interface {
	ValidateFile(ctx context.Context, path string) (*model.ValidationReport, error)
}

// ValidateJob validates one document file.
type ValidateJob struct {
	Path      string
	Validator Validator
}

// Execute runs the validation job.
func (j *ValidateJob) Execute(ctx context.Context) Result {
	report, err := j.Validator.ValidateFile(ctx, j.Path)
	if err != nil {
		return &ValidateResult{
			Path:   j.Path,
			Report: nil,
			Error:  err,
		}
	}
	return &ValidateResult{
		Path:   j.Path,
		Report: report,
		Error:  nil,
	}
}

// ValidateResult is the outcome of validating one document.
type ValidateResult struct {
	Path   string
	Report *model.ValidationReport
	Error  error
}

// GetError returns the error from the validation result.
func (r *ValidateResult) GetError() error {
	return r.Error
}

// BatchProcessor validates multiple documents concurrently.
type BatchProcessor struct {
	validator   Validator
	concurrency int
}

// NewBatchProcessor creates a new batch processor.
func NewBatchProcessor(validator Validator, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		validator:   validator,
		concurrency: concurrency,
	}
}

// ProcessPaths validates multiple document files concurrently.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*ValidateResult {
	if len(paths) == 0 {
		return []*ValidateResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, path := range paths {
		job := &ValidateJob{
			Path:      path,
			Validator: b.validator,
		}
		pool.Submit(job)
	}

	results := pool.Wait()

	validateResults := make([]*ValidateResult, len(results))
	for i, result := range results {
		validateResults[i] = result.(*ValidateResult)
	}

	return validateResults
}

// ProcessManifest reads document paths from a manifest file and validates
// them concurrently.
func (b *BatchProcessor) ProcessManifest(ctx context.Context, manifestPath string) ([]*ValidateResult, error) {
	paths, err := ReadPathsFromFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	return b.ProcessPaths(ctx, paths), nil
}

// ReadPathsFromFile reads document paths from a manifest (one per line).
func ReadPathsFromFile(manifestPath string) ([]string, error) {
	file, err := os.Open(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Deduplicate paths
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
