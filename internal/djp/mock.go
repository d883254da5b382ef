package djp

import (
	_ "embed"
	"context"
	"fmt"
	"os"

	"github.com/wisnuaga/e-faktur/internal/model"
)

//go:embed mock.xml
var mockPayload []byte

// MockSource serves a fixed reference record: the substitute data path the
// orchestrator selects when no QR code can be decoded, and the offline path
// for development. It implements the same contract as the live client, not
// a special-cased branch inside the pipeline.
type MockSource struct {
	payload []byte
}

// NewMockSource uses the embedded reference payload.
func NewMockSource() *MockSource {
	return &MockSource{payload: mockPayload}
}

// NewMockSourceFromFile reads the payload from disk instead.
func NewMockSourceFromFile(path string) (*MockSource, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mock data: %w", err)
	}
	return &MockSource{payload: payload}, nil
}

// Fetch ignores the URL and parses the fixed payload.
func (m *MockSource) Fetch(_ context.Context, _ string) (model.InvoiceFieldSet, error) {
	return ParseRecord(m.payload)
}
