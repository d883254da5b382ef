// Package djp retrieves and parses the authoritative invoice record from
// the Indonesian tax authority. The validation URL comes out of the
// document's QR code; a mock source implements the same contract for the
// substitute data path.
package djp

import (
	"context"
	"fmt"

	"github.com/wisnuaga/e-faktur/internal/model"
)

// Source provides the authoritative record for a validation URL.
// Implementations: Client (live DJP endpoint), MockSource (embedded data),
// CachedSource (decorator).
type Source interface {
	Fetch(ctx context.Context, url string) (model.InvoiceFieldSet, error)
}

// TransportError is a network/HTTP-layer failure fetching the reference
// record. It is a distinct class from ParseError: the transport failed
// before any payload could be judged.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("djp transport: %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ParseError is a malformed authoritative payload. The DJP contract assumes
// well-formed responses from a trusted source, so this is a hard failure
// (a bug or an upstream change), not input noise.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("djp payload: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
