package pipeline

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/ledongthuc/pdf"

	"github.com/wisnuaga/e-faktur/internal/qr"
)

// DocumentReader turns raw document bytes into the two inputs the engine
// needs: a text layer for the field extractor and an ordered sequence of
// raster surfaces for the code locator.
type DocumentReader interface {
	ExtractText(content []byte) (string, error)
	RenderSurfaces(content []byte) ([]qr.Surface, error)
}

// DocumentKind is the sniffed container format.
type DocumentKind string

const (
	KindPDF     DocumentKind = "pdf"
	KindImage   DocumentKind = "image"
	KindUnknown DocumentKind = "unknown"
)

var (
	pdfMagic  = []byte("%PDF")
	jpegMagic = []byte{0xFF, 0xD8, 0xFF}
	pngMagic  = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
)

// DetectKind sniffs the container format from leading magic bytes.
func DetectKind(content []byte) DocumentKind {
	switch {
	case bytes.HasPrefix(content, pdfMagic):
		return KindPDF
	case bytes.HasPrefix(content, jpegMagic), bytes.HasPrefix(content, pngMagic):
		return KindImage
	default:
		return KindUnknown
	}
}

// StandardReader handles the two supported containers. PDFs contribute
// their embedded text layer; raster images contribute a decode surface.
// OCR for image-only documents is a separate collaborator and is not
// bundled here: an image with no text layer simply extracts zero fields.
type StandardReader struct{}

// NewStandardReader creates the default document reader.
func NewStandardReader() *StandardReader {
	return &StandardReader{}
}

// ExtractText returns the document's text layer.
func (r *StandardReader) ExtractText(content []byte) (string, error) {
	if len(content) == 0 {
		return "", ErrEmptyDocument
	}

	switch DetectKind(content) {
	case KindPDF:
		return pdfText(content)
	case KindImage:
		// No bundled OCR; the extractor tolerates empty text
		return "", nil
	default:
		return "", ErrUnsupportedDocument
	}
}

// RenderSurfaces returns the raster surfaces to scan for a code.
func (r *StandardReader) RenderSurfaces(content []byte) ([]qr.Surface, error) {
	if len(content) == 0 {
		return nil, ErrEmptyDocument
	}

	switch DetectKind(content) {
	case KindImage:
		img, err := imaging.Decode(bytes.NewReader(content))
		if err != nil {
			return nil, fmt.Errorf("decode image: %w", err)
		}
		return []qr.Surface{{Name: "page-1", Image: img}}, nil
	case KindPDF:
		// Page rasterization needs an external rendering collaborator;
		// without one a PDF carries no scannable surfaces.
		return nil, nil
	default:
		return nil, ErrUnsupportedDocument
	}
}

func pdfText(content []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var buf bytes.Buffer
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text layer: %w", err)
	}
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("read pdf text layer: %w", err)
	}

	return buf.String(), nil
}
