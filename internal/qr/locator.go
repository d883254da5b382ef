// Package qr locates the machine-readable verification code embedded in an
// e-Faktur document. Surfaces come from the document-rendering collaborator
// (one raster per page, then any embedded page images, in document order);
// each surface is retried through a fixed sequence of image transforms until
// a decode succeeds or every candidate is exhausted.
package qr

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// Surface is one renderable raster from the document.
type Surface struct {
	Name  string // "page-1", "page-1/image-2", ...
	Image image.Image
}

// Decoder is the decode primitive: zero or one payloads per raster. A decode
// error is a non-match, never fatal to the surrounding search.
type Decoder interface {
	Decode(img image.Image) (string, error)
}

// QRDecoder decodes QR payloads with gozxing.
type QRDecoder struct{}

func (QRDecoder) Decode(img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", err
	}
	result, err := qrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		return "", err
	}
	return result.GetText(), nil
}

// transform is one image preparation step tried before decoding.
type transform struct {
	name  string
	apply func(image.Image) image.Image
}

// Locator searches surfaces for a decodable code.
type Locator struct {
	decoder    Decoder
	transforms []transform
}

// NewLocator builds a locator around the given decode primitive. The
// transform order is fixed: identity, contrast/sharpness enhancement, 2x
// upscale, then enhancement plus upscale.
func NewLocator(decoder Decoder) *Locator {
	return &Locator{
		decoder: decoder,
		transforms: []transform{
			{name: "identity", apply: func(img image.Image) image.Image { return img }},
			{name: "enhanced", apply: enhance},
			{name: "upscaled", apply: upscale},
			{name: "enhanced+upscaled", apply: func(img image.Image) image.Image { return enhance(upscale(img)) }},
		},
	}
}

// Locate returns the first decoded payload, trying surfaces in document
// order and transforms in sequence within each surface. Exhausting every
// candidate is a miss, not an error: the caller decides whether a missing
// code is fatal.
func (l *Locator) Locate(surfaces []Surface) (string, bool) {
	for _, surface := range surfaces {
		if surface.Image == nil {
			continue
		}
		for _, t := range l.transforms {
			payload, err := l.decoder.Decode(t.apply(surface.Image))
			if err != nil || payload == "" {
				continue
			}
			return payload, true
		}
	}
	return "", false
}

// enhance raises contrast and sharpness on a grayscale copy, the same
// preparation used before OCR on low-quality scans.
func enhance(img image.Image) image.Image {
	out := imaging.Grayscale(img)
	out = imaging.AdjustContrast(out, 50)
	return imaging.Sharpen(out, 2.0)
}

func upscale(img image.Image) image.Image {
	bounds := img.Bounds()
	return imaging.Resize(img, bounds.Dx()*2, bounds.Dy()*2, imaging.Lanczos)
}
