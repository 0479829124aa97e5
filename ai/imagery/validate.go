package imagery

import (
	"bytes"

	"github.com/pkg/errors"
)

// pngSignature is the fixed leading byte sequence of a PNG stream.
var pngSignature = []byte{0x89, 0x50, 0x4E, 0x47}

// ErrInvalidFormat indicates a candidate buffer failed magic-byte
// verification and must not be treated as image data.
var ErrInvalidFormat = errors.New("payload is not a valid PNG image")

// Asset is a verified binary payload. It can only be constructed through
// NewPNGAsset, so holding an Asset implies the magic-byte check passed.
type Asset struct {
	data     []byte
	mimeType string
}

// NewPNGAsset verifies the buffer starts with the PNG signature and wraps
// it into an Asset. Every buffer must pass through here before it is
// treated as image data, regardless of where it came from.
func NewPNGAsset(data []byte) (*Asset, error) {
	if len(data) < len(pngSignature) || !bytes.Equal(data[:len(pngSignature)], pngSignature) {
		return nil, ErrInvalidFormat
	}
	return &Asset{data: data, mimeType: "image/png"}, nil
}

// Bytes returns the verified image bytes.
func (a *Asset) Bytes() []byte {
	return a.data
}

// MimeType returns the verified content type.
func (a *Asset) MimeType() string {
	return a.mimeType
}
