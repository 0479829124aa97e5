package imagery

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPNGAssetAcceptsSignature(t *testing.T) {
	data := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00}
	asset, err := NewPNGAsset(data)
	require.NoError(t, err)
	require.Equal(t, data, asset.Bytes())
	require.Equal(t, "image/png", asset.MimeType())
}

func TestNewPNGAssetRejectsWrongMagic(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"jpeg signature", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}},
		{"plain text", []byte("this is not an image at all")},
		{"empty", nil},
		{"too short", []byte{0x89, 0x50}},
		{"one byte off", []byte{0x89, 0x50, 0x4E, 0x48, 0x0D, 0x0A}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPNGAsset(tt.data)
			require.ErrorIs(t, err, ErrInvalidFormat)
		})
	}
}
