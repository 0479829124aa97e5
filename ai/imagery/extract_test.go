package imagery

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hrygo/notewise/ai/genai"
)

// fakePNG returns PNG-signed bytes padded to the requested total size.
func fakePNG(size int) []byte {
	data := make([]byte, size)
	copy(data, []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A})
	for i := 8; i < size; i++ {
		data[i] = byte(i % 251)
	}
	return data
}

func TestExtractInlineData(t *testing.T) {
	png := fakePNG(64)
	env := &genai.Envelope{
		Parts: []genai.Part{
			{Text: "here you go"},
			{InlineData: &genai.InlineData{
				MimeType: "image/png",
				Data:     base64.StdEncoding.EncodeToString(png),
			}},
		},
	}

	asset, strategy, err := Extract(env)
	require.NoError(t, err)
	require.Equal(t, "inline_data", strategy)
	require.True(t, bytes.Equal(png, asset.Bytes()))
}

func TestExtractSkipsNonImageInlineData(t *testing.T) {
	png := fakePNG(64)
	env := &genai.Envelope{
		Parts: []genai.Part{
			{InlineData: &genai.InlineData{
				MimeType: "application/octet-stream",
				Data:     base64.StdEncoding.EncodeToString([]byte("not it")),
			}},
		},
		Data: base64.StdEncoding.EncodeToString(png),
	}

	asset, strategy, err := Extract(env)
	require.NoError(t, err)
	require.Equal(t, "data_field", strategy)
	require.True(t, bytes.Equal(png, asset.Bytes()))
}

func TestExtractDataField(t *testing.T) {
	png := fakePNG(48)
	env := &genai.Envelope{Data: base64.StdEncoding.EncodeToString(png)}

	asset, strategy, err := Extract(env)
	require.NoError(t, err)
	require.Equal(t, "data_field", strategy)
	require.True(t, bytes.Equal(png, asset.Bytes()))
}

func TestExtractDataURI(t *testing.T) {
	png := fakePNG(120)
	env := &genai.Envelope{
		Text: "Here is the image: data:image/png;base64," +
			base64.StdEncoding.EncodeToString(png) + " enjoy!",
	}

	asset, strategy, err := Extract(env)
	require.NoError(t, err)
	require.Equal(t, "data_uri", strategy)
	require.True(t, bytes.Equal(png, asset.Bytes()))
}

func TestExtractBase64Run(t *testing.T) {
	// 160 bytes encode to >200 base64 characters, well past the
	// 100-character sniffing threshold.
	png := fakePNG(160)
	env := &genai.Envelope{
		Text: "The image data follows.\n" + base64.StdEncoding.EncodeToString(png),
	}

	asset, strategy, err := Extract(env)
	require.NoError(t, err)
	require.Equal(t, "base64_run", strategy)
	require.True(t, bytes.Equal(png, asset.Bytes()))
}

func TestExtractFallsThroughInvalidCandidate(t *testing.T) {
	// Strategy 1 yields a decodable but non-PNG candidate; strategy 3
	// holds the real image. The invalid candidate must not end the scan.
	png := fakePNG(120)
	env := &genai.Envelope{
		Parts: []genai.Part{
			{InlineData: &genai.InlineData{
				MimeType: "image/jpeg",
				Data:     base64.StdEncoding.EncodeToString([]byte("definitely not a png")),
			}},
		},
		Text: "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
	}

	asset, strategy, err := Extract(env)
	require.NoError(t, err)
	require.Equal(t, "data_uri", strategy)
	require.True(t, bytes.Equal(png, asset.Bytes()))
}

func TestExtractNoPayload(t *testing.T) {
	env := &genai.Envelope{Text: "Sorry, I cannot draw that for you."}

	_, _, err := Extract(env)
	require.ErrorIs(t, err, ErrNoImagePayload)
}

func TestExtractOnlyInvalidCandidates(t *testing.T) {
	// A long base64 run that decodes fine but is not a PNG: the sniffing
	// strategy finds it, the magic-byte gate rejects it, nothing remains.
	junk := bytes.Repeat([]byte("lorem ipsum "), 20)
	env := &genai.Envelope{Text: base64.StdEncoding.EncodeToString(junk)}

	_, _, err := Extract(env)
	require.ErrorIs(t, err, ErrInvalidFormat)
}

func TestExtractMatchesDirectDecode(t *testing.T) {
	png := fakePNG(200)
	encoded := base64.StdEncoding.EncodeToString(png)
	direct, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)

	envelopes := map[string]*genai.Envelope{
		"inline_data": {Parts: []genai.Part{{InlineData: &genai.InlineData{MimeType: "image/png", Data: encoded}}}},
		"data_field":  {Data: encoded},
		"data_uri":    {Text: "data:image/png;base64," + encoded},
		"base64_run":  {Text: "payload: " + encoded},
	}

	for want, env := range envelopes {
		asset, strategy, err := Extract(env)
		require.NoError(t, err, want)
		require.Equal(t, want, strategy)
		require.True(t, bytes.Equal(direct, asset.Bytes()), want)
	}
}
