// Package imagery locates and verifies image payloads inside ambiguous
// provider response envelopes.
//
// The provider does not guarantee where image bytes appear: depending on
// model and version they show up as a structured inline-data part, a
// top-level data field, a data URI embedded in the text, or a bare base64
// run inside prose. The extractor probes these shapes in a fixed order and
// accepts the first candidate that passes PNG verification.
package imagery

import (
	"encoding/base64"
	"log/slog"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/hrygo/notewise/ai/genai"
)

// ErrNoImagePayload indicates every extraction strategy was exhausted
// without producing a decodable candidate. Terminal for the call.
var ErrNoImagePayload = errors.New("no image payload found in provider response")

// dataURIPattern captures the base64 payload of an embedded image data URI.
var dataURIPattern = regexp.MustCompile(`data:image/[a-zA-Z0-9.+-]+;base64,([A-Za-z0-9+/]+={0,2})`)

// base64RunPattern matches a contiguous run of at least 100 base64
// alphabet characters, optionally padded. Best-effort: long non-image
// base64 text also matches, which is why candidates from this strategy
// rely entirely on the magic-byte gate.
var base64RunPattern = regexp.MustCompile(`[A-Za-z0-9+/]{100,}={0,2}`)

type strategy struct {
	name  string
	probe func(*genai.Envelope) ([]byte, bool)
}

// Strategies are tried in strict order; the first validated candidate wins.
var strategies = []strategy{
	{"inline_data", probeInlineData},
	{"data_field", probeDataField},
	{"data_uri", probeDataURI},
	{"base64_run", probeBase64Run},
}

// Extract probes the envelope for image bytes and returns the first
// candidate that passes PNG verification, together with the name of the
// strategy that produced it. A candidate failing verification falls
// through to the next strategy; when none remains the failure is
// ErrInvalidFormat if at least one candidate decoded, ErrNoImagePayload
// otherwise.
func Extract(env *genai.Envelope) (*Asset, string, error) {
	sawCandidate := false

	for _, s := range strategies {
		data, ok := s.probe(env)
		if !ok {
			continue
		}
		sawCandidate = true

		asset, err := NewPNGAsset(data)
		if err != nil {
			slog.Debug("imagery: candidate rejected", "strategy", s.name, "size", len(data))
			continue
		}

		slog.Debug("imagery: image payload extracted", "strategy", s.name, "size", len(data))
		return asset, s.name, nil
	}

	if sawCandidate {
		return nil, "", ErrInvalidFormat
	}
	return nil, "", ErrNoImagePayload
}

// probeInlineData looks for a structured inline-data part whose declared
// MIME type is an image.
func probeInlineData(env *genai.Envelope) ([]byte, bool) {
	for _, part := range env.Parts {
		if part.InlineData == nil || !strings.HasPrefix(part.InlineData.MimeType, "image/") {
			continue
		}
		if data, err := decodeBase64(part.InlineData.Data); err == nil {
			return data, true
		}
	}
	return nil, false
}

// probeDataField looks for the top-level image-data field used by some
// provider versions.
func probeDataField(env *genai.Envelope) ([]byte, bool) {
	if env.Data == "" {
		return nil, false
	}
	data, err := decodeBase64(env.Data)
	if err != nil {
		return nil, false
	}
	return data, true
}

// probeDataURI scans the response text for an embedded image data URI.
func probeDataURI(env *genai.Envelope) ([]byte, bool) {
	m := dataURIPattern.FindStringSubmatch(env.Text)
	if m == nil {
		return nil, false
	}
	data, err := decodeBase64(m[1])
	if err != nil {
		return nil, false
	}
	return data, true
}

// probeBase64Run speculatively decodes the longest-first base64 run found
// in the response text.
func probeBase64Run(env *genai.Envelope) ([]byte, bool) {
	run := base64RunPattern.FindString(env.Text)
	if run == "" {
		return nil, false
	}
	data, err := decodeBase64(run)
	if err != nil {
		return nil, false
	}
	return data, true
}

func decodeBase64(s string) ([]byte, error) {
	if data, err := base64.StdEncoding.DecodeString(s); err == nil {
		return data, nil
	}
	return base64.RawStdEncoding.DecodeString(s)
}
