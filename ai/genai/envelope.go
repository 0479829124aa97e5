package genai

import "strings"

// Request describes one generation call: a model identifier, the assembled
// prompt, and an optional response-format hint. A hint with an image MIME
// type routes the call to the provider's multimodal endpoint.
type Request struct {
	Model            string
	Prompt           string
	ResponseMIMEType string
}

// IsImage reports whether the request asks for an image response.
func (r *Request) IsImage() bool {
	return strings.HasPrefix(r.ResponseMIMEType, "image/")
}

// Envelope is the loosely-typed response returned by the provider.
//
// The provider does not keep a fixed schema across its features: text models
// return a flat text body, image models return inline binary parts, and some
// model versions return a top-level data field or embed base64 inside the
// text. Consumers must probe the envelope defensively instead of assuming
// one shape.
type Envelope struct {
	// Text is the concatenated text content of the response, possibly empty.
	Text string

	// Parts are the structured candidate parts, when the provider returned any.
	Parts []Part

	// Data is the top-level image payload field used by some model versions.
	Data string
}

// Part is one content part of a multimodal response.
type Part struct {
	Text       string      `json:"text"`
	InlineData *InlineData `json:"inlineData"`
}

// InlineData carries base64-encoded binary content with its declared MIME type.
type InlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}
