// Package mdnorm normalizes text-bearing provider responses into storable
// Markdown and derives a note title from it.
package mdnorm

import (
	"regexp"
	"strings"

	"github.com/hrygo/notewise/ai/genai"
)

// FallbackTitle is used when the generated Markdown carries no H1 heading.
const FallbackTitle = "AI Generated Note"

// h1Pattern matches a Markdown H1: a single '#', whitespace, then content.
// A '##' sub-heading does not match because '#' is not whitespace.
var h1Pattern = regexp.MustCompile(`(?m)^#\s+(.+)$`)

// Markdown is normalized note text with its derived title.
type Markdown struct {
	Content string
	Title   string
}

// Normalize extracts trimmed Markdown from a text-bearing envelope and
// derives the title from its first H1 line, falling back to FallbackTitle.
// This is a string-pattern scan, not a Markdown parse.
func Normalize(env *genai.Envelope) *Markdown {
	content := Text(env)

	title := FallbackTitle
	if m := h1Pattern.FindStringSubmatch(content); m != nil {
		title = strings.TrimSpace(m[1])
	}

	return &Markdown{Content: content, Title: title}
}

// Text returns the trimmed raw text of an envelope, empty when absent.
func Text(env *genai.Envelope) string {
	if env == nil {
		return ""
	}
	return strings.TrimSpace(env.Text)
}
