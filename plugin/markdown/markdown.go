// Package markdown renders stored note Markdown to HTML.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Service renders Markdown source to HTML.
type Service interface {
	RenderHTML(source []byte) (string, error)
}

type service struct {
	md goldmark.Markdown
}

// NewService creates a Markdown rendering service with GFM extensions
// (tables, strikethrough, task lists), which generated notes commonly use.
func NewService() Service {
	return &service{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
	}
}

func (s *service) RenderHTML(source []byte) (string, error) {
	var buf bytes.Buffer
	if err := s.md.Convert(source, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
