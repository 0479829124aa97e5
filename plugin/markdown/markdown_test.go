package markdown

import (
	"strings"
	"testing"
)

func TestRenderHTML(t *testing.T) {
	svc := NewService()

	html, err := svc.RenderHTML([]byte("# Title\n\nSome **bold** text."))
	if err != nil {
		t.Fatalf("RenderHTML() error = %v", err)
	}
	if !strings.Contains(html, "<h1>Title</h1>") {
		t.Errorf("missing h1: %q", html)
	}
	if !strings.Contains(html, "<strong>bold</strong>") {
		t.Errorf("missing strong: %q", html)
	}
}

func TestRenderHTMLTable(t *testing.T) {
	svc := NewService()

	html, err := svc.RenderHTML([]byte("| a | b |\n|---|---|\n| 1 | 2 |"))
	if err != nil {
		t.Fatalf("RenderHTML() error = %v", err)
	}
	if !strings.Contains(html, "<table>") {
		t.Errorf("GFM table not rendered: %q", html)
	}
}
