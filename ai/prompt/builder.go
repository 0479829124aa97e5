// Package prompt assembles provider-ready prompts for the note
// generation intents.
package prompt

import (
	"bytes"
	"text/template"
)

// Intent identifies what the caller wants generated.
type Intent string

const (
	// IntentDraft produces a full Markdown note from freeform user text.
	IntentDraft Intent = "draft"
	// IntentSummarize produces a Markdown summary of stored note content.
	IntentSummarize Intent = "summarize"
	// IntentIllustrate produces an image from the caller's description.
	IntentIllustrate Intent = "illustrate"
)

// IllustratePromptMinLen is the minimum rune count for an image prompt,
// enforced by the API layer before the pipeline runs.
const IllustratePromptMinLen = 3

var draftTemplate = template.Must(template.New("draft").Parse(`You are a professional knowledge worker who drafts excellent notes.

Instructions:
- Read the user's request and silently plan the structure (no need to show the plan).
- Produce the final answer strictly as Markdown.
- The first line must be an H1 with the note title, for example: "# Git & Gitflow Overview".
- Follow the title with well-structured Markdown content (paragraphs, bullet lists, subheadings).
- Use concise, professional language.
- Output only the Markdown note. Do NOT use JSON. Do NOT wrap the response in code fences.

User request:
"""{{.Text}}"""
`))

var summarizeTemplate = template.Must(template.New("summarize").Parse(`You are a professional note summarizer.

Instructions:
- Read the provided note content carefully.
- Produce a concise Markdown summary with the following structure:
  - H2 heading "Summary".
  - 2-3 bullet points highlighting key insights.
  - (Optional) short paragraph with recommendations or next steps.
- Output only Markdown. Do NOT use JSON or code fences.

Note content:
"""{{.Content}}"""
`))

// Draft builds the prompt for drafting a new note from user text.
func Draft(userText string) string {
	return execute(draftTemplate, struct{ Text string }{Text: userText})
}

// Summarize builds the prompt for summarizing stored note content.
func Summarize(content string) string {
	return execute(summarizeTemplate, struct{ Content string }{Content: content})
}

// Illustrate builds the prompt for image generation. The caller's
// description is passed through untouched; the minimum-length constraint
// is enforced upstream.
func Illustrate(description string) string {
	return description
}

func execute(tmpl *template.Template, data any) string {
	var buf bytes.Buffer
	// Templates are static and data is plain strings; execution cannot fail.
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}
