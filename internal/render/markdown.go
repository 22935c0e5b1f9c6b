// Package render converts assistant Markdown replies into HTML that is safe
// to embed in a chat UI.
package render

import (
	"bytes"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Markdown renders markdown to sanitized HTML. Safe for concurrent use.
type Markdown struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func NewMarkdown() *Markdown {
	md := goldmark.New(
		goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
		goldmark.WithExtensions(
			highlighting.NewHighlighting(
				highlighting.WithStyle("dracula"),
				highlighting.WithFormatOptions(
					// Inline styles so no external CSS file is needed.
					chromahtml.WithLineNumbers(false),
				),
			),
		),
	)

	return &Markdown{
		md:     md,
		policy: bluemonday.UGCPolicy(),
	}
}

// Render converts src to HTML and strips anything the UGC policy rejects.
// Model output is untrusted input, so sanitizing happens after rendering.
func (m *Markdown) Render(src string) (string, error) {
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return m.policy.Sanitize(buf.String()), nil
}
