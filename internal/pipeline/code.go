package pipeline

import (
	"bytes"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrCodeRender indicates fenced-code rendering failed.
var ErrCodeRender = errors.New("code rendering failed")

// CodeRenderer abstracts fenced code block rendering.
type CodeRenderer interface {
	Render(fenced string) (string, error)
}

// GoldmarkCodeRenderer renders fenced code blocks through goldmark with
// chroma syntax highlighting. Only the fenced block is ever fed to it; the
// surrounding answer structure is handled by the block converter, which
// keeps goldmark away from the model's ad hoc markup.
type GoldmarkCodeRenderer struct {
	md goldmark.Markdown
}

// NewGoldmarkCodeRenderer creates a renderer using the given chroma style.
func NewGoldmarkCodeRenderer(style string) *GoldmarkCodeRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // classes instead of inline styles, smaller markup
				),
			),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
			// WithUnsafe intentionally not used: fenced content is untrusted.
		),
	)
	return &GoldmarkCodeRenderer{md: md}
}

// Render converts one fenced code block to highlighted <pre> markup.
func (r *GoldmarkCodeRenderer) Render(fenced string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(fenced), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrCodeRender, err)
	}
	return buf.String(), nil
}
