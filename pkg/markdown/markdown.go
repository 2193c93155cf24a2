package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts markdown source to HTML.
// Implementations must be deterministic and safe for concurrent use.
type Renderer interface {
	Render(markdown string) (string, error)
}

// Goldmark renders markdown with goldmark using the advanced extension set.
type Goldmark struct {
	md goldmark.Markdown
}

// Option configures a [Goldmark] renderer.
type Option func(*options)

type options struct {
	hardWraps bool
	xhtml     bool
}

// WithHardWraps renders soft line breaks as <br>.
func WithHardWraps() Option {
	return func(o *options) { o.hardWraps = true }
}

// WithXHTML renders void elements in XHTML form (<br />).
func WithXHTML() Option {
	return func(o *options) { o.xhtml = true }
}

// New creates a goldmark renderer with tables, footnotes, definition lists,
// autolinks and raw HTML passthrough enabled.
func New(opts ...Option) *Goldmark {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	rendererOpts := []goldmark.Option{}
	htmlOpts := []renderer.Option{html.WithUnsafe()}
	if o.hardWraps {
		htmlOpts = append(htmlOpts, html.WithHardWraps())
	}
	if o.xhtml {
		htmlOpts = append(htmlOpts, html.WithXHTML())
	}
	rendererOpts = append(rendererOpts,
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			extension.DefinitionList,
		),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(htmlOpts...),
	)

	return &Goldmark{md: goldmark.New(rendererOpts...)}
}

// Render converts markdown to HTML.
func (g *Goldmark) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := g.md.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var defaultRenderer = New()

// Render converts markdown with the shared default renderer.
func Render(markdown string) (string, error) {
	return defaultRenderer.Render(markdown)
}

// Ensure Goldmark implements Renderer.
var _ Renderer = (*Goldmark)(nil)
