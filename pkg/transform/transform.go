package transform

import (
	"github.com/matzehuels/codelabs/pkg/markdown"
)

// Transformer rewrites text. contentID identifies the article being
// converted and is used to build content-relative URLs.
type Transformer func(text, contentID string) string

// Chain applies transformers in order, feeding each output into the next step.
type Chain struct {
	steps []Transformer
}

// NewChain creates a chain that applies steps in the order given.
func NewChain(steps ...Transformer) *Chain {
	return &Chain{steps: steps}
}

// Convert runs every step over text and returns the final result.
// contentID is passed unchanged to each step.
func (c *Chain) Convert(text, contentID string) string {
	for _, step := range c.steps {
		text = step(text, contentID)
	}
	return text
}

// Len returns the number of steps in the chain.
func (c *Chain) Len() int { return len(c.steps) }

// Default builds the standard article chain. renderer converts the markdown;
// imageBase is the URL under which article folders are served, e.g.
// "https://raw.githubusercontent.com/owner/repo/refs/heads/master/Articles".
func Default(renderer markdown.Renderer, imageBase string) *Chain {
	return NewChain(
		Markdown(renderer),
		CircleStepNumbers,
		ImageURLs(imageBase),
		LineNumbers,
		LineHighlights,
		Videos,
		Hints,
	)
}

// Markdown returns a step that renders markdown to HTML. If the renderer
// fails the input is returned as-is.
func Markdown(renderer markdown.Renderer) Transformer {
	if renderer == nil {
		renderer = markdown.New()
	}
	return func(text, _ string) string {
		html, err := renderer.Render(text)
		if err != nil {
			return text
		}
		return html
	}
}
