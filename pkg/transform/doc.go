// Package transform converts article markdown into publish-ready HTML.
//
// # Overview
//
// A conversion is an ordered [Chain] of [Transformer] functions. Each step
// receives the previous step's output plus a content id (the article folder
// name) and returns rewritten text. Steps are pure: they hold no state and
// are safe to run concurrently for different articles.
//
// The default chain, built by [Default], applies:
//
//  1. [Markdown]: markdown to HTML through a [markdown.Renderer]
//  2. [CircleStepNumbers]: ((3)) becomes a numbered badge
//  3. [ImageURLs]: relative <img> sources become absolute content-host URLs
//  4. [LineNumbers]: code blocks get the line-numbers class
//  5. [LineHighlights]: java{1,3-5} fence suffixes move to data-line on <pre>
//  6. [Videos]: paragraph-wrapped YouTube <video> tags become embedded players
//  7. [Hints]: <hint title="..."> blocks become <details> disclosures
//
// # Failure Mode
//
// Every step is total over strings. Input that does not match a step's pattern
// is returned unchanged, so malformed markdown degrades to partially rewritten
// HTML instead of aborting the page.
//
// [markdown.Renderer]: github.com/matzehuels/codelabs/pkg/markdown.Renderer
package transform
