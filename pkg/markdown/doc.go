// Package markdown converts raw markdown text to baseline HTML.
//
// # Overview
//
// The package defines the [Renderer] contract consumed by the transformer
// chain and a goldmark-backed implementation configured with the "advanced"
// extension profile:
//
//   - GitHub Flavored Markdown (tables, strikethrough, autolinks, task lists)
//   - Footnotes
//   - Definition lists
//   - Automatic heading ids
//
// Raw HTML is passed through untouched so that custom article markup such as
// <hint>, <video> and <img> reaches the later rewrite steps.
//
// # Usage
//
//	r := markdown.New()
//	html, err := r.Render("# Title\n\nSome *text*.")
//
// [Render] is a convenience wrapper around a shared default renderer.
package markdown
