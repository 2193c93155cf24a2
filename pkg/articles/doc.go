// Package articles turns a folder of numbered markdown files into a
// paginated tutorial.
//
// An article is a folder on the content host. Each markdown file in it is one
// page, ordered by file name ("001 Intro.md", "002 Setup.md", ...). Pages are
// converted to HTML with a [transform.Chain] using the article name as the
// content id, so relative image paths resolve inside the article folder.
//
// # Library
//
// [Library] loads and memoizes articles:
//
//	lib := articles.NewLibrary(src, imageBase, articles.WithCache(c, time.Hour))
//	folders, err := lib.Folders(ctx)
//	pages, err := lib.Pages(ctx, "Git")
//	page, err := lib.Page(ctx, "Git", 2)
//
// Page bodies are downloaded concurrently. Concurrent loads of the same
// article share one fetch.
//
// # Navigation
//
// [Cursor] tracks the current page and clamps moves to the valid range.
// [Outline] lists the h2/h3 headings of a page for an in-page menu.
//
// [transform.Chain]: github.com/matzehuels/codelabs/pkg/transform.Chain
package articles
