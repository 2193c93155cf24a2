package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
	"github.com/yosssi/gohtml"

	"github.com/matzehuels/codelabs/pkg/articles"
	"github.com/matzehuels/codelabs/pkg/errors"
	"github.com/matzehuels/codelabs/pkg/markdown"
	"github.com/matzehuels/codelabs/pkg/transform"
)

type renderOpts struct {
	contentID string
	output    string
	page      int
	json      bool
	pretty    bool
	noCache   bool
	refresh   bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{page: -1}

	cmd := &cobra.Command{
		Use:   "render <file|article>",
		Short: "Convert markdown to HTML",
		Long: `Convert a local markdown file, or every page of a remote article, to HTML.

A local file is converted with the article transformer chain. Image paths are
resolved against the configured content repository under --id, which defaults
to the name of the file's directory.

Anything that is not a local file is treated as an article name.`,
		Example: `  codelabs render Articles/Git/01\ Intro.md --id Git
  codelabs render Git -o git.html
  codelabs render Git --page 2
  codelabs render Git --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.contentID, "id", "", "content id for image paths (local files only)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().IntVar(&opts.page, "page", -1, "render only this page (0-based)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "write pages as JSON")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "indent the generated HTML")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "reload the article from GitHub")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, arg string, opts renderOpts) error {
	ctx := cmd.Context()
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	var pages []articles.Page
	title := arg
	if info, statErr := os.Stat(arg); statErr == nil && info.Mode().IsRegular() {
		page, err := renderFile(arg, opts.contentID, transform.Default(markdown.New(), cfg.ImageBase()))
		if err != nil {
			return err
		}
		pages = []articles.Page{page}
		title = page.Title
	} else {
		store, err := c.newCache(ctx, cfg, opts.noCache)
		if err != nil {
			return err
		}
		defer store.Close()

		lib := c.newLibrary(cfg, store)
		load := lib.Pages
		if opts.refresh {
			load = lib.Refresh
		}
		spinner := newSpinner(ctx, fmt.Sprintf("Loading %s...", arg))
		spinner.Start()
		pages, err = load(ctx, arg)
		spinner.Stop()
		if err != nil {
			return err
		}
	}

	if opts.pretty {
		for i := range pages {
			pages[i].HTML = gohtml.Format(pages[i].HTML)
		}
	}

	if opts.page >= 0 {
		if err := errors.ValidatePageIndex(opts.page, len(pages)); err != nil {
			return err
		}
		pages = pages[opts.page : opts.page+1]
	}

	var buf bytes.Buffer
	if opts.json {
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		err = enc.Encode(pages)
	} else {
		err = writeDocument(&buf, title, pages)
	}
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err := io.Copy(os.Stdout, &buf)
		return err
	}
	size := uint64(buf.Len())
	if err := atomic.WriteFile(opts.output, &buf); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	printSuccess("Rendered %d pages (%s)", len(pages), humanize.Bytes(size))
	printFile(opts.output)
	return nil
}

// renderFile converts one local markdown file. An empty contentID defaults
// to the name of the file's directory.
func renderFile(path, contentID string, chain *transform.Chain) (articles.Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return articles.Page{}, fmt.Errorf("read %s: %w", path, err)
	}
	if contentID == "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return articles.Page{}, err
		}
		contentID = filepath.Base(filepath.Dir(abs))
	}
	return articles.Page{
		Title: articles.PageTitle(filepath.Base(path), 0),
		HTML:  chain.Convert(string(data), contentID),
	}, nil
}

var documentTemplate = template.Must(template.New("doc").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
{{range .Pages}}<section>
<h1>{{.Title}}</h1>
{{.HTML}}
</section>
{{end}}</body>
</html>
`))

type documentPage struct {
	Title string
	HTML  template.HTML
}

// writeDocument wraps pages in a standalone HTML document.
func writeDocument(w io.Writer, title string, pages []articles.Page) error {
	doc := struct {
		Title string
		Pages []documentPage
	}{Title: title}
	for _, p := range pages {
		doc.Pages = append(doc.Pages, documentPage{Title: p.Title, HTML: template.HTML(p.HTML)})
	}
	return documentTemplate.Execute(w, doc)
}

// safeFileName turns an article name into a file name.
func safeFileName(name string) string {
	return strings.NewReplacer("/", "-", " ", "_").Replace(name)
}
