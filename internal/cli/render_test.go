package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/codelabs/pkg/articles"
	"github.com/matzehuels/codelabs/pkg/markdown"
	"github.com/matzehuels/codelabs/pkg/transform"
)

const testImageBase = "https://raw.example.com/o/r/refs/heads/main/Articles"

func writeMarkdown(t *testing.T, dir, name, body string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRenderFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Git")
	path := writeMarkdown(t, dir, "01 Getting started.md", "## Setup\n\n![shot](img/a.png)\n")
	chain := transform.Default(markdown.New(), testImageBase)

	tests := []struct {
		name      string
		contentID string
		wantSrc   string
	}{
		{"directory name", "", testImageBase + "/Git/img/a.png"},
		{"explicit id", "SEP1/Actors", testImageBase + "/SEP1/Actors/img/a.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := renderFile(path, tt.contentID, chain)
			if err != nil {
				t.Fatal(err)
			}
			if page.Title != "1. Getting started" {
				t.Errorf("title = %q", page.Title)
			}
			if !strings.Contains(page.HTML, `src="`+tt.wantSrc+`"`) {
				t.Errorf("html missing %q:\n%s", tt.wantSrc, page.HTML)
			}
		})
	}
}

func TestRenderFileMissing(t *testing.T) {
	_, err := renderFile(filepath.Join(t.TempDir(), "nope.md"), "", transform.Default(nil, testImageBase))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestWriteDocument(t *testing.T) {
	pages := []articles.Page{
		{Title: "1. Intro", HTML: "<p>one</p>"},
		{Title: "2. <Next>", HTML: "<p>two</p>"},
	}
	var buf bytes.Buffer
	if err := writeDocument(&buf, "Git & more", pages); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		"<title>Git &amp; more</title>",
		"<h1>1. Intro</h1>\n<p>one</p>",
		"<h1>2. &lt;Next&gt;</h1>",
		"<p>two</p>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("document missing %q:\n%s", want, out)
		}
	}
	if n := strings.Count(out, "<section>"); n != 2 {
		t.Errorf("got %d sections, want 2", n)
	}
}
