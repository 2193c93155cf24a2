package articles

import (
	"fmt"
	"strings"
)

// metaFile is the per-article metadata file, which is never a page.
const metaFile = "Meta.json"

// Page is one converted page of an article.
type Page struct {
	Title string `json:"title"`
	HTML  string `json:"html"`
}

// PageFiles returns the entries that are article pages: regular markdown
// files other than the metadata file, in their listed order.
func PageFiles(entries []Entry) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.Type != "" && e.Type != "file" {
			continue
		}
		if len(e.Name) >= len(metaFile) && strings.EqualFold(e.Name[:len(metaFile)], metaFile) {
			continue
		}
		if !strings.HasSuffix(e.Name, ".md") {
			continue
		}
		out = append(out, e)
	}
	return out
}

// PageTitle builds the display title of the page at index (0-based) from its
// file name: the ordering prefix up to the first space and the .md extension
// are dropped and the 1-based page number is prepended.
//
//	PageTitle("003 Branches and merging.md", 2) == "3. Branches and merging"
func PageTitle(fileName string, index int) string {
	name := strings.TrimSuffix(fileName, ".md")
	if i := strings.IndexByte(name, ' '); i >= 0 {
		name = name[i+1:]
	}
	return fmt.Sprintf("%d. %s", index+1, strings.TrimSpace(name))
}
