package articles

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Heading is one entry of a page outline.
type Heading struct {
	Level int    `json:"level"`
	ID    string `json:"id"`
	Text  string `json:"text"`
}

// Outline returns the h2 and h3 headings of a converted page in document
// order. Headings without an id are skipped since they cannot be linked.
func Outline(html string) ([]Heading, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var out []Heading
	doc.Find("h2, h3").Each(func(_ int, s *goquery.Selection) {
		id, ok := s.Attr("id")
		if !ok || id == "" {
			return
		}
		level := 2
		if goquery.NodeName(s) == "h3" {
			level = 3
		}
		out = append(out, Heading{
			Level: level,
			ID:    id,
			Text:  strings.TrimSpace(s.Text()),
		})
	})
	return out, nil
}
