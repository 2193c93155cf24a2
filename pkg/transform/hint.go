package transform

import "regexp"

var hintPattern = regexp.MustCompile(`(?s)<hint\s+title\s*=\s*(?:"([^"]*)"|'([^']*)')\s*>\s*?\r?\n?(.*?)\r?\n?\s*</hint>`)

// Hints turns <hint title="T">body</hint> blocks into collapsible
// <details> elements with T as the summary. The body may span lines.
func Hints(text, _ string) string {
	return hintPattern.ReplaceAllStringFunc(text, func(m string) string {
		sub := hintPattern.FindStringSubmatch(m)
		title := sub[1]
		if title == "" {
			title = sub[2]
		}
		return "<details class=\"hint\">\n<summary>" + title + "</summary>\n<div class=\"hint-body\">\n" + sub[3] + "\n</div>\n</details>"
	})
}
