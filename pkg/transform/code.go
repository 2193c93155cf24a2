package transform

import (
	"regexp"
	"strings"
)

const lineNumbersClass = "line-numbers"

var (
	codeClassPattern = regexp.MustCompile(`<code class="([^"]*)"`)

	// lineHighlightPattern matches a fence info suffix such as java{1,3-5}
	// that the markdown renderer leaves inside the language class.
	lineHighlightPattern = regexp.MustCompile(`<pre><code class="([^"]*?language-[^"{\s]*)\{([^}"]*)\}([^"]*)">`)
)

// LineNumbers adds the line-numbers class to code blocks that declare a
// language. The language class token is left as it is.
func LineNumbers(text, _ string) string {
	return codeClassPattern.ReplaceAllStringFunc(text, func(m string) string {
		classes := codeClassPattern.FindStringSubmatch(m)[1]
		hasLanguage := false
		for _, c := range strings.Fields(classes) {
			if c == lineNumbersClass {
				return m
			}
			if strings.HasPrefix(c, "language-") {
				hasLanguage = true
			}
		}
		if !hasLanguage {
			return m
		}
		return `<code class="` + lineNumbersClass + " " + classes + `"`
	})
}

// LineHighlights moves a {lines} suffix from the language class of a code
// block to a data-line attribute on its <pre> element.
func LineHighlights(text, _ string) string {
	return lineHighlightPattern.ReplaceAllString(text, `<pre data-line="$2"><code class="$1$3">`)
}
