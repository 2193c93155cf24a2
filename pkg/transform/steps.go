package transform

import "regexp"

var stepNumberPattern = regexp.MustCompile(`\(\((\d+?)\)\)`)

// CircleStepNumbers replaces every ((N)) token, N being one or more digits,
// with a circular badge showing N.
func CircleStepNumbers(text, _ string) string {
	return stepNumberPattern.ReplaceAllString(text, `<span class="numberCircle"><span>$1</span></span>`)
}
