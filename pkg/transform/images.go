package transform

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	// imgTagPattern matches a whole <img ...> tag; quoted values may contain '>'.
	imgTagPattern = regexp.MustCompile(`(?i)<img\b(?:"[^"]*"|'[^']*'|[^'">])*>`)

	// attrPattern matches one attribute with an optional double, single or unquoted value.
	attrPattern = regexp.MustCompile(`([^\s"'<>/=]+)(?:\s*=\s*("[^"]*"|'[^']*'|[^\s"'<>]+))?`)

	schemePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:`)
)

// ImageURLs returns a step that makes relative <img> sources absolute by
// prefixing them with base and the escaped content id. Sources that already
// carry a scheme (http:, https:, data:) or are protocol-relative are kept.
func ImageURLs(base string) Transformer {
	base = strings.TrimRight(base, "/")
	return func(text, contentID string) string {
		prefix := base + "/"
		if id := escapeContentPath(contentID); id != "" {
			prefix += id + "/"
		}
		return imgTagPattern.ReplaceAllStringFunc(text, func(tag string) string {
			return rewriteImgSrc(tag, prefix)
		})
	}
}

func rewriteImgSrc(tag, prefix string) string {
	// Attributes start after "<img"; scanning whole attributes keeps values
	// like alt="src=x" from being mistaken for the src attribute.
	const open = len("<img")
	body := tag[open:]
	for _, m := range attrPattern.FindAllStringSubmatchIndex(body, -1) {
		name := body[m[2]:m[3]]
		if !strings.EqualFold(name, "src") || m[4] < 0 {
			continue
		}
		raw := body[m[4]:m[5]]
		quote, value := "", raw
		if raw[0] == '"' || raw[0] == '\'' {
			quote, value = raw[:1], raw[1:len(raw)-1]
		}
		if value == "" || isAbsoluteURL(value) {
			return tag
		}
		value = strings.TrimPrefix(value, "./")
		value = strings.TrimLeft(value, "/")
		return tag[:open] + body[:m[4]] + quote + prefix + value + quote + body[m[5]:]
	}
	return tag
}

func isAbsoluteURL(s string) bool {
	return strings.HasPrefix(s, "//") || schemePattern.MatchString(s)
}

// escapeContentPath percent-encodes each segment of a content id such as
// "UML/Domain Model". Already-escaped ids are decoded first so they are not
// escaped twice.
func escapeContentPath(id string) string {
	if unescaped, err := url.PathUnescape(id); err == nil {
		id = unescaped
	}
	segments := strings.Split(strings.Trim(id, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
