package transform

import (
	"strings"
	"testing"
)

func TestImageURLs(t *testing.T) {
	const base = "https://host/Articles"
	step := ImageURLs(base)

	tests := []struct {
		name  string
		input string
		id    string
		want  string
	}{
		{
			name:  "relative double quoted",
			input: `<img src="a.png">`,
			id:    "Foo",
			want:  `<img src="https://host/Articles/Foo/a.png">`,
		},
		{
			name:  "absolute unchanged",
			input: `<img src="https://x/y.png">`,
			id:    "Foo",
			want:  `<img src="https://x/y.png">`,
		},
		{
			name:  "single quoted",
			input: `<img src='another/image.jpg'>`,
			id:    "Foo",
			want:  `<img src='https://host/Articles/Foo/another/image.jpg'>`,
		},
		{
			name:  "src after alt",
			input: `<img alt="img.png" src="Resources/img.png" />`,
			id:    "Foo",
			want:  `<img alt="img.png" src="https://host/Articles/Foo/Resources/img.png" />`,
		},
		{
			name:  "alt containing src pattern",
			input: `<img alt="see src='x.png'" src="real.png">`,
			id:    "Foo",
			want:  `<img alt="see src='x.png'" src="https://host/Articles/Foo/real.png">`,
		},
		{
			name:  "data-src untouched",
			input: `<img data-src="lazy.png" src="a.png">`,
			id:    "Foo",
			want:  `<img data-src="lazy.png" src="https://host/Articles/Foo/a.png">`,
		},
		{
			name:  "no src",
			input: `<img alt='no src here'>`,
			id:    "Foo",
			want:  `<img alt='no src here'>`,
		},
		{
			name:  "root relative",
			input: `<img src="/images/logo.gif" />`,
			id:    "Foo",
			want:  `<img src="https://host/Articles/Foo/images/logo.gif" />`,
		},
		{
			name:  "dot relative",
			input: `<img src="./a.png">`,
			id:    "Foo",
			want:  `<img src="https://host/Articles/Foo/a.png">`,
		},
		{
			name:  "content id with spaces and folders",
			input: `<img src="a.png">`,
			id:    "UML/Domain Model",
			want:  `<img src="https://host/Articles/UML/Domain%20Model/a.png">`,
		},
		{
			name:  "already escaped content id",
			input: `<img src="a.png">`,
			id:    "Feature%20Tester",
			want:  `<img src="https://host/Articles/Feature%20Tester/a.png">`,
		},
		{
			name:  "data uri",
			input: `<img src="data:image/png;base64,AAAA">`,
			id:    "Foo",
			want:  `<img src="data:image/png;base64,AAAA">`,
		},
		{
			name:  "protocol relative",
			input: `<img src="//cdn/x.png">`,
			id:    "Foo",
			want:  `<img src="//cdn/x.png">`,
		},
		{
			name:  "uppercase tag and attribute",
			input: `<IMG SRC="a.png">`,
			id:    "Foo",
			want:  `<IMG SRC="https://host/Articles/Foo/a.png">`,
		},
		{
			name:  "not an img tag",
			input: `<script src="a.js"></script>`,
			id:    "Foo",
			want:  `<script src="a.js"></script>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := step(tt.input, tt.id); got != tt.want {
				t.Errorf("ImageURLs()(%q, %q) =\n  %q\nwant\n  %q", tt.input, tt.id, got, tt.want)
			}
		})
	}
}

func TestImageURLsDocument(t *testing.T) {
	input := `
<p>Some text before.</p>
<img src="Resources/img.png" alt="img.png">
<img src="https://github.com/owner/repo/blob/master/Articles/Feature%20Tester/Resources/img.png?raw=true" alt="img.png">
<p>Some text after.</p>
<img src='another/image.jpg'>
<img alt='no src here'>
`
	got := ImageURLs(testBase)(input, "Feature Tester")

	if n := strings.Count(got, testBase+"/Feature%20Tester/"); n != 2 {
		t.Errorf("expected 2 rewritten sources, got %d:\n%s", n, got)
	}
	if !strings.Contains(got, `src="https://github.com/owner/repo/blob/master/Articles/Feature%20Tester/Resources/img.png?raw=true"`) {
		t.Errorf("absolute source was modified:\n%s", got)
	}
	if !strings.Contains(got, "<p>Some text before.</p>") {
		t.Errorf("surrounding markup changed:\n%s", got)
	}
}

func TestImageURLsIdempotent(t *testing.T) {
	step := ImageURLs(testBase)
	once := step(`<img src="a.png"><img src='b/c.png' alt="x">`, "Foo")
	if twice := step(once, "Foo"); twice != once {
		t.Errorf("second pass changed output:\n%s\n%s", once, twice)
	}
}

func TestImageURLsTrailingSlashBase(t *testing.T) {
	got := ImageURLs("https://host/")(`<img src="a.png">`, "")
	if got != `<img src="https://host/a.png">` {
		t.Errorf("got %q", got)
	}
}
