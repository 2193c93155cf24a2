package transform

import "regexp"

const embedBase = "https://www.youtube.com/embed/"

// videoSrc matches both the short-link and the watch?v= form; the id lands
// in group 1 or group 2.
const videoSrc = `<video\s+src\s*=\s*["'](?:https?://youtu\.be/([A-Za-z0-9_-]+)[^"']*|https?://(?:www\.|m\.)?youtube\.com/watch\?(?:[^"']*?&(?:amp;)?)?v=([A-Za-z0-9_-]+)[^"']*)["'][^>]*>\s*</video>`

var (
	wrappedVideoPattern = regexp.MustCompile(`<p>\s*` + videoSrc + `\s*</p>`)
	bareVideoPattern    = regexp.MustCompile(videoSrc)
)

// Videos replaces YouTube <video> tags, with or without a wrapping
// paragraph, by a responsive container holding an embedded player.
// Other video tags are left alone.
func Videos(text, _ string) string {
	text = wrappedVideoPattern.ReplaceAllStringFunc(text, embedVideo(wrappedVideoPattern))
	return bareVideoPattern.ReplaceAllStringFunc(text, embedVideo(bareVideoPattern))
}

func embedVideo(re *regexp.Regexp) func(string) string {
	return func(m string) string {
		sub := re.FindStringSubmatch(m)
		id := sub[1]
		if id == "" {
			id = sub[2]
		}
		return EmbedPlayer(id)
	}
}

// EmbedPlayer returns the iframe container markup for a YouTube video id.
func EmbedPlayer(id string) string {
	return `<div class="video-container"><iframe src="` + embedBase + id + `" title="YouTube video player" frameborder="0" ` +
		`allow="accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture" allowfullscreen></iframe></div>`
}
