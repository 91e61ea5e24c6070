package bbcode

import (
	"regexp"
	"strings"
)

// videoIDLength is the fixed length of a YouTube video id.
const videoIDLength = 11

var (
	videoIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

	// videoURLRe matches a whole YouTube URL. The id must be followed by the end
	// of input or a query, fragment or path separator, so a 12+ character id is
	// not silently truncated. &amp; is accepted because tag bodies are escaped.
	videoURLRe = regexp.MustCompile(`(?i)^(?:https?://)?(?:www\.|m\.)?` +
		`(?:youtube\.com/(?:watch\?v=|embed/|shorts/)|youtu\.be/)` +
		`([A-Za-z0-9_-]{11})(?:(?:[?#/&])[^\s<>"']*)?$`)
)

// ExtractVideoID returns the video id from a bare 11-character id or from a
// youtube.com/watch, youtube.com/embed, youtube.com/shorts or youtu.be URL.
// Anything else is rejected.
func ExtractVideoID(input string) (string, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", false
	}
	if videoIDRe.MatchString(input) {
		return input, true
	}
	m := videoURLRe.FindStringSubmatch(input)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// youtubeEmbed returns the player markup for a validated video id.
func youtubeEmbed(id string) string {
	return `<div class="bb-youtube"><iframe src="https://www.youtube.com/embed/` + id +
		`" frameborder="0" allow="accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture" allowfullscreen></iframe></div>`
}
