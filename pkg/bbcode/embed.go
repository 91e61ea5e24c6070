// embed.go finds bare media URLs in escaped text runs.
package bbcode

import (
	"regexp"
	"sort"
	"strings"
)

// urlChar is one URL character of escaped text. Entities other than &amp;
// (quotes, angle brackets) and tag brackets end the URL.
const urlChar = `(?:[^\s\[\]<>&"']|&amp;)`

var (
	imageURLRe = regexp.MustCompile(`(?i)https?://` + urlChar + `+\.(?:jpe?g|png|gif|webp|bmp|svg)\b`)
	videoLinkRe = regexp.MustCompile(`(?i)https?://(?:www\.|m\.)?` +
		`(?:youtube\.com/(?:watch\?v=|embed/|shorts/)|youtu\.be/)` +
		`([A-Za-z0-9_-]{11})(?:(?:[?#/]|&amp;)` + urlChar + `*)?`)
)

type embedKind int

const (
	embedImage embedKind = iota
	embedVideo
)

// embedMatch is one bare media URL found in a text run.
type embedMatch struct {
	start, end int
	kind       embedKind
	url        string // escaped URL for images
	videoID    string // for videos
}

// findEmbeds returns non-overlapping media URLs in text, ordered by position.
func findEmbeds(text string) []embedMatch {
	if !strings.Contains(text, "://") {
		return nil
	}

	var found []embedMatch
	for _, loc := range videoLinkRe.FindAllStringSubmatchIndex(text, -1) {
		// The id must not run on into more id characters.
		if loc[3] < len(text) && loc[1] == loc[3] && isNameChar(text[loc[3]]) {
			continue
		}
		found = append(found, embedMatch{
			start:   loc[0],
			end:     loc[1],
			kind:    embedVideo,
			videoID: text[loc[2]:loc[3]],
		})
	}
	for _, loc := range imageURLRe.FindAllStringIndex(text, -1) {
		found = append(found, embedMatch{
			start: loc[0],
			end:   loc[1],
			kind:  embedImage,
			url:   text[loc[0]:loc[1]],
		})
	}
	if len(found) == 0 {
		return nil
	}

	// Earliest wins; overlapping later matches are dropped. Videos were
	// collected first so they win ties.
	sort.SliceStable(found, func(i, j int) bool { return found[i].start < found[j].start })
	result := found[:0]
	lastEnd := -1
	for _, m := range found {
		if m.start < lastEnd {
			continue
		}
		result = append(result, m)
		lastEnd = m.end
	}
	return result
}

// imageEmbed returns the markup for an image. src must already be escaped
// and validated. The inline handler hides the element if loading fails.
func imageEmbed(src string) string {
	return `<img src="` + src + `" class="bb-img" alt="Image" loading="lazy" onerror="this.style.display='none'">`
}

func (m embedMatch) markup() string {
	if m.kind == embedVideo {
		return youtubeEmbed(m.videoID)
	}
	return imageEmbed(m.url)
}

// AutoEmbed wraps bare image and YouTube URLs found in an escaped text run.
// The input must be plain escaped text with no markup; the renderer only
// calls it on text that lies outside anchors, images and code.
func AutoEmbed(text string) string {
	matches := findEmbeds(text)
	if len(matches) == 0 {
		return text
	}
	var sb strings.Builder
	last := 0
	for _, m := range matches {
		sb.WriteString(text[last:m.start])
		sb.WriteString(m.markup())
		last = m.end
	}
	sb.WriteString(text[last:])
	return sb.String()
}
