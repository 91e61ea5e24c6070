package bbcode

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// Excerpt reduces rendered markup to plain text of at most maxRunes runes,
// for previews and notifications. Embedded media become short placeholders.
// A maxRunes of zero or less means no truncation.
func Excerpt(markup string, maxRunes int) string {
	var sb strings.Builder
	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return truncateRunes(strings.Join(strings.Fields(sb.String()), " "), maxRunes)
		case html.TextToken:
			sb.Write(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "img":
				sb.WriteString(" [image] ")
			case "iframe":
				sb.WriteString(" [video] ")
			case "br", "li", "div", "blockquote", "pre", "ul":
				sb.WriteString(" ")
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "li", "div", "blockquote", "pre", "ul":
				sb.WriteString(" ")
			}
		}
	}
}

// truncateRunes truncates s to maxRunes runes, ending in "..." when cut.
func truncateRunes(s string, maxRunes int) string {
	if maxRunes <= 0 || utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	if maxRunes <= 3 {
		return string([]rune(s)[:maxRunes])
	}
	return string([]rune(s)[:maxRunes-3]) + "..."
}
