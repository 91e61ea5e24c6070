package bbcode

import (
	"html"
	"strings"
)

// Escape converts &, <, >, " and ' to HTML entities. Every other character,
// including the tag punctuation [ ] = / and *, passes through unchanged so the
// tag grammar can still be recognized afterwards.
func Escape(raw string) string {
	return html.EscapeString(raw)
}

// lineBreak is the block-level break emitted for each newline.
const lineBreak = "<br>"

// writeBreaks writes escaped text, turning each newline into a line break.
func writeBreaks(sb *strings.Builder, text string) {
	for {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			sb.WriteString(text)
			return
		}
		sb.WriteString(text[:i])
		sb.WriteString(lineBreak)
		text = text[i+1:]
	}
}

// normalizeNewlines folds CRLF and lone CR into LF.
func normalizeNewlines(raw string) string {
	if !strings.Contains(raw, "\r") {
		return raw
	}
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	return strings.ReplaceAll(raw, "\r", "\n")
}
