// compose.go builds BBCode source for editor toolbars and quote replies.
package bbcode

import "strings"

// sampleList is inserted when the list button is used with no selection.
const sampleList = "[list]\n[*]Item 1\n[*]Item 2\n[/list]"

// Wrap surrounds selected text with a tag. For "list" the selection is split
// into one item per line.
func Wrap(tag, selected string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "list" {
		if selected == "" {
			return sampleList
		}
		return List(strings.Split(selected, "\n"))
	}
	return "[" + tag + "]" + selected + "[/" + tag + "]"
}

// List builds a list with one [*] item per line.
func List(lines []string) string {
	var sb strings.Builder
	sb.WriteString("[list]\n")
	for i, line := range lines {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("[*]")
		sb.WriteString(strings.TrimSpace(line))
	}
	sb.WriteString("\n[/list]")
	return sb.String()
}

// Link builds a [url=...] tag. An empty label uses the URL itself.
func Link(url, label string) string {
	url = tagValue(url)
	if label == "" {
		label = url
	}
	return "[url=" + url + "]" + label + "[/url]"
}

// Image builds an [img] tag.
func Image(url string) string {
	return "[img]" + strings.TrimSpace(url) + "[/img]"
}

// Size builds a [size=...] tag around text, defaulting to "text".
func Size(token, text string) string {
	return "[size=" + tagValue(token) + "]" + orSample(text) + "[/size]"
}

// Color builds a [color=...] tag around text, defaulting to "text".
func Color(color, text string) string {
	return "[color=" + tagValue(color) + "]" + orSample(text) + "[/color]"
}

// Quote builds the quote block prepended to a reply, followed by a blank line.
func Quote(author, content string) string {
	author = tagValue(author)
	if author == "" {
		author = "Unknown"
	}
	return "[quote=" + author + "]" + content + "[/quote]\n\n"
}

func orSample(text string) string {
	if text == "" {
		return "text"
	}
	return text
}

var tagValueReplacer = strings.NewReplacer("[", "(", "]", ")", "\r", " ", "\n", " ")

// tagValue makes s usable inside [tag=value]: values cannot hold brackets or
// line breaks.
func tagValue(s string) string {
	return strings.TrimSpace(tagValueReplacer.Replace(s))
}
