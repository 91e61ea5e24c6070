package bbcode

import (
	"html"
	"strings"
)

const (
	minMentionLength = 3
	maxMentionLength = 30
)

// UserRef identifies a resolved mention target.
type UserRef struct {
	ID string
}

// MentionResolver looks up a mentioned username. It only decorates the
// produced span; output is escaped whether or not resolution succeeds.
type MentionResolver interface {
	ResolveMention(name string) (UserRef, bool)
}

// MentionResolverFunc adapts a function to MentionResolver.
type MentionResolverFunc func(name string) (UserRef, bool)

// ResolveMention calls f(name).
func (f MentionResolverFunc) ResolveMention(name string) (UserRef, bool) {
	return f(name)
}

// isNameChar returns true if c may appear in a mentioned username.
func isNameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' || c == '-'
}

// mentionSpan is a located @name in a text run.
type mentionSpan struct {
	start, end int // byte range of "@name"
	name       string
}

// findMentions scans an escaped text run for @name tokens.
//
// Boundary rule: the '@' must start the run or follow a byte that is neither
// a name character nor '@', so "email@example.com" and "@@name" do not match.
// The name is 3 to 30 name characters and must not be followed by another
// name character, so an over-long run is not cut into a shorter mention.
func findMentions(text string) []mentionSpan {
	var spans []mentionSpan
	for i := 0; i < len(text); i++ {
		if text[i] != '@' {
			continue
		}
		if i > 0 && (isNameChar(text[i-1]) || text[i-1] == '@') {
			continue
		}
		j := i + 1
		for j < len(text) && isNameChar(text[j]) {
			j++
		}
		n := j - i - 1
		if n >= minMentionLength && n <= maxMentionLength {
			spans = append(spans, mentionSpan{start: i, end: j, name: text[i+1 : j]})
		}
		i = j - 1
	}
	return spans
}

// mentionMarkup returns the inert span for a mention. The UI resolves the
// username to a profile when the span is clicked.
func mentionMarkup(name string, resolver MentionResolver) string {
	var sb strings.Builder
	sb.WriteString(`<span class="mention-link" data-username="`)
	sb.WriteString(name)
	sb.WriteString(`"`)
	if resolver != nil {
		if ref, ok := resolver.ResolveMention(name); ok && ref.ID != "" {
			sb.WriteString(` data-user-id="`)
			sb.WriteString(html.EscapeString(ref.ID))
			sb.WriteString(`"`)
		}
	}
	sb.WriteString(`>@`)
	sb.WriteString(name)
	sb.WriteString(`</span>`)
	return sb.String()
}

// LinkifyMentions wraps @name tokens of an escaped text run in mention spans.
// The input must be plain escaped text with no markup.
func LinkifyMentions(text string) string {
	var sb strings.Builder
	writeMentions(&sb, text, nil, false)
	return sb.String()
}

// writeMentions writes text with mentions linked, optionally converting
// newlines to line breaks.
func writeMentions(sb *strings.Builder, text string, resolver MentionResolver, breaks bool) {
	write := sb.WriteString
	if breaks {
		write = func(s string) (int, error) {
			writeBreaks(sb, s)
			return len(s), nil
		}
	}
	last := 0
	for _, m := range findMentions(text) {
		_, _ = write(text[last:m.start])
		sb.WriteString(mentionMarkup(m.name, resolver))
		last = m.end
	}
	_, _ = write(text[last:])
}
