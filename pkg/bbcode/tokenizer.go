// tokenizer.go implements tokenization for [tag]...[/tag] bracket syntax.
package bbcode

import (
	"errors"
	"strings"
)

const (
	// maxNameLength bounds tag names; no registered tag is longer.
	maxNameLength = 16
	// maxValueLength bounds the value in [tag=value].
	maxValueLength = 2048
)

var (
	errNotTag      = errors.New("not a tag")
	errEmptyName   = errors.New("empty tag name")
	errEmptyValue  = errors.New("empty tag value")
	errUnclosedTag = errors.New("unclosed tag")
)

// Tokenize scans escaped input for bracket syntax and returns a token stream.
// Recognized forms:
//   - [tag] or [tag=value] - open tag
//   - [/tag] - close tag
//   - [*] - list item marker
//
// Text between tags is returned as TokenText tokens. Unknown tag names are
// still tokenized; the parser decides what they mean.
func Tokenize(input string) []Token {
	tokens, _ := tokenize(input, 0)
	return tokens
}

// tokenize scans at most maxTags non-text tokens (0 means unlimited). It
// returns the tokens and the byte offset where scanning stopped; input past
// that offset was not tokenized.
func tokenize(input string, maxTags int) ([]Token, int) {
	var tokens []Token
	pos := 0
	textStart := 0
	tags := 0

	for pos < len(input) {
		if input[pos] != '[' {
			// Skip straight to the next candidate bracket.
			next := strings.IndexByte(input[pos:], '[')
			if next < 0 {
				break
			}
			pos += next
			continue
		}

		token, endPos, err := parseTag(input, pos)
		if err != nil {
			// Not a tag - treat '[' as text
			pos++
			continue
		}

		if maxTags > 0 && tags >= maxTags {
			if pos > textStart {
				tokens = append(tokens, textToken(input, textStart, pos))
			}
			return tokens, pos
		}

		if pos > textStart {
			tokens = append(tokens, textToken(input, textStart, pos))
		}
		tokens = append(tokens, token)
		tags++
		pos = endPos
		textStart = pos
	}

	if textStart < len(input) {
		tokens = append(tokens, textToken(input, textStart, len(input)))
	}

	return tokens, len(input)
}

func textToken(input string, start, end int) Token {
	return Token{
		Type: TokenText,
		Text: input[start:end],
		Pos:  start,
		End:  end,
	}
}

// parseTag attempts to parse a tag starting at pos.
// Returns the token, the position after the tag, and any error.
func parseTag(input string, pos int) (Token, int, error) {
	if pos >= len(input) || input[pos] != '[' {
		return Token{}, pos, errNotTag
	}

	startPos := pos
	pos++ // skip '['

	// List item marker [*]
	if strings.HasPrefix(input[pos:], "*]") {
		pos += 2
		return Token{
			Type: TokenItem,
			Text: input[startPos:pos],
			Pos:  startPos,
			End:  pos,
		}, pos, nil
	}

	isCloseTag := false
	if pos < len(input) && input[pos] == '/' {
		isCloseTag = true
		pos++
	}

	nameStart := pos
	for pos < len(input) && pos-nameStart <= maxNameLength && isTagNameChar(input[pos]) {
		pos++
	}
	if pos == nameStart {
		return Token{}, startPos, errEmptyName
	}
	if pos-nameStart > maxNameLength {
		return Token{}, startPos, errNotTag
	}
	name := strings.ToLower(input[nameStart:pos])

	if pos >= len(input) {
		return Token{}, startPos, errUnclosedTag
	}

	if isCloseTag {
		if input[pos] != ']' {
			return Token{}, startPos, errUnclosedTag
		}
		pos++ // skip ']'
		return Token{
			Type: TokenCloseTag,
			Name: name,
			Text: input[startPos:pos],
			Pos:  startPos,
			End:  pos,
		}, pos, nil
	}

	switch input[pos] {
	case ']':
		pos++
		return Token{
			Type: TokenOpenTag,
			Name: name,
			Text: input[startPos:pos],
			Pos:  startPos,
			End:  pos,
		}, pos, nil
	case '=':
		value, endPos, err := parseTagValue(input, pos+1)
		if err != nil {
			return Token{}, startPos, err
		}
		return Token{
			Type:     TokenOpenTag,
			Name:     name,
			Value:    value,
			HasValue: true,
			Text:     input[startPos:endPos],
			Pos:      startPos,
			End:      endPos,
		}, endPos, nil
	default:
		return Token{}, startPos, errNotTag
	}
}

// parseTagValue reads a value up to the closing ']'. Values never span lines
// and never contain '['. Returns the trimmed value and the position after ']'.
func parseTagValue(input string, pos int) (string, int, error) {
	valueStart := pos
	for pos < len(input) && pos-valueStart <= maxValueLength {
		switch input[pos] {
		case ']':
			value := strings.TrimSpace(input[valueStart:pos])
			if value == "" {
				return "", pos, errEmptyValue
			}
			return value, pos + 1, nil
		case '[', '\n', '\r':
			return "", pos, errUnclosedTag
		}
		pos++
	}
	return "", pos, errUnclosedTag
}

// isTagNameChar returns true if c is valid in a tag name.
func isTagNameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
