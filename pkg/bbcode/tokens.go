// tokens.go defines the token stream produced by the tag tokenizer.
package bbcode

// TokenType represents token types for bracket syntax [tag]...[/tag].
type TokenType int

const (
	TokenText     TokenType = iota // escaped text between tags
	TokenOpenTag                   // [tag] or [tag=value]
	TokenCloseTag                  // [/tag]
	TokenItem                      // [*] list item marker
)

func (t TokenType) String() string {
	switch t {
	case TokenText:
		return "text"
	case TokenOpenTag:
		return "open"
	case TokenCloseTag:
		return "close"
	case TokenItem:
		return "item"
	default:
		return "unknown"
	}
}

// Token represents a single token from bracket syntax scanning.
type Token struct {
	Type     TokenType
	Name     string // lowercase tag name, set for OpenTag and CloseTag
	Value    string // set for OpenTag when HasValue
	HasValue bool   // true for the [tag=value] form
	Text     string // the exact source text of the token
	Pos      int    // byte offset of the token in the tokenized input
	End      int    // byte offset just past the token
}
