// parser.go pairs bracket tokens and builds the node tree.
package bbcode

import (
	"fmt"
	"strings"
)

// NodeKind indicates what a node holds.
type NodeKind int

const (
	NodeText    NodeKind = iota // escaped literal text
	NodeElement                 // a recognized tag pair
	NodeItem                    // a [*] marker directly inside a list
)

// Node is one element of the parsed tree.
type Node struct {
	Kind     NodeKind
	Text     string  // set when Kind == NodeText
	Tag      TagSpec // set when Kind == NodeElement
	Value    string  // the [tag=value] argument, already escaped
	HasValue bool
	Open     string  // source text of the open tag
	Close    string  // source text of the close tag
	Raw      string  // escaped source between Open and Close
	Children []*Node // parsed body for ContentRecursive tags
}

// Literal returns the node's source text exactly as it appeared.
func (n *Node) Literal() string {
	switch n.Kind {
	case NodeElement:
		return n.Open + n.Raw + n.Close
	case NodeItem:
		return "[*]"
	default:
		return n.Text
	}
}

// Document is the parse result for one escaped input.
type Document struct {
	Nodes []*Node
	// Rest is escaped input past the tag ceiling. It is never transformed.
	Rest     string
	Warnings []string

	// TagLimitHit and DepthLimitHit record which resource ceiling degraded
	// part of the input to literal text.
	TagLimitHit   bool
	DepthLimitHit bool
}

// AddWarning stores a warning in the document.
func (d *Document) AddWarning(format string, args ...interface{}) {
	d.Warnings = append(d.Warnings, fmt.Sprintf(format, args...))
}

// Limits bounds the work done for a single parse.
type Limits struct {
	MaxTags  int // tag tokens scanned before the rest is left literal
	MaxDepth int // element nesting depth before tags degrade to text
}

const (
	DefaultMaxInputLength = 64 * 1024
	DefaultMaxTags        = 4096
	DefaultMaxDepth       = 32
)

func (l Limits) withDefaults() Limits {
	if l.MaxTags <= 0 {
		l.MaxTags = DefaultMaxTags
	}
	if l.MaxDepth <= 0 {
		l.MaxDepth = DefaultMaxDepth
	}
	return l
}

// Parse tokenizes escaped text and builds its node tree using default limits.
func Parse(escaped string) *Document {
	return ParseWithLimits(escaped, Limits{})
}

// ParseWithLimits tokenizes escaped text and builds its node tree.
//
// Pairing happens before tree building, in two steps:
//   - code spans pair first and non-greedily (first [/code] after the open);
//     every token inside a code span is excluded from all other pairing.
//   - remaining registered tags pair with the nearest balanced close of the
//     same name.
//
// A pair becomes an element only if its close lies inside the enclosing
// element, so output is always well nested. Everything else is literal text.
func ParseWithLimits(escaped string, limits Limits) *Document {
	limits = limits.withDefaults()
	doc := &Document{}

	tokens, cut := tokenize(escaped, limits.MaxTags)
	if cut < len(escaped) {
		doc.Rest = escaped[cut:]
		doc.TagLimitHit = true
		doc.AddWarning("tag limit %d reached at byte %d", limits.MaxTags, cut)
	}

	p := &parser{
		input:    escaped,
		tokens:   tokens,
		match:    pairTags(tokens),
		maxDepth: limits.MaxDepth,
		doc:      doc,
	}
	doc.Nodes = p.build(0, len(tokens), 0, false)
	return doc
}

type parser struct {
	input    string
	tokens   []Token
	match    []int
	maxDepth int
	doc      *Document
}

// pairTags returns, for every token, the index of its partner or -1.
func pairTags(tokens []Token) []int {
	match := make([]int, len(tokens))
	for i := range match {
		match[i] = -1
	}

	// Verbatim spans first. Tokens inside an open span are shadowed.
	shadow := make([]bool, len(tokens))
	open := -1
	for i, tok := range tokens {
		if open >= 0 {
			if tok.Type == TokenCloseTag && tok.Name == tokens[open].Name {
				match[open], match[i] = i, open
				open = -1
				continue
			}
			shadow[i] = true
			continue
		}
		if tok.Type != TokenOpenTag {
			continue
		}
		if spec, ok := tagRegistry[tok.Name]; ok && spec.Content == ContentVerbatim && spec.accepts(tok.HasValue) {
			open = i
		}
	}
	if open >= 0 {
		// Never closed, so it protects nothing.
		for j := open + 1; j < len(tokens); j++ {
			shadow[j] = false
		}
	}

	stacks := make(map[string][]int)
	for i, tok := range tokens {
		if shadow[i] || match[i] >= 0 {
			continue
		}
		spec, ok := tagRegistry[tok.Name]
		if !ok || spec.Content == ContentVerbatim {
			continue
		}
		switch tok.Type {
		case TokenOpenTag:
			if spec.accepts(tok.HasValue) {
				stacks[tok.Name] = append(stacks[tok.Name], i)
			}
		case TokenCloseTag:
			s := stacks[tok.Name]
			if len(s) == 0 {
				continue
			}
			o := s[len(s)-1]
			stacks[tok.Name] = s[:len(s)-1]
			match[o], match[i] = i, o
		}
	}
	return match
}

// build turns tokens[lo:hi] into nodes. inList marks the direct body of a
// list, the only place where [*] is an item marker. Adjacent literal text is
// merged into a single text node.
func (p *parser) build(lo, hi, depth int, inList bool) []*Node {
	var nodes []*Node
	var text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			nodes = append(nodes, &Node{Kind: NodeText, Text: text.String()})
			text.Reset()
		}
	}

	for i := lo; i < hi; {
		tok := p.tokens[i]
		switch tok.Type {
		case TokenItem:
			if inList {
				flush()
				nodes = append(nodes, &Node{Kind: NodeItem})
			} else {
				text.WriteString(tok.Text)
			}
			i++

		case TokenOpenTag:
			j := p.match[i]
			if j <= i || j >= hi {
				text.WriteString(tok.Text)
				i++
				continue
			}
			if depth >= p.maxDepth {
				if !p.doc.DepthLimitHit {
					p.doc.DepthLimitHit = true
					p.doc.AddWarning("nesting depth %d reached at byte %d", p.maxDepth, tok.Pos)
				}
				text.WriteString(tok.Text)
				i++
				continue
			}

			spec := tagRegistry[tok.Name]
			closeTok := p.tokens[j]
			node := &Node{
				Kind:     NodeElement,
				Tag:      spec,
				Value:    tok.Value,
				HasValue: tok.HasValue,
				Open:     tok.Text,
				Close:    closeTok.Text,
				Raw:      p.input[tok.End:closeTok.Pos],
			}
			if spec.contentFor(tok.HasValue) == ContentRecursive {
				node.Children = p.build(i+1, j, depth+1, spec.Name == "list")
			}
			flush()
			nodes = append(nodes, node)
			i = j + 1

		default:
			// Text, and close tags that were not consumed by an open tag.
			text.WriteString(tok.Text)
			i++
		}
	}
	flush()
	return nodes
}
