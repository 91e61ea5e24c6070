// tags.go defines the static tag grammar.
package bbcode

import (
	"sort"
	"strings"
)

// ValueArity describes whether a tag takes a [tag=value] argument.
type ValueArity int

const (
	ValueNone     ValueArity = iota // [b] only
	ValueOptional                   // [quote] or [quote=author]
	ValueRequired                   // [size=token] only
)

func (a ValueArity) String() string {
	switch a {
	case ValueOptional:
		return "optional"
	case ValueRequired:
		return "required"
	default:
		return "none"
	}
}

// ContentMode indicates how a tag's body should be handled.
type ContentMode int

const (
	ContentRecursive ContentMode = iota // body is parsed for nested tags
	ContentVerbatim                     // body is shown as escaped text, excluded from every later pass
	ContentLiteral                      // body is data (a URL or video id), not markup
)

func (m ContentMode) String() string {
	switch m {
	case ContentVerbatim:
		return "verbatim"
	case ContentLiteral:
		return "literal"
	default:
		return "recursive"
	}
}

// Phase orders recognizers: block-structural, then inline style, then media.
type Phase int

const (
	PhaseBlock Phase = iota + 1
	PhaseInline
	PhaseMedia
)

func (p Phase) String() string {
	switch p {
	case PhaseBlock:
		return "block"
	case PhaseInline:
		return "inline"
	case PhaseMedia:
		return "media"
	default:
		return "unknown"
	}
}

// TagSpec defines the behavior for a specific tag.
type TagSpec struct {
	Name    string      // canonical lowercase name
	Arity   ValueArity  // whether [name=value] is accepted or required
	Content ContentMode // how to handle the body
	Phase   Phase
	Block   bool // renders a block-level container
}

// accepts reports whether an open tag with or without a value fits the arity.
func (ts TagSpec) accepts(hasValue bool) bool {
	switch ts.Arity {
	case ValueNone:
		return !hasValue
	case ValueRequired:
		return hasValue
	default:
		return true
	}
}

// contentFor returns the content mode of a concrete open tag. A [url] without
// a value uses its body as the href, so the body is data rather than markup.
func (ts TagSpec) contentFor(hasValue bool) ContentMode {
	if ts.Name == "url" && !hasValue {
		return ContentLiteral
	}
	return ts.Content
}

// tagRegistry maps tag names to their definitions. It is never written after
// init. Adding a new tag = adding one entry here and one case in the renderer.
var tagRegistry = map[string]TagSpec{
	"code":    {Name: "code", Arity: ValueNone, Content: ContentVerbatim, Phase: PhaseBlock, Block: true},
	"quote":   {Name: "quote", Arity: ValueOptional, Content: ContentRecursive, Phase: PhaseBlock, Block: true},
	"spoiler": {Name: "spoiler", Arity: ValueNone, Content: ContentRecursive, Phase: PhaseBlock},
	"list":    {Name: "list", Arity: ValueNone, Content: ContentRecursive, Phase: PhaseBlock, Block: true},

	"b":     {Name: "b", Arity: ValueNone, Content: ContentRecursive, Phase: PhaseInline},
	"i":     {Name: "i", Arity: ValueNone, Content: ContentRecursive, Phase: PhaseInline},
	"u":     {Name: "u", Arity: ValueNone, Content: ContentRecursive, Phase: PhaseInline},
	"s":     {Name: "s", Arity: ValueNone, Content: ContentRecursive, Phase: PhaseInline},
	"size":  {Name: "size", Arity: ValueRequired, Content: ContentRecursive, Phase: PhaseInline},
	"color": {Name: "color", Arity: ValueRequired, Content: ContentRecursive, Phase: PhaseInline},

	"url":     {Name: "url", Arity: ValueOptional, Content: ContentRecursive, Phase: PhaseMedia},
	"img":     {Name: "img", Arity: ValueNone, Content: ContentLiteral, Phase: PhaseMedia},
	"youtube": {Name: "youtube", Arity: ValueNone, Content: ContentLiteral, Phase: PhaseMedia, Block: true},
}

// LookupTag returns the TagSpec for a given name, normalizing to lowercase.
// Returns ok=false if the tag is not registered.
func LookupTag(name string) (TagSpec, bool) {
	ts, ok := tagRegistry[strings.ToLower(name)]
	return ts, ok
}

// Tags returns every registered tag ordered by phase, then name.
func Tags() []TagSpec {
	tags := make([]TagSpec, 0, len(tagRegistry))
	for _, ts := range tagRegistry {
		tags = append(tags, ts)
	}
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Phase != tags[j].Phase {
			return tags[i].Phase < tags[j].Phase
		}
		return tags[i].Name < tags[j].Name
	})
	return tags
}
