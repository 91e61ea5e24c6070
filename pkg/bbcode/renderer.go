// Package bbcode renders untrusted, user-authored BBCode into safe HTML.
//
// Rendering is a pure function of the input: the raw text is escaped first,
// bracket tags are parsed into a tree, and only then are bare media URLs,
// @mentions and line breaks handled, and only inside text runs. Nothing a
// later step produces can be rewritten by another step, and no input can
// produce markup the renderer did not emit itself.
package bbcode

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
)

// QuoteMode selects how [quote] bodies are rendered.
type QuoteMode int

const (
	// QuoteRecursive renders quote bodies like any other content.
	QuoteRecursive QuoteMode = iota
	// QuoteLiteral renders quote bodies as escaped text: no tags, embeds or mentions.
	QuoteLiteral
)

// ParseQuoteMode maps a config string to a QuoteMode.
func ParseQuoteMode(s string) (QuoteMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "recursive":
		return QuoteRecursive, true
	case "literal":
		return QuoteLiteral, true
	default:
		return QuoteRecursive, false
	}
}

func (m QuoteMode) String() string {
	if m == QuoteLiteral {
		return "literal"
	}
	return "recursive"
}

// Options configures a Renderer. The zero value is ready to use.
type Options struct {
	// MaxInputLength is the number of input bytes transformed. Anything past
	// it is escaped and appended untouched.
	MaxInputLength int
	MaxTags        int
	MaxDepth       int
	QuoteMode      QuoteMode
	// Sanitize runs the output through Policy as a second line of defense.
	Sanitize bool
	// Resolver optionally decorates mentions with a user id.
	Resolver MentionResolver
	// Logger receives limit breaches. Defaults to a disabled logger.
	Logger *zerolog.Logger
}

// Renderer renders BBCode. It holds no mutable state and is safe for
// concurrent use.
type Renderer struct {
	opts   Options
	limits Limits
	log    zerolog.Logger
	policy *bluemonday.Policy
}

// NewRenderer creates a renderer, filling unset limits with defaults.
func NewRenderer(opts Options) *Renderer {
	if opts.MaxInputLength <= 0 {
		opts.MaxInputLength = DefaultMaxInputLength
	}
	limits := Limits{MaxTags: opts.MaxTags, MaxDepth: opts.MaxDepth}.withDefaults()
	opts.MaxTags, opts.MaxDepth = limits.MaxTags, limits.MaxDepth

	base := zerolog.Nop()
	if opts.Logger != nil {
		base = *opts.Logger
	}
	r := &Renderer{
		opts:   opts,
		limits: limits,
		log: base.With().Str("component", "bbcode").Logger().
			Sample(&zerolog.BurstSampler{Burst: 5, Period: time.Minute}),
	}
	if opts.Sanitize {
		r.policy = Policy()
	}
	return r
}

// Options returns the effective options.
func (r *Renderer) Options() Options {
	return r.opts
}

var defaultRenderer = NewRenderer(Options{})

// Render renders raw text with default options.
func Render(raw string) string {
	return defaultRenderer.Render(raw)
}

// ApplyTags renders only the tag grammar of already-escaped text: no
// auto-embedding, mentions or line breaks.
func ApplyTags(escaped string) string {
	return defaultRenderer.ApplyTags(escaped)
}

// RenderPlain escapes raw text and converts line breaks, with no markup
// processing. Chat messages use this.
func RenderPlain(raw string) string {
	var sb strings.Builder
	writeBreaks(&sb, Escape(normalizeNewlines(raw)))
	return sb.String()
}

// pass selects which text-run transforms apply.
type pass struct {
	embed    bool
	mentions bool
	breaks   bool
	inAnchor bool
}

var fullPass = pass{embed: true, mentions: true, breaks: true}

// Render converts raw user text to safe markup. It never fails: malformed or
// disallowed markup degrades to escaped literal text.
func (r *Renderer) Render(raw string) string {
	if raw == "" {
		return ""
	}
	raw = normalizeNewlines(raw)

	head, tail := splitAt(raw, r.opts.MaxInputLength)
	if tail != "" {
		r.log.Warn().
			Str("limit", "max_input_length").
			Int("input_length", len(raw)).
			Int("max", r.opts.MaxInputLength).
			Msg("Render limit exceeded, remainder left literal")
	}

	doc := ParseWithLimits(Escape(head), r.limits)
	r.logLimits(doc)

	var sb strings.Builder
	sb.Grow(len(raw) + len(raw)/4)
	r.renderNodes(&sb, doc.Nodes, fullPass)
	sb.WriteString(doc.Rest)
	sb.WriteString(Escape(tail))

	out := sb.String()
	if r.policy != nil {
		out = r.policy.Sanitize(out)
	}
	return out
}

// ApplyTags renders the tag grammar of already-escaped text.
func (r *Renderer) ApplyTags(escaped string) string {
	doc := ParseWithLimits(escaped, r.limits)
	r.logLimits(doc)

	var sb strings.Builder
	r.renderNodes(&sb, doc.Nodes, pass{})
	sb.WriteString(doc.Rest)
	return sb.String()
}

func (r *Renderer) logLimits(doc *Document) {
	if doc.TagLimitHit {
		r.log.Warn().
			Str("limit", "max_tags").
			Int("max", r.limits.MaxTags).
			Int("literal_bytes", len(doc.Rest)).
			Msg("Render limit exceeded, remainder left literal")
	}
	if doc.DepthLimitHit {
		r.log.Warn().
			Str("limit", "max_depth").
			Int("max", r.limits.MaxDepth).
			Msg("Render limit exceeded, deep tags left literal")
	}
}

// splitAt cuts s at most n bytes in, backing up to a rune boundary.
func splitAt(s string, n int) (string, string) {
	if len(s) <= n {
		return s, ""
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut], s[cut:]
}

func (r *Renderer) renderNodes(sb *strings.Builder, nodes []*Node, p pass) {
	for _, n := range nodes {
		switch n.Kind {
		case NodeText:
			r.renderText(sb, n.Text, p)
		case NodeElement:
			r.renderElement(sb, n, p)
		case NodeItem:
			// Only reachable outside a list body.
			r.renderText(sb, n.Literal(), p)
		}
	}
}

// renderText writes one escaped text run: media URLs first, then mentions in
// the text between them, then line breaks. Anchor labels get neither embeds
// nor mentions.
func (r *Renderer) renderText(sb *strings.Builder, text string, p pass) {
	embed := p.embed && !p.inAnchor
	mentions := p.mentions && !p.inAnchor

	last := 0
	if embed {
		for _, m := range findEmbeds(text) {
			r.writeRun(sb, text[last:m.start], mentions, p.breaks)
			sb.WriteString(m.markup())
			last = m.end
		}
	}
	r.writeRun(sb, text[last:], mentions, p.breaks)
}

func (r *Renderer) writeRun(sb *strings.Builder, text string, mentions, breaks bool) {
	switch {
	case mentions:
		writeMentions(sb, text, r.opts.Resolver, breaks)
	case breaks:
		writeBreaks(sb, text)
	default:
		sb.WriteString(text)
	}
}

func (r *Renderer) wrap(sb *strings.Builder, open, closeTag string, n *Node, p pass) {
	sb.WriteString(open)
	r.renderNodes(sb, n.Children, p)
	sb.WriteString(closeTag)
}

func (r *Renderer) renderElement(sb *strings.Builder, n *Node, p pass) {
	switch n.Tag.Name {
	case "b":
		r.wrap(sb, `<strong class="bb-bold">`, `</strong>`, n, p)
	case "i":
		r.wrap(sb, `<em class="bb-italic">`, `</em>`, n, p)
	case "u":
		r.wrap(sb, `<span class="bb-underline">`, `</span>`, n, p)
	case "s":
		r.wrap(sb, `<span class="bb-strike">`, `</span>`, n, p)
	case "spoiler":
		r.wrap(sb, `<span class="bb-spoiler">`, `</span>`, n, p)

	case "code":
		// Raw is escaped already; <pre> keeps its newlines.
		sb.WriteString(`<pre class="bb-code">`)
		sb.WriteString(n.Raw)
		sb.WriteString(`</pre>`)

	case "quote":
		sb.WriteString(`<blockquote class="bb-quote">`)
		if n.HasValue {
			sb.WriteString(`<div class="bb-quote-author">`)
			sb.WriteString(n.Value)
			sb.WriteString(` wrote:</div>`)
		}
		sb.WriteString(`<div class="bb-quote-content">`)
		if r.opts.QuoteMode == QuoteLiteral {
			r.writeRun(sb, n.Raw, false, p.breaks)
		} else {
			r.renderNodes(sb, n.Children, p)
		}
		sb.WriteString(`</div></blockquote>`)

	case "list":
		sb.WriteString(`<ul class="bb-list">`)
		for _, item := range splitItems(n.Children) {
			sb.WriteString(`<li>`)
			r.renderNodes(sb, item, p)
			sb.WriteString(`</li>`)
		}
		sb.WriteString(`</ul>`)

	case "size":
		px := strconv.Itoa(LookupSize(n.Value))
		r.wrap(sb, `<span style="font-size: `+px+`px;">`, `</span>`, n, p)

	case "color":
		c, ok := LookupColor(n.Value)
		if !ok {
			r.renderNodes(sb, n.Children, p)
			return
		}
		r.wrap(sb, `<span style="color: `+c+`;">`, `</span>`, n, p)

	case "url":
		r.renderURL(sb, n, p)

	case "img":
		src := strings.TrimSpace(n.Raw)
		if !isSafeURL(src, false) {
			r.renderText(sb, n.Literal(), p)
			return
		}
		sb.WriteString(imageEmbed(src))

	case "youtube":
		id, ok := ExtractVideoID(n.Raw)
		if !ok {
			r.renderText(sb, n.Literal(), p)
			return
		}
		sb.WriteString(youtubeEmbed(id))

	default:
		r.renderText(sb, n.Literal(), p)
	}
}

func (r *Renderer) renderURL(sb *strings.Builder, n *Node, p pass) {
	if !n.HasValue {
		href := strings.TrimSpace(n.Raw)
		if !isSafeURL(href, true) {
			r.renderText(sb, n.Literal(), p)
			return
		}
		sb.WriteString(anchorOpen(href))
		sb.WriteString(href)
		sb.WriteString(`</a>`)
		return
	}

	if !isSafeURL(n.Value, true) {
		// Keep the label, drop the link.
		r.renderNodes(sb, n.Children, p)
		return
	}
	inner := p
	inner.inAnchor = true
	r.wrap(sb, anchorOpen(n.Value), `</a>`, n, inner)
}

func anchorOpen(href string) string {
	return `<a href="` + href + `" target="_blank" rel="noopener noreferrer">`
}

// isSafeURL reports whether an escaped URL may be used as a link or image
// target: http(s), mailto when allowed, or a site-relative path or fragment.
func isSafeURL(u string, allowMailto bool) bool {
	if u == "" {
		return false
	}
	for i := 0; i < len(u); i++ {
		if u[i] <= ' ' || u[i] == 0x7f {
			return false
		}
	}
	lower := strings.ToLower(u)
	switch {
	case strings.HasPrefix(lower, "https://"), strings.HasPrefix(lower, "http://"):
		return len(strings.TrimLeft(lower[strings.Index(lower, "//")+2:], "/")) > 0
	case allowMailto && strings.HasPrefix(lower, "mailto:"):
		return len(lower) > len("mailto:")
	case lower[0] == '#':
		return true
	case lower[0] == '/':
		// "//host" and "/\host" leave the site.
		return len(lower) == 1 || (lower[1] != '/' && lower[1] != '\\')
	default:
		return false
	}
}

// splitItems splits a list body on its [*] markers. Each segment is trimmed
// and empty segments, including a marker with nothing after it, are dropped.
func splitItems(children []*Node) [][]*Node {
	var items [][]*Node
	var current []*Node
	flush := func() {
		if item := trimNodes(current); len(item) > 0 {
			items = append(items, item)
		}
		current = nil
	}
	for _, c := range children {
		if c.Kind == NodeItem {
			flush()
			continue
		}
		current = append(current, c)
	}
	flush()
	return items
}

// trimNodes trims surrounding whitespace from the text at either end of an
// item, dropping text nodes that become empty. Nodes are copied, not mutated.
func trimNodes(nodes []*Node) []*Node {
	for len(nodes) > 0 && nodes[0].Kind == NodeText {
		t := strings.TrimLeft(nodes[0].Text, " \t\n")
		if t != "" {
			nodes = append([]*Node{{Kind: NodeText, Text: t}}, nodes[1:]...)
			break
		}
		nodes = nodes[1:]
	}
	for len(nodes) > 0 && nodes[len(nodes)-1].Kind == NodeText {
		last := len(nodes) - 1
		t := strings.TrimRight(nodes[last].Text, " \t\n")
		if t != "" {
			trimmed := make([]*Node, last, last+1)
			copy(trimmed, nodes[:last])
			nodes = append(trimmed, &Node{Kind: NodeText, Text: t})
			break
		}
		nodes = nodes[:last]
	}
	return nodes
}
