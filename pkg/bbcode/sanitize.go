package bbcode

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

var (
	classRe        = regexp.MustCompile(`^(?:bb-[a-z-]+|mention-link)$`)
	fontSizeRe     = regexp.MustCompile(`^\d{1,2}px$`)
	colorStyleRe   = regexp.MustCompile(`^(?:[a-z]+|#[0-9a-f]{3}|#[0-9a-f]{6})$`)
	targetRe       = regexp.MustCompile(`^_blank$`)
	relRe          = regexp.MustCompile(`^noopener(?: noreferrer)?$`)
	youtubeEmbedRe = regexp.MustCompile(`^https://www\.youtube\.com/embed/[A-Za-z0-9_-]{11}$`)
)

// Policy returns an allowlist that admits exactly the markup this package
// emits. The inline image onerror handler is not admitted, so sanitized output
// relies on the UI to hide broken images.
func Policy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	p.AllowElements("strong", "em", "span", "pre", "blockquote", "div", "ul", "li", "br")
	p.AllowAttrs("class").Matching(classRe).Globally()
	p.AllowDataAttributes()

	p.AllowStyles("font-size").Matching(fontSizeRe).OnElements("span")
	p.AllowStyles("color").Matching(colorStyleRe).OnElements("span")

	p.AllowURLSchemes("http", "https", "mailto")
	p.AllowRelativeURLs(true)
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("target").Matching(targetRe).OnElements("a")
	p.AllowAttrs("rel").Matching(relRe).OnElements("a")

	p.AllowAttrs("src", "alt", "loading").OnElements("img")

	p.AllowAttrs("src").Matching(youtubeEmbedRe).OnElements("iframe")
	p.AllowAttrs("frameborder", "allow", "allowfullscreen").OnElements("iframe")

	return p
}
