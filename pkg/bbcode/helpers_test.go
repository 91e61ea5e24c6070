package bbcode

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

var allowedElements = map[string]bool{
	"strong": true, "em": true, "span": true, "pre": true, "blockquote": true,
	"div": true, "ul": true, "li": true, "br": true, "a": true, "img": true, "iframe": true,
}

var allowedAttrs = map[string]bool{
	"class": true, "style": true, "data-username": true, "data-user-id": true,
	"href": true, "target": true, "rel": true, "src": true, "alt": true, "loading": true,
	"frameborder": true, "allow": true, "allowfullscreen": true,
}

// markupProblem walks rendered markup and returns a description of the first
// element, attribute or URL the renderer should never emit, or "".
func markupProblem(markup string) string {
	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if !allowedElements[tok.Data] {
				return "element " + tok.Data
			}
			for _, a := range tok.Attr {
				if a.Key == "onerror" && tok.Data == "img" && a.Val == "this.style.display='none'" {
					continue
				}
				if !allowedAttrs[a.Key] {
					return "attribute " + a.Key + " on " + tok.Data
				}
				if a.Key == "href" || a.Key == "src" {
					v := strings.ToLower(strings.TrimSpace(a.Val))
					if !strings.HasPrefix(v, "http://") && !strings.HasPrefix(v, "https://") &&
						!strings.HasPrefix(v, "mailto:") && !strings.HasPrefix(v, "/") && !strings.HasPrefix(v, "#") {
						return "url " + a.Val
					}
				}
			}
		}
	}
}

func assertSafeMarkup(t *testing.T, markup string) {
	t.Helper()
	if p := markupProblem(markup); p != "" {
		t.Errorf("unexpected %s in %q", p, markup)
	}
}
