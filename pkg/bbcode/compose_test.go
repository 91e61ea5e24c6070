package bbcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		tag      string
		selected string
		want     string
	}{
		{"bold", "b", "text", "[b]text[/b]"},
		{"uppercase tag", "B", "x", "[b]x[/b]"},
		{"empty selection", "spoiler", "", "[spoiler][/spoiler]"},
		{"list sample", "list", "", "[list]\n[*]Item 1\n[*]Item 2\n[/list]"},
		{"list from lines", "list", "one\n two ", "[list]\n[*]one\n[*]two\n[/list]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Wrap(tt.tag, tt.selected))
		})
	}
}

func TestComposers(t *testing.T) {
	assert.Equal(t, "[url=http://a.com]site[/url]", Link("http://a.com", "site"))
	assert.Equal(t, "[url=http://a.com]http://a.com[/url]", Link(" http://a.com ", ""))
	assert.Equal(t, "[img]http://a.com/x.png[/img]", Image(" http://a.com/x.png\n"))
	assert.Equal(t, "[size=lg]text[/size]", Size("lg", ""))
	assert.Equal(t, "[color=red]hi[/color]", Color("red", "hi"))
	assert.Equal(t, "[quote=Alice]hello[/quote]\n\n", Quote("Alice", "hello"))
	assert.Equal(t, "[quote=Unknown]hello[/quote]\n\n", Quote("  ", "hello"))
	assert.Equal(t, "[quote=a (b)]x[/quote]\n\n", Quote("a [b]", "x"))
}

func TestComposers_RoundTrip(t *testing.T) {
	assert.Equal(t,
		`<blockquote class="bb-quote"><div class="bb-quote-author">Alice wrote:</div><div class="bb-quote-content">hello</div></blockquote><br><br>`,
		Render(Quote("Alice", "hello")))
	assert.Equal(t,
		`<ul class="bb-list"><li>Item 1</li><li>Item 2</li></ul>`,
		Render(Wrap("list", "")))
	assert.Equal(t,
		`<span style="color: red;">hi</span>`,
		Render(Color("red", "hi")))
}
