package bbcode

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const anchor = `<a href="%s" target="_blank" rel="noopener noreferrer">`

func link(href, label string) string {
	return strings.Replace(anchor, "%s", href, 1) + label + "</a>"
}

func TestRender(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain", "hello", "hello"},
		{"script escaped", "<script>alert(1)</script>", "&lt;script&gt;alert(1)&lt;/script&gt;"},
		{"bold", "[b]bold[/b]", `<strong class="bb-bold">bold</strong>`},
		{"case insensitive", "[B]x[/b]", `<strong class="bb-bold">x</strong>`},
		{"italic", "[i]x[/i]", `<em class="bb-italic">x</em>`},
		{"underline", "[u]x[/u]", `<span class="bb-underline">x</span>`},
		{"strike", "[s]x[/s]", `<span class="bb-strike">x</span>`},
		{"spoiler", "[spoiler]x[/spoiler]", `<span class="bb-spoiler">x</span>`},
		{"code fencing", "[code][b]not bold[/b][/code]", `<pre class="bb-code">[b]not bold[/b]</pre>`},
		{"code keeps newlines", "[code]a\nb[/code]", "<pre class=\"bb-code\">a\nb</pre>"},
		{"code escapes", "[code]<b>&</b>[/code]", `<pre class="bb-code">&lt;b&gt;&amp;&lt;/b&gt;</pre>`},
		{"code protects media and mentions", "[code]@bobby http://a.com/x.png[/code]", `<pre class="bb-code">@bobby http://a.com/x.png</pre>`},
		{"code inside bold", "[b][code][/b][/code][/b]", `<strong class="bb-bold"><pre class="bb-code">[/b]</pre></strong>`},
		{"quote", "[quote]hi[/quote]", `<blockquote class="bb-quote"><div class="bb-quote-content">hi</div></blockquote>`},
		{"quote author", "[quote=Alice]hi[/quote]",
			`<blockquote class="bb-quote"><div class="bb-quote-author">Alice wrote:</div><div class="bb-quote-content">hi</div></blockquote>`},
		{"quote author escaped", `[quote="><script>]hi[/quote]`,
			`<blockquote class="bb-quote"><div class="bb-quote-author">&#34;&gt;&lt;script&gt; wrote:</div><div class="bb-quote-content">hi</div></blockquote>`},
		{"nested quotes", "[quote=A][quote=B]inner[/quote]outer[/quote]",
			`<blockquote class="bb-quote"><div class="bb-quote-author">A wrote:</div><div class="bb-quote-content">` +
				`<blockquote class="bb-quote"><div class="bb-quote-author">B wrote:</div><div class="bb-quote-content">inner</div></blockquote>` +
				`outer</div></blockquote>`},
		{"list", "[list][*]one[*] two [*][/list]", `<ul class="bb-list"><li>one</li><li>two</li></ul>`},
		{"list over lines", "[list]\n[*]a\n[*]b\n[/list]", `<ul class="bb-list"><li>a</li><li>b</li></ul>`},
		{"list without items", "[list][/list]", `<ul class="bb-list"></ul>`},
		{"list item with markup", "[list][*][b]x[/b][/list]", `<ul class="bb-list"><li><strong class="bb-bold">x</strong></li></ul>`},
		{"item outside list", "[*] outside", "[*] outside"},
		{"size alias", "[size=lg]x[/size]", `<span style="font-size: 18px;">x</span>`},
		{"size clamped", "[size=999]x[/size]", `<span style="font-size: 36px;">x</span>`},
		{"size unknown", "[size=abc]x[/size]", `<span style="font-size: 14px;">x</span>`},
		{"color", "[color=red]x[/color]", `<span style="color: red;">x</span>`},
		{"color hex", "[color=#FF0000]x[/color]", `<span style="color: #ff0000;">x</span>`},
		{"color rejected", "[color=javascript:alert(1)]x[/color]", "x"},
		{"color rejected keeps markup", "[color=nope][b]x[/b][/color]", `<strong class="bb-bold">x</strong>`},
		{"url value", "[url=http://example.com]site[/url]", link("http://example.com", "site")},
		{"url body", "[url]http://example.com[/url]", link("http://example.com", "http://example.com")},
		{"url mailto", "[url=mailto:a@b.co]mail[/url]", link("mailto:a@b.co", "mail")},
		{"url relative", "[url=/forum/1]topic[/url]", link("/forum/1", "topic")},
		{"url escaped query", "[url=http://a.com/?x=1&y=2]q[/url]", link("http://a.com/?x=1&amp;y=2", "q")},
		{"url unsafe value keeps label", "[url=javascript:alert(1)]click[/url]", "click"},
		{"url unsafe body literal", "[url]javascript:alert(1)[/url]", "[url]javascript:alert(1)[/url]"},
		{"url no double wrap", "[url=http://a.com/b.png]http://a.com/b.png[/url]", link("http://a.com/b.png", "http://a.com/b.png")},
		{"url label no mention", "[url=http://a.com]@bobby[/url]", link("http://a.com", "@bobby")},
		{"url label markup", "[url=http://a.com][b]x[/b][/url]", link("http://a.com", `<strong class="bb-bold">x</strong>`)},
		{"img", "[img]http://a.com/x.png[/img]", imageEmbed("http://a.com/x.png")},
		{"img unsafe", "[img]javascript:alert(1)[/img]", "[img]javascript:alert(1)[/img]"},
		{"img mailto", "[img]mailto:a@b.co[/img]", "[img]mailto:a@b.co[/img]"},
		{"youtube", "[youtube]dQw4w9WgXcQ[/youtube]", youtubeEmbed("dQw4w9WgXcQ")},
		{"youtube url", "[youtube]https://youtu.be/dQw4w9WgXcQ[/youtube]", youtubeEmbed("dQw4w9WgXcQ")},
		{"youtube invalid", "[youtube]nope[/youtube]", "[youtube]nope[/youtube]"},
		{"bare image", "look http://a.com/cat.png", "look " + imageEmbed("http://a.com/cat.png")},
		{"bare video", "see https://youtu.be/dQw4w9WgXcQ now", "see " + youtubeEmbed("dQw4w9WgXcQ") + " now"},
		{"mention", "hi @bob_1", `hi <span class="mention-link" data-username="bob_1">@bob_1</span>`},
		{"email not mention", "email@example.com", "email@example.com"},
		{"mention in bold", "[b]@bobby[/b]", `<strong class="bb-bold"><span class="mention-link" data-username="bobby">@bobby</span></strong>`},
		{"unterminated", "[b]bold without close", "[b]bold without close"},
		{"unknown tag", "[foo]x[/foo]", "[foo]x[/foo]"},
		{"crossing tags", "[b][i]x[/b][/i]", `<strong class="bb-bold">[i]x</strong>[/i]`},
		{"newline", "line1\nline2", "line1<br>line2"},
		{"crlf", "a\r\nb", "a<br>b"},
		{"newline in bold", "[b]a\nb[/b]", `<strong class="bb-bold">a<br>b</strong>`},
		{"newline beside mention", "@bobby\nx", `<span class="mention-link" data-username="bobby">@bobby</span><br>x`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(tt.input)
			assert.Equal(t, tt.want, got)
			assertSafeMarkup(t, got)
		})
	}
}

func TestRender_AttributeInjection(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"img src breakout", `[img]http://a.com/x.png" onerror="alert(1)[/img]`},
		{"url value breakout", `[url=http://a.com/"onmouseover="x]hi[/url]`},
		{"url body breakout", `[url]http://a.com/"onclick="x[/url]`},
		{"bare url breakout", `http://a.com/x.png"onload="alert(1)`},
		{"color breakout", `[color=red" onclick="x]hi[/color]`},
		{"quote author breakout", `[quote=x" onclick="y]hi[/quote]`},
		{"youtube breakout", `[youtube]dQw4w9WgXcQ" onload="x[/youtube]`},
		{"javascript scheme mixed case", `[url=JaVaScRiPt:alert(1)]x[/url]`},
		{"data scheme", `[img]data:text/html;base64,PHNjcmlwdD4=[/img]`},
		{"protocol relative", `[url=//evil.com]x[/url]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(tt.input)
			assertSafeMarkup(t, got)
			assert.NotContains(t, got, `onerror="alert`)
			assert.NotContains(t, strings.ToLower(got), `href="javascript`)
		})
	}
}

func TestRender_ReRenderIsSafe(t *testing.T) {
	inputs := []string{
		"<script>alert(1)</script>",
		"[b]x[/b] @bobby http://a.com/x.png",
		"[url=http://a.com]x[/url]",
		"[quote=A]hi[/quote]",
	}
	for _, in := range inputs {
		twice := Render(Render(in))
		assertSafeMarkup(t, twice)
		assert.NotContains(t, twice, "<script")
		assert.NotContains(t, twice, "<strong")
	}
}

func TestRender_Deterministic(t *testing.T) {
	in := "[quote=A][b]x[/b] @bobby\nhttps://youtu.be/dQw4w9WgXcQ[/quote]"
	first := Render(in)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Render(in))
	}
}

func TestRender_Concurrent(t *testing.T) {
	r := NewRenderer(Options{})
	in := "[list][*][b]a[/b][*]@bobby[/list]"
	want := r.Render(in)

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = r.Render(in)
		}(i)
	}
	wg.Wait()
	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestRenderer_InputLengthLimit(t *testing.T) {
	r := NewRenderer(Options{MaxInputLength: 8})
	assert.Equal(t, `<strong class="bb-bold">a</strong>[b]c[/b]`, r.Render("[b]a[/b][b]c[/b]"))

	r = NewRenderer(Options{MaxInputLength: 11})
	assert.Equal(t, `<strong class="bb-bold">bold</strong> &lt;i&gt;`, r.Render("[b]bold[/b] <i>"))
}

func TestRenderer_InputLengthLimitRuneSafe(t *testing.T) {
	r := NewRenderer(Options{MaxInputLength: 2})
	// "é" is two bytes; the cut backs up so it is not split.
	assert.Equal(t, "aé", r.Render("aé"))
	got := r.Render("aéb")
	assert.Equal(t, "aéb", got)
}

func TestRenderer_TagLimit(t *testing.T) {
	r := NewRenderer(Options{MaxTags: 2})
	assert.Equal(t, `<strong class="bb-bold">a</strong>[i]c[/i]`, r.Render("[b]a[/b][i]c[/i]"))

	r = NewRenderer(Options{MaxTags: 1})
	assert.Equal(t, "[b]a[/b] @bobby", r.Render("[b]a[/b] @bobby"))
}

func TestRenderer_DepthLimit(t *testing.T) {
	r := NewRenderer(Options{MaxDepth: 2})
	assert.Equal(t,
		`<strong class="bb-bold"><em class="bb-italic">[u]x[/u]</em></strong>`,
		r.Render("[b][i][u]x[/u][/i][/b]"))
}

func TestRenderer_LimitsAreLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	r := NewRenderer(Options{MaxTags: 1, MaxDepth: 1, MaxInputLength: 64, Logger: &logger})

	out := r.Render("[b][i]x[/i][/b]" + strings.Repeat("y", 100))
	assert.NotContains(t, out, "max_tags")

	logs := buf.String()
	assert.Contains(t, logs, `"limit":"max_tags"`)
	assert.Contains(t, logs, `"limit":"max_input_length"`)
	assert.Contains(t, logs, `"component":"bbcode"`)
}

func TestRenderer_DefaultOptions(t *testing.T) {
	opts := NewRenderer(Options{}).Options()
	assert.Equal(t, DefaultMaxInputLength, opts.MaxInputLength)
	assert.Equal(t, DefaultMaxTags, opts.MaxTags)
	assert.Equal(t, DefaultMaxDepth, opts.MaxDepth)
	assert.Equal(t, QuoteRecursive, opts.QuoteMode)
}

func TestRenderer_QuoteLiteral(t *testing.T) {
	r := NewRenderer(Options{QuoteMode: QuoteLiteral})
	got := r.Render("[quote=A][b]x[/b] @bobby\nhttp://a.com/x.png[/quote]")
	assert.Equal(t,
		`<blockquote class="bb-quote"><div class="bb-quote-author">A wrote:</div>`+
			`<div class="bb-quote-content">[b]x[/b] @bobby<br>http://a.com/x.png</div></blockquote>`,
		got)
}

func TestParseQuoteMode(t *testing.T) {
	tests := []struct {
		input  string
		want   QuoteMode
		wantOK bool
	}{
		{"", QuoteRecursive, true},
		{"recursive", QuoteRecursive, true},
		{"Literal", QuoteLiteral, true},
		{"other", QuoteRecursive, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseQuoteMode(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "literal", QuoteLiteral.String())
	assert.Equal(t, "recursive", QuoteRecursive.String())
}

func TestRenderer_Resolver(t *testing.T) {
	r := NewRenderer(Options{Resolver: MentionResolverFunc(func(name string) (UserRef, bool) {
		if name == "alice" {
			return UserRef{ID: "42"}, true
		}
		return UserRef{}, false
	})})

	assert.Equal(t,
		`<span class="mention-link" data-username="alice" data-user-id="42">@alice</span> `+
			`<span class="mention-link" data-username="bob">@bob</span>`,
		r.Render("@alice @bob"))
}

func TestRenderer_Sanitize(t *testing.T) {
	r := NewRenderer(Options{Sanitize: true})

	got := r.Render("[b]x[/b] <script>alert(1)</script>")
	assert.Contains(t, got, `<strong class="bb-bold">x</strong>`)
	assert.NotContains(t, got, "<script")

	got = r.Render("http://a.com/x.png")
	require.Contains(t, got, "<img")
	assert.NotContains(t, got, "onerror")
}

func TestApplyTags(t *testing.T) {
	got := ApplyTags("[b]x[/b] @bobby\nhttp://a.com/x.png")
	assert.Equal(t, "<strong class=\"bb-bold\">x</strong> @bobby\nhttp://a.com/x.png", got)
}

func TestIsSafeURL(t *testing.T) {
	tests := []struct {
		url         string
		allowMailto bool
		want        bool
	}{
		{"http://a.com", false, true},
		{"HTTPS://a.com/x", false, true},
		{"/relative", false, true},
		{"#anchor", false, true},
		{"mailto:a@b.co", true, true},
		{"mailto:a@b.co", false, false},
		{"mailto:", true, false},
		{"http://", false, false},
		{"javascript:alert(1)", true, false},
		{"vbscript:x", true, false},
		{"data:text/html,x", true, false},
		{"http://a.com/ x", false, false},
		{"http://a.com/\tx", false, false},
		{"", true, false},
		{"a.com", true, false},
		{"//evil.com", true, false},
		{`/\evil.com`, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, isSafeURL(tt.url, tt.allowMailto))
		})
	}
}
