// style.go holds the whitelisted size and color lookup tables.
package bbcode

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	// MinFontSize and MaxFontSize bound numeric [size=N] tokens.
	MinFontSize = 8
	MaxFontSize = 36
	// DefaultFontSize is used for any token that is neither an alias nor digits.
	DefaultFontSize = 14
)

var sizeAliases = map[string]int{
	"xs": 10, "xsmall": 10,
	"sm": 12, "small": 12,
	"md": 14, "medium": 14,
	"lg": 18, "large": 18,
	"xl": 22, "xlarge": 22,
	"xxl": 26, "xxlarge": 26,
	"huge": 30,
}

// LookupSize resolves a [size=token] value to a pixel size. Named aliases map
// to fixed sizes, digit strings are clamped to [MinFontSize, MaxFontSize] and
// anything else yields DefaultFontSize. The token itself never reaches output.
func LookupSize(token string) int {
	t := strings.ToLower(strings.TrimSpace(token))
	if px, ok := sizeAliases[t]; ok {
		return px
	}
	if !isDigits(t) {
		return DefaultFontSize
	}
	n, err := strconv.Atoi(t)
	if err != nil {
		// Only overflow gets here.
		return MaxFontSize
	}
	return min(MaxFontSize, max(MinFontSize, n))
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

var colorKeywords = map[string]bool{
	"black": true, "white": true, "gray": true, "grey": true, "silver": true,
	"red": true, "darkred": true, "crimson": true, "maroon": true, "tomato": true,
	"orange": true, "darkorange": true, "coral": true, "salmon": true, "gold": true,
	"yellow": true, "khaki": true, "olive": true, "tan": true, "beige": true,
	"green": true, "darkgreen": true, "lightgreen": true, "lime": true, "forestgreen": true,
	"teal": true, "aqua": true, "cyan": true, "turquoise": true,
	"blue": true, "darkblue": true, "lightblue": true, "navy": true, "skyblue": true,
	"steelblue": true, "royalblue": true,
	"purple": true, "indigo": true, "violet": true, "magenta": true, "fuchsia": true,
	"orchid": true, "plum": true, "lavender": true,
	"pink": true, "hotpink": true, "deeppink": true,
	"brown": true, "chocolate": true, "slategray": true,
}

var hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// LookupColor validates a [color=token] value. It accepts a fixed set of CSS
// keyword names or a strict #RGB / #RRGGBB hex color and returns the
// normalized lowercase value. Everything else is rejected.
func LookupColor(token string) (string, bool) {
	t := strings.ToLower(strings.TrimSpace(token))
	if colorKeywords[t] || hexColorRe.MatchString(t) {
		return t, true
	}
	return "", false
}
