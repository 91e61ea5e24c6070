package bbcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupSize(t *testing.T) {
	tests := []struct {
		token string
		want  int
	}{
		{"xs", 10},
		{"xsmall", 10},
		{"sm", 12},
		{"medium", 14},
		{"LG", 18},
		{"xl", 22},
		{"xxlarge", 26},
		{"huge", 30},
		{"16", 16},
		{"999", MaxFontSize},
		{"1", MinFontSize},
		{"0", MinFontSize},
		{"99999999999999999999999", MaxFontSize},
		{"-5", DefaultFontSize},
		{"12px", DefaultFontSize},
		{"abc", DefaultFontSize},
		{"", DefaultFontSize},
		{"expression(alert(1))", DefaultFontSize},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, LookupSize(tt.token))
		})
	}
}

func TestLookupColor(t *testing.T) {
	tests := []struct {
		token  string
		want   string
		wantOK bool
	}{
		{"red", "red", true},
		{"Navy", "navy", true},
		{"#fff", "#fff", true},
		{"#FF00aa", "#ff00aa", true},
		{"#ff00", "", false},
		{"#gggggg", "", false},
		{"javascript:alert(1)", "", false},
		{"red;background:url(x)", "", false},
		{"rgb(0,0,0)", "", false},
		{"notacolor", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, ok := LookupColor(tt.token)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
