package bbcode

import (
	"github.com/google/safehtml"
	"github.com/google/safehtml/uncheckedconversions"
)

// RenderSafe renders raw text with default options and returns it as a typed
// safehtml.HTML value for template consumers.
func RenderSafe(raw string) safehtml.HTML {
	return defaultRenderer.RenderSafe(raw)
}

// RenderSafe renders raw text and returns it as safehtml.HTML.
func (r *Renderer) RenderSafe(raw string) safehtml.HTML {
	// Render escapes all input and only emits its own allowlisted markup.
	return uncheckedconversions.HTMLFromStringKnownToSatisfyTypeContract(r.Render(raw))
}
