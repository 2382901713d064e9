package gvsource

import (
	gvcolor "github.com/oligo/gvsource/color"
	"github.com/oligo/gvsource/highlight"
	"github.com/oligo/gvsource/textstyle/syntax"
)

// newColorScheme seeds a color scheme with the theme's default colors.
// Token types are registered lazily as the highlighter emits them, so
// the scheme only ever carries the types the displayed language uses.
func newColorScheme(h *highlight.Highlighter) *syntax.ColorScheme {
	return &syntax.ColorScheme{
		Name:       h.Theme(),
		Foreground: gvcolor.MakeColor(h.Foreground()),
		Background: gvcolor.MakeColor(h.Background()),
	}
}

// spanTextStyle maps the font altering flags of a resolved span style
// onto the packed token style flags.
func spanTextStyle(s highlight.SpanStyle) syntax.TextStyle {
	var ts syntax.TextStyle
	if s.Bold {
		ts |= syntax.Bold
	}
	if s.Italic {
		ts |= syntax.Italic
	}
	if s.Underline {
		ts |= syntax.Underline
	}
	return ts
}
