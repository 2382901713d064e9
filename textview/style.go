package textview

import (
	"github.com/oligo/gvsource/textstyle/decoration"
	"github.com/oligo/gvsource/textstyle/syntax"
)

// SetColorScheme installs the color scheme that syntax tokens resolve
// their styles against. It must be called before SetSyntaxTokens.
func (v *TextView) SetColorScheme(scheme *syntax.ColorScheme) {
	v.syntaxStyles = syntax.NewTextTokens(scheme)
}

// SetSyntaxTokens replaces the syntax highlighting tokens of the
// document.
func (v *TextView) SetSyntaxTokens(tokens ...syntax.Token) {
	if v.syntaxStyles == nil {
		panic("textview: no color scheme configured")
	}
	v.syntaxStyles.Set(tokens...)
}

// AddDecorations inserts ranged style overlays painted on top of the
// syntax styles.
func (v *TextView) AddDecorations(decos ...decoration.Decoration) {
	v.decorations.Insert(decos...)
}

// ClearDecorations removes the decorations inserted with the given
// source, or all decorations when source is nil.
func (v *TextView) ClearDecorations(source any) {
	if source == nil {
		v.decorations.Clear()
		return
	}
	// Removal of an unknown source is a no-op.
	_ = v.decorations.RemoveBySource(source)
}
