package syntax

import (
	"image/color"
	"slices"

	gvcolor "github.com/oligo/gvsource/color"
)

// ColorScheme defines the token types and their styles used for syntax
// highlighting.
type ColorScheme struct {
	// Name is the name of the color scheme.
	Name string
	// Foreground provides a default text color for the editor.
	Foreground gvcolor.Color
	// Background provides a default background color for the editor.
	Background gvcolor.Color

	gvcolor.ColorPalette
	// tokenTypes are registered token types for the color scheme.
	// It can be mapped to captures for Tree-Sitter, and TokenType of Chroma.
	tokenTypes []string

	// styles maps tokenType index to non-packed token style.
	styles map[int]*tokenStyleRaw
}

type tokenStyleRaw struct {
	textStyle TextStyle
	fg, bg    int
}

func (cs *ColorScheme) addTokenType(tokenType string) int {
	if idx := slices.Index(cs.tokenTypes, tokenType); idx >= 0 {
		return idx
	}

	cs.tokenTypes = append(cs.tokenTypes, tokenType)
	return len(cs.tokenTypes) - 1
}

func (cs *ColorScheme) getTokenStyle(id int) *tokenStyleRaw {
	if style, exists := cs.styles[id]; exists {
		return style
	}
	return nil
}

// addColorIfSet interns the color into the palette, mapping the zero
// color to the reserved unset id.
func (cs *ColorScheme) addColorIfSet(c color.NRGBA) int {
	if c == (color.NRGBA{}) {
		return 0
	}
	return cs.AddColor(gvcolor.MakeColor(c))
}

// AddTokenType registers a token type with its text style and colors,
// returning the id assigned to the token type. Registering the same
// token type again overwrites the previous style.
func (cs *ColorScheme) AddTokenType(tokenType string, textStyle TextStyle, fg, bg color.NRGBA) int {
	if cs.Size() == 0 {
		// Palette id zero is reserved for the unset color so that the
		// zero TokenStyle resolves to the default paint material.
		cs.AddColor(gvcolor.Color{})
	}

	tokenTypeID := cs.addTokenType(tokenType)
	fgID := cs.addColorIfSet(fg)
	bgID := cs.addColorIfSet(bg)

	if cs.styles == nil {
		cs.styles = make(map[int]*tokenStyleRaw)
	}

	cs.styles[tokenTypeID] = &tokenStyleRaw{
		textStyle: textStyle,
		fg:        fgID,
		bg:        bgID,
	}
	return tokenTypeID
}

// HasTokenType reports whether the token type has been registered.
func (cs *ColorScheme) HasTokenType(tokenType string) bool {
	return slices.Index(cs.tokenTypes, tokenType) >= 0
}

func (cs *ColorScheme) GetTokenStyleByID(tokenTypeID int) TokenStyle {
	style := cs.getTokenStyle(tokenTypeID)
	if style == nil {
		return TokenStyle(0)
	}

	return PackTokenStyle(0, tokenTypeID, style.fg, style.bg, style.textStyle)
}

// GetTokenStyle returns the packed style of a registered token type,
// or the zero TokenStyle if the token type is unknown.
func (cs *ColorScheme) GetTokenStyle(tokenType string) TokenStyle {
	idx := slices.Index(cs.tokenTypes, tokenType)
	if idx < 0 {
		return TokenStyle(0)
	}

	return cs.GetTokenStyleByID(idx)
}
