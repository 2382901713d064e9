package gvsource

import (
	"github.com/oligo/gvsource/textstyle/decoration"
)

// TextRange contains a range of text of interest in the document, used
// for search matches, styling text, or any other purpose.
type TextRange struct {
	// Start is the offset of the start rune in the document.
	Start int
	// End is the offset of the end rune in the document.
	End int
}

// AddDecorations inserts ranged style overlays painted on top of the
// syntax highlighting, such as diagnostic squiggles.
func (e *CodeEditor) AddDecorations(decos ...decoration.Decoration) {
	e.view.AddDecorations(decos...)
}

// ClearDecorations removes the decorations inserted with the given
// source, or all decorations when source is nil.
func (e *CodeEditor) ClearDecorations(source any) {
	e.view.ClearDecorations(source)
}

// SetMatches sets the matched text ranges after a find operation. The
// matches are painted with the match material until replaced or
// cleared with SetMatches(nil).
func (e *CodeEditor) SetMatches(matches []TextRange) {
	e.matches = matches
	e.ClearSelection()
	if len(matches) > 0 {
		e.currentMatch = 0
	}
}

// NextMatch switches to the index-th match, selecting it and scrolling
// it into view.
func (e *CodeEditor) NextMatch(index int) {
	if index < 0 || index >= len(e.matches) {
		return
	}

	e.currentMatch = index
	e.SetCaret(e.matches[index].Start, e.matches[index].End)
}
