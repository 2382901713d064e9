package textview

import (
	"image"
	"math"
	"unicode"

	"gioui.org/f32"
	"golang.org/x/exp/slices"
	"golang.org/x/image/math/fixed"
)

// SelectionAction specifies what a caret movement does to an existing
// selection.
type SelectionAction int

const (
	// SelectionExtend leaves the selection end in place, extending or
	// shrinking the selection.
	SelectionExtend SelectionAction = iota
	// SelectionClear collapses the selection onto the caret.
	SelectionClear
)

// Selection returns the start and end of the selection, as rune
// offsets. start can be > end.
func (v *TextView) Selection() (start, end int) {
	return v.caret.start, v.caret.end
}

// SelectionLen returns the length of the selection, in runes.
func (v *TextView) SelectionLen() int {
	return abs(v.caret.start - v.caret.end)
}

// SetCaret moves the caret to start, and sets the selection end to end.
// Both are clamped to the nearest grapheme cluster boundary.
func (v *TextView) SetCaret(start, end int) {
	v.caret.start = clamp(start, 0, v.src.Len())
	v.caret.end = clamp(end, 0, v.src.Len())
	v.clampCaretToGraphemes()
}

// SelectedText returns the currently selected text.
func (v *TextView) SelectedText() string {
	return v.src.Substring(v.caret.start, v.caret.end)
}

// ClearSelection clears the selection, by setting the selection end
// equal to the selection start.
func (v *TextView) ClearSelection() {
	v.caret.end = v.caret.start
}

func (v *TextView) updateSelection(selAct SelectionAction) {
	if selAct == SelectionClear {
		v.ClearSelection()
	}
}

// CaretPos returns the visual line and column numbers of the caret.
func (v *TextView) CaretPos() (line, col int) {
	pos := v.closestToRune(v.caret.start)
	return pos.line, pos.col
}

// CaretCoords returns the coordinates of the caret, relative to the
// view itself.
func (v *TextView) CaretCoords() f32.Point {
	pos := v.closestToRune(v.caret.start)
	return f32.Pt(float32(pos.x)/64-float32(v.scrollOff.X), float32(pos.y-v.scrollOff.Y))
}

// CaretInfo returns the viewport-relative position of the caret dot and
// the line ascent and descent at the caret.
func (v *TextView) CaretInfo() (pos image.Point, ascent, descent int) {
	caret := v.closestToRune(v.caret.start)
	return image.Pt(caret.x.Round(), caret.y).Sub(v.scrollOff), caret.ascent.Ceil(), caret.descent.Ceil()
}

// MoveCaret moves the caret (aka selection start) and the selection end
// relative to their current positions. Distances are in grapheme
// clusters, which better match user expectations than runes.
func (v *TextView) MoveCaret(startDelta, endDelta int) {
	v.caret.xoff = 0
	v.caret.start = v.moveByGraphemes(v.caret.start, startDelta)
	v.caret.end = v.moveByGraphemes(v.caret.end, endDelta)
}

// MoveCoord moves the caret to the position closest to the provided
// viewport-relative point, aligned to a grapheme cluster boundary.
func (v *TextView) MoveCoord(pos image.Point) {
	x := fixed.I(pos.X + v.scrollOff.X)
	y := pos.Y + v.scrollOff.Y
	v.caret.start = v.alignToGrapheme(v.closestToXY(x, y).runes, x)
	v.caret.xoff = 0
}

// MoveLines moves the caret the specified number of visual lines
// vertically, preserving the horizontal position across moves.
func (v *TextView) MoveLines(distance int, selAct SelectionAction) {
	caret := v.closestToRune(v.caret.start)
	x := caret.x + v.caret.xoff
	target := v.closestToLineCol(caret.line+distance, 0)
	pos := v.closestToRune(v.alignToGrapheme(v.closestToXY(x, target.y).runes, x))
	v.caret.start = pos.runes
	v.caret.xoff = x - pos.x
	v.updateSelection(selAct)
}

// MovePages moves the caret the specified number of viewport heights
// vertically.
func (v *TextView) MovePages(pages int, selAct SelectionAction) {
	caret := v.closestToRune(v.caret.start)
	x := caret.x + v.caret.xoff
	y := caret.y + pages*v.viewSize.Y
	pos := v.closestToRune(v.alignToGrapheme(v.closestToXY(x, y).runes, x))
	v.caret.start = pos.runes
	v.caret.xoff = x - v.closestToRune(pos.runes).x
	v.updateSelection(selAct)
}

// MoveTextStart moves the caret to the start of the text.
func (v *TextView) MoveTextStart(selAct SelectionAction) {
	caret := v.closestToRune(v.caret.end)
	v.caret.start = 0
	v.caret.end = caret.runes
	v.caret.xoff = -caret.x
	v.updateSelection(selAct)
	v.clampCaretToGraphemes()
}

// MoveTextEnd moves the caret to the end of the text.
func (v *TextView) MoveTextEnd(selAct SelectionAction) {
	caret := v.closestToRune(math.MaxInt)
	v.caret.start = caret.runes
	v.caret.xoff = fixed.I(v.params.MaxWidth) - caret.x
	v.updateSelection(selAct)
	v.clampCaretToGraphemes()
}

// MoveLineStart moves the caret to the start of the current visual
// line.
func (v *TextView) MoveLineStart(selAct SelectionAction) {
	caret := v.closestToRune(v.caret.start)
	caret = v.closestToLineCol(caret.line, 0)
	v.caret.start = caret.runes
	v.caret.xoff = -caret.x
	v.updateSelection(selAct)
	v.clampCaretToGraphemes()
}

// MoveLineEnd moves the caret to the end of the current visual line.
func (v *TextView) MoveLineEnd(selAct SelectionAction) {
	caret := v.closestToRune(v.caret.start)
	caret = v.closestToLineCol(caret.line, math.MaxInt)
	v.caret.start = caret.runes
	v.caret.xoff = fixed.I(v.params.MaxWidth) - caret.x
	v.updateSelection(selAct)
	v.clampCaretToGraphemes()
}

// MoveWord moves the caret to the next word boundary in the specified
// direction. Positive is forward, negative is backward, and absolute
// values greater than one skip that many words. Words are delimited by
// whitespace.
func (v *TextView) MoveWord(distance int, selAct SelectionAction) {
	words, direction := distance, 1
	if distance < 0 {
		words, direction = -distance, -1
	}

	caret := v.caret.start
	atEnd := func() bool {
		return caret == 0 || caret == v.src.Len()
	}
	next := func() rune {
		if direction < 0 {
			return v.src.RuneBefore(caret)
		}
		return v.src.RuneAt(caret)
	}
	for ii := 0; ii < words; ii++ {
		for r := next(); unicode.IsSpace(r) && !atEnd(); r = next() {
			v.MoveCaret(direction, 0)
			caret = v.caret.start
		}
		v.MoveCaret(direction, 0)
		caret = v.caret.start
		for r := next(); !unicode.IsSpace(r) && !atEnd(); r = next() {
			v.MoveCaret(direction, 0)
			caret = v.caret.start
		}
	}
	v.updateSelection(selAct)
	v.clampCaretToGraphemes()
}

// moveByGraphemes returns the rune offset resulting from moving the
// specified number of grapheme clusters from startRune.
func (v *TextView) moveByGraphemes(startRune, graphemes int) int {
	v.makeValid()
	boundaries := v.layout.Graphemes()
	if len(boundaries) == 0 {
		return clamp(startRune, 0, v.src.Len())
	}

	idx, _ := slices.BinarySearch(boundaries, startRune)
	idx = clamp(idx+graphemes, 0, len(boundaries)-1)
	return boundaries[idx]
}

// alignToGrapheme snaps the rune offset to the grapheme cluster
// boundary whose caret position is closest to x.
func (v *TextView) alignToGrapheme(runeOff int, x fixed.Int26_6) int {
	first := v.moveByGraphemes(runeOff, 0)
	distance := 1
	if first > runeOff {
		distance = -1
	}
	second := v.moveByGraphemes(first, distance)

	if dist(v.closestToRune(first).x, x) > dist(v.closestToRune(second).x, x) {
		return second
	}
	return first
}

// clampCaretToGraphemes ensures that the final start/end positions of
// the caret are on grapheme cluster boundaries.
func (v *TextView) clampCaretToGraphemes() {
	v.caret.start = v.moveByGraphemes(v.caret.start, 0)
	v.caret.end = v.moveByGraphemes(v.caret.end, 0)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
