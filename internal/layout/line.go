package layout

import (
	"fmt"
	"image"
	"iter"

	"gioui.org/text"
	"golang.org/x/image/math/fixed"
)

// A Line contains various metrics of a visual line of text.
type Line struct {
	// XOff is the drawing offset of the first glyph.
	XOff fixed.Int26_6
	// YOff is the baseline offset in the document coordinates.
	YOff    int
	Width   fixed.Int26_6
	Ascent  fixed.Int26_6
	Descent fixed.Int26_6
	Glyphs  []text.Glyph
	// Runes is the number of runes represented by this line.
	Runes int
	// RuneOff tracks the rune offset of the first rune of the line in
	// the document.
	RuneOff int
}

func (li Line) String() string {
	return fmt.Sprintf("[line] xOff: %d, yOff: %d, width: %d, runes: %d, runeOff: %d, glyphs: %d",
		li.XOff.Round(), li.YOff, li.Width.Ceil(), li.Runes, li.RuneOff, len(li.Glyphs))
}

func (li *Line) Append(glyphs ...text.Glyph) {
	for _, gl := range glyphs {
		if len(li.Glyphs) == 0 || li.XOff > gl.X {
			li.XOff = gl.X
		}

		li.Width += gl.Advance
		// Glyph ascent and descent are derived from the line ascent and
		// descent, so it is safe to just take them as the line's.
		li.Ascent = gl.Ascent
		li.Descent = gl.Descent
		li.Runes += int(gl.Runes)
		li.Glyphs = append(li.Glyphs, gl)
	}
}

// Recompute re-aligns the X offset of each glyph from the accumulated
// advances, and updates the rune offset of the line. It is required
// after any glyph advance has been altered, e.g. for tab expansion.
func (li *Line) Recompute(alignOff fixed.Int26_6, runeOff int) {
	xOff := fixed.I(0)
	li.Width = fixed.I(0)
	for idx := range li.Glyphs {
		li.Glyphs[idx].X = alignOff + xOff
		xOff += li.Glyphs[idx].Advance
		li.Width += li.Glyphs[idx].Advance
	}

	li.XOff = alignOff
	li.RuneOff = runeOff
}

// AdjustYOff moves the line and its glyphs to the provided baseline.
func (li *Line) AdjustYOff(yOff int) {
	li.YOff = yOff
	for idx := range li.Glyphs {
		li.Glyphs[idx].Y = int32(yOff)
	}
}

func (li *Line) Bounds() image.Rectangle {
	return image.Rectangle{
		Min: image.Pt(li.XOff.Floor(), li.YOff-li.Ascent.Ceil()),
		Max: image.Pt((li.XOff + li.Width).Ceil(), li.YOff+li.Descent.Ceil()),
	}
}

// GetGlyphs returns a copy of the glyphs in the half open range
// [start, end).
func (li *Line) GetGlyphs(start, end int) []text.Glyph {
	if end-start <= 0 {
		return []text.Glyph{}
	}

	out := make([]text.Glyph, end-start)
	copy(out, li.Glyphs[start:end])
	return out
}

// All returns an iterator over the glyphs of the line.
func (li *Line) All() iter.Seq[text.Glyph] {
	return func(yield func(text.Glyph) bool) {
		for _, g := range li.Glyphs {
			if !yield(g) {
				return
			}
		}
	}
}

// A Paragraph records which visual lines a logical line (terminated by
// a hard line break) occupies after layout.
type Paragraph struct {
	// StartLine is the index of the first visual line of the paragraph.
	StartLine int
	// Lines is the number of visual lines the paragraph spans.
	Lines int
	// Runes is the number of runes represented by this paragraph.
	Runes int
	// RuneOff tracks the rune offset of the first rune of the paragraph
	// in the document.
	RuneOff int
}

type glyphIter struct {
	shaper *text.Shaper
}

func (gi glyphIter) All() iter.Seq[text.Glyph] {
	return func(yield func(text.Glyph) bool) {
		for {
			g, ok := gi.shaper.NextGlyph()
			if !ok {
				return
			}

			if !yield(g) {
				return
			}
		}
	}
}
