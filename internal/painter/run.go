package painter

import (
	"image"

	"gioui.org/op"
	"gioui.org/text"
	lt "github.com/oligo/gvsource/internal/layout"
	"golang.org/x/image/math/fixed"
)

// StrokeStyle configures stroked styles such as underlines. A zero
// Color falls back to the default text material when painting.
type StrokeStyle struct {
	Color op.CallOp
}

// A RenderRun is a group of adjacent glyphs of a line sharing the same
// styles. Runs are the painting unit of the TextPainter.
type RenderRun struct {
	Glyphs []text.Glyph
	// Offset is the visual offset of the run relative to the start
	// of the line.
	Offset fixed.Int26_6

	Fg op.CallOp
	Bg op.CallOp

	Underline     *StrokeStyle
	Squiggle      *StrokeStyle
	Strikethrough *StrokeStyle
	Border        *StrokeStyle
}

// Size returns the number of glyphs in the run.
func (r *RenderRun) Size() int {
	return len(r.Glyphs)
}

// Advance returns the total advance of the glyphs of the run.
func (r *RenderRun) Advance() fixed.Int26_6 {
	w := fixed.I(0)
	for _, g := range r.Glyphs {
		w += g.Advance
	}

	return w
}

// Bounds returns the bounding box relative to the dot of the first
// glyph of the run.
func (r *RenderRun) Bounds() image.Rectangle {
	rect := image.Rectangle{}
	if len(r.Glyphs) == 0 {
		return rect
	}

	for _, g := range r.Glyphs {
		rect.Min.Y = min(rect.Min.Y, -g.Ascent.Round())
		rect.Max.Y = max(rect.Max.Y, g.Descent.Round())
		rect.Max.X += g.Advance.Round()
	}

	return rect
}

// LineSplitter splits a line into render runs on behalf of the
// TextPainter.
type LineSplitter interface {
	Split(line *lt.Line, runs *[]RenderRun)
}
