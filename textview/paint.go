package textview

import (
	"image"
	"strconv"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"github.com/oligo/gvsource/internal/painter"
)

func (v *TextView) viewport() image.Rectangle {
	return image.Rectangle{
		Min: v.scrollOff,
		Max: v.viewSize.Add(v.scrollOff),
	}
}

// PaintText clips and paints the visible text, using the syntax token
// styles and decorations to split lines into styled runs. The material
// fills glyphs not covered by any styled run.
func (v *TextView) PaintText(gtx layout.Context, material op.CallOp) {
	v.makeValid()

	var tokens painter.LineSplitter
	if v.syntaxStyles != nil {
		tokens = v.syntaxStyles
	}
	v.painter.SetViewport(v.viewport(), v.scrollOff)
	v.painter.Paint(gtx, v.shaper, v.layout.Lines, material, tokens, v.decorations)
}

// PaintSelection clips and paints the visible selection rectangles
// using the provided material to fill them.
func (v *TextView) PaintSelection(gtx layout.Context, material op.CallOp) {
	localViewport := image.Rectangle{Max: v.viewSize}
	defer clip.Rect(localViewport).Push(gtx.Ops).Pop()

	v.regions = v.locate(v.viewport(), v.caret.start, v.caret.end, v.regions)
	for _, region := range v.regions {
		area := clip.Rect(region.Bounds).Push(gtx.Ops)
		material.Add(gtx.Ops)
		paint.PaintOp{}.Add(gtx.Ops)
		area.Pop()
	}
}

// PaintRegions clips and paints the provided regions, e.g. search match
// rectangles located with Regions.
func (v *TextView) PaintRegions(gtx layout.Context, regions []Region, material op.CallOp) {
	localViewport := image.Rectangle{Max: v.viewSize}
	defer clip.Rect(localViewport).Push(gtx.Ops).Pop()

	for _, region := range regions {
		area := clip.Rect(region.Bounds).Push(gtx.Ops)
		material.Add(gtx.Ops)
		paint.PaintOp{}.Add(gtx.Ops)
		area.Pop()
	}
}

// PaintCaret clips and paints the caret rectangle.
func (v *TextView) PaintCaret(gtx layout.Context, material op.CallOp) {
	caretWidth := v.caretWidth(gtx)
	caretPos, ascent, descent := v.CaretInfo()

	carRect := image.Rectangle{
		Min: caretPos.Sub(image.Pt(caretWidth, ascent)),
		Max: caretPos.Add(image.Pt(caretWidth, descent)),
	}
	carRect = image.Rectangle{Max: v.viewSize}.Intersect(carRect)
	if carRect.Empty() {
		return
	}

	defer clip.Rect(carRect).Push(gtx.Ops).Pop()
	material.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
}

// PaintLineNumber paints the 1-based line number gutter, one number per
// paragraph, right aligned in a column sized by the digit count of the
// line total. Continuation lines of a soft wrapped paragraph are not
// numbered.
func (v *TextView) PaintLineNumber(gtx layout.Context, shaper *text.Shaper, material op.CallOp) layout.Dimensions {
	v.makeValid()

	width := v.lineNumberWidth(shaper)
	gtx.Constraints.Min.X = max(gtx.Constraints.Min.X, width)
	gtx.Constraints.Max.X = min(gtx.Constraints.Max.X, gtx.Constraints.Min.X)

	dims := painter.PaintLineNumber(gtx, shaper, v.params, v.viewport(), v.paragraphBaselines(), material)
	dims.Size.X = gtx.Constraints.Min.X
	dims.Size.Y = v.viewSize.Y
	return dims
}

// lineNumberWidth measures the widest line number of the document.
func (v *TextView) lineNumberWidth(shaper *text.Shaper) int {
	if shaper == nil {
		return 0
	}

	params := v.params
	params.MinWidth = 0
	params.MaxWidth = 1e6
	shaper.LayoutString(params, strconv.Itoa(v.Paragraphs()))

	width := 0
	for {
		g, ok := shaper.NextGlyph()
		if !ok {
			break
		}
		width += g.Advance.Ceil()
	}
	return width
}
