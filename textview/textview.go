// Package textview implements the text engine shared by the editor and
// viewer widgets. A TextView owns the text source, shapes it into
// visual lines, maintains the caret and selection, and paints text,
// selection boxes and line numbers into a scrollable viewport.
package textview

import (
	"image"

	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/text"
	"gioui.org/unit"
	"github.com/oligo/gvsource/buffer"
	lt "github.com/oligo/gvsource/internal/layout"
	"github.com/oligo/gvsource/internal/painter"
	"github.com/oligo/gvsource/textstyle/decoration"
	"github.com/oligo/gvsource/textstyle/syntax"
	"golang.org/x/image/math/fixed"
)

// TextView provides shaping and indexing of editable text. The exported
// configuration fields are synced into the shaper parameters on every
// Layout call, and any change invalidates the cached layout.
type TextView struct {
	// Alignment controls the alignment of text within the view.
	Alignment text.Alignment
	// LineHeight determines the gap between baselines of text. If zero,
	// a sensible default is used.
	LineHeight unit.Sp
	// LineHeightScale is multiplied by LineHeight to determine the final
	// gap between baselines. If zero, a sensible default is used.
	LineHeightScale float32
	// Font is the font of the text.
	Font font.Font
	// TextSize is the size of the text.
	TextSize unit.Sp
	// TabWidth sets how many space advances a tab character spans.
	TabWidth int
	// WrapLine enables soft wrapping of long lines. When disabled the
	// view scrolls horizontally instead.
	WrapLine bool

	src    *buffer.TextSource
	layout *lt.TextLayout

	painter      painter.TextPainter
	syntaxStyles *syntax.TextTokens
	decorations  *decoration.DecorationTree

	params   text.Parameters
	shaper   *text.Shaper
	viewSize image.Point
	valid    bool

	caret struct {
		// xoff is the offset to the current position when moving between
		// lines.
		xoff fixed.Int26_6
		// start is the current caret position in runes, and also the
		// start position of selected text. end is the end position of
		// selected text. If start == end, there is no selection. The
		// caret (start) may be after end, e.g. after Shift-DownArrow.
		start int
		end   int
	}

	scrollOff image.Point
	regions   []Region
}

func NewTextView() *TextView {
	src := buffer.NewTextSource()
	return &TextView{
		src:         src,
		layout:      lt.NewTextLayout(src),
		decorations: decoration.NewDecorationTree(),
	}
}

// SetText replaces the content of the view.
func (v *TextView) SetText(s string) {
	v.src.SetText(s)
	v.invalidate()
}

// Text returns the content of the view.
func (v *TextView) Text() string {
	return v.src.Text()
}

// Len is the length of the content, in runes.
func (v *TextView) Len() int {
	return v.src.Len()
}

// Paragraphs returns the number of logical lines of the content. The
// empty document counts as a single line.
func (v *TextView) Paragraphs() int {
	return max(v.src.Lines(), 1)
}

// Substring returns the text of the rune range [start, end).
func (v *TextView) Substring(start, end int) string {
	return v.src.Substring(start, end)
}

// Replace substitutes the rune range [start, end) with s, keeping the
// caret and selection on their logical positions. It returns the number
// of runes inserted.
func (v *TextView) Replace(start, end int, s string) int {
	if start > end {
		start, end = end, start
	}

	inserted := v.src.Replace(start, end, s)
	newEnd := start + inserted
	adjust := func(pos int) int {
		switch {
		case newEnd < pos && pos <= end:
			pos = newEnd
		case end < pos:
			pos = pos + newEnd - end
		}
		return pos
	}
	v.caret.start = adjust(v.caret.start)
	v.caret.end = adjust(v.caret.end)
	v.invalidate()
	return inserted
}

func (v *TextView) invalidate() {
	v.valid = false
}

func (v *TextView) makeValid() {
	if v.valid || v.shaper == nil {
		return
	}
	v.layout.Layout(v.shaper, &v.params, v.TabWidth, v.WrapLine)
	v.valid = true
}

// Layout reshapes the text if any shaping parameter changed, and
// updates the viewport size from the current constraints.
func (v *TextView) Layout(gtx layout.Context, shaper *text.Shaper) {
	if v.params.Locale != gtx.Locale {
		v.params.Locale = gtx.Locale
		v.invalidate()
	}
	textSize := fixed.I(gtx.Sp(v.TextSize))
	if v.params.Font != v.Font || v.params.PxPerEm != textSize {
		v.params.Font = v.Font
		v.params.PxPerEm = textSize
		v.invalidate()
	}
	if maxWidth := gtx.Constraints.Max.X; maxWidth != v.params.MaxWidth {
		v.params.MaxWidth = maxWidth
		v.invalidate()
	}
	if minWidth := gtx.Constraints.Min.X; minWidth != v.params.MinWidth {
		v.params.MinWidth = minWidth
		v.invalidate()
	}
	if shaper != v.shaper {
		v.shaper = shaper
		v.invalidate()
	}
	if v.Alignment != v.params.Alignment {
		v.params.Alignment = v.Alignment
		v.invalidate()
	}
	if lh := fixed.I(gtx.Sp(v.LineHeight)); lh != v.params.LineHeight {
		v.params.LineHeight = lh
		v.invalidate()
	}
	if v.LineHeightScale != v.params.LineHeightScale {
		v.params.LineHeightScale = v.LineHeightScale
		v.invalidate()
	}

	v.makeValid()

	if viewSize := v.calculateViewSize(gtx); viewSize != v.viewSize {
		v.viewSize = viewSize
	}
	// Scrolling bounds may have shrunk with the new layout.
	v.ScrollRel(0, 0)
}

// calculateViewSize determines the size of the visible content, making
// sure some space is reserved for the caret even without content.
func (v *TextView) calculateViewSize(gtx layout.Context) image.Point {
	base := v.layout.Size()
	if caretWidth := v.caretWidth(gtx); base.X < caretWidth {
		base.X = caretWidth
	}
	return gtx.Constraints.Constrain(base)
}

func (v *TextView) caretWidth(gtx layout.Context) int {
	return gtx.Dp(1)
}

// Dimensions returns the dimensions of the visible text.
func (v *TextView) Dimensions() layout.Dimensions {
	baseline := v.viewSize.Y - (v.layout.Size().Y - v.layout.Baseline())
	return layout.Dimensions{Size: v.viewSize, Baseline: baseline}
}

// FullDimensions returns the dimensions of all shaped text, including
// the part outside of the current viewport.
func (v *TextView) FullDimensions() layout.Dimensions {
	size := v.layout.Size()
	return layout.Dimensions{Size: size, Baseline: size.Y - v.layout.Baseline()}
}

// ScrollBounds returns the viewport-independent scrolling bounds.
func (v *TextView) ScrollBounds() image.Rectangle {
	return image.Rectangle{Max: image.Point{
		X: max(0, v.layout.Size().X-v.viewSize.X),
		Y: max(0, v.layout.Size().Y-v.viewSize.Y),
	}}
}

// ScrollOff returns the scroll offset of the viewport.
func (v *TextView) ScrollOff() image.Point {
	return v.scrollOff
}

func (v *TextView) ScrollRel(dx, dy int) {
	v.scrollAbs(v.scrollOff.X+dx, v.scrollOff.Y+dy)
}

func (v *TextView) scrollAbs(x, y int) {
	b := v.ScrollBounds()
	v.scrollOff.X = clamp(x, b.Min.X, b.Max.X)
	v.scrollOff.Y = clamp(y, b.Min.Y, b.Max.Y)
}

// ScrollToCaret scrolls the viewport the minimal distance that brings
// the caret fully into view.
func (v *TextView) ScrollToCaret() {
	v.makeValid()
	caret := v.closestToRune(v.caret.start)

	var dx, dy int
	if d := caret.y - caret.ascent.Ceil() - v.scrollOff.Y; d < 0 {
		dy = d
	} else if d := caret.y + caret.descent.Ceil() - (v.scrollOff.Y + v.viewSize.Y); d > 0 {
		dy = d
	}
	if d := caret.x.Floor() - v.scrollOff.X; d < 0 {
		dx = d
	} else if d := caret.x.Ceil() - (v.scrollOff.X + v.viewSize.X); d > 0 {
		dx = d
	}
	v.ScrollRel(dx, dy)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
