package layout

import (
	"image"

	"gioui.org/text"
	"github.com/go-text/typesetting/segmenter"
	"github.com/oligo/gvsource/buffer"
	"golang.org/x/image/math/fixed"
)

// noWrapWidth is the width used to lay out text when soft wrapping is
// disabled. It has to stay well below the fixed point overflow limit.
const noWrapWidth = 1e6

// TextLayout shapes the paragraphs of a text source into visual lines.
// Each paragraph is laid out independently with the shaper and the
// resulting lines are stacked with a uniform line height, so that a
// paragraph edit never disturbs the metrics of the lines above it.
type TextLayout struct {
	src *buffer.TextSource

	// Lines are the visual lines of the document, in order.
	Lines []*Line
	// Paragraphs records the visual line ranges of the logical lines.
	Paragraphs []Paragraph

	// graphemes tracks the rune offsets of grapheme cluster boundaries.
	graphemes []int
	seg       segmenter.Segmenter

	lineHeight fixed.Int26_6
	tabAdvance fixed.Int26_6
	size       image.Point
	baseline   int
}

func NewTextLayout(src *buffer.TextSource) *TextLayout {
	return &TextLayout{src: src}
}

// Layout shapes the whole document. The tab width is in space-glyph
// advances. When wrapLine is false the configured maximum width is
// replaced with an effectively unbounded one and the caller is expected
// to scroll horizontally.
func (tl *TextLayout) Layout(shaper *text.Shaper, params *text.Parameters, tabWidth int, wrapLine bool) {
	tl.reset()

	layoutParams := *params
	if !wrapLine {
		layoutParams.MaxWidth = noWrapWidth
	}

	tl.tabAdvance = tl.calcTabAdvance(shaper, layoutParams, tabWidth)

	if tl.src.Lines() == 0 {
		// Shape the empty document so the caret still has a line to
		// live on.
		tl.layoutParagraph(shaper, layoutParams, nil, 0, true)
	} else {
		total := tl.src.Lines()
		for i := 0; i < total; i++ {
			paragraph, runeOff, err := tl.src.ReadLine(i)
			if err != nil {
				break
			}

			runes := []rune(paragraph)
			tl.layoutParagraph(shaper, layoutParams, runes, runeOff, i == total-1)
			tl.indexGraphemes(runes, runeOff)
		}
	}

	tl.restack(layoutParams)
	tl.measure(layoutParams)
}

func (tl *TextLayout) reset() {
	tl.Lines = tl.Lines[:0]
	tl.Paragraphs = tl.Paragraphs[:0]
	tl.graphemes = tl.graphemes[:0]
	tl.size = image.Point{}
	tl.baseline = 0
}

// calcTabWidth returns the visual width of a tab based on the number of
// spaces it expands to.
func (tl *TextLayout) calcTabAdvance(shaper *text.Shaper, params text.Parameters, tabWidth int) fixed.Int26_6 {
	if tabWidth <= 0 {
		tabWidth = 4
	}

	shaper.LayoutString(params, " ")
	g, ok := shaper.NextGlyph()
	if !ok {
		return 0
	}

	return g.Advance * fixed.Int26_6(tabWidth)
}

// layoutParagraph shapes one paragraph (including its trailing line
// break, if any) into visual lines. For every paragraph except the last
// one the shaper emits an extra glyph that starts the next paragraph;
// it is skipped here as the next ReadLine shapes that paragraph in
// full. On the last paragraph the same glyph materializes the trailing
// empty line.
func (tl *TextLayout) layoutParagraph(shaper *text.Shaper, params text.Parameters, paragraph []rune, runeOff int, last bool) {
	p := Paragraph{StartLine: len(tl.Lines), RuneOff: runeOff}

	shaper.LayoutString(params, string(paragraph))

	current := &Line{RuneOff: runeOff}
	lineRuneOff := runeOff
	localRune := 0
	hasTab := false

	commit := func() {
		if hasTab {
			current.Recompute(fixed.I(0), lineRuneOff)
			hasTab = false
		}
		tl.Lines = append(tl.Lines, current)
		p.Lines++
		lineRuneOff += current.Runes
		current = &Line{RuneOff: lineRuneOff}
	}

	for g := range (glyphIter{shaper: shaper}).All() {
		if g.Flags&text.FlagParagraphStart != 0 && !last {
			break
		}

		if g.Runes == 1 && localRune < len(paragraph) && paragraph[localRune] == '\t' {
			g.Advance = tl.tabAdvance
			hasTab = true
		}
		localRune += int(g.Runes)

		current.Append(g)
		if g.Flags&text.FlagLineBreak != 0 {
			commit()
		}
	}

	if len(current.Glyphs) > 0 {
		commit()
	}

	p.Runes = len(paragraph)
	tl.Paragraphs = append(tl.Paragraphs, p)
}

// restack assigns uniform baselines to the collected lines.
func (tl *TextLayout) restack(params text.Parameters) {
	if len(tl.Lines) == 0 {
		return
	}

	tl.lineHeight = tl.resolveLineHeight(params)

	baseline := tl.Lines[0].Ascent.Ceil()
	for i, line := range tl.Lines {
		if i > 0 {
			baseline += tl.lineHeight.Round()
		}
		line.AdjustYOff(baseline)
	}
}

func (tl *TextLayout) resolveLineHeight(params text.Parameters) fixed.Int26_6 {
	lh := params.LineHeight
	if lh == 0 && len(tl.Lines) > 0 {
		lh = tl.Lines[0].Ascent + tl.Lines[0].Descent
	}

	scale := params.LineHeightScale
	if scale == 0 {
		scale = 1.0
	}

	return fixed.Int26_6(float32(lh) * scale)
}

func (tl *TextLayout) measure(params text.Parameters) {
	if len(tl.Lines) == 0 {
		return
	}

	width := fixed.I(0)
	for _, line := range tl.Lines {
		if w := line.XOff + line.Width; w > width {
			width = w
		}
	}

	last := tl.Lines[len(tl.Lines)-1]
	tl.size = image.Point{
		X: max(width.Ceil(), params.MinWidth),
		Y: last.YOff + last.Descent.Ceil(),
	}
	tl.baseline = tl.Lines[0].YOff
}

// Graphemes returns the rune offsets of the grapheme cluster
// boundaries of the document, in ascending order.
func (tl *TextLayout) Graphemes() []int {
	return tl.graphemes
}

// LineHeight returns the resolved distance between baselines.
func (tl *TextLayout) LineHeight() fixed.Int26_6 {
	return tl.lineHeight
}

// Size returns the dimensions of the laid out document.
func (tl *TextLayout) Size() image.Point {
	return tl.size
}

// Baseline returns the Y offset of the first baseline.
func (tl *TextLayout) Baseline() int {
	return tl.baseline
}

func (tl *TextLayout) indexGraphemes(paragraph []rune, runeOff int) {
	tl.seg.Init(paragraph)
	iter := tl.seg.GraphemeIterator()

	first := true
	for iter.Next() {
		grapheme := iter.Grapheme()
		if first {
			start := runeOff + grapheme.Offset
			if len(tl.graphemes) == 0 || tl.graphemes[len(tl.graphemes)-1] != start {
				tl.graphemes = append(tl.graphemes, start)
			}
			first = false
		}
		tl.graphemes = append(tl.graphemes, runeOff+grapheme.Offset+len(grapheme.Text))
	}
}
