package syntax

import (
	"iter"

	"gioui.org/text"
	lt "github.com/oligo/gvsource/internal/layout"
	"github.com/oligo/gvsource/internal/painter"
	"golang.org/x/image/math/fixed"
)

// lineSplitter splits a line into render runs on behalf of the
// TextPainter. Glyphs not covered by any token are grouped into
// unstyled runs so the whole line still gets painted.
type lineSplitter struct {
	current painter.RenderRun
	// the rune offset while iterating through the line.
	runeOff int
	// the advance offset while iterating through the line.
	advance   fixed.Int26_6
	nextGlyph func() (text.Glyph, bool)
	stopFunc  func()
}

func (rb *lineSplitter) setup(line *lt.Line) {
	lineIter := line.All()
	rb.nextGlyph, rb.stopFunc = iter.Pull(lineIter)
	rb.current = painter.RenderRun{}
	rb.advance = fixed.I(0)
	rb.runeOff = line.RuneOff
}

func (rb *lineSplitter) commitLast(runs *[]painter.RenderRun) {
	if rb.current.Size() > 0 {
		*runs = append(*runs, rb.current)
		rb.current = painter.RenderRun{
			Offset: rb.advance,
		}
	}
}

func (rb *lineSplitter) split(line *lt.Line, tokens *TextTokens, runs *[]painter.RenderRun) {
	*runs = (*runs)[:0]

	overlapped := tokens.QueryRange(line.RuneOff, line.RuneOff+line.Runes)
	if len(overlapped) == 0 {
		*runs = append(*runs, painter.RenderRun{
			Glyphs: line.GetGlyphs(0, len(line.Glyphs)),
			Offset: 0,
		})
		return
	}

	rb.setup(line)
	defer rb.stopFunc()

	for _, token := range overlapped {
		// check if there is any glyphs not covered by the token and put them in
		// one run.
		rb.readUntil(token.Start)
		rb.commitLast(runs)

		// next read the entire token range to the current run.
		rb.readUntil(token.End)
		if rb.current.Size() > 0 {
			rb.current.Fg = tokens.GetColor(token.Style.Foreground())
			rb.current.Bg = tokens.GetColor(token.Style.Background())
			rb.applyFontStyle(token.Style.FontStyle())
			rb.commitLast(runs)
		}
	}

	// trailing glyphs not covered by any token.
	rb.readUntil(line.RuneOff + line.Runes)
	rb.commitLast(runs)
}

// applyFontStyle maps the stroked text styles of the token onto the
// current run. Bold and italic require re-shaping with another font
// face and are left to the shaper configuration.
func (rb *lineSplitter) applyFontStyle(style TextStyle) {
	if style.HasStyle(Underline) {
		rb.current.Underline = &painter.StrokeStyle{}
	}
	if style.HasStyle(Strikethrough) {
		rb.current.Strikethrough = &painter.StrokeStyle{}
	}
	if style.HasStyle(Border) {
		rb.current.Border = &painter.StrokeStyle{}
	}
}

func (rb *lineSplitter) readUntil(runeOff int) {
	for rb.runeOff < runeOff {
		g, ok := rb.nextGlyph()
		if !ok {
			break
		}
		rb.advance += g.Advance
		rb.current.Glyphs = append(rb.current.Glyphs, g)
		rb.runeOff += int(g.Runes)
	}
}

// Split implements painter.LineSplitter, splitting line into runs
// sharing the same token style.
func (t *TextTokens) Split(line *lt.Line, runs *[]painter.RenderRun) {
	t.splitter.split(line, t, runs)
}
