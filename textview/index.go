package textview

import (
	"image"
	"sort"

	"gioui.org/text"
	lt "github.com/oligo/gvsource/internal/layout"
	"golang.org/x/image/math/fixed"
)

// position is a resolved caret position in the laid out document.
type position struct {
	// runes is the offset in runes.
	runes int
	// line is the index of the visual line, col the rune column within
	// it.
	line, col int

	// Pixel coordinates of the caret dot on the baseline.
	x fixed.Int26_6
	y int

	ascent, descent fixed.Int26_6
}

// Region describes the position and baseline of an area of interest
// within shaped text.
type Region struct {
	// Bounds is the coordinates of the bounding box relative to the
	// containing widget.
	Bounds image.Rectangle
	// Baseline is the quantity of vertical pixels between the baseline
	// and the bottom of Bounds.
	Baseline int
}

// lineForRune returns the index of the visual line containing the rune
// offset. The caret at the end of a soft wrapped line resolves to the
// start of the following line.
func (v *TextView) lineForRune(runeOff int) int {
	lines := v.layout.Lines
	if len(lines) == 0 {
		return 0
	}

	i := sort.Search(len(lines), func(i int) bool {
		return lines[i].RuneOff+lines[i].Runes > runeOff
	})
	if i == len(lines) {
		i--
	}
	return i
}

// closestToRune resolves the caret position of the rune offset,
// clamping it into the document.
func (v *TextView) closestToRune(runeOff int) position {
	v.makeValid()
	lines := v.layout.Lines
	if len(lines) == 0 {
		return position{}
	}

	runeOff = clamp(runeOff, 0, v.src.Len())
	idx := v.lineForRune(runeOff)
	line := lines[idx]

	pos := position{
		runes:   runeOff,
		line:    idx,
		col:     runeOff - line.RuneOff,
		x:       line.XOff,
		y:       line.YOff,
		ascent:  line.Ascent,
		descent: line.Descent,
	}
	run := line.RuneOff
	for _, g := range line.Glyphs {
		if run >= runeOff {
			break
		}
		pos.x += g.Advance
		run += int(g.Runes)
	}
	return pos
}

// closestToLineCol resolves the position of the rune column col of
// visual line line, clamping both into the document. Glyph visual
// order is assumed to follow rune order.
func (v *TextView) closestToLineCol(lineIdx, col int) position {
	v.makeValid()
	lines := v.layout.Lines
	if len(lines) == 0 {
		return position{}
	}

	lineIdx = clamp(lineIdx, 0, len(lines)-1)
	line := lines[lineIdx]
	col = clamp(col, 0, maxCol(line))
	return v.closestToRune(line.RuneOff + col)
}

// maxCol is the last caret column of a line. The rune of a hard line
// break belongs to the line but is not a caret stop.
func maxCol(line *lt.Line) int {
	col := line.Runes
	if n := len(line.Glyphs); n > 0 {
		if g := line.Glyphs[n-1]; g.Flags&text.FlagParagraphBreak != 0 {
			col -= int(g.Runes)
		}
	}
	return col
}

// closestToXY resolves the caret position closest to the document
// coordinates (x, y).
func (v *TextView) closestToXY(x fixed.Int26_6, y int) position {
	v.makeValid()
	lines := v.layout.Lines
	if len(lines) == 0 {
		return position{}
	}

	idx := sort.Search(len(lines), func(i int) bool {
		return lines[i].YOff+lines[i].Descent.Round() >= y
	})
	if idx == len(lines) {
		idx--
	}
	line := lines[idx]

	// Walk the glyphs and keep the caret boundary closest to x.
	bestCol := 0
	bestDist := dist(line.XOff, x)
	advance := line.XOff
	col := 0
	for _, g := range line.Glyphs {
		advance += g.Advance
		col += int(g.Runes)
		if col > maxCol(line) {
			break
		}
		if d := dist(advance, x); d < bestDist {
			bestDist = d
			bestCol = col
		}
	}
	return v.closestToRune(line.RuneOff + bestCol)
}

// locate returns regions covering the runes of [startRune, endRune).
// The returned regions have their Bounds relative to the provided
// viewport.
func (v *TextView) locate(viewport image.Rectangle, startRune, endRune int, regions []Region) []Region {
	v.makeValid()
	regions = regions[:0]
	if startRune > endRune {
		startRune, endRune = endRune, startRune
	}

	caretStart := v.closestToRune(startRune)
	caretEnd := v.closestToRune(endRune)

	for lineIdx := caretStart.line; lineIdx <= caretEnd.line && lineIdx < len(v.layout.Lines); lineIdx++ {
		line := v.layout.Lines[lineIdx]
		if line.YOff+line.Descent.Ceil() < viewport.Min.Y {
			continue
		}
		if line.YOff-line.Ascent.Ceil() > viewport.Max.Y {
			break
		}

		startX := line.XOff
		if lineIdx == caretStart.line {
			startX = caretStart.x
		}
		endX := line.XOff + line.Width
		if lineIdx == caretEnd.line {
			endX = caretEnd.x
		}
		if startX > endX {
			startX, endX = endX, startX
		}

		regions = append(regions, Region{
			Bounds: image.Rectangle{
				Min: image.Pt(startX.Round(), line.YOff-line.Ascent.Ceil()),
				Max: image.Pt(endX.Round(), line.YOff+line.Descent.Floor()),
			}.Sub(viewport.Min),
			Baseline: line.Descent.Floor(),
		})
	}
	return regions
}

// Regions returns visible regions covering the rune range [start, end).
func (v *TextView) Regions(start, end int, regions []Region) []Region {
	viewport := image.Rectangle{
		Min: v.scrollOff,
		Max: v.viewSize.Add(v.scrollOff),
	}
	return v.locate(viewport, start, end, regions)
}

func dist(a, b fixed.Int26_6) fixed.Int26_6 {
	if a > b {
		return a - b
	}
	return b - a
}
