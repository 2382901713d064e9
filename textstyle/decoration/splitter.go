package decoration

import (
	"cmp"
	"slices"

	lt "github.com/oligo/gvsource/internal/layout"
	"github.com/oligo/gvsource/internal/painter"
	"golang.org/x/image/math/fixed"
)

// Split implements painter.LineSplitter. Unlike syntax tokens,
// decorations may overlap, so each decoration extracts its own run
// from the line instead of advancing a shared cursor. Glyphs outside
// of any decoration produce no runs as the text itself is painted by
// the syntax pass.
func (d *DecorationTree) Split(line *lt.Line, runs *[]painter.RenderRun) {
	*runs = (*runs)[:0]

	decos := d.QueryRange(line.RuneOff, line.RuneOff+line.Runes)
	if len(decos) == 0 {
		return
	}

	slices.SortStableFunc(decos, func(a, b Decoration) int {
		if c := cmp.Compare(a.Priority, b.Priority); c != 0 {
			return c
		}
		return cmp.Compare(a.Start, b.Start)
	})

	for _, deco := range decos {
		if run, ok := extractRun(line, deco); ok {
			*runs = append(*runs, run)
		}
	}
}

// extractRun collects the glyphs of the line covered by the
// decoration, clamped to the line boundaries.
func extractRun(line *lt.Line, deco Decoration) (painter.RenderRun, bool) {
	start := max(deco.Start, line.RuneOff)
	end := min(deco.End, line.RuneOff+line.Runes)
	if start >= end {
		return painter.RenderRun{}, false
	}

	run := painter.RenderRun{
		Bg:            deco.Background,
		Underline:     deco.Underline,
		Squiggle:      deco.Squiggle,
		Strikethrough: deco.Strikethrough,
		Border:        deco.Border,
	}

	runeOff := line.RuneOff
	advance := fixed.I(0)
	for _, g := range line.Glyphs {
		if runeOff >= end {
			break
		}
		if runeOff >= start {
			if run.Size() == 0 {
				run.Offset = advance
			}
			run.Glyphs = append(run.Glyphs, g)
		}
		advance += g.Advance
		runeOff += int(g.Runes)
	}

	return run, run.Size() > 0
}
