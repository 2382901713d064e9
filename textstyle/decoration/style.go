package decoration

import (
	"gioui.org/op"

	"github.com/oligo/gvsource/internal/painter"
)

// A Decoration styles a range of text independently of the syntax
// token styles, such as a search match highlight or a diagnostic
// squiggle. Overlapping decorations are painted in priority order.
type Decoration struct {
	// Source identifies the producer of the decoration so that
	// decorations can be removed as a group. It must be a comparable
	// value.
	Source any
	// Priority orders overlapping decorations. Decorations with a
	// higher priority are painted later.
	Priority int
	// Start and End are offsets of the decorated range in runes in
	// the document.
	Start, End int

	// Background fills the bounding box of the decorated glyphs.
	Background    op.CallOp
	Underline     *painter.StrokeStyle
	Squiggle      *painter.StrokeStyle
	Strikethrough *painter.StrokeStyle
	Border        *painter.StrokeStyle
}

// Range returns the start and end offsets of the decoration.
func (d Decoration) Range() (int, int) {
	return d.Start, d.End
}

func BackgroundDeco(start, end int, color op.CallOp) Decoration {
	return Decoration{
		Start:      start,
		End:        end,
		Background: color,
	}
}

func UnderlineDeco(start, end int, color op.CallOp) Decoration {
	return Decoration{
		Start:     start,
		End:       end,
		Underline: &painter.StrokeStyle{Color: color},
	}
}

func SquiggleDeco(start, end int, color op.CallOp) Decoration {
	return Decoration{
		Start:    start,
		End:      end,
		Squiggle: &painter.StrokeStyle{Color: color},
	}
}

func StrikethroughDeco(start, end int, color op.CallOp) Decoration {
	return Decoration{
		Start:         start,
		End:           end,
		Strikethrough: &painter.StrokeStyle{Color: color},
	}
}

func BoxDeco(start, end int, color op.CallOp) Decoration {
	return Decoration{
		Start:  start,
		End:    end,
		Border: &painter.StrokeStyle{Color: color},
	}
}
