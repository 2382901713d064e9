package decoration

import (
	"testing"

	"gioui.org/op"
)

func TestInsertDecoration(t *testing.T) {
	d := NewDecorationTree()

	color := op.CallOp{}

	bg := BackgroundDeco(0, 5, color)
	underline := UnderlineDeco(0, 6, color)
	squiggle := SquiggleDeco(6, 9, color)
	strikethrough := StrikethroughDeco(11, 15, color)
	box := BoxDeco(16, 20, color)

	d.Insert(bg, underline, squiggle, strikethrough, box)

	all := d.QueryRange(0, 20)
	if len(all) != 5 {
		t.Fail()
	}
}

func TestRemoveDecorationBySource(t *testing.T) {
	d := NewDecorationTree()

	color := op.CallOp{}

	bg := BackgroundDeco(0, 5, color)
	bg.Source = "selection"
	underline := UnderlineDeco(0, 6, color)
	squiggle := SquiggleDeco(6, 9, color)
	strikethrough := StrikethroughDeco(11, 15, color)
	box := BoxDeco(16, 20, color)
	box.Source = "selection"

	d.Insert(bg, underline, squiggle, strikethrough, box)

	d.RemoveBySource("selection")
	if v := d.QueryRange(0, 5); len(v) != 1 {
		t.Fail()
	}

	if v := d.QueryRange(16, 20); len(v) > 0 {
		t.Fail()
	}
}

func TestRemoveBySourceKeepsSharedRange(t *testing.T) {
	d := NewDecorationTree()

	match := BackgroundDeco(2, 8, op.CallOp{})
	match.Source = "search"
	diagnostic := SquiggleDeco(2, 8, op.CallOp{})
	diagnostic.Source = "diagnostics"

	d.Insert(match, diagnostic)

	d.RemoveBySource("search")
	kept := d.QueryRange(2, 8)
	if len(kept) != 1 {
		t.FailNow()
	}
	if kept[0].Source != "diagnostics" {
		t.Fail()
	}
}

func TestClearDecorations(t *testing.T) {
	d := NewDecorationTree()
	d.Insert(BackgroundDeco(0, 5, op.CallOp{}))
	d.Clear()

	if v := d.QueryRange(0, 5); len(v) != 0 {
		t.Fail()
	}
}
