package decoration

import (
	"cmp"
	"errors"

	"github.com/rdleal/intervalst/interval"
)

// DecorationTree leverages a interval tree to stores overlapping decorations.
type DecorationTree struct {
	tree *interval.MultiValueSearchTree[Decoration, int]
}

func NewDecorationTree() *DecorationTree {
	tree := interval.NewMultiValueSearchTree[Decoration](func(a, b int) int {
		return cmp.Compare(a, b)
	})

	return &DecorationTree{
		tree: tree,
	}
}

// Insert adds decoration ranges. Start and end offsets are in runes in
// the document.
func (d *DecorationTree) Insert(decos ...Decoration) {
	for _, deco := range decos {
		d.tree.Insert(deco.Start, deco.End, deco)
	}
}

// Query returns all styles at a given character offset
func (d *DecorationTree) Query(pos int) []Decoration {
	all, _ := d.tree.AllIntersections(pos, pos+1)
	return all
}

// QueryRange returns all segments overlapping the range
func (d *DecorationTree) QueryRange(start, end int) []Decoration {
	if start >= end {
		return nil
	}

	all, _ := d.tree.AllIntersections(start, end)
	return all
}

// RemoveBySource removes all decorations inserted with the given
// source. Sources must be comparable values.
func (d *DecorationTree) RemoveBySource(source any) error {
	maxVals, found := d.tree.MaxEnd()
	if !found {
		return errors.New("no decoration found")
	}

	end := maxVals[0].End
	all, found := d.tree.AllIntersections(0, end)
	if !found {
		return errors.New("no decoration found")
	}

	seen := make(map[[2]int]bool)
	for _, deco := range all {
		if deco.Source != source {
			continue
		}

		key := [2]int{deco.Start, deco.End}
		if seen[key] {
			continue
		}
		seen[key] = true

		d.tree.Delete(deco.Start, deco.End)
		// Deleting drops every decoration sharing the interval, so the
		// survivors of the interval have to be put back.
		for _, kept := range all {
			if kept.Source != source && kept.Start == deco.Start && kept.End == deco.End {
				d.tree.Insert(kept.Start, kept.End, kept)
			}
		}
	}

	return nil
}

// Clear removes all decorations.
func (d *DecorationTree) Clear() {
	d.tree = interval.NewMultiValueSearchTree[Decoration](func(a, b int) int {
		return cmp.Compare(a, b)
	})
}
