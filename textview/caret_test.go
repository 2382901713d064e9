package textview

import (
	"fmt"
	"testing"
)

func TestReplaceAdjustsCaret(t *testing.T) {
	testcases := []struct {
		doc        string
		caret      [2]int
		replace    [3]interface{} // start, end, text
		wantText   string
		wantCaret  [2]int
		wantLength int
	}{
		// Insertion before the caret shifts it right.
		{
			doc:        "hello world",
			caret:      [2]int{6, 6},
			replace:    [3]interface{}{0, 0, "oh "},
			wantText:   "oh hello world",
			wantCaret:  [2]int{9, 9},
			wantLength: 3,
		},
		// Deletion covering the caret collapses it onto the edit.
		{
			doc:        "hello world",
			caret:      [2]int{8, 8},
			replace:    [3]interface{}{5, 11, ""},
			wantText:   "hello",
			wantCaret:  [2]int{5, 5},
			wantLength: 0,
		},
		// Replacement after the caret leaves it alone.
		{
			doc:        "hello world",
			caret:      [2]int{2, 2},
			replace:    [3]interface{}{6, 11, "gvsource"},
			wantText:   "hello gvsource",
			wantCaret:  [2]int{2, 2},
			wantLength: 8,
		},
	}

	for i, tc := range testcases {
		t.Run(fmt.Sprintf("case %d", i), func(t *testing.T) {
			view := NewTextView()
			view.SetText(tc.doc)
			view.SetCaret(tc.caret[0], tc.caret[1])

			inserted := view.Replace(tc.replace[0].(int), tc.replace[1].(int), tc.replace[2].(string))
			if inserted != tc.wantLength {
				t.Errorf("inserted %d runes, want %d", inserted, tc.wantLength)
			}
			if got := view.Text(); got != tc.wantText {
				t.Errorf("text %q, want %q", got, tc.wantText)
			}
			start, end := view.Selection()
			if start != tc.wantCaret[0] || end != tc.wantCaret[1] {
				t.Errorf("caret (%d, %d), want (%d, %d)", start, end, tc.wantCaret[0], tc.wantCaret[1])
			}
		})
	}
}

func TestSetCaretClamps(t *testing.T) {
	view := NewTextView()
	view.SetText("short")

	view.SetCaret(100, -3)
	start, end := view.Selection()
	if start != 5 || end != 0 {
		t.Fatalf("caret (%d, %d), want (5, 0)", start, end)
	}
	if view.SelectionLen() != 5 {
		t.Fatalf("selection length %d, want 5", view.SelectionLen())
	}

	view.ClearSelection()
	if view.SelectionLen() != 0 {
		t.Fatal("selection not cleared")
	}
}
