package textview

import (
	"fmt"
	"testing"
)

func TestReadWord(t *testing.T) {
	view := NewTextView()

	doc := "hello,world!!!"

	testcases := []struct {
		position int
		want     struct {
			word   string
			offset int
		}
	}{
		{
			position: 0,
			want: struct {
				word   string
				offset int
			}{word: "hello", offset: 0},
		},
		{
			position: 2,
			want: struct {
				word   string
				offset int
			}{word: "hello", offset: 2},
		},
		{
			position: 5,
			want: struct {
				word   string
				offset int
			}{word: "hello", offset: 5},
		},
		{
			position: 6,
			want: struct {
				word   string
				offset int
			}{word: "world", offset: 0},
		},
		{
			position: 11,
			want: struct {
				word   string
				offset int
			}{word: "world", offset: 5},
		},
		{
			position: 12,
			want: struct {
				word   string
				offset int
			}{word: "", offset: 0},
		},
	}

	for i, tc := range testcases {
		t.Run(fmt.Sprintf("case %d", i), func(t *testing.T) {
			view.SetText(doc)
			view.SetCaret(tc.position, tc.position)
			w, o := view.ReadWord()
			if w != tc.want.word || o != tc.want.offset {
				t.Logf("want: [word: %s, offset: %d], actual: [word: %s, offset: %d]", tc.want.word, tc.want.offset, w, o)
				t.Fail()
			}
		})
	}
}

func TestSelectWord(t *testing.T) {
	view := NewTextView()
	view.SetText("foo bar")

	view.SetCaret(5, 5)
	view.SelectWord()
	if got := view.SelectedText(); got != "bar" {
		t.Fatalf("selected %q, want %q", got, "bar")
	}

	// A caret in the gap between words selects the gap.
	view.SetCaret(3, 3)
	view.SelectWord()
	if got := view.SelectedText(); got != " " {
		t.Fatalf("selected %q, want a single space", got)
	}
}

func TestSelectParagraph(t *testing.T) {
	view := NewTextView()
	view.SetText("first line\nsecond line\n")

	view.SetCaret(13, 13)
	view.SelectParagraph()
	if got := view.SelectedText(); got != "second line" {
		t.Fatalf("selected %q, want %q", got, "second line")
	}
}
