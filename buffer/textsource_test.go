package buffer

import (
	"fmt"
	"testing"
)

func TestLineIndex(t *testing.T) {
	testcases := []struct {
		text      string
		wantLines int
		wantSpans [][2]int // start, runes
	}{
		{text: "", wantLines: 0},
		{text: "a", wantLines: 1, wantSpans: [][2]int{{0, 1}}},
		{text: "a\n", wantLines: 1, wantSpans: [][2]int{{0, 2}}},
		{text: "a\nb", wantLines: 2, wantSpans: [][2]int{{0, 2}, {2, 1}}},
		{text: "a\n\nb\n", wantLines: 3, wantSpans: [][2]int{{0, 2}, {2, 1}, {3, 2}}},
		{text: "héllo\nwörld", wantLines: 2, wantSpans: [][2]int{{0, 6}, {6, 5}}},
	}

	for i, tc := range testcases {
		t.Run(fmt.Sprintf("case %d", i), func(t *testing.T) {
			src := NewTextSource()
			src.SetText(tc.text)

			if src.Lines() != tc.wantLines {
				t.Logf("want %d lines, got %d", tc.wantLines, src.Lines())
				t.FailNow()
			}
			for li, want := range tc.wantSpans {
				start, runes, err := src.LineSpan(li)
				if err != nil {
					t.Fatal(err)
				}
				if start != want[0] || runes != want[1] {
					t.Logf("line %d: want span (%d, %d), got (%d, %d)", li, want[0], want[1], start, runes)
					t.Fail()
				}
			}
		})
	}
}

func TestReplace(t *testing.T) {
	testcases := []struct {
		text         string
		start, end   int
		insert       string
		want         string
		wantInserted int
	}{
		{text: "hello", start: 0, end: 0, insert: "ab", want: "abhello", wantInserted: 2},
		{text: "hello", start: 1, end: 3, insert: "", want: "hlo", wantInserted: 0},
		{text: "hello", start: 3, end: 1, insert: "x", want: "hxlo", wantInserted: 1},
		{text: "hello", start: 5, end: 5, insert: "\nworld", want: "hello\nworld", wantInserted: 6},
		{text: "hello", start: 0, end: 99, insert: "z", want: "z", wantInserted: 1},
		{text: "héllo", start: 1, end: 2, insert: "e", want: "hello", wantInserted: 1},
	}

	for i, tc := range testcases {
		t.Run(fmt.Sprintf("case %d", i), func(t *testing.T) {
			src := NewTextSource()
			src.SetText(tc.text)

			inserted := src.Replace(tc.start, tc.end, tc.insert)
			if inserted != tc.wantInserted {
				t.Logf("want %d runes inserted, got %d", tc.wantInserted, inserted)
				t.Fail()
			}
			if got := src.Text(); got != tc.want {
				t.Logf("want %q, got %q", tc.want, got)
				t.Fail()
			}
		})
	}
}

func TestReplaceReindexes(t *testing.T) {
	src := NewTextSource()
	src.SetText("one\ntwo")

	src.Replace(3, 3, "\nmid")
	if src.Text() != "one\nmid\ntwo" {
		t.Fail()
	}
	if src.Lines() != 3 {
		t.Fail()
	}

	line, off, err := src.ReadLine(1)
	if err != nil {
		t.Fatal(err)
	}
	if line != "mid\n" || off != 4 {
		t.Logf("got line %q at %d", line, off)
		t.Fail()
	}
}

func TestLineAt(t *testing.T) {
	src := NewTextSource()
	src.SetText("ab\ncd\nef")

	testcases := []struct {
		off  int
		want int
	}{
		{off: 0, want: 0},
		{off: 2, want: 0},
		{off: 3, want: 1},
		{off: 5, want: 1},
		{off: 6, want: 2},
		{off: 99, want: 2},
	}

	for i, tc := range testcases {
		t.Run(fmt.Sprintf("case %d", i), func(t *testing.T) {
			if got := src.LineAt(tc.off); got != tc.want {
				t.Logf("want line %d, got %d", tc.want, got)
				t.Fail()
			}
		})
	}
}
