package textview

import (
	"unicode"
)

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// ReadWord reads the word the caret is in or touching, returning the
// word and the offset of the caret within it. A caret at the boundary
// of two words belongs to the word it ends.
func (v *TextView) ReadWord() (word string, offset int) {
	caret := clamp(v.caret.start, 0, v.src.Len())

	start := caret
	for start > 0 && isWordRune(v.src.RuneBefore(start)) {
		start--
	}
	end := caret
	for end < v.src.Len() && isWordRune(v.src.RuneAt(end)) {
		end++
	}

	return v.src.Substring(start, end), caret - start
}

// SelectWord selects the word around the caret, or the whitespace gap
// when the caret touches no word.
func (v *TextView) SelectWord() {
	caret := clamp(v.caret.start, 0, v.src.Len())

	pred := isWordRune
	if word, _ := v.ReadWord(); word == "" {
		pred = func(r rune) bool { return unicode.IsSpace(r) && r != '\n' }
	}

	start := caret
	for start > 0 && pred(v.src.RuneBefore(start)) {
		start--
	}
	end := caret
	for end < v.src.Len() && pred(v.src.RuneAt(end)) {
		end++
	}
	v.SetCaret(end, start)
}

// SelectParagraph selects the logical line around the caret, excluding
// the trailing line break.
func (v *TextView) SelectParagraph() {
	if v.src.Lines() == 0 {
		return
	}

	idx := v.src.LineAt(clamp(v.caret.start, 0, v.src.Len()))
	start, runes, err := v.src.LineSpan(idx)
	if err != nil {
		return
	}

	end := start + runes
	if runes > 0 && v.src.RuneAt(end-1) == '\n' {
		end--
	}
	v.SetCaret(end, start)
}

// paragraphBaselines returns the baseline Y offset of the first visual
// line of every paragraph, for the line number gutter.
func (v *TextView) paragraphBaselines() []int32 {
	v.makeValid()
	baselines := make([]int32, 0, len(v.layout.Paragraphs))
	for _, p := range v.layout.Paragraphs {
		if p.StartLine < len(v.layout.Lines) {
			baselines = append(baselines, int32(v.layout.Lines[p.StartLine].YOff))
		}
	}
	return baselines
}
