package buffer

import (
	"errors"
	"unicode/utf8"
)

const lineBreak = '\n'

var ErrLineOutOfRange = errors.New("line out of range")

// lineSpan records the position of a paragraph in the document. A
// paragraph covers runes [start, start+runes) and includes its
// terminating line break, if any.
type lineSpan struct {
	start int
	runes int
}

// TextSource is a rune addressed text container with a line index.
// All offsets of the public API are in runes. A trailing line break
// does not open a new indexed line; the layout layer derives the final
// empty line from the break itself.
type TextSource struct {
	runes []rune
	lines []lineSpan
}

func NewTextSource() *TextSource {
	return &TextSource{}
}

// SetText replaces the whole document.
func (s *TextSource) SetText(text string) {
	s.runes = append(s.runes[:0], []rune(text)...)
	s.reindex()
}

// Text returns the document content.
func (s *TextSource) Text() string {
	return string(s.runes)
}

// Len returns the document length in runes.
func (s *TextSource) Len() int {
	return len(s.runes)
}

// Lines returns the number of indexed lines. The empty document has
// zero lines.
func (s *TextSource) Lines() int {
	return len(s.lines)
}

// ReadLine returns the text of line i including its terminating line
// break, and the rune offset of its first rune.
func (s *TextSource) ReadLine(i int) (string, int, error) {
	if i < 0 || i >= len(s.lines) {
		return "", 0, ErrLineOutOfRange
	}

	sp := s.lines[i]
	return string(s.runes[sp.start : sp.start+sp.runes]), sp.start, nil
}

// LineSpan returns the rune offset and rune length of line i.
func (s *TextSource) LineSpan(i int) (start, runes int, err error) {
	if i < 0 || i >= len(s.lines) {
		return 0, 0, ErrLineOutOfRange
	}

	sp := s.lines[i]
	return sp.start, sp.runes, nil
}

// LineAt returns the index of the line containing the rune offset.
// Offsets beyond the document map to the last line.
func (s *TextSource) LineAt(runeOff int) int {
	if len(s.lines) == 0 {
		return 0
	}

	lo, hi := 0, len(s.lines)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if s.lines[mid].start <= runeOff {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// Substring returns the text of the rune range [start, end). The range
// is clamped to the document, and swapped if reversed.
func (s *TextSource) Substring(start, end int) string {
	if start > end {
		start, end = end, start
	}
	start = clamp(start, 0, len(s.runes))
	end = clamp(end, 0, len(s.runes))
	return string(s.runes[start:end])
}

// Replace substitutes the rune range [start, end) with text, returning
// the number of runes inserted. The range is clamped to the document,
// and swapped if reversed.
func (s *TextSource) Replace(start, end int, text string) int {
	if start > end {
		start, end = end, start
	}
	start = clamp(start, 0, len(s.runes))
	end = clamp(end, 0, len(s.runes))

	inserted := []rune(text)
	tail := append(inserted, s.runes[end:]...)
	s.runes = append(s.runes[:start], tail...)
	s.reindex()
	return len(inserted)
}

// RuneAt returns the rune at the offset, or utf8.RuneError when the
// offset is out of range.
func (s *TextSource) RuneAt(off int) rune {
	if off < 0 || off >= len(s.runes) {
		return utf8.RuneError
	}
	return s.runes[off]
}

// RuneBefore returns the rune preceding the offset, or utf8.RuneError
// when there is none.
func (s *TextSource) RuneBefore(off int) rune {
	return s.RuneAt(off - 1)
}

func (s *TextSource) reindex() {
	s.lines = s.lines[:0]

	start := 0
	for i, r := range s.runes {
		if r == lineBreak {
			s.lines = append(s.lines, lineSpan{start: start, runes: i + 1 - start})
			start = i + 1
		}
	}
	if start < len(s.runes) {
		s.lines = append(s.lines, lineSpan{start: start, runes: len(s.runes) - start})
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
