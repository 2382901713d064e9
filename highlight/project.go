package highlight

import (
	"image/color"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
)

// StyledRun is a fragment of one line sharing a single foreground
// color. Concatenating the runs of all lines of a Projection yields
// the projected text exactly, line endings included.
type StyledRun struct {
	Text  string
	Color color.NRGBA
}

// Span is a styled token range. The rendering layer turns spans into
// its own styling primitives.
type Span struct {
	// TokenType is the chroma token type name, e.g. "KeywordConstant".
	TokenType string
	// Start and End are rune offsets into the projected text. End is
	// exclusive.
	Start, End int
	Style      SpanStyle
}

// Projection is the outcome of one highlighting pass.
type Projection struct {
	// Lines holds the styled runs of every line in order. A line
	// keeps its trailing line break inside its last run.
	Lines [][]StyledRun
	// Spans are the styled ranges of the whole text, ascending by
	// start offset. Default-styled text and degraded lines contribute
	// no spans.
	Spans []Span
}

// Text reassembles the projected text from the runs.
func (p *Projection) Text() string {
	var sb strings.Builder
	for _, line := range p.Lines {
		for _, run := range line {
			sb.WriteString(run.Text)
		}
	}
	return sb.String()
}

// styledFragment is a piece of a token clipped to one line.
type styledFragment struct {
	text  string
	ttype chroma.TokenType
}

// tokenCursor walks a token stream in byte steps.
type tokenCursor struct {
	tokens []chroma.Token
	idx    int
	// off is the byte offset into the value of the current token.
	off int
}

// takeLine consumes up to length bytes from the stream, clipping
// tokens at the line boundary. Multi-line tokens keep their type on
// every fragment, which is what carries block comment styling onto
// continuation lines.
func (c *tokenCursor) takeLine(length int) []styledFragment {
	var frags []styledFragment

	got := 0
	for got < length && c.idx < len(c.tokens) {
		rest := c.tokens[c.idx].Value[c.off:]
		if rest == "" {
			c.idx++
			c.off = 0
			continue
		}

		take := min(len(rest), length-got)
		frags = append(frags, styledFragment{
			text:  rest[:take],
			ttype: c.tokens[c.idx].Type,
		})
		got += take
		c.off += take
		if c.off == len(c.tokens[c.idx].Value) {
			c.idx++
			c.off = 0
		}
	}

	return frags
}

// Project tokenizes text and converts the token stream into per-line
// styled runs. Every call is a full pass: tokenizer state carries
// across lines within the pass and never across passes.
//
// A line whose fragments fail to reassemble its source text degrades
// to a single default-colored run holding the original line. Text
// completeness wins over highlight fidelity.
func (h *Highlighter) Project(text string) *Projection {
	lines := splitLines(text)
	proj := &Projection{Lines: make([][]StyledRun, len(lines))}

	tokens, err := h.tokenizer.Tokenise(text)
	if err != nil {
		logger.Warn("tokenizer failed, falling back to plain lines",
			"language", h.Language(), "err", err)
		for i, line := range lines {
			proj.Lines[i] = []StyledRun{{Text: line, Color: h.foreground}}
		}
		return proj
	}

	cursor := tokenCursor{tokens: tokens}
	runeOff := 0
	defaultStyle := SpanStyle{Foreground: h.foreground}

	for i, line := range lines {
		frags := cursor.takeLine(len(line))
		if !fragmentsMatch(frags, line) {
			logger.Warn("token stream diverged from source, degrading line", "line", i+1)
			proj.Lines[i] = []StyledRun{{Text: line, Color: h.foreground}}
			runeOff += utf8.RuneCountInString(line)
			continue
		}

		runs := make([]StyledRun, 0, len(frags))
		for _, frag := range frags {
			style := h.styleFor(frag.ttype)
			runs = append(runs, StyledRun{Text: frag.text, Color: style.Foreground})

			n := utf8.RuneCountInString(frag.text)
			if style != defaultStyle {
				proj.Spans = append(proj.Spans, Span{
					TokenType: frag.ttype.String(),
					Start:     runeOff,
					End:       runeOff + n,
					Style:     style,
				})
			}
			runeOff += n
		}
		proj.Lines[i] = runs
	}

	return proj
}

// splitLines splits text after every line break, keeping the break
// inside the line. A trailing line break opens no extra line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}

	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// fragmentsMatch reports whether the concatenated fragments equal the
// line byte for byte.
func fragmentsMatch(frags []styledFragment, line string) bool {
	got := 0
	for _, frag := range frags {
		if !strings.HasPrefix(line[got:], frag.text) {
			return false
		}
		got += len(frag.text)
	}
	return got == len(line)
}
