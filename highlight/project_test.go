package highlight

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestRoundTrip(t *testing.T) {
	testcases := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"no newline", "package main"},
		{"trailing newline", "package main\n"},
		{"blank lines", "a\n\n\nb\n"},
		{"lone newline", "\n"},
		{"crlf", "package main\r\nfunc main() {}\r\n"},
		{"unicode", "// héllo 世界\nvar s = \"héllo\"\n"},
		{"block comment", "/* a\n b\n*/\nvar x int\n"},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			h, err := New("go", "github")
			require.NoError(t, err)

			proj := h.Project(tc.text)
			require.Equal(t, tc.text, proj.Text())

			// every line reassembles on its own.
			lines := splitLines(tc.text)
			require.Len(t, proj.Lines, len(lines))
			for i, want := range lines {
				var sb strings.Builder
				for _, run := range proj.Lines[i] {
					sb.WriteString(run.Text)
				}
				require.Equal(t, want, sb.String())
			}
		})
	}
}

func TestRoundTripProperty(t *testing.T) {
	h, err := New("go", "github-dark")
	require.NoError(t, err)

	rapid.Check(t, func(rt *rapid.T) {
		pieces := rapid.SliceOfN(rapid.String(), 0, 12).Draw(rt, "pieces")
		trailing := rapid.Bool().Draw(rt, "trailing")

		text := strings.Join(pieces, "\n")
		if trailing && text != "" {
			text += "\n"
		}

		proj := h.Project(text)
		require.Equal(rt, text, proj.Text())

		// spans stay ordered, non overlapping and inside the text.
		total := utf8.RuneCountInString(text)
		last := 0
		for _, span := range proj.Spans {
			require.LessOrEqual(rt, last, span.Start)
			require.Less(rt, span.Start, span.End)
			require.LessOrEqual(rt, span.End, total)
			last = span.End
		}
	})
}

func TestBlockCommentSpansLines(t *testing.T) {
	h, err := New("go", "github")
	require.NoError(t, err)

	proj := h.Project("/* first\nsecond */\npackage main\n")
	require.Len(t, proj.Lines, 3)

	commentColor := proj.Lines[0][0].Color
	require.NotEqual(t, h.Foreground(), commentColor)
	// the continuation line keeps the comment style from line one.
	require.Equal(t, commentColor, proj.Lines[1][0].Color)
}

func TestProjectIdempotent(t *testing.T) {
	const src = "func add(a, b int) int {\n\treturn a + b\n}\n"

	h, err := New("go", "github")
	require.NoError(t, err)

	first := h.Project(src)
	second := h.Project(src)
	require.Equal(t, first, second)
}

// corruptTokenizer rewrites the token bytes covering [from, to) while
// preserving the byte counts, so only the targeted line diverges.
type corruptTokenizer struct {
	inner    Tokenizer
	from, to int
}

func (c corruptTokenizer) Tokenise(text string) ([]chroma.Token, error) {
	tokens, err := c.inner.Tokenise(text)
	if err != nil {
		return nil, err
	}

	out := make([]chroma.Token, len(tokens))
	copy(out, tokens)

	off := 0
	for i, tok := range out {
		end := off + len(tok.Value)
		if off < c.to && end > c.from {
			b := []byte(tok.Value)
			for j := range b {
				if off+j >= c.from && off+j < c.to {
					b[j] = 'X'
				}
			}
			out[i].Value = string(b)
		}
		off = end
	}
	return out, nil
}

type failingTokenizer struct{}

func (failingTokenizer) Tokenise(string) ([]chroma.Token, error) {
	return nil, errors.New("tokenizer exploded")
}

func TestDegradedLineKeepsText(t *testing.T) {
	const src = "var a int\nvar b int\nvar c int\n"
	start := strings.Index(src, "var b")
	end := start + len("var b int\n")

	clean, err := New("go", "github")
	require.NoError(t, err)

	faulty, err := New("go", "github", WithTokenizer(corruptTokenizer{
		inner: chromaTokenizer{lexer: chroma.Coalesce(lexers.Get("go"))},
		from:  start,
		to:    end,
	}))
	require.NoError(t, err)

	want := clean.Project(src)
	got := faulty.Project(src)

	// the corrupted line degrades to one run holding the original text.
	require.Len(t, got.Lines[1], 1)
	require.Equal(t, "var b int\n", got.Lines[1][0].Text)
	require.Equal(t, faulty.Foreground(), got.Lines[1][0].Color)

	// adjacent lines keep their highlighting.
	require.Equal(t, want.Lines[0], got.Lines[0])
	require.Equal(t, want.Lines[2], got.Lines[2])

	// nothing is lost.
	require.Equal(t, src, got.Text())
}

func TestTokenizerErrorDegradesAllLines(t *testing.T) {
	h, err := New("go", "github", WithTokenizer(failingTokenizer{}))
	require.NoError(t, err)

	const src = "one\ntwo\nthree"
	proj := h.Project(src)

	require.Equal(t, src, proj.Text())
	require.Empty(t, proj.Spans)
	for _, line := range proj.Lines {
		require.Len(t, line, 1)
	}
}

func TestSpansAlignWithRunes(t *testing.T) {
	const src = "// ä comment\nvar x = 1\n"

	h, err := New("go", "github")
	require.NoError(t, err)

	proj := h.Project(src)
	require.NotEmpty(t, proj.Spans)

	runes := []rune(src)
	for _, span := range proj.Spans {
		require.LessOrEqual(t, span.End, len(runes))
		// a span over the comment must cover the comment text.
		if span.Start == 0 {
			require.Equal(t, "// ä comment", strings.TrimSuffix(string(runes[span.Start:span.End]), "\n"))
		}
	}
}
