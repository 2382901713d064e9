package gvsource

import (
	"errors"
	"strings"
	"testing"

	"github.com/oligo/gvsource/highlight"
	"github.com/stretchr/testify/require"
)

func TestNewCodeEditor(t *testing.T) {
	ed, err := NewCodeEditor("go", "github-dark")
	require.NoError(t, err)
	require.Equal(t, "Go", ed.Language())
	require.Equal(t, "github-dark", ed.Theme())
	require.False(t, ed.Highlighter().Plaintext())
}

func TestNewCodeEditorUnknownTheme(t *testing.T) {
	_, err := NewCodeEditor("go", "no-such-theme")
	require.Error(t, err)
	require.True(t, errors.Is(err, highlight.ErrThemeNotFound))
}

func TestNewCodeEditorLanguagePolicy(t *testing.T) {
	// The default policy falls back to plain text.
	ed, err := NewCodeEditor("no-such-language", "github-dark")
	require.NoError(t, err)
	require.True(t, ed.Highlighter().Plaintext())

	_, err = NewCodeEditor("no-such-language", "github-dark",
		WithLanguagePolicy(highlight.LanguageStrict))
	require.True(t, errors.Is(err, highlight.ErrLanguageNotFound))
}

func TestEditorEditing(t *testing.T) {
	ed, err := NewCodeEditor("go", "github-dark")
	require.NoError(t, err)

	ed.SetText("package main\n")
	require.Equal(t, "package main\n", ed.Text())
	start, end := ed.Selection()
	require.Equal(t, 0, start)
	require.Equal(t, 0, end)

	ed.SetCaret(8, 8)
	inserted := ed.Insert("my")
	require.Equal(t, 2, inserted)
	require.Equal(t, "package mymain\n", ed.Text())

	deleted := ed.Delete(-2)
	require.Equal(t, 2, deleted)
	require.Equal(t, "package main\n", ed.Text())

	ed.Replace(0, 7, "module")
	require.Equal(t, "module main\n", ed.Text())
}

func TestEditorReadOnly(t *testing.T) {
	ed, err := NewCodeEditor("go", "github-dark", WithReadOnly(true))
	require.NoError(t, err)

	ed.SetText("const a = 1\n")
	require.Zero(t, ed.Insert("x"))
	require.Zero(t, ed.Delete(-1))
	require.Zero(t, ed.Replace(0, 5, ""))
	require.Equal(t, "const a = 1\n", ed.Text())
}

func TestProjectInstallsTokens(t *testing.T) {
	ed, err := NewCodeEditor("go", "github-dark")
	require.NoError(t, err)

	ed.SetText("package main\n\nfunc main() {}\n")
	ed.project()

	require.NotEmpty(t, ed.tokens)
	// Tokens are ascending, non-overlapping and inside the buffer.
	// Default styled text contributes no tokens, so gaps are expected.
	off := 0
	keyword := false
	for _, tok := range ed.tokens {
		require.GreaterOrEqual(t, tok.Start, off)
		require.Greater(t, tok.End, tok.Start)
		off = tok.End

		require.True(t, ed.scheme.HasTokenType(tok.TokenType), tok.TokenType)
		keyword = keyword || strings.HasPrefix(tok.TokenType, "Keyword")
	}
	require.LessOrEqual(t, off, ed.Len())
	require.True(t, keyword, "expected a keyword token for package/func")
}

func TestProjectIsDeterministic(t *testing.T) {
	ed, err := NewCodeEditor("go", "github-dark")
	require.NoError(t, err)

	ed.SetText("var x = \"hi\" // trailing\n")
	ed.project()
	first := append([]string(nil), tokenTypes(ed)...)

	ed.project()
	require.Equal(t, first, tokenTypes(ed))
}

func tokenTypes(ed *CodeEditor) []string {
	types := make([]string, 0, len(ed.tokens))
	for _, tok := range ed.tokens {
		types = append(types, tok.TokenType)
	}
	return types
}

func TestSetMatches(t *testing.T) {
	ed, err := NewCodeEditor("go", "github-dark")
	require.NoError(t, err)
	ed.SetText("aba aba aba")

	ed.SetMatches([]TextRange{{0, 3}, {4, 7}, {8, 11}})
	require.Equal(t, 0, ed.currentMatch)

	ed.NextMatch(1)
	start, end := ed.Selection()
	require.Equal(t, 4, start)
	require.Equal(t, 7, end)

	// Out of range indices are ignored.
	ed.NextMatch(5)
	require.Equal(t, 1, ed.currentMatch)

	ed.SetMatches(nil)
	require.Zero(t, ed.SelectionLen())
}

func TestCodeViewer(t *testing.T) {
	v, err := NewCodeViewer("go", "github-dark")
	require.NoError(t, err)

	v.SetText("func f() {}\n")
	require.Equal(t, "func f() {}\n", v.Text())
	require.Equal(t, "Go", v.Language())

	// The embedded editor rejects edits.
	require.Zero(t, v.Editor().Insert("x"))
	require.Equal(t, "func f() {}\n", v.Text())
}
