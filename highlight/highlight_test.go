package highlight

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnknownThemeFailsFast(t *testing.T) {
	h, err := New("go", "definitely-not-a-theme")
	require.ErrorIs(t, err, ErrThemeNotFound)
	require.Nil(t, h)
}

func TestUnknownLanguageFallback(t *testing.T) {
	for _, ident := range []string{"made-up-language-xyz", ""} {
		h, err := New(ident, "github")
		require.NoError(t, err, ident)
		require.True(t, h.Plaintext())

		proj := h.Project("some plain words\nsecond line\n")
		for _, line := range proj.Lines {
			for _, run := range line {
				require.Equal(t, h.Foreground(), run.Color)
			}
		}
		require.Empty(t, proj.Spans)
	}
}

func TestUnknownLanguageStrict(t *testing.T) {
	h, err := New("made-up-language-xyz", "github", WithLanguagePolicy(LanguageStrict))
	require.ErrorIs(t, err, ErrLanguageNotFound)
	require.Nil(t, h)
}

func TestLanguageLookup(t *testing.T) {
	for _, ident := range []string{"go", ".go", "Go"} {
		h, err := New(ident, "github", WithLanguagePolicy(LanguageStrict))
		require.NoError(t, err, ident)
		require.Equal(t, "Go", h.Language())
		require.False(t, h.Plaintext())
	}
}

func TestThemeDeterminism(t *testing.T) {
	const src = "package main\n\nfunc main() {\n\tprintln(\"hi\")\n}\n"

	a, err := New("go", "github-dark")
	require.NoError(t, err)
	b, err := New("go", "github-dark")
	require.NoError(t, err)

	require.Equal(t, a.Project(src), b.Project(src))
}

func TestThemeColors(t *testing.T) {
	h, err := New("go", "github-dark")
	require.NoError(t, err)

	require.NotEqual(t, h.Foreground(), h.Background())
	require.EqualValues(t, 0xff, h.Foreground().A)
	require.EqualValues(t, 0xff, h.Background().A)
}
