// Package highlight projects source text into per-line styled runs by
// delegating tokenization and color assignment to chroma. It knows
// nothing about layout or rendering. The widget packages consume its
// output and map it onto their own styling primitives.
package highlight

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Defaults used by the convenience constructors of the widget layer.
const (
	DefaultLanguage = "go"
	DefaultTheme    = "github-dark"
)

var (
	// ErrThemeNotFound reports a theme name absent from the style
	// registry. Theme lookup failures are construction errors.
	ErrThemeNotFound = errors.New("theme not found")
	// ErrLanguageNotFound reports a language identifier that matches
	// no registered lexer. Only returned under LanguageStrict.
	ErrLanguageNotFound = errors.New("language not found")
)

// LanguagePolicy controls how an unknown language identifier is
// handled at construction time.
type LanguagePolicy uint8

const (
	// LanguageFallback silently highlights unknown languages as plain
	// text.
	LanguageFallback LanguagePolicy = iota
	// LanguageStrict fails construction on unknown languages.
	LanguageStrict
)

type Option func(*Highlighter)

func WithLanguagePolicy(policy LanguagePolicy) Option {
	return func(h *Highlighter) {
		h.policy = policy
	}
}

// WithTokenizer replaces the chroma backed tokenizer. Intended for
// tests injecting tokenizer faults.
func WithTokenizer(t Tokenizer) Option {
	return func(h *Highlighter) {
		h.tokenizer = t
	}
}

// SpanStyle is the resolved display style of a token type in the
// selected theme.
type SpanStyle struct {
	Foreground color.NRGBA
	Background color.NRGBA
	Bold       bool
	Italic     bool
	Underline  bool
}

// Highlighter resolves a language and a theme once at construction,
// and projects text into styled runs on every call to Project. It is
// not safe for concurrent use.
type Highlighter struct {
	language  string
	theme     string
	policy    LanguagePolicy
	style     *chroma.Style
	lexer     chroma.Lexer
	tokenizer Tokenizer
	plaintext bool

	foreground color.NRGBA
	background color.NRGBA
	// entries caches resolved token type styles, as style resolution
	// walks the token type hierarchy on every miss.
	entries map[chroma.TokenType]SpanStyle
}

// New builds a Highlighter for the language identifier (a lexer name,
// alias, or bare file extension such as "go" or ".rs") and the named
// theme. An unknown theme always fails with ErrThemeNotFound. An
// unknown language follows the configured LanguagePolicy.
func New(language, theme string, opts ...Option) (*Highlighter, error) {
	h := &Highlighter{
		language: language,
		theme:    theme,
	}
	for _, opt := range opts {
		opt(h)
	}

	// styles.Get falls back to a default style for unknown names, so
	// the registry has to be consulted directly.
	style, ok := styles.Registry[theme]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, theme)
	}
	h.style = style

	lexer := lookupLexer(language)
	if lexer == nil {
		if h.policy == LanguageStrict {
			return nil, fmt.Errorf("%w: %q", ErrLanguageNotFound, language)
		}
		lexer = lexers.Fallback
		h.plaintext = true
	}
	h.lexer = chroma.Coalesce(lexer)
	if h.tokenizer == nil {
		h.tokenizer = chromaTokenizer{lexer: h.lexer}
	}

	h.foreground = color.NRGBA{A: 0xff}
	if fg := style.Get(chroma.Text).Colour; fg.IsSet() {
		h.foreground = nrgbaColour(fg)
	}
	h.background = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	if bg := style.Get(chroma.Background).Background; bg.IsSet() {
		h.background = nrgbaColour(bg)
	}

	h.entries = make(map[chroma.TokenType]SpanStyle)
	return h, nil
}

// Language returns the name of the resolved language definition,
// which is "fallback" when plain text took over.
func (h *Highlighter) Language() string {
	return h.lexer.Config().Name
}

// Theme returns the theme name the highlighter was built with.
func (h *Highlighter) Theme() string {
	return h.theme
}

// Plaintext reports whether the language fell back to plain text.
func (h *Highlighter) Plaintext() bool {
	return h.plaintext
}

// Foreground returns the default text color of the theme.
func (h *Highlighter) Foreground() color.NRGBA {
	return h.foreground
}

// Background returns the background color of the theme.
func (h *Highlighter) Background() color.NRGBA {
	return h.background
}

// styleFor resolves the display style of a token type against the
// theme, caching the result.
func (h *Highlighter) styleFor(ttype chroma.TokenType) SpanStyle {
	if s, ok := h.entries[ttype]; ok {
		return s
	}

	entry := h.style.Get(ttype)
	s := SpanStyle{
		Foreground: h.foreground,
		Bold:       entry.Bold == chroma.Yes,
		Italic:     entry.Italic == chroma.Yes,
		Underline:  entry.Underline == chroma.Yes,
	}
	if entry.Colour.IsSet() {
		s.Foreground = nrgbaColour(entry.Colour)
	}
	// A token background equal to the page background needs no
	// background run.
	if entry.Background.IsSet() {
		if bg := nrgbaColour(entry.Background); bg != h.background {
			s.Background = bg
		}
	}

	h.entries[ttype] = s
	return s
}

// lookupLexer resolves a language identifier first as a lexer name or
// alias, then as a bare file extension.
func lookupLexer(language string) chroma.Lexer {
	ident := strings.TrimPrefix(language, ".")
	if ident == "" {
		return nil
	}

	if lexer := lexers.Get(ident); lexer != nil {
		return lexer
	}
	return lexers.Match("f." + strings.ToLower(ident))
}

func nrgbaColour(c chroma.Colour) color.NRGBA {
	return color.NRGBA{R: c.Red(), G: c.Green(), B: c.Blue(), A: 0xff}
}
