package gvsource

import (
	"gioui.org/font"
	"gioui.org/text"
	"gioui.org/unit"
	"github.com/oligo/gvsource/highlight"
)

// Option configures a CodeEditor or CodeViewer.
type Option func(*CodeEditor)

// WithLanguagePolicy controls how an unknown language identifier is
// handled at construction time. The default is
// highlight.LanguageFallback.
func WithLanguagePolicy(policy highlight.LanguagePolicy) Option {
	return func(e *CodeEditor) {
		e.langPolicy = policy
	}
}

// WithShaperParams configures the font, size and line metrics of the
// text.
func WithShaperParams(ft font.Font, size unit.Sp, alignment text.Alignment, lineHeight unit.Sp, lineHeightScale float32) Option {
	return func(e *CodeEditor) {
		e.view.Font = ft
		e.view.TextSize = size
		e.view.Alignment = alignment
		e.view.LineHeight = lineHeight
		e.view.LineHeightScale = lineHeightScale
	}
}

// WithTabWidth sets how many space advances a tab character spans.
func WithTabWidth(width int) Option {
	return func(e *CodeEditor) {
		e.view.TabWidth = width
	}
}

// WithWrapLine enables or disables soft wrapping of long lines.
func WithWrapLine(enabled bool) Option {
	return func(e *CodeEditor) {
		e.view.WrapLine = enabled
	}
}

// WithLineNumbers toggles the line number gutter. It is off by default
// for editors and on by default for viewers.
func WithLineNumbers(enabled bool) Option {
	return func(e *CodeEditor) {
		e.lineNumbers = enabled
	}
}

// WithReadOnly controls whether user interaction may alter the
// contents. A read-only widget still supports selection and copy.
func WithReadOnly(readOnly bool) Option {
	return func(e *CodeEditor) {
		e.readOnly = readOnly
	}
}
