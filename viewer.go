package gvsource

import (
	"gioui.org/layout"
	"gioui.org/text"
	"github.com/oligo/gvsource/highlight"
	"github.com/oligo/gvsource/textstyle/decoration"
)

// CodeViewer is the read-only variant of CodeEditor: the text can only
// be replaced wholesale via SetText, and a 1-based line number gutter
// is on by default. Selection and copy still work.
type CodeViewer struct {
	editor *CodeEditor
}

// NewCodeViewer builds a viewer highlighting the given language with
// the named theme. It accepts the same options as NewCodeEditor.
func NewCodeViewer(language, theme string, opts ...Option) (*CodeViewer, error) {
	base := []Option{
		WithLineNumbers(true),
		WithWrapLine(false),
	}
	ed, err := NewCodeEditor(language, theme, append(base, opts...)...)
	if err != nil {
		return nil, err
	}
	ed.readOnly = true
	return &CodeViewer{editor: ed}, nil
}

// DefaultCodeViewer builds a viewer with the default language and
// theme.
func DefaultCodeViewer() *CodeViewer {
	v, err := NewCodeViewer(highlight.DefaultLanguage, highlight.DefaultTheme)
	if err != nil {
		panic(err)
	}
	return v
}

// Editor exposes the embedded editor for styling, e.g. setting paint
// materials. Its read-only state must not be altered.
func (v *CodeViewer) Editor() *CodeEditor {
	return v.editor
}

// SetText replaces the displayed text.
func (v *CodeViewer) SetText(s string) {
	v.editor.SetText(s)
}

// Text returns the displayed text.
func (v *CodeViewer) Text() string {
	return v.editor.Text()
}

// Len is the length of the displayed text, in runes.
func (v *CodeViewer) Len() int {
	return v.editor.Len()
}

// Language returns the name of the resolved language definition.
func (v *CodeViewer) Language() string {
	return v.editor.Language()
}

// Theme returns the theme name the viewer was built with.
func (v *CodeViewer) Theme() string {
	return v.editor.Theme()
}

// Highlighter exposes the underlying highlighter.
func (v *CodeViewer) Highlighter() *highlight.Highlighter {
	return v.editor.Highlighter()
}

// Selection returns the start and end of the selection as rune offsets.
func (v *CodeViewer) Selection() (start, end int) {
	return v.editor.Selection()
}

// SelectedText returns the currently selected text (if any).
func (v *CodeViewer) SelectedText() string {
	return v.editor.SelectedText()
}

// SetMatches sets the matched text ranges after a find operation.
func (v *CodeViewer) SetMatches(matches []TextRange) {
	v.editor.SetMatches(matches)
}

// NextMatch switches to the index-th match.
func (v *CodeViewer) NextMatch(index int) {
	v.editor.NextMatch(index)
}

// AddDecorations inserts ranged style overlays.
func (v *CodeViewer) AddDecorations(decos ...decoration.Decoration) {
	v.editor.AddDecorations(decos...)
}

// ClearDecorations removes the decorations inserted with the given
// source, or all decorations when source is nil.
func (v *CodeViewer) ClearDecorations(source any) {
	v.editor.ClearDecorations(source)
}

// Update the state of the viewer in response to input events.
func (v *CodeViewer) Update(gtx layout.Context) (EditorEvent, bool) {
	return v.editor.Update(gtx)
}

// Layout processes events, re-highlights the buffer and paints the
// viewer.
func (v *CodeViewer) Layout(gtx layout.Context, shaper *text.Shaper) layout.Dimensions {
	return v.editor.Layout(gtx, shaper)
}
