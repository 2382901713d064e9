// Package gvsource provides embeddable source code widgets for Gio: an
// editable CodeEditor and a read-only CodeViewer. Both delegate syntax
// tokenization and color assignment to the chroma highlighting library
// and re-highlight the whole buffer on every frame.
package gvsource

import (
	"fmt"
	"image"
	"time"

	"gioui.org/gesture"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/io/semantic"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/text"
	"gioui.org/unit"
	gvcolor "github.com/oligo/gvsource/color"
	"github.com/oligo/gvsource/highlight"
	"github.com/oligo/gvsource/textstyle/syntax"
	"github.com/oligo/gvsource/textview"
)

// CodeEditor is an editable, scrollable text area with syntax
// highlighting. The zero value is not usable; construct one with
// NewCodeEditor or DefaultCodeEditor.
type CodeEditor struct {
	// TextMaterial is the default paint material of text and caret.
	TextMaterial gvcolor.Color
	// SelectMaterial fills the selection rectangles.
	SelectMaterial gvcolor.Color
	// MatchMaterial fills the rectangles of search match ranges.
	MatchMaterial gvcolor.Color
	// LineNumberMaterial paints the line number gutter.
	LineNumberMaterial gvcolor.Color
	// LineNumberGutterGap is the gap between the line number gutter and
	// the text area.
	LineNumberGutterGap unit.Dp

	view   *textview.TextView
	hl     *highlight.Highlighter
	scheme *syntax.ColorScheme
	tokens []syntax.Token

	readOnly    bool
	lineNumbers bool
	langPolicy  highlight.LanguagePolicy

	matches      []TextRange
	currentMatch int
	regions      []textview.Region

	blinkStart time.Time

	// ime tracks the state relevant to input methods.
	ime struct {
		selection struct {
			rng   key.Range
			caret key.Caret
		}
		snippet    key.Snippet
		start, end int
	}

	dragging    bool
	dragger     gesture.Drag
	scroller    gesture.Scroll
	clicker     gesture.Click
	scrollCaret bool
	showCaret   bool
	pending     []EditorEvent
}

const (
	blinksPerSecond  = 1
	maxBlinkDuration = 10 * time.Second
)

// NewCodeEditor builds an editor highlighting the given language with
// the named theme. An unknown theme fails with
// highlight.ErrThemeNotFound; an unknown language follows the
// configured language policy.
func NewCodeEditor(language, theme string, opts ...Option) (*CodeEditor, error) {
	e := &CodeEditor{
		view:                textview.NewTextView(),
		LineNumberGutterGap: unit.Dp(12),
	}
	e.view.TabWidth = 4
	e.view.WrapLine = true
	for _, opt := range opts {
		opt(e)
	}

	hl, err := highlight.New(language, theme, highlight.WithLanguagePolicy(e.langPolicy))
	if err != nil {
		return nil, fmt.Errorf("gvsource: %w", err)
	}
	e.hl = hl
	e.scheme = newColorScheme(hl)
	e.view.SetColorScheme(e.scheme)
	return e, nil
}

// DefaultCodeEditor builds an editor with the default language and
// theme.
func DefaultCodeEditor() *CodeEditor {
	ed, err := NewCodeEditor(highlight.DefaultLanguage, highlight.DefaultTheme)
	if err != nil {
		// The chroma registries always contain the defaults.
		panic(err)
	}
	return ed
}

// WithOptions applies options after construction. Options affecting
// language or theme resolution have no effect here.
func (e *CodeEditor) WithOptions(opts ...Option) {
	for _, opt := range opts {
		opt(e)
	}
}

// Language returns the name of the resolved language definition.
func (e *CodeEditor) Language() string {
	return e.hl.Language()
}

// Theme returns the theme name the editor was built with.
func (e *CodeEditor) Theme() string {
	return e.hl.Theme()
}

// Highlighter exposes the underlying highlighter, e.g. for querying the
// theme background color.
func (e *CodeEditor) Highlighter() *highlight.Highlighter {
	return e.hl
}

// SetText replaces the contents of the editor and moves the caret to
// the beginning.
func (e *CodeEditor) SetText(s string) {
	e.view.SetText(s)
	e.ime.start = 0
	e.ime.end = 0
	e.SetCaret(0, 0)
}

// Text returns the contents of the editor.
func (e *CodeEditor) Text() string {
	return e.view.Text()
}

// Len is the length of the editor contents, in runes.
func (e *CodeEditor) Len() int {
	return e.view.Len()
}

// Insert replaces the selection with s, placing the caret after s.
func (e *CodeEditor) Insert(s string) (insertedRunes int) {
	if e.readOnly {
		return 0
	}

	start, end := e.view.Selection()
	moves := e.replace(start, end, s)
	if end < start {
		start = end
	}
	e.view.MoveCaret(0, 0)
	e.SetCaret(start+moves, start+moves)
	e.scrollCaret = true
	return moves
}

// Delete runes from the caret position. The sign of the argument
// specifies the direction to delete: positive is forward, negative is
// backward. A selection is deleted as a single grapheme cluster.
func (e *CodeEditor) Delete(graphemeClusters int) (deletedRunes int) {
	if e.readOnly || graphemeClusters == 0 {
		return 0
	}

	start, end := e.view.Selection()
	if start != end {
		graphemeClusters -= sign(graphemeClusters)
	}

	e.view.MoveCaret(0, graphemeClusters)
	start, end = e.view.Selection()
	e.replace(start, end, "")
	e.view.MoveCaret(0, 0)
	e.ClearSelection()
	return abs(end - start)
}

// Replace substitutes the rune range [start, end) with s and returns
// the number of runes inserted.
func (e *CodeEditor) Replace(start, end int, s string) int {
	if e.readOnly {
		return 0
	}
	return e.replace(start, end, s)
}

// replace is the mutation primitive shared by all editing operations.
// It keeps the IME snippet range consistent with the new text.
func (e *CodeEditor) replace(start, end int, s string) int {
	if start > end {
		start, end = end, start
	}
	length := e.view.Len()
	start = min(start, length)
	end = min(end, length)

	sc := e.view.Replace(start, end, s)
	newEnd := start + sc
	adjust := func(pos int) int {
		switch {
		case newEnd < pos && pos <= end:
			pos = newEnd
		case end < pos:
			pos = pos + newEnd - end
		}
		return pos
	}
	e.ime.start = adjust(e.ime.start)
	e.ime.end = adjust(e.ime.end)
	return sc
}

// MoveCaret moves the caret (aka selection start) and the selection end
// relative to their current positions, in grapheme clusters.
func (e *CodeEditor) MoveCaret(startDelta, endDelta int) {
	e.view.MoveCaret(startDelta, endDelta)
}

// SetCaret moves the caret to start, and sets the selection end to end.
// start and end are rune offsets into the editor text.
func (e *CodeEditor) SetCaret(start, end int) {
	e.view.SetCaret(start, end)
	e.scrollCaret = true
	e.scroller.Stop()
}

// Selection returns the start and end of the selection as rune offsets.
// start can be > end.
func (e *CodeEditor) Selection() (start, end int) {
	return e.view.Selection()
}

// SelectionLen returns the length of the selection, in runes.
func (e *CodeEditor) SelectionLen() int {
	return e.view.SelectionLen()
}

// SelectedText returns the currently selected text (if any).
func (e *CodeEditor) SelectedText() string {
	return e.view.SelectedText()
}

// ClearSelection clears the selection, by setting the selection end
// equal to the selection start.
func (e *CodeEditor) ClearSelection() {
	e.view.ClearSelection()
}

// CaretPos returns the visual line and column numbers of the caret.
func (e *CodeEditor) CaretPos() (line, col int) {
	return e.view.CaretPos()
}

// Regions returns visible regions covering the rune range [start, end).
func (e *CodeEditor) Regions(start, end int, regions []textview.Region) []textview.Region {
	return e.view.Regions(start, end, regions)
}

// project runs one highlighting pass over the buffer and installs the
// resulting tokens. It runs on every frame, without dirty tracking:
// buffers are expected to be editor sized, not bulk file sized.
func (e *CodeEditor) project() {
	proj := e.hl.Project(e.view.Text())

	e.tokens = e.tokens[:0]
	for _, span := range proj.Spans {
		if !e.scheme.HasTokenType(span.TokenType) {
			e.scheme.AddTokenType(span.TokenType, spanTextStyle(span.Style), span.Style.Foreground, span.Style.Background)
		}
		e.tokens = append(e.tokens, syntax.Token{
			TokenType: span.TokenType,
			Start:     span.Start,
			End:       span.End,
		})
	}
	e.view.SetSyntaxTokens(e.tokens...)
}

// Layout processes events, re-highlights the buffer and paints the
// editor, using the provided shaper for text shaping.
func (e *CodeEditor) Layout(gtx layout.Context, shaper *text.Shaper) layout.Dimensions {
	for {
		_, ok := e.Update(gtx)
		if !ok {
			break
		}
	}

	e.project()

	if !e.lineNumbers {
		return e.layoutText(gtx, shaper)
	}
	return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return e.view.PaintLineNumber(gtx, shaper, e.LineNumberMaterial.Op())
		}),
		layout.Rigid(layout.Spacer{Width: e.LineNumberGutterGap}.Layout),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return e.layoutText(gtx, shaper)
		}),
	)
}

func (e *CodeEditor) layoutText(gtx layout.Context, shaper *text.Shaper) layout.Dimensions {
	e.view.Layout(gtx, shaper)

	if e.scrollCaret {
		e.scrollCaret = false
		e.view.ScrollToCaret()
	}

	defer clip.Rect(image.Rectangle{Max: gtx.Constraints.Max}).Push(gtx.Ops).Pop()
	pointer.CursorText.Add(gtx.Ops)
	event.Op(gtx.Ops, e)
	if !e.readOnly {
		key.InputHintOp{Tag: e, Hint: key.HintAny}.Add(gtx.Ops)
	}

	e.scroller.Add(gtx.Ops)
	e.clicker.Add(gtx.Ops)
	e.dragger.Add(gtx.Ops)

	e.showCaret = false
	if gtx.Focused(e) {
		now := gtx.Now
		dt := now.Sub(e.blinkStart)
		blinking := dt < maxBlinkDuration
		const timePerBlink = time.Second / blinksPerSecond
		nextBlink := now.Add(timePerBlink/2 - dt%(timePerBlink/2))
		if blinking {
			gtx.Execute(op.InvalidateCmd{At: nextBlink})
		}
		e.showCaret = !blinking || dt%timePerBlink < timePerBlink/2
	}
	semantic.Editor.Add(gtx.Ops)

	e.view.PaintSelection(gtx, e.SelectMaterial.Op())
	e.paintMatches(gtx)
	e.view.PaintText(gtx, e.TextMaterial.Op())
	if gtx.Enabled() && e.showCaret && !e.readOnly {
		e.view.PaintCaret(gtx, e.TextMaterial.Op())
	}
	return layout.Dimensions{Size: gtx.Constraints.Max}
}

func (e *CodeEditor) paintMatches(gtx layout.Context) {
	if len(e.matches) == 0 {
		return
	}

	material := e.MatchMaterial
	if !material.IsSet() {
		material = e.SelectMaterial
	}
	e.regions = e.regions[:0]
	scratch := make([]textview.Region, 0, 8)
	for _, match := range e.matches {
		scratch = scratch[:0]
		e.regions = append(e.regions, e.view.Regions(match.Start, match.End, scratch)...)
	}
	e.view.PaintRegions(gtx, e.regions, material.Op())
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
