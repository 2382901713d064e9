// Input handling is based on the Editor of package gioui.org/widget.
//
// Copyright (c) 2018-2025 Elias Naur and Gio contributors

package gvsource

import (
	"image"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"gioui.org/gesture"
	"gioui.org/io/clipboard"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/io/system"
	"gioui.org/io/transfer"
	"gioui.org/layout"
	"github.com/oligo/gvsource/textview"
)

// EditorEvent is the common interface of the events reported by Update.
type EditorEvent interface {
	isEditorEvent()
}

// A ChangeEvent is generated for every user change to the text.
type ChangeEvent struct{}

// A SelectEvent is generated when the user selects some text, or
// changes the selection (e.g. with a shift-click), including if they
// remove the selection. The selected text is not part of the event;
// callers that care can invoke SelectedText.
type SelectEvent struct{}

func (ChangeEvent) isEditorEvent() {}
func (SelectEvent) isEditorEvent() {}

// Update the state of the editor in response to input events. Update
// consumes editor input events until there are no remaining events or
// an editor event is generated. To fully update the state of the
// editor, callers should call Update until it returns false.
func (e *CodeEditor) Update(gtx layout.Context) (EditorEvent, bool) {
	ev, ok := e.processEvents(gtx)

	// Notify IME of selection if it changed.
	newSel := e.ime.selection
	start, end := e.view.Selection()
	newSel.rng = key.Range{Start: start, End: end}
	caretPos, carAsc, carDesc := e.view.CaretInfo()
	newSel.caret = key.Caret{
		Pos:     layout.FPt(caretPos),
		Ascent:  float32(carAsc),
		Descent: float32(carDesc),
	}
	if newSel != e.ime.selection {
		e.ime.selection = newSel
		gtx.Execute(key.SelectionCmd{Tag: e, Range: newSel.rng, Caret: newSel.caret})
	}

	e.updateSnippet(gtx, e.ime.start, e.ime.end)
	return ev, ok
}

func (e *CodeEditor) processEvents(gtx layout.Context) (ev EditorEvent, ok bool) {
	if len(e.pending) > 0 {
		out := e.pending[0]
		e.pending = e.pending[:copy(e.pending, e.pending[1:])]
		return out, true
	}

	selStart, selEnd := e.view.Selection()
	defer func() {
		afterStart, afterEnd := e.view.Selection()
		if selStart != afterStart || selEnd != afterEnd {
			if ok {
				e.pending = append(e.pending, SelectEvent{})
			} else {
				ev = SelectEvent{}
				ok = true
			}
		}
	}()

	if ev, ok := e.processPointer(gtx); ok {
		return ev, ok
	}
	return e.processKey(gtx)
}

func (e *CodeEditor) processPointer(gtx layout.Context) (EditorEvent, bool) {
	var scrollX, scrollY pointer.ScrollRange
	textDims := e.view.FullDimensions()
	visibleDims := e.view.Dimensions()

	scrollOff := e.view.ScrollOff()
	scrollX.Min = min(-scrollOff.X, 0)
	scrollX.Max = max(0, textDims.Size.X-(scrollOff.X+visibleDims.Size.X))
	scrollY.Min = -scrollOff.Y
	scrollY.Max = max(0, textDims.Size.Y-(scrollOff.Y+visibleDims.Size.Y))

	sdist := e.scroller.Update(gtx.Metric, gtx.Source, gtx.Now, gesture.Vertical, scrollX, scrollY)
	e.view.ScrollRel(0, sdist)

	for {
		evt, ok := e.clicker.Update(gtx.Source)
		if !ok {
			break
		}
		if ev, ok := e.processPointerEvent(gtx, evt); ok {
			return ev, ok
		}
	}
	for {
		evt, ok := e.dragger.Update(gtx.Metric, gtx.Source, gesture.Both)
		if !ok {
			break
		}
		if ev, ok := e.processPointerEvent(gtx, evt); ok {
			return ev, ok
		}
	}
	return nil, false
}

func (e *CodeEditor) processPointerEvent(gtx layout.Context, ev event.Event) (EditorEvent, bool) {
	switch evt := ev.(type) {
	case gesture.ClickEvent:
		switch {
		case evt.Kind == gesture.KindPress && evt.Source == pointer.Mouse,
			evt.Kind == gesture.KindClick && evt.Source != pointer.Mouse:
			prevCaretPos, _ := e.view.Selection()
			e.blinkStart = gtx.Now
			e.view.MoveCoord(evt.Position)
			gtx.Execute(key.FocusCmd{Tag: e})
			if !e.readOnly {
				gtx.Execute(key.SoftKeyboardCmd{Show: true})
			}
			if e.scroller.State() != gesture.StateFlinging {
				e.scrollCaret = true
			}

			if evt.Modifiers == key.ModShift {
				start, end := e.view.Selection()
				// If they clicked closer to the end, then change the
				// end to where the caret used to be (effectively
				// swapping start & end).
				if abs(end-start) < abs(start-prevCaretPos) {
					e.view.SetCaret(start, prevCaretPos)
				}
			} else {
				e.view.ClearSelection()
			}
			e.dragging = true

			switch {
			case evt.NumClicks == 2:
				e.view.SelectWord()
				e.dragging = false
			case evt.NumClicks >= 3:
				e.view.SelectParagraph()
				e.dragging = false
			}
		}
	case pointer.Event:
		release := false
		switch {
		case evt.Kind == pointer.Release && evt.Source == pointer.Mouse:
			release = true
			fallthrough
		case evt.Kind == pointer.Drag && evt.Source == pointer.Mouse:
			if e.dragging {
				e.blinkStart = gtx.Now
				e.view.MoveCoord(image.Pt(int(evt.Position.X), int(evt.Position.Y)))
				e.scrollCaret = true
				if release {
					e.dragging = false
				}
			}
		}
	}
	return nil, false
}

func (e *CodeEditor) processKey(gtx layout.Context) (EditorEvent, bool) {
	filters := []event.Filter{
		key.FocusFilter{Target: e},
		transfer.TargetFilter{Target: e, Type: "application/text"},
		key.Filter{Focus: e, Name: key.NameEnter, Optional: key.ModShift},
		key.Filter{Focus: e, Name: key.NameReturn, Optional: key.ModShift},
		key.Filter{Focus: e, Name: key.NameTab},
		key.Filter{Focus: e, Name: "C", Required: key.ModShortcut},
		key.Filter{Focus: e, Name: "V", Required: key.ModShortcut},
		key.Filter{Focus: e, Name: "X", Required: key.ModShortcut},
		key.Filter{Focus: e, Name: "A", Required: key.ModShortcut},
		key.Filter{Focus: e, Name: key.NameDeleteBackward, Optional: key.ModShortcutAlt | key.ModShift},
		key.Filter{Focus: e, Name: key.NameDeleteForward, Optional: key.ModShortcutAlt | key.ModShift},
		key.Filter{Focus: e, Name: key.NameHome, Optional: key.ModShortcut | key.ModShift},
		key.Filter{Focus: e, Name: key.NameEnd, Optional: key.ModShortcut | key.ModShift},
		key.Filter{Focus: e, Name: key.NamePageDown, Optional: key.ModShift},
		key.Filter{Focus: e, Name: key.NamePageUp, Optional: key.ModShift},
		key.Filter{Focus: e, Name: key.NameLeftArrow, Optional: key.ModShortcutAlt | key.ModShift},
		key.Filter{Focus: e, Name: key.NameRightArrow, Optional: key.ModShortcutAlt | key.ModShift},
		key.Filter{Focus: e, Name: key.NameUpArrow, Optional: key.ModShift},
		key.Filter{Focus: e, Name: key.NameDownArrow, Optional: key.ModShift},
	}
	for {
		ke, ok := gtx.Event(filters...)
		if !ok {
			break
		}
		e.blinkStart = gtx.Now
		switch ke := ke.(type) {
		case key.FocusEvent:
			if ke.Focus && !e.readOnly {
				gtx.Execute(key.SoftKeyboardCmd{Show: true})
			}
		case key.Event:
			if !gtx.Focused(e) || ke.State != key.Press {
				break
			}
			e.scrollCaret = true
			e.scroller.Stop()
			if ev, ok := e.command(gtx, ke); ok {
				return ev, ok
			}
		case key.SnippetEvent:
			e.updateSnippet(gtx, ke.Start, ke.End)
		case key.EditEvent:
			if e.readOnly {
				break
			}
			e.scrollCaret = true
			e.scroller.Stop()
			moves := e.replace(ke.Range.Start, ke.Range.End, ke.Text)
			caret := min(ke.Range.Start, ke.Range.End) + moves
			e.view.SetCaret(caret, caret)
			return ChangeEvent{}, true
		case transfer.DataEvent:
			if e.readOnly {
				break
			}
			e.scrollCaret = true
			e.scroller.Stop()
			content, err := io.ReadAll(ke.Open())
			if err == nil {
				if e.Insert(string(content)) != 0 {
					return ChangeEvent{}, true
				}
			}
		}
	}
	return nil, false
}

func (e *CodeEditor) command(gtx layout.Context, k key.Event) (EditorEvent, bool) {
	direction := 1
	if gtx.Locale.Direction.Progression() == system.TowardOrigin {
		direction = -1
	}
	moveByWord := k.Modifiers.Contain(key.ModShortcutAlt)
	selAct := textview.SelectionClear
	if k.Modifiers.Contain(key.ModShift) {
		selAct = textview.SelectionExtend
	}

	if k.Modifiers.Contain(key.ModShortcut) {
		switch k.Name {
		case "C", "X":
			if text := e.view.SelectedText(); text != "" {
				gtx.Execute(clipboard.WriteCmd{Type: "application/text", Data: io.NopCloser(strings.NewReader(text))})
				if k.Name == "X" && !e.readOnly {
					if e.Delete(1) != 0 {
						return ChangeEvent{}, true
					}
				}
			}
			return nil, false
		case "V":
			if !e.readOnly {
				gtx.Execute(clipboard.ReadCmd{Tag: e})
			}
			return nil, false
		case "A":
			e.view.SetCaret(0, e.view.Len())
			return nil, false
		}
	}

	switch k.Name {
	case key.NameReturn, key.NameEnter:
		if !e.readOnly {
			if e.Insert("\n") != 0 {
				return ChangeEvent{}, true
			}
		}
	case key.NameTab:
		if !e.readOnly {
			if e.Insert("\t") != 0 {
				return ChangeEvent{}, true
			}
		}
	case key.NameDeleteBackward:
		if e.readOnly {
			break
		}
		if moveByWord {
			if e.deleteWord(-1) != 0 {
				return ChangeEvent{}, true
			}
		} else if e.Delete(-1) != 0 {
			return ChangeEvent{}, true
		}
	case key.NameDeleteForward:
		if e.readOnly {
			break
		}
		if moveByWord {
			if e.deleteWord(1) != 0 {
				return ChangeEvent{}, true
			}
		} else if e.Delete(1) != 0 {
			return ChangeEvent{}, true
		}
	case key.NameUpArrow:
		e.view.MoveLines(-1, selAct)
	case key.NameDownArrow:
		e.view.MoveLines(+1, selAct)
	case key.NameLeftArrow:
		if moveByWord {
			e.view.MoveWord(-1*direction, selAct)
		} else {
			if selAct == textview.SelectionClear {
				e.view.ClearSelection()
			}
			e.view.MoveCaret(-1*direction, -1*direction*int(selAct))
		}
	case key.NameRightArrow:
		if moveByWord {
			e.view.MoveWord(1*direction, selAct)
		} else {
			if selAct == textview.SelectionClear {
				e.view.ClearSelection()
			}
			e.view.MoveCaret(1*direction, 1*direction*int(selAct))
		}
	case key.NameHome:
		if k.Modifiers.Contain(key.ModShortcut) {
			e.view.MoveTextStart(selAct)
		} else {
			e.view.MoveLineStart(selAct)
		}
	case key.NameEnd:
		if k.Modifiers.Contain(key.ModShortcut) {
			e.view.MoveTextEnd(selAct)
		} else {
			e.view.MoveLineEnd(selAct)
		}
	case key.NamePageUp:
		e.view.MovePages(-1, selAct)
	case key.NamePageDown:
		e.view.MovePages(+1, selAct)
	}
	return nil, false
}

// deleteWord deletes the next word(s) in the specified direction.
// Unlike MoveWord, deleteWord treats whitespace as a word itself.
// The selection counts as a single word.
func (e *CodeEditor) deleteWord(distance int) (deletedRunes int) {
	if distance == 0 {
		return 0
	}

	start, end := e.view.Selection()
	if start != end {
		deletedRunes = e.Delete(1)
		distance -= sign(distance)
	}
	if distance == 0 {
		return deletedRunes
	}

	words, direction := distance, 1
	if distance < 0 {
		words, direction = -distance, -1
	}
	caret, _ := e.view.Selection()
	atEnd := func(runes int) bool {
		idx := caret + runes*direction
		return idx <= 0 || idx >= e.view.Len()
	}
	next := func(runes int) rune {
		idx := caret + runes*direction
		var s string
		if direction < 0 {
			s = e.view.Substring(idx-1, idx)
		} else {
			s = e.view.Substring(idx, idx+1)
		}
		r, _ := utf8.DecodeRuneInString(s)
		return r
	}
	runes := 1
	for ii := 0; ii < words; ii++ {
		wantSpace := unicode.IsSpace(next(runes))
		for r := next(runes); unicode.IsSpace(r) == wantSpace && !atEnd(runes); r = next(runes) {
			runes++
		}
	}
	deletedRunes += e.Delete(runes * direction)
	return deletedRunes
}

// updateSnippet queues a key.SnippetCmd when the snippet content or
// range differs from what the IME was last told.
func (e *CodeEditor) updateSnippet(gtx layout.Context, start, end int) {
	if start > end {
		start, end = end, start
	}
	length := e.view.Len()
	start = min(start, length)
	end = min(end, length)
	e.ime.start = start
	e.ime.end = end

	newSnip := key.Snippet{
		Range: key.Range{Start: start, End: end},
		Text:  e.view.Substring(start, end),
	}
	if newSnip == e.ime.snippet {
		return
	}
	e.ime.snippet = newSnip
	gtx.Execute(key.SnippetCmd{Tag: e, Snippet: newSnip})
}
