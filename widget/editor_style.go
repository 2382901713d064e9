// Package widget provides material theme aware constructors for the
// gvsource widgets.
package widget

import (
	"image/color"

	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"github.com/oligo/gvsource"
	gvcolor "github.com/oligo/gvsource/color"
)

// CodeEditorStyle wires fonts, sizes and theme derived colors into a
// CodeEditor. The widget background is taken from the highlighting
// theme so the text keeps its intended contrast.
type CodeEditorStyle struct {
	Font font.Font
	// LineHeight controls the distance between the baselines of lines
	// of text. If zero, a sensible default will be used.
	LineHeight unit.Sp
	// LineHeightScale applies a scaling factor to the LineHeight. If
	// zero, a sensible default will be used.
	LineHeightScale float32
	// TabWidth sets how many spaces represent a tab character.
	TabWidth int
	// TextSize is the size of the text.
	TextSize unit.Sp
	// Color is the default text color.
	Color gvcolor.Color
	// BackgroundColor fills the widget area.
	BackgroundColor gvcolor.Color
	// SelectionColor is the color of the background for selected text.
	SelectionColor gvcolor.Color
	// MatchColor is the background color of search match ranges.
	MatchColor gvcolor.Color
	// LineNumberColor paints the line number gutter.
	LineNumberColor gvcolor.Color
	// Gap size between the line number gutter and the main text area.
	LineNumberGutterGap unit.Dp

	Editor *gvsource.CodeEditor
	shaper *text.Shaper
}

// NewEditor builds the style for an editor, deriving the text and
// background colors from the editor's highlighting theme and everything
// else from the material theme.
func NewEditor(th *material.Theme, editor *gvsource.CodeEditor) CodeEditorStyle {
	hl := editor.Highlighter()
	return CodeEditorStyle{
		Editor: editor,
		shaper: th.Shaper,
		Font: font.Font{
			Typeface: th.Face,
		},
		LineHeightScale:     1.2,
		TabWidth:            4,
		TextSize:            th.TextSize,
		Color:               gvcolor.MakeColor(hl.Foreground()),
		BackgroundColor:     gvcolor.MakeColor(hl.Background()),
		SelectionColor:      gvcolor.MakeColor(th.ContrastBg).MulAlpha(0x60),
		MatchColor:          gvcolor.MakeColor(th.ContrastBg).MulAlpha(0x30),
		LineNumberColor:     gvcolor.MakeColor(hl.Foreground()).MulAlpha(0xb6),
		LineNumberGutterGap: unit.Dp(24),
	}
}

func (e CodeEditorStyle) Layout(gtx layout.Context) layout.Dimensions {
	e.Editor.WithOptions(
		gvsource.WithShaperParams(e.Font, e.TextSize, text.Start, e.LineHeight, e.LineHeightScale),
		gvsource.WithTabWidth(e.TabWidth),
	)

	e.Editor.LineNumberGutterGap = e.LineNumberGutterGap
	e.Editor.TextMaterial = e.Color
	e.Editor.SelectMaterial = gvcolor.MakeColor(blendDisabledColor(!gtx.Enabled(), e.SelectionColor.NRGBA()))
	e.Editor.MatchMaterial = e.MatchColor
	e.Editor.LineNumberMaterial = e.LineNumberColor

	if e.BackgroundColor.IsSet() {
		defer clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops).Pop()
		paint.Fill(gtx.Ops, e.BackgroundColor.NRGBA())
	}
	return e.Editor.Layout(gtx, e.shaper)
}

// CodeViewerStyle is the read-only counterpart of CodeEditorStyle.
type CodeViewerStyle struct {
	CodeEditorStyle
	Viewer *gvsource.CodeViewer
}

// NewViewer builds the style for a viewer.
func NewViewer(th *material.Theme, viewer *gvsource.CodeViewer) CodeViewerStyle {
	return CodeViewerStyle{
		CodeEditorStyle: NewEditor(th, viewer.Editor()),
		Viewer:          viewer,
	}
}

func blendDisabledColor(disabled bool, c color.NRGBA) color.NRGBA {
	if disabled {
		return disabledColor(c)
	}
	return c
}

// mulAlpha applies the alpha to the color.
func mulAlpha(c color.NRGBA, alpha uint8) color.NRGBA {
	c.A = uint8(uint32(c.A) * uint32(alpha) / 0xFF)
	return c
}

// approxLuminance is a fast approximate version of RGBA.Luminance.
func approxLuminance(c color.NRGBA) byte {
	const (
		r = 13933 // 0.2126 * 256 * 256
		g = 46871 // 0.7152 * 256 * 256
		b = 4732  // 0.0722 * 256 * 256
		t = r + g + b
	)
	return byte((r*int(c.R) + g*int(c.G) + b*int(c.B)) / t)
}

// disabledColor blends color towards the luminance and multiplies
// alpha. Blending towards luminance desaturates the color, while
// multiplying alpha blends the color together more with the background.
func disabledColor(c color.NRGBA) (d color.NRGBA) {
	const r = 80 // blend ratio
	lum := approxLuminance(c)
	d = mix(c, color.NRGBA{A: c.A, R: lum, G: lum, B: lum}, r)
	d = mulAlpha(d, 128+32)
	return
}

// mix mixes c1 and c2 weighted by (1 - a/256) and a/256 respectively.
func mix(c1, c2 color.NRGBA, a uint8) color.NRGBA {
	ai := int(a)
	return color.NRGBA{
		R: byte((int(c1.R)*ai + int(c2.R)*(256-ai)) / 256),
		G: byte((int(c1.G)*ai + int(c2.G)*(256-ai)) / 256),
		B: byte((int(c1.B)*ai + int(c2.B)*(256-ai)) / 256),
		A: byte((int(c1.A)*ai + int(c2.A)*(256-ai)) / 256),
	}
}
