package syntax

import (
	"fmt"
	"image"
	"image/color"
	"testing"

	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/text"
	"github.com/oligo/gvsource/buffer"
	lt "github.com/oligo/gvsource/internal/layout"
	"github.com/oligo/gvsource/internal/painter"

	"golang.org/x/image/math/fixed"
)

func testShaper() *text.Shaper {
	return text.NewShaper(text.NoSystemFonts(), text.WithCollection(gofont.Collection()))
}

func TestLineSplit(t *testing.T) {
	layoutText := func(doc string) *lt.Line {
		gtx := layout.Context{Constraints: layout.Constraints{Max: image.Point{X: 1e6, Y: 1e6}}}

		buf := buffer.NewTextSource()
		buf.SetText(doc)
		layouter := lt.NewTextLayout(buf)
		textSize := fixed.I(gtx.Sp(14))
		layouter.Layout(testShaper(), &text.Parameters{PxPerEm: textSize}, 4, false)

		return layouter.Lines[0]
	}

	doc := "Hello,world"

	scheme := &ColorScheme{}
	scheme.AddTokenType("t1", Bold|Underline, color.NRGBA{R: 200}, color.NRGBA{G: 200})
	scheme.AddTokenType("t2", Bold, color.NRGBA{R: 200}, color.NRGBA{G: 200})
	line := layoutText(doc)

	testcases := []struct {
		tokens   []Token
		wantSize int   // the number of runs expected.
		wantLen  []int // the number of glyphs(or runes for simple character) expected.
	}{
		// case1: no tokens
		{
			tokens:   []Token{},
			wantSize: 1,
			wantLen:  []int{11},
		},
		// unstyled text between tokens.
		{
			tokens:   []Token{{TokenType: "t1", Start: 0, End: 5}, {TokenType: "t1", Start: 6, End: 11}},
			wantSize: 3,
			wantLen:  []int{5, 1, 5},
		},
		// continuous tokens with no gapped text.
		{
			tokens:   []Token{{TokenType: "t1", Start: 0, End: 5}, {TokenType: "t1", Start: 5, End: 11}},
			wantSize: 2,
			wantLen:  []int{5, 6},
		},
		// unstyled trailing text after the last token.
		{
			tokens:   []Token{{TokenType: "t2", Start: 2, End: 5}},
			wantSize: 3,
			wantLen:  []int{2, 3, 6},
		},
	}

	for i, tc := range testcases {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			tokens := NewTextTokens(scheme)
			tokens.Set(tc.tokens...)

			var runs []painter.RenderRun
			tokens.Split(line, &runs)
			if len(runs) != tc.wantSize {
				t.FailNow()
			}

			ii := 0
			for _, r := range runs {
				want := tc.wantLen[ii]
				if want != len(r.Glyphs) {
					t.Fail()
				}
				ii++
			}
		})
	}

}

func TestSplitStyleResolution(t *testing.T) {
	layoutText := func(doc string) *lt.Line {
		buf := buffer.NewTextSource()
		buf.SetText(doc)
		layouter := lt.NewTextLayout(buf)
		layouter.Layout(testShaper(), &text.Parameters{PxPerEm: fixed.I(14)}, 4, false)
		return layouter.Lines[0]
	}

	scheme := &ColorScheme{}
	scheme.AddTokenType("keyword", Underline, color.NRGBA{R: 200, A: 255}, color.NRGBA{})

	tokens := NewTextTokens(scheme)
	tokens.Set(Token{TokenType: "keyword", Start: 0, End: 5})

	var runs []painter.RenderRun
	tokens.Split(layoutText("Hello,world"), &runs)

	if len(runs) != 2 {
		t.FailNow()
	}

	styled := runs[0]
	if styled.Fg == (op.CallOp{}) {
		t.Fail()
	}
	if styled.Bg != (op.CallOp{}) {
		// bg was registered as the unset color.
		t.Fail()
	}
	if styled.Underline == nil {
		t.Fail()
	}
	if runs[1].Fg != (op.CallOp{}) {
		// the gap run carries no style at all.
		t.Fail()
	}
}
