package color

import (
	"fmt"
	"image/color"
	"testing"
)

func TestPaletteDedupe(t *testing.T) {
	p := &ColorPalette{}

	red := MakeColor(color.NRGBA{R: 200, A: 0xff})
	green := MakeColor(color.NRGBA{G: 200, A: 0xff})

	id1 := p.AddColor(red)
	id2 := p.AddColor(green)
	id3 := p.AddColor(red)

	if id1 == id2 {
		t.Fail()
	}
	if id1 != id3 {
		t.Fail()
	}
	if p.Size() != 2 {
		t.Fail()
	}

	if got := p.GetColor(id2); got.NRGBA() != green.NRGBA() {
		t.Fail()
	}
	// Out of range ids yield the zero color.
	if got := p.GetColor(99); got.IsSet() {
		t.Fail()
	}

	p.Clear()
	if p.Size() != 0 {
		t.Fail()
	}
}

func TestMulAlpha(t *testing.T) {
	testcases := []struct {
		in    color.NRGBA
		alpha uint8
		want  uint8
	}{
		{in: color.NRGBA{R: 10, A: 0xff}, alpha: 0xff, want: 0xff},
		{in: color.NRGBA{R: 10, A: 0xff}, alpha: 0x80, want: 0x80},
		{in: color.NRGBA{R: 10, A: 0x80}, alpha: 0x80, want: 0x40},
		{in: color.NRGBA{R: 10, A: 0xff}, alpha: 0, want: 0},
	}

	for i, tc := range testcases {
		t.Run(fmt.Sprintf("case %d", i), func(t *testing.T) {
			got := MakeColor(tc.in).MulAlpha(tc.alpha)
			if got.NRGBA().A != tc.want {
				t.Logf("want alpha %d, got %d", tc.want, got.NRGBA().A)
				t.Fail()
			}
			if got.NRGBA().R != tc.in.R {
				t.Fail()
			}
		})
	}
}
