package color

import (
	"image/color"
	"slices"

	"gioui.org/op"
	"gioui.org/op/paint"
)

// Color wraps a color.NRGBA color which is widely used by Gio.
// It lazily converts the non-alpha-premultiplied color to a
// paint op recorded as an op.CallOp, so repeated painting of
// the same color reuses the recorded macro.
type Color struct {
	val color.NRGBA
	op  op.CallOp
}

// MakeColor builds a Color from a NRGBA value.
func MakeColor(c color.NRGBA) Color {
	return Color{val: c}
}

func (c *Color) NRGBA() color.NRGBA {
	return c.val
}

// IsSet reports whether the color holds a non-zero value. The zero
// Color paints nothing and lets the painter fall back to its default
// material.
func (c *Color) IsSet() bool {
	return c.val != (color.NRGBA{})
}

// MulAlpha scales the alpha channel of the color by alpha/255,
// returning a new Color.
func (c Color) MulAlpha(alpha uint8) Color {
	val := c.val
	val.A = uint8(uint32(val.A) * uint32(alpha) / 0xFF)
	return Color{val: val}
}

func (c *Color) makeOp() {
	if c.op != (op.CallOp{}) {
		return
	}
	ops := new(op.Ops)
	m := op.Record(ops)
	paint.ColorOp{Color: c.val}.Add(ops)
	c.op = m.Stop()
}

func (c *Color) Op() op.CallOp {
	if c.val == (color.NRGBA{}) {
		return op.CallOp{}
	}

	c.makeOp()
	return c.op
}

// ColorPalette manages the colors used by the text painter. A color is
// added once and referenced by its ID(index) in the palette.
type ColorPalette struct {
	colors []*Color
}

// GetColor retrieves a Color by its ID. ID can be acquired when adding
// the color to the palette.
func (p *ColorPalette) GetColor(id int) Color {
	if id < 0 || id >= len(p.colors) {
		return Color{}
	}

	c := p.colors[id]
	c.makeOp()
	return *c
}

// AddColor adds a color to the palette and returns its id(index).
// Adding a color already in the palette returns the existing id.
func (p *ColorPalette) AddColor(cl Color) int {
	if idx := slices.IndexFunc(p.colors, func(c *Color) bool { return c.val == cl.val }); idx >= 0 {
		return idx
	}

	p.colors = append(p.colors, &Color{val: cl.val})
	return len(p.colors) - 1
}

// Size returns the number of distinct colors in the palette.
func (p *ColorPalette) Size() int {
	return len(p.colors)
}

// Clear removes all added colors.
func (p *ColorPalette) Clear() {
	p.colors = p.colors[:0]
}
