package main

import (
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"github.com/oligo/gvsource"
	gvwidget "github.com/oligo/gvsource/widget"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

const sample = `package main

import "fmt"

/* greet prints a friendly
   multi-line greeting. */
func main() {
	for i := 0; i < 3; i++ {
		fmt.Println("hello, gvsource!")
	}
}
`

type demoApp struct {
	window *app.Window
	th     *material.Theme
	editor *gvsource.CodeEditor
	viewer *gvsource.CodeViewer
}

func (d *demoApp) run() error {
	var ops op.Ops
	for {
		e := d.window.Event()

		switch e := e.(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			layout.UniformInset(unit.Dp(8)).Layout(gtx, func(gtx C) D {
				return d.layout(gtx)
			})
			e.Frame(gtx.Ops)
		}
	}
}

func (d *demoApp) layout(gtx C) D {
	return layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceBetween}.Layout(gtx,
		layout.Flexed(1, func(gtx C) D {
			es := gvwidget.NewEditor(d.th, d.editor)
			es.Font.Typeface = "monospace"
			es.TextSize = unit.Sp(13)
			return es.Layout(gtx)
		}),
		layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
		layout.Flexed(1, func(gtx C) D {
			// Mirror the editor content into the read-only viewer.
			d.viewer.SetText(d.editor.Text())
			vs := gvwidget.NewViewer(d.th, d.viewer)
			vs.Font.Typeface = "monospace"
			vs.TextSize = unit.Sp(13)
			return vs.Layout(gtx)
		}),
	)
}

func main() {
	log.SetFlags(log.Flags() | log.Lshortfile)

	editor, err := gvsource.NewCodeEditor("go", "github-dark")
	if err != nil {
		log.Fatal(err)
	}
	editor.SetText(sample)

	viewer, err := gvsource.NewCodeViewer("go", "github-dark")
	if err != nil {
		log.Fatal(err)
	}
	viewer.SetText(sample)

	demo := demoApp{
		window: &app.Window{},
		th:     material.NewTheme(),
		editor: editor,
		viewer: viewer,
	}
	demo.window.Option(app.Title("gvsource demo"))
	demo.th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))

	go func() {
		if err := demo.run(); err != nil {
			log.Println(err)
			os.Exit(1)
		}
		os.Exit(0)
	}()

	app.Main()
}
