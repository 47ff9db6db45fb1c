package gui

import (
	"image/color"

	"github.com/sheikhrachel/tinygol/model"
)

var (
	onColor  = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	offColor = color.RGBA{A: 0xff}
)

// fillRGBA writes one RGBA pixel per cell of g into buf, in row-major order
func fillRGBA(buf []byte, g model.CellReader, on, off color.RGBA) {
	w, h := g.Width(), g.Height()
	for y := range h {
		for x := range w {
			col := off
			if g.Get(x, y) {
				col = on
			}
			base := (y*w + x) * 4
			buf[base+0] = col.R
			buf[base+1] = col.G
			buf[base+2] = col.B
			buf[base+3] = col.A
		}
	}
}
