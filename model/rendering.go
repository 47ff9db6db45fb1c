package model

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "

	ansiClearScreen = "\x1b[2J\x1b[H"
	ansiClearLine   = "\x1b[2K"
)

// TerminalRenderer draws a grid with ANSI escape codes. It remembers what is
// already on screen and only rewrites cells whose state changed.
type TerminalRenderer struct {
	out *bufio.Writer

	// originRow is the 1-based terminal row of the grid's top edge
	originRow int

	width, height int
	drawn         []bool
	valid         bool
}

// NewTerminalRenderer creates a renderer writing to out, with the grid drawn
// below the first originRow-1 terminal rows
func NewTerminalRenderer(out io.Writer, originRow int) *TerminalRenderer {
	return &TerminalRenderer{
		out:       bufio.NewWriter(out),
		originRow: max(originRow, 1),
	}
}

// Display renders the grid to the terminal
func (r *TerminalRenderer) Display(g CellReader) error {
	w, h := g.Width(), g.Height()
	if w != r.width || h != r.height {
		r.width, r.height = w, h
		r.drawn = make([]bool, w*h)
		r.valid = false
	}

	if r.valid {
		r.drawChanges(g)
	} else {
		r.drawAll(g)
		r.valid = true
	}

	if err := r.out.Flush(); err != nil {
		return errors.Wrap(err, "[Display] failed to write frame")
	}
	return nil
}

func (r *TerminalRenderer) drawAll(g CellReader) {
	for y := range r.height {
		fmt.Fprintf(r.out, "\x1b[%d;1H", r.originRow+y)
		for x := range r.width {
			alive := g.Get(x, y)
			r.drawn[y*r.width+x] = alive
			r.out.WriteString(glyph(alive))
		}
	}
}

func (r *TerminalRenderer) drawChanges(g CellReader) {
	for y := range r.height {
		for x := range r.width {
			alive := g.Get(x, y)
			idx := y*r.width + x
			if alive == r.drawn[idx] {
				continue
			}
			r.drawn[idx] = alive
			fmt.Fprintf(r.out, "\x1b[%d;%dH%s", r.originRow+y, 2*x+1, glyph(alive))
		}
	}
}

// Status overwrites the lines above the grid
func (r *TerminalRenderer) Status(lines ...string) error {
	for i, line := range lines {
		fmt.Fprintf(r.out, "\x1b[%d;1H%s%s", i+1, ansiClearLine, line)
	}
	if err := r.out.Flush(); err != nil {
		return errors.Wrap(err, "[Status] failed to write status")
	}
	return nil
}

// Clear clears the terminal screen and forces a full redraw next frame
func (r *TerminalRenderer) Clear() error {
	r.valid = false
	r.out.WriteString(ansiClearScreen)
	if err := r.out.Flush(); err != nil {
		return errors.Wrap(err, "[Clear] failed to clear terminal")
	}
	return nil
}

// MoveBelow puts the cursor under the grid, for output after the last frame
func (r *TerminalRenderer) MoveBelow() error {
	fmt.Fprintf(r.out, "\x1b[%d;1H\n", r.originRow+r.height)
	return errors.Wrap(r.out.Flush(), "[MoveBelow] failed to move cursor")
}

func glyph(alive bool) string {
	if alive {
		return gridPosBlock
	}
	return gridPosEmpty
}
