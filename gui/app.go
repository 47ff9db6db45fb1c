//go:build ebiten

package gui

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/tinygol/model"
	"github.com/sheikhrachel/tinygol/utils"
)

// game adapts the engine to the ebiten.Game interface
type game struct {
	engine *model.Engine
	config utils.Config

	img *ebiten.Image
	buf []byte

	paused   bool
	tickOnce bool
}

// Run opens a window and runs the simulation until the window is closed or
// the player quits
func Run(engine *model.Engine, config utils.Config) error {
	w, h := engine.Width(), engine.Height()
	g := &game{
		engine: engine,
		config: config,
		img:    ebiten.NewImage(w, h),
		buf:    make([]byte, 4*w*h),
		paused: config.StartPaused,
	}

	tps := 60
	if config.FrameRate > 0 {
		tps = max(1, int(time.Second/config.FrameRate))
	}

	ebiten.SetWindowTitle("tinygol")
	ebiten.SetTPS(tps)
	ebiten.SetWindowSize(w*config.CellSize, h*config.CellSize)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return errors.Wrap(err, "[Run] game loop failed")
	}
	return nil
}

// Update handles input and advances the simulation
func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.engine.FillRandom(g.config.RandomDensity)
	}

	if !g.paused || g.tickOnce {
		g.tickOnce = false
		if !g.config.UseParallel {
			g.engine.Step()
			return nil
		}
		if err := g.engine.StepParallel(g.config.Workers); err != nil {
			return errors.Wrap(err, "[Update] failed to advance generation")
		}
	}
	return nil
}

// Draw renders the current generation
func (g *game) Draw(screen *ebiten.Image) {
	fillRGBA(g.buf, g.engine, onColor, offColor)
	g.img.WritePixels(g.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.config.CellSize), float64(g.config.CellSize))
	screen.DrawImage(g.img, op)
}

// Layout returns the logical screen size
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.engine.Width() * g.config.CellSize, g.engine.Height() * g.config.CellSize
}
