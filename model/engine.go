package model

import (
	"crypto/md5"
	"fmt"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/tinygol/rules"
)

// ErrInvalidDimensions is returned when an engine is requested with a
// non-positive width or height
var ErrInvalidDimensions = errors.New("grid dimensions must be positive")

// CellReader is the read-only view consumers such as renderers need
type CellReader interface {
	Width() int
	Height() int
	Get(x, y int) bool
}

// Engine simulates Life on a fixed grid. Each cell is one byte holding
// AliveOffset when alive plus the count of its alive neighbors, and the counts
// are kept up to date on every change instead of being recomputed per step.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	width   int
	height  int
	current []uint8
	next    []uint8

	// decisions is scratch space for StepParallel
	decisions []bool
	rng       *rand.Rand
}

// NewEngine allocates a zeroed engine with the specified dimensions
func NewEngine(width, height int) (*Engine, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "[NewEngine] got %dx%d", width, height)
	}
	size := width * height
	return &Engine{
		width:     width,
		height:    height,
		current:   make([]uint8, size),
		next:      make([]uint8, size),
		decisions: make([]bool, size),
		rng:       newRNG(time.Now().UnixNano()),
	}, nil
}

func newRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

// Close releases both grid buffers. A closed engine behaves like an empty
// grid: every coordinate is out of bounds.
func (e *Engine) Close() {
	e.width = 0
	e.height = 0
	e.current = nil
	e.next = nil
	e.decisions = nil
}

// Width returns the width of the grid
func (e *Engine) Width() int {
	return e.width
}

// Height returns the height of the grid
func (e *Engine) Height() int {
	return e.height
}

// Seed resets the random source used by FillRandom
func (e *Engine) Seed(seed int64) {
	e.rng = newRNG(seed)
}

func (e *Engine) inBounds(x, y int) bool {
	return x >= 0 && x < e.width && y >= 0 && y < e.height
}

// Get reports whether the cell is alive. Anything outside the grid is dead.
func (e *Engine) Get(x, y int) bool {
	if !e.inBounds(x, y) {
		return false
	}
	return isAlive(e.current[y*e.width+x])
}

// Set changes the state of a cell and adjusts the counts of its neighbors.
// Coordinates outside the grid are ignored, as is setting a cell to the state
// it already has.
func (e *Engine) Set(x, y int, alive bool) {
	if !e.inBounds(x, y) {
		return
	}
	idx := y*e.width + x
	cell := e.current[idx]
	if isAlive(cell) == alive {
		return
	}

	e.current[idx] = encode(alive, neighborCount(cell))
	if alive {
		updateNeighbors(e.current, e.width, e.height, x, y, 1)
	} else {
		updateNeighbors(e.current, e.width, e.height, x, y, -1)
	}
}

// FillRandom sets every cell alive with probability density
func (e *Engine) FillRandom(density float64) {
	for y := range e.height {
		for x := range e.width {
			e.Set(x, y, e.rng.Float64() < density)
		}
	}
}

// Clear kills every cell
func (e *Engine) Clear() {
	clear(e.current)
	clear(e.next)
}

// Step advances the grid by one generation
func (e *Engine) Step() {
	for y := range e.height {
		for x := range e.width {
			cell := e.current[y*e.width+x]
			if rules.ApplyConwayRules(neighborCount(cell), isAlive(cell)) {
				e.birth(x, y)
			}
		}
	}
	e.commit()
}

// StepParallel advances the grid by one generation, splitting the read of the
// current generation across workers. Building the next generation happens
// only after every worker is done reading.
func (e *Engine) StepParallel(workers int) error {
	if e.height == 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var (
		eg            errgroup.Group
		rowsPerWorker = (e.height + workers - 1) / workers // Ceiling division
	)

	for i := range workers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, e.height)
		)
		if startRow >= e.height {
			break
		}

		eg.Go(func() error {
			for idx := startRow * e.width; idx < endRow*e.width; idx++ {
				cell := e.current[idx]
				e.decisions[idx] = rules.ApplyConwayRules(neighborCount(cell), isAlive(cell))
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return errors.Wrap(err, "[StepParallel] failed to scan generation")
	}

	for idx, alive := range e.decisions {
		if alive {
			e.birth(idx%e.width, idx/e.width)
		}
	}
	e.commit()
	return nil
}

// birth marks a cell alive in the next generation. next starts every
// generation zeroed, so no idempotence check is needed.
func (e *Engine) birth(x, y int) {
	e.next[y*e.width+x] += AliveOffset
	updateNeighbors(e.next, e.width, e.height, x, y, 1)
}

func (e *Engine) commit() {
	copy(e.current, e.next)
	clear(e.next)
}

// CountLivingCells returns the total number of living cells
func (e *Engine) CountLivingCells() (count int) {
	for _, cell := range e.current {
		if isAlive(cell) {
			count++
		}
	}
	return
}

// Hash returns an MD5 digest of the current generation
func (e *Engine) Hash() string {
	sum := md5.Sum(e.current)
	return fmt.Sprintf("%x", sum)
}
