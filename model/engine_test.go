package model

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/pkg/errors"
)

func newTestEngine(t testing.TB, w, h int) *Engine {
	t.Helper()
	e, err := NewEngine(w, h)
	if err != nil {
		t.Fatalf("NewEngine(%d, %d): %v", w, h, err)
	}
	e.Seed(1)
	return e
}

// checkInvariant recounts every neighborhood from scratch and compares it to
// the incrementally maintained bytes
func checkInvariant(t *testing.T, e *Engine) {
	t.Helper()
	for y := range e.height {
		for x := range e.width {
			n := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if (dx != 0 || dy != 0) && e.Get(x+dx, y+dy) {
						n++
					}
				}
			}
			v := e.current[y*e.width+x]
			if want := encode(e.Get(x, y), n); v != want {
				t.Fatalf("cell (%d,%d) = %d, want %d (alive=%v neighbors=%d)", x, y, v, want, e.Get(x, y), n)
			}
			if got := neighborCount(v); got < 0 || got > maxNeighbors {
				t.Fatalf("cell (%d,%d) neighbor count %d out of range", x, y, got)
			}
		}
	}
}

func setAll(e *Engine, cells [][2]int) {
	for _, c := range cells {
		e.Set(c[0], c[1], true)
	}
}

func expectAlive(t *testing.T, e *Engine, cells [][2]int) {
	t.Helper()
	want := make(map[[2]int]bool, len(cells))
	for _, c := range cells {
		want[c] = true
	}
	for y := range e.height {
		for x := range e.width {
			if got := e.Get(x, y); got != want[[2]int{x, y}] {
				t.Fatalf("cell (%d,%d) alive=%v, expected %v", x, y, got, want[[2]int{x, y}])
			}
		}
	}
}

func TestNewEngineRejectsInvalidDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 5}, {5, 0}, {-1, 3}, {3, -1}, {0, 0}} {
		e, err := NewEngine(dims[0], dims[1])
		if !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("NewEngine(%d, %d) err = %v, want ErrInvalidDimensions", dims[0], dims[1], err)
		}
		if e != nil {
			t.Errorf("NewEngine(%d, %d) returned a partial engine", dims[0], dims[1])
		}
	}
}

func TestNewEngineIsZeroed(t *testing.T) {
	e := newTestEngine(t, 7, 4)
	if e.Width() != 7 || e.Height() != 4 {
		t.Fatalf("size = %dx%d, want 7x4", e.Width(), e.Height())
	}
	for i := range e.current {
		if e.current[i] != 0 || e.next[i] != 0 {
			t.Fatalf("cell %d not zeroed", i)
		}
	}
}

func TestBorderContract(t *testing.T) {
	e := newTestEngine(t, 4, 3)
	e.FillRandom(0.5)
	before := bytes.Clone(e.current)

	outside := [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 3}, {-1, -1}, {4, 3}, {100, 100}, {-100, 1}}
	for _, c := range outside {
		if e.Get(c[0], c[1]) {
			t.Errorf("Get(%d, %d) = true outside the grid", c[0], c[1])
		}
		e.Set(c[0], c[1], true)
		e.Set(c[0], c[1], false)
	}

	if !bytes.Equal(before, e.current) {
		t.Fatal("Set outside the grid changed the grid")
	}
}

func TestSetIsIdempotent(t *testing.T) {
	e := newTestEngine(t, 5, 5)

	e.Set(2, 2, true)
	once := bytes.Clone(e.current)
	e.Set(2, 2, true)
	if !bytes.Equal(once, e.current) {
		t.Fatal("setting an alive cell alive again changed the grid")
	}

	e.Set(2, 2, false)
	once = bytes.Clone(e.current)
	e.Set(2, 2, false)
	if !bytes.Equal(once, e.current) {
		t.Fatal("setting a dead cell dead again changed the grid")
	}
	checkInvariant(t, e)
}

func TestNeighborSymmetry(t *testing.T) {
	e := newTestEngine(t, 6, 6)
	e.FillRandom(0.4)
	e.Set(3, 2, false)

	before := bytes.Clone(e.current)
	e.Set(3, 2, true)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			idx := (2+dy)*6 + 3 + dx
			if got, want := neighborCount(e.current[idx]), neighborCount(before[idx])+1; got != want {
				t.Fatalf("neighbor (%d,%d) count = %d, want %d", 3+dx, 2+dy, got, want)
			}
		}
	}

	e.Set(3, 2, false)
	if !bytes.Equal(before, e.current) {
		t.Fatal("killing the cell again did not restore its neighbors")
	}
	checkInvariant(t, e)
}

func TestEdgeClipping(t *testing.T) {
	tests := []struct {
		name    string
		x, y    int
		touched int
	}{
		{"top left corner", 0, 0, 3},
		{"bottom right corner", 4, 4, 3},
		{"top edge", 2, 0, 5},
		{"left edge", 0, 2, 5},
		{"right edge", 4, 1, 5},
		{"bottom edge", 3, 4, 5},
		{"interior", 2, 2, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, 5, 5)
			e.Set(tt.x, tt.y, true)

			touched := 0
			for idx, v := range e.current {
				if idx == tt.y*5+tt.x {
					if v != AliveOffset {
						t.Fatalf("cell itself = %d, want %d", v, AliveOffset)
					}
					continue
				}
				switch v {
				case 0:
				case 1:
					touched++
				default:
					t.Fatalf("cell %d = %d, want 0 or 1", idx, v)
				}
			}
			if touched != tt.touched {
				t.Fatalf("incremented %d neighbors, want %d", touched, tt.touched)
			}
		})
	}
}

func TestFillRandomDensityBounds(t *testing.T) {
	e := newTestEngine(t, 8, 5)

	e.FillRandom(1)
	if got := e.CountLivingCells(); got != 40 {
		t.Fatalf("FillRandom(1) left %d alive, want 40", got)
	}
	checkInvariant(t, e)
	if v := e.current[0]; v != AliveOffset+3 {
		t.Fatalf("corner = %d, want %d", v, AliveOffset+3)
	}
	if v := e.current[2*8+3]; v != AliveOffset+8 {
		t.Fatalf("interior = %d, want %d", v, AliveOffset+8)
	}

	e.FillRandom(0)
	if got := e.CountLivingCells(); got != 0 {
		t.Fatalf("FillRandom(0) left %d alive, want 0", got)
	}
	for i, v := range e.current {
		if v != 0 {
			t.Fatalf("cell %d = %d after FillRandom(0)", i, v)
		}
	}
}

func TestFillRandomIsSeeded(t *testing.T) {
	a := newTestEngine(t, 16, 16)
	b := newTestEngine(t, 16, 16)
	a.Seed(42)
	b.Seed(42)
	a.FillRandom(0.5)
	b.FillRandom(0.5)
	if a.Hash() != b.Hash() {
		t.Fatal("same seed produced different grids")
	}
	checkInvariant(t, a)
}

func TestBlockIsStable(t *testing.T) {
	block := [][2]int{{1, 1}, {2, 1}, {1, 2}, {2, 2}}
	e := newTestEngine(t, 4, 4)
	setAll(e, block)

	for range 3 {
		e.Step()
		expectAlive(t, e, block)
	}
	checkInvariant(t, e)
}

func TestBlinkerOscillation(t *testing.T) {
	horizontal := [][2]int{{1, 2}, {2, 2}, {3, 2}}
	vertical := [][2]int{{2, 1}, {2, 2}, {2, 3}}

	e := newTestEngine(t, 5, 5)
	setAll(e, horizontal)

	e.Step()
	expectAlive(t, e, vertical)
	checkInvariant(t, e)

	e.Step()
	expectAlive(t, e, horizontal)
	checkInvariant(t, e)
}

func TestGliderTravels(t *testing.T) {
	e := newTestEngine(t, 8, 8)
	e.AddGlider(0, 0)

	for range 4 {
		e.Step()
	}

	expectAlive(t, e, [][2]int{{2, 1}, {3, 2}, {1, 3}, {2, 3}, {3, 3}})
	checkInvariant(t, e)
}

func TestStepLeavesNextZeroed(t *testing.T) {
	e := newTestEngine(t, 10, 10)
	e.FillRandom(0.5)

	e.Step()
	for i, v := range e.next {
		if v != 0 {
			t.Fatalf("next[%d] = %d after Step", i, v)
		}
	}

	if err := e.StepParallel(3); err != nil {
		t.Fatal(err)
	}
	for i, v := range e.next {
		if v != 0 {
			t.Fatalf("next[%d] = %d after StepParallel", i, v)
		}
	}
}

func TestStepKeepsInvariant(t *testing.T) {
	e := newTestEngine(t, 13, 9)
	e.FillRandom(0.35)

	for range 25 {
		e.Step()
		checkInvariant(t, e)
	}
}

func TestStepParallelMatchesStep(t *testing.T) {
	for _, workers := range []int{0, 1, 3, 64} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			serial := newTestEngine(t, 17, 11)
			parallel := newTestEngine(t, 17, 11)
			serial.FillRandom(0.4)
			parallel.FillRandom(0.4)

			for gen := range 30 {
				serial.Step()
				if err := parallel.StepParallel(workers); err != nil {
					t.Fatal(err)
				}
				if !bytes.Equal(serial.current, parallel.current) {
					t.Fatalf("generation %d differs", gen+1)
				}
			}
		})
	}
}

func TestSingleRowGrid(t *testing.T) {
	e := newTestEngine(t, 5, 1)
	setAll(e, [][2]int{{1, 0}, {2, 0}, {3, 0}})
	checkInvariant(t, e)

	e.Step()
	expectAlive(t, e, [][2]int{{2, 0}})
	e.Step()
	expectAlive(t, e, nil)
}

func TestClear(t *testing.T) {
	e := newTestEngine(t, 6, 6)
	e.FillRandom(0.5)
	e.Clear()
	if got := e.CountLivingCells(); got != 0 {
		t.Fatalf("%d cells alive after Clear", got)
	}
	checkInvariant(t, e)
}

func TestClose(t *testing.T) {
	e := newTestEngine(t, 3, 3)
	e.FillRandom(1)
	e.Close()

	if e.Get(1, 1) {
		t.Fatal("closed engine reports a live cell")
	}
	e.Set(1, 1, true)
	e.FillRandom(1)
	e.Step()
	if err := e.StepParallel(2); err != nil {
		t.Fatal(err)
	}
	if e.CountLivingCells() != 0 {
		t.Fatal("closed engine has living cells")
	}
	e.Close()
}

func TestHash(t *testing.T) {
	e := newTestEngine(t, 5, 5)
	empty := e.Hash()

	e.Set(2, 2, true)
	if e.Hash() == empty {
		t.Fatal("hash did not change with the grid")
	}
	e.Set(2, 2, false)
	if e.Hash() != empty {
		t.Fatal("hash differs for identical grids")
	}
}

func BenchmarkStep(b *testing.B) {
	for _, size := range []int{16, 64, 256} {
		b.Run(fmt.Sprintf("size=%dx%d", size, size), func(b *testing.B) {
			e := newTestEngine(b, size, size)
			e.FillRandom(0.5)
			b.ResetTimer()
			for range b.N {
				e.Step()
			}
		})
	}
}

func BenchmarkStepParallel(b *testing.B) {
	for _, size := range []int{64, 256} {
		b.Run(fmt.Sprintf("size=%dx%d", size, size), func(b *testing.B) {
			e := newTestEngine(b, size, size)
			e.FillRandom(0.5)
			b.ResetTimer()
			for range b.N {
				if err := e.StepParallel(0); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
