package model

// AddGlider adds a glider pattern at the specified position
func (e *Engine) AddGlider(startX, startY int) {
	pattern := [][]bool{
		{false, true, false},
		{false, false, true},
		{true, true, true},
	}

	for y, row := range pattern {
		for x, cell := range row {
			e.Set(startX+x, startY+y, cell)
		}
	}
}

// AddBlinker adds a horizontal blinker oscillator
func (e *Engine) AddBlinker(startX, startY int) {
	e.Set(startX, startY, true)
	e.Set(startX+1, startY, true)
	e.Set(startX+2, startY, true)
}

// AddBlock adds a 2x2 still life
func (e *Engine) AddBlock(startX, startY int) {
	e.Set(startX, startY, true)
	e.Set(startX+1, startY, true)
	e.Set(startX, startY+1, true)
	e.Set(startX+1, startY+1, true)
}

// InjectRandomLife brings count random cells to life to break stagnation
func (e *Engine) InjectRandomLife(count int) {
	if e.width == 0 || e.height == 0 {
		return
	}
	for range count {
		e.Set(e.rng.IntN(e.width), e.rng.IntN(e.height), true)
	}
}

// ResetWithInterestingPatterns clears the grid, places a few known patterns
// and sprinkles random life over the rest with the given density
func (e *Engine) ResetWithInterestingPatterns(density float64) {
	e.Clear()

	if e.width >= 10 && e.height >= 10 {
		e.AddGlider(5, 5)
		if e.width >= 20 && e.height >= 15 {
			e.AddGlider(e.width-8, 5)
		}

		e.AddBlinker(e.width/4, e.height/4)
		if e.width >= 30 {
			e.AddBlinker(3*e.width/4, 3*e.height/4)
		}
	}

	// Only add life here; FillRandom would also kill the patterns above
	for y := range e.height {
		for x := range e.width {
			if e.rng.Float64() < density {
				e.Set(x, y, true)
			}
		}
	}
}
