package model

const historySize = 5

// History remembers recent generation hashes for cycle detection
type History struct {
	hashes []string
}

// Update adds the engine's current state to history and maintains size
func (h *History) Update(e *Engine) {
	h.hashes = append(h.hashes, e.Hash())

	if len(h.hashes) > historySize {
		h.hashes = h.hashes[1:]
	}
}

// IsStagnant checks if the engine is stuck in a static state or a cycle of
// period two or three
func (h *History) IsStagnant(e *Engine) bool {
	if len(h.hashes) < 3 {
		return false
	}

	current := e.Hash()
	for i := 1; i <= 3; i++ {
		if h.hashes[len(h.hashes)-i] == current {
			return true
		}
	}
	return false
}

// Reset forgets all recorded states
func (h *History) Reset() {
	h.hashes = nil
}
