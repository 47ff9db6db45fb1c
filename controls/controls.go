// Package controls turns keyboard input into game actions.
package controls

import (
	"bufio"
	"context"
	"io"
	"unicode"
)

// Action is something the player asked the game to do
type Action int

const (
	None Action = iota
	TogglePause
	Randomize
	Step
	Quit
)

const (
	keyInterrupt = 0x03 // Ctrl+C arrives as a byte in raw mode
	keyEscape    = 0x1b
)

func (a Action) String() string {
	switch a {
	case TogglePause:
		return "toggle-pause"
	case Randomize:
		return "randomize"
	case Step:
		return "step"
	case Quit:
		return "quit"
	default:
		return "none"
	}
}

// ParseKey maps a key to its action. Unknown keys map to None.
func ParseKey(r rune) Action {
	switch unicode.ToLower(r) {
	case 'p', ' ':
		return TogglePause
	case 'r':
		return Randomize
	case '\n', '\r', 'n':
		return Step
	case 'q', keyEscape, keyInterrupt:
		return Quit
	default:
		return None
	}
}

// Listen reads keys from in until EOF or until ctx is done and sends their
// actions on the returned channel, which is closed when reading stops.
//
// A '\n' directly after another key only ends the line it was typed on and is
// dropped; on its own it is the Enter key. Raw terminals send Enter as '\r'.
func Listen(ctx context.Context, in io.Reader) <-chan Action {
	actions := make(chan Action)

	go func() {
		defer close(actions)

		var (
			reader = bufio.NewReader(in)
			prev   = '\n'
		)
		for {
			r, _, err := reader.ReadRune()
			if err != nil {
				return
			}

			endsLine := r == '\n' && prev != '\n'
			prev = r
			if endsLine {
				continue
			}

			action := ParseKey(r)
			if action == None {
				continue
			}

			select {
			case actions <- action:
			case <-ctx.Done():
				return
			}
		}
	}()

	return actions
}
