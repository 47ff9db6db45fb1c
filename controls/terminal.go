package controls

import (
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// RawMode switches the terminal behind fd to raw mode so keys arrive as they
// are pressed. The returned func restores the previous mode. When fd is not a
// terminal nothing changes and the restore func is a no-op.
func RawMode(fd int) (func() error, error) {
	if !term.IsTerminal(fd) {
		return func() error { return nil }, nil
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, errors.Wrap(err, "[RawMode] failed to enter raw mode")
	}

	return func() error {
		return errors.Wrap(term.Restore(fd, state), "[RawMode] failed to restore terminal")
	}, nil
}
