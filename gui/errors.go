// Package gui shows the simulation in a window. The window needs the ebiten
// build tag; without it Run reports ErrGUIUnavailable.
package gui

import "github.com/pkg/errors"

// ErrGUIUnavailable is returned by Run in builds without the ebiten tag
var ErrGUIUnavailable = errors.New("gui requires building with the 'ebiten' tag")
