//go:build !ebiten

package gui

import (
	"github.com/sheikhrachel/tinygol/model"
	"github.com/sheikhrachel/tinygol/utils"
)

// Run always fails in the headless build
func Run(*model.Engine, utils.Config) error {
	return ErrGUIUnavailable
}
