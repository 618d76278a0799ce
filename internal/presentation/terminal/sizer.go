package terminal

import (
	"os"

	"golang.org/x/term"

	"github.com/penwyp/go-survey-explorer/internal/util"
)

const (
	fallbackWidth  = 100
	fallbackHeight = 40
	minWidth       = 60
)

// Size returns the terminal size, falling back when stdout is not a terminal
func Size() (int, int) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w < minWidth {
		w, h = fallbackWidth, fallbackHeight
	}
	if h <= 0 {
		h = fallbackHeight
	}
	util.LogDebugf("Terminal size %dx%d", w, h)
	return w, h
}
