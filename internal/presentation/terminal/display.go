package terminal

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/penwyp/go-survey-explorer/internal/util"
)

// Display draws frames in the terminal's alternate screen
type Display struct {
	out               io.Writer
	inAlternateScreen bool
	previous          []string
}

// NewDisplay creates a Display writing to out, or stdout when nil
func NewDisplay(out io.Writer) *Display {
	if out == nil {
		out = os.Stdout
	}
	return &Display{out: out}
}

// EnterAlternateScreen switches to the alternate screen buffer
func (d *Display) EnterAlternateScreen() {
	if d.inAlternateScreen {
		return
	}
	io.WriteString(d.out, util.EnterAltScreen+util.ClearScreen+util.MoveCursorHome+util.HideCursor)
	d.inAlternateScreen = true
	d.previous = nil
}

// ExitAlternateScreen returns to the normal screen buffer
func (d *Display) ExitAlternateScreen() {
	if !d.inAlternateScreen {
		return
	}
	io.WriteString(d.out, util.ClearScreen+util.MoveCursorHome+util.ShowCursor+util.ExitAltScreen)
	d.inAlternateScreen = false
}

// Draw writes a frame. Unchanged frames are skipped.
func (d *Display) Draw(lines []string) error {
	if equalLines(lines, d.previous) {
		return nil
	}
	w := bufio.NewWriter(d.out)
	w.WriteString(util.MoveCursorHome)
	for _, l := range lines {
		w.WriteString(l)
		// Clear the rest of the line left over from the previous frame.
		w.WriteString("\033[K\r\n")
	}
	w.WriteString("\033[J")
	d.previous = append(d.previous[:0], lines...)
	return w.Flush()
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) || a == nil {
		return false
	}
	return strings.Join(a, "\n") == strings.Join(b, "\n")
}
