// Package screen replays terminal output onto a virtual screen so tests can
// assert on what a user would see.
package screen

import (
	"regexp"
	"strings"
)

var ansiEscape = regexp.MustCompile(`\x1b\[[?0-9;]*[a-zA-Z]`)

// Screen is a virtual terminal
type Screen struct {
	rows    int
	cols    int
	buffer  [][]rune
	cursorX int
	cursorY int

	// AltScreen reports whether the alternate buffer is active
	AltScreen bool
	// CursorHidden reports whether the cursor was hidden
	CursorHidden bool
}

// New creates a blank screen
func New(rows, cols int) *Screen {
	s := &Screen{rows: rows, cols: cols, buffer: make([][]rune, rows)}
	for i := range s.buffer {
		s.buffer[i] = blankRow(cols)
	}
	return s
}

func blankRow(cols int) []rune {
	row := make([]rune, cols)
	for j := range row {
		row[j] = ' '
	}
	return row
}

// StripANSI removes all CSI escape sequences from a string
func StripANSI(s string) string {
	return ansiEscape.ReplaceAllString(s, "")
}

// Parse replays output onto a fresh rows x cols screen
func Parse(output string, rows, cols int) *Screen {
	s := New(rows, cols)
	s.Write([]byte(output))
	return s
}

// Write replays p; it never fails so a Screen can stand in for a terminal.
func (s *Screen) Write(p []byte) (int, error) {
	runes := []rune(string(p))
	for i := 0; i < len(runes); {
		switch r := runes[i]; {
		case r == '\x1b' && i+1 < len(runes) && runes[i+1] == '[':
			i = s.sequence(runes, i+2)
		case r == '\r':
			s.cursorX = 0
			i++
		case r == '\n':
			s.lineFeed()
			i++
		case r == '\b':
			if s.cursorX > 0 {
				s.cursorX--
			}
			i++
		default:
			s.putChar(r)
			i++
		}
	}
	return len(p), nil
}

// sequence handles one CSI sequence starting after "\x1b[" and returns the
// index following it.
func (s *Screen) sequence(runes []rune, i int) int {
	private := false
	if i < len(runes) && runes[i] == '?' {
		private = true
		i++
	}
	var params []int
	current := 0
	for ; i < len(runes); i++ {
		switch r := runes[i]; {
		case r >= '0' && r <= '9':
			current = current*10 + int(r-'0')
		case r == ';':
			params = append(params, current)
			current = 0
		default:
			params = append(params, current)
			if private {
				s.mode(r, params)
			} else {
				s.command(r, params)
			}
			return i + 1
		}
	}
	return i
}

func (s *Screen) mode(cmd rune, params []int) {
	on := cmd == 'h'
	if !on && cmd != 'l' {
		return
	}
	switch params[0] {
	case 1049:
		s.AltScreen = on
	case 25:
		s.CursorHidden = !on
	}
}

func count(params []int) int {
	if len(params) > 0 && params[0] > 0 {
		return params[0]
	}
	return 1
}

func (s *Screen) command(cmd rune, params []int) {
	switch cmd {
	case 'H', 'f':
		row, col := 1, 1
		if len(params) > 0 && params[0] > 0 {
			row = params[0]
		}
		if len(params) > 1 && params[1] > 0 {
			col = params[1]
		}
		s.cursorY = min(row-1, s.rows-1)
		s.cursorX = min(col-1, s.cols-1)
	case 'J':
		switch params[0] {
		case 0:
			s.clearLine(s.cursorX, s.cols)
			for i := s.cursorY + 1; i < s.rows; i++ {
				s.buffer[i] = blankRow(s.cols)
			}
		case 2:
			for i := range s.buffer {
				s.buffer[i] = blankRow(s.cols)
			}
		}
	case 'K':
		switch params[0] {
		case 0:
			s.clearLine(s.cursorX, s.cols)
		case 1:
			s.clearLine(0, s.cursorX+1)
		case 2:
			s.clearLine(0, s.cols)
		}
	case 'A':
		s.cursorY = max(0, s.cursorY-count(params))
	case 'B':
		s.cursorY = min(s.rows-1, s.cursorY+count(params))
	case 'C':
		s.cursorX = min(s.cols-1, s.cursorX+count(params))
	case 'D':
		s.cursorX = max(0, s.cursorX-count(params))
	}
}

func (s *Screen) clearLine(from, to int) {
	if s.cursorY >= s.rows {
		return
	}
	for j := from; j < to && j < s.cols; j++ {
		s.buffer[s.cursorY][j] = ' '
	}
}

func (s *Screen) putChar(ch rune) {
	if s.cursorX >= s.cols {
		s.cursorX = 0
		s.lineFeed()
	}
	s.buffer[s.cursorY][s.cursorX] = ch
	s.cursorX++
}

func (s *Screen) lineFeed() {
	s.cursorY++
	if s.cursorY >= s.rows {
		copy(s.buffer, s.buffer[1:])
		s.buffer[s.rows-1] = blankRow(s.cols)
		s.cursorY = s.rows - 1
	}
}

// Render returns the screen content with trailing blanks trimmed
func (s *Screen) Render() string {
	lines := make([]string, s.rows)
	for i := range s.buffer {
		lines[i] = s.Line(i)
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

// Line returns one screen row
func (s *Screen) Line(row int) string {
	if row < 0 || row >= s.rows {
		return ""
	}
	return strings.TrimRight(string(s.buffer[row]), " ")
}

// Contains reports whether text appears on the screen
func (s *Screen) Contains(text string) bool {
	return strings.Contains(s.Render(), text)
}
