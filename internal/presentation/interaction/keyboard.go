// Package interaction reads raw keyboard input from the terminal.
package interaction

import (
	"errors"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// KeyboardReader handles keyboard input in raw mode
type KeyboardReader struct {
	oldState *unix.Termios
	input    chan KeyEvent
	stop     chan struct{}
}

// KeyEvent represents a keyboard event
type KeyEvent struct {
	Key  rune
	Type KeyType
}

// KeyType represents the type of key pressed
type KeyType int

const (
	KeyChar KeyType = iota
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPageUp
	KeyPageDown
	KeyCtrlC
)

// NewKeyboardReader creates a new keyboard reader
func NewKeyboardReader() (*KeyboardReader, error) {
	kr := &KeyboardReader{
		input: make(chan KeyEvent, 10),
		stop:  make(chan struct{}),
	}

	// Set terminal to raw mode
	if err := kr.enableRawMode(); err != nil {
		return nil, err
	}

	// Start reading keyboard input
	go kr.readInput()

	return kr, nil
}

// readInput reads keyboard input in a goroutine
func (kr *KeyboardReader) readInput() {
	kr.readFrom(os.Stdin)
}

// readFrom forwards parsed keys until stop, EOF or a read error. The event
// channel is closed on return.
func (kr *KeyboardReader) readFrom(r io.Reader) {
	defer close(kr.input)
	buf := make([]byte, 8)

	for {
		select {
		case <-kr.stop:
			return
		default:
		}

		n, err := r.Read(buf)
		if n > 0 {
			if event := parseInput(buf[:n]); event != nil {
				select {
				case kr.input <- *event:
				case <-kr.stop:
					return
				}
			}
		}
		if err != nil {
			if transientReadError(err) {
				continue
			}
			return
		}
	}
}

func transientReadError(err error) bool {
	return errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN)
}

// parseInput parses raw keyboard input
func parseInput(buf []byte) *KeyEvent {
	if len(buf) == 0 {
		return nil
	}

	switch buf[0] {
	case 3:
		return &KeyEvent{Key: 3, Type: KeyCtrlC}
	case '\r', '\n':
		return &KeyEvent{Key: '\r', Type: KeyEnter}
	case '\t':
		return &KeyEvent{Key: '\t', Type: KeyTab}
	case 127, 8:
		return &KeyEvent{Key: 127, Type: KeyBackspace}
	case 27:
		return parseEscape(buf)
	}

	// Multi-byte UTF-8 input arrives in one read
	r := []rune(string(buf))
	if len(r) == 0 {
		return nil
	}
	return &KeyEvent{Key: r[0], Type: KeyChar}
}

// parseEscape handles ESC and the CSI sequences of arrow and paging keys
func parseEscape(buf []byte) *KeyEvent {
	if len(buf) == 1 {
		return &KeyEvent{Key: 27, Type: KeyEscape}
	}
	if len(buf) < 3 || (buf[1] != '[' && buf[1] != 'O') {
		return nil
	}
	switch buf[2] {
	case 'A':
		return &KeyEvent{Type: KeyUp}
	case 'B':
		return &KeyEvent{Type: KeyDown}
	case 'C':
		return &KeyEvent{Type: KeyRight}
	case 'D':
		return &KeyEvent{Type: KeyLeft}
	case '5':
		if len(buf) >= 4 && buf[3] == '~' {
			return &KeyEvent{Type: KeyPageUp}
		}
	case '6':
		if len(buf) >= 4 && buf[3] == '~' {
			return &KeyEvent{Type: KeyPageDown}
		}
	}
	return nil
}

// Events returns the keyboard event channel. It is closed once input ends.
func (kr *KeyboardReader) Events() <-chan KeyEvent {
	return kr.input
}

// Close stops the keyboard reader and restores terminal
func (kr *KeyboardReader) Close() error {
	close(kr.stop)
	return kr.disableRawMode()
}

// applyRawMode clears the flags of a cooked terminal. ISIG stays on so
// Ctrl+C still raises SIGINT.
func applyRawMode(state *unix.Termios) unix.Termios {
	raw := *state
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Cflag |= unix.CS8
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0
	return raw
}
