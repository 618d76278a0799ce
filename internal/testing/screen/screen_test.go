package screen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripANSI(t *testing.T) {
	assert.Equal(t, "Showing 3 of 10", StripANSI("\x1b[1mShowing\x1b[0m 3 of \x1b[38;5;33m10\x1b[0m"))
	assert.Equal(t, "plain", StripANSI("\x1b[?25lplain\x1b[?25h"))
}

func TestParseCursorAndClear(t *testing.T) {
	s := Parse("hello\r\nworld\x1b[1;1HJ", 3, 10)
	assert.Equal(t, "Jello", s.Line(0))
	assert.Equal(t, "world", s.Line(1))

	s = Parse("abcdef\x1b[1;3H\x1b[K", 2, 10)
	assert.Equal(t, "ab", s.Line(0))

	s = Parse("one\r\ntwo\r\nthree\x1b[2;1H\x1b[J", 3, 10)
	assert.Equal(t, "one", s.Render())
}

func TestParsePrivateModes(t *testing.T) {
	s := Parse("\x1b[?1049h\x1b[?25lframe", 2, 10)
	assert.True(t, s.AltScreen)
	assert.True(t, s.CursorHidden)
	assert.Equal(t, "frame", s.Line(0))

	s.Write([]byte("\x1b[?25h\x1b[?1049l"))
	assert.False(t, s.AltScreen)
	assert.False(t, s.CursorHidden)
}

func TestParseScrollsAndWraps(t *testing.T) {
	s := Parse("1\r\n2\r\n3\r\n4", 3, 10)
	assert.Equal(t, "2\n3\n4", s.Render())

	s = Parse("abcdefg", 2, 4)
	assert.Equal(t, "abcd", s.Line(0))
	assert.Equal(t, "efg", s.Line(1))
}

func TestParseIgnoresColors(t *testing.T) {
	s := Parse("\x1b[31m█\x1b[0m▓", 1, 5)
	assert.True(t, s.Contains("█▓"))
}
