package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatThousands(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{45000, "45,000"},
		{200000, "200,000"},
		{1234567, "1,234,567"},
		{-1500, "-1,500"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatThousands(tt.in))
	}
}

func TestFormatWage(t *testing.T) {
	assert.Equal(t, "$45,000", FormatWage(45000))
	assert.Equal(t, "$200,000", FormatWage(199999.6))
	assert.Equal(t, "$150k", FormatWageShort(150000))
	assert.Equal(t, "$0", FormatWageShort(0))
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "04 AM", FormatClock(4*time.Hour))
	assert.Equal(t, "12 PM", FormatClock(12*time.Hour))
	assert.Equal(t, "12 AM", FormatClock(24*time.Hour))
	assert.Equal(t, "01 AM", FormatClock(25*time.Hour))
	assert.Equal(t, "11 PM", FormatClock(23*time.Hour))
	assert.Equal(t, "01:30", FormatHHMM(25*time.Hour+30*time.Minute))
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab  ", PadRight("ab", 4))
	assert.Equal(t, "", PadRight("ab", 0))
	assert.Equal(t, 4, GetDisplayWidth(PadRight("abcdefgh", 4)))
}

func TestForeground24(t *testing.T) {
	assert.Equal(t, "\033[38;2;36;123;160m", Foreground24("#247BA0"))
	assert.Equal(t, "", Foreground24("blue"))
}
