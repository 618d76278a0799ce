package util

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// FormatThousands renders n with comma separators, e.g. 1234567 -> "1,234,567"
func FormatThousands(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatWage formats an annual wage as whole dollars, e.g. "$45,000"
func FormatWage(amount float64) string {
	return "$" + FormatThousands(int64(math.Round(amount)))
}

// FormatWageShort formats axis ticks in SI style, e.g. 150000 -> "$150k"
func FormatWageShort(amount float64) string {
	switch {
	case amount >= 1000000:
		return fmt.Sprintf("$%gM", amount/1000000)
	case amount >= 1000:
		return fmt.Sprintf("$%gk", amount/1000)
	default:
		return fmt.Sprintf("$%g", amount)
	}
}

// FormatPercent renders an integer percentage badge
func FormatPercent(p int) string {
	return strconv.Itoa(p) + "%"
}

// FormatClock renders an offset from midnight as a 12-hour tick label, e.g. "04 AM".
// Offsets past 24h wrap into the next day.
func FormatClock(offset time.Duration) string {
	minutes := int(offset/time.Minute) % (24 * 60)
	if minutes < 0 {
		minutes += 24 * 60
	}
	h := minutes / 60
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%02d %s", h12, suffix)
}

// FormatHHMM renders an offset from midnight as "HH:MM", wrapping past 24h
func FormatHHMM(offset time.Duration) string {
	minutes := int(offset/time.Minute) % (24 * 60)
	if minutes < 0 {
		minutes += 24 * 60
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
