package format

import (
	"strconv"
	"time"
)

// FormatTime renders a millisecond count as "1h 2m 5s", "1m 5s" or "5s".
// Sub-second precision is dropped; negative values render as "0s".
func FormatTime(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	seconds := ms / 1000
	minutes := seconds / 60
	hours := minutes / 60

	var buf [32]byte
	b := buf[:0]
	switch {
	case hours > 0:
		b = strconv.AppendInt(b, hours, 10)
		b = append(b, "h "...)
		b = strconv.AppendInt(b, minutes%60, 10)
		b = append(b, "m "...)
		b = strconv.AppendInt(b, seconds%60, 10)
	case minutes > 0:
		b = strconv.AppendInt(b, minutes, 10)
		b = append(b, "m "...)
		b = strconv.AppendInt(b, seconds%60, 10)
	default:
		b = strconv.AppendInt(b, seconds, 10)
	}
	b = append(b, 's')
	return string(b)
}

// Duration is FormatTime for a time.Duration.
func Duration(d time.Duration) string {
	return FormatTime(d.Milliseconds())
}
