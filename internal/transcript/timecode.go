package transcript

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	msPerHour   = 60 * 60 * 1000
	msPerMinute = 60 * 1000
	msPerSecond = 1000
)

// SRTTimecode formats ms as HH:MM:SS,mmm. Hours are not capped at 99.
func SRTTimecode(ms int64) string {
	hours := ms / msPerHour
	ms %= msPerHour
	minutes := ms / msPerMinute
	ms %= msPerMinute
	seconds := ms / msPerSecond
	ms %= msPerSecond
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, ms)
}

// Display formats ms as "M 分 S 秒" with seconds rounded to two decimals.
func Display(ms int64) string {
	total := float64(ms) / msPerSecond
	minutes := int64(math.Floor(total / 60))
	seconds := math.Round(math.Mod(total, 60)*100) / 100

	s := strconv.FormatFloat(seconds, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return fmt.Sprintf("%d 分 %s 秒", minutes, s)
}
