package calc

import (
	"fmt"
	"math"
	"strconv"

	"github.com/aurenz-max/LiftTrack/internal/domain"
	"github.com/dustin/go-humanize"
)

// FormatVolume renders 12345 as "12.3k" and smaller values with thousands separators.
func FormatVolume(volume float64) string {
	if volume >= 1000 {
		return fmt.Sprintf("%.1fk", volume/1000)
	}
	if volume == math.Trunc(volume) {
		return humanize.Comma(int64(volume))
	}
	return humanize.CommafWithDigits(volume, 1)
}

// FormatWeight appends the unit label; weights are never converted.
func FormatWeight(weight float64, unit domain.Unit) string {
	if !unit.Valid() {
		unit = domain.DefaultUnits
	}
	return strconv.FormatFloat(weight, 'f', -1, 64) + string(unit)
}

// FormatDuration renders seconds as "1h 5m", "3m 20s" or "45s".
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	hrs := seconds / 3600
	mins := (seconds % 3600) / 60
	secs := seconds % 60
	switch {
	case hrs > 0:
		return fmt.Sprintf("%dh %dm", hrs, mins)
	case mins > 0:
		return fmt.Sprintf("%dm %ds", mins, secs)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}

// FormatTimer renders a countdown as m:ss.
func FormatTimer(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
