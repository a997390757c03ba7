package roster

import (
	"fmt"
	"time"
)

// Wall-clock times travel as strings; the repository stores them in the
// "15:04:05" format, handlers may also pass the short "15:04" form.
var clockLayouts = []string{"15:04:05", "15:04"}

// parseClock converts a wall-clock string into minutes since midnight.
func parseClock(s string) (int, error) {
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Hour()*60 + t.Minute(), nil
		}
	}
	return 0, validationErrorf("invalid wall-clock time %q", s)
}

// formatClock renders minutes since midnight as "15:04" for display labels.
func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
