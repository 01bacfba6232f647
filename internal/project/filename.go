package project

import (
	"strings"
	"time"
)

// SafeFilename derives a filesystem-safe base name from the project
// title: characters outside [A-Za-z0-9_.-] become underscores, runs of
// underscores collapse, and leading/trailing '_' and '.' are trimmed.
// A title that sanitizes to nothing falls back to a timestamp.
func SafeFilename(title string, now time.Time) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range title {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9',
			r == '.', r == '-':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}

	name := strings.Trim(b.String(), "_.")
	if name == "" {
		return "plot_" + now.Format("20060102_150405")
	}
	return name
}
