package pipeline

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Window is a named relative interval used to filter articles by recency.
type Window struct {
	Name     string
	duration time.Duration // zero for "today"
}

const windowToday = "today"

var windowDurations = map[string]time.Duration{
	"last-hour":       time.Hour,
	"last-4-hours":    4 * time.Hour,
	"last-12-hours":   12 * time.Hour,
	"last-24-hours":   24 * time.Hour,
	"last-15-minutes": 15 * time.Minute,
	"last-30-minutes": 30 * time.Minute,
}

// WindowNames returns every valid window name, sorted.
func WindowNames() []string {
	names := []string{windowToday}
	for n := range windowDurations {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ParseWindow resolves a window name from the CLI. Unknown names are a
// configuration error, not an empty filter.
func ParseWindow(name string) (*Window, error) {
	if name == windowToday {
		return &Window{Name: name}, nil
	}
	if d, ok := windowDurations[name]; ok {
		return &Window{Name: name, duration: d}, nil
	}
	return nil, fmt.Errorf("%w: unknown time interval %q (valid: %s)",
		ErrInvalidCriteria, name, strings.Join(WindowNames(), ", "))
}

// Cutoff returns the instant an article must have been published at or
// after to pass the window. "today" means local midnight of now's day.
func (w *Window) Cutoff(now time.Time) time.Time {
	if w.Name == windowToday {
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	}
	return now.Add(-w.duration)
}
