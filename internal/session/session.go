// Package session decides whether a scan should run at all. The
// decision core never consults it; main checks the window once per
// invocation.
package session

import "time"

const (
	openHour   = 9
	openMinute = 30

	// Scans stop 30 minutes before the 16:00 close to avoid
	// end-of-day noise.
	cutoffHour   = 15
	cutoffMinute = 30
)

// Window is the intraday span, in one exchange timezone, during which
// scans are allowed.
type Window struct {
	loc *time.Location
}

func NewWindow(loc *time.Location) Window {
	return Window{loc: loc}
}

// Active reports whether the instant falls inside the scan window of
// its local trading day.
func (w Window) Active(now time.Time) bool {
	local := now.In(w.loc)
	year, month, day := local.Date()
	open := time.Date(year, month, day, openHour, openMinute, 0, 0, w.loc)
	cutoff := time.Date(year, month, day, cutoffHour, cutoffMinute, 0, 0, w.loc)
	return !local.Before(open) && local.Before(cutoff)
}
