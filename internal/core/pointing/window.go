// Package pointing evaluates the solar keep out constraint for a star across an observation window
package pointing

import (
	"fmt"
	"time"

	perr "refstar/internal/platform/errors"
)

// TimeLayout renders window instants, millisecond ISO form in UTC
const TimeLayout = "2006-01-02T15:04:05.000"

// Window is an observation interval from Start to Start+Duration, both ends included
// it is immutable once built
type Window struct {
	start time.Time
	dur   time.Duration
}

// NewWindow builds a window, a negative duration is an invalid argument
func NewWindow(start time.Time, d time.Duration) (Window, error) {
	if d < 0 {
		return Window{}, perr.WithField(perr.InvalidArgf("window duration %s is negative", d), "duration")
	}
	if start.IsZero() {
		return Window{}, perr.WithField(perr.InvalidArgf("window start is required"), "start")
	}
	return Window{start: start.UTC(), dur: d}, nil
}

// Start returns the first instant
func (w Window) Start() time.Time { return w.start }

// Duration returns the window length
func (w Window) Duration() time.Duration { return w.dur }

// End returns Start plus Duration
func (w Window) End() time.Time { return w.start.Add(w.dur) }

// String renders the window as "start .. end"
func (w Window) String() string {
	return fmt.Sprintf("%s .. %s", w.start.Format(TimeLayout), w.End().UTC().Format(TimeLayout))
}

// Instants returns n evenly spaced instants from Start to End inclusive
// n below 2 is an invalid argument; a zero length window collapses to one instant
func (w Window) Instants(n int) ([]time.Time, error) {
	if n < 2 {
		return nil, perr.WithField(perr.InvalidArgf("sample count %d is below 2", n), "samples")
	}
	if w.dur == 0 {
		return []time.Time{w.start}, nil
	}

	// integer split keeps the last instant exactly on End for any duration
	steps := time.Duration(n - 1)
	q, r := w.dur/steps, w.dur%steps
	out := make([]time.Time, n)
	for i := range out {
		k := time.Duration(i)
		out[i] = w.start.Add(q*k + r*k/steps)
	}
	return out, nil
}
