package pointing

import (
	"math"
	"time"

	"refstar/internal/core/astrometry"
	perr "refstar/internal/platform/errors"
)

// Sample is the geometry at one instant
type Sample struct {
	Time  time.Time
	Sun   astrometry.Angle
	Yaw   astrometry.Angle
	Pitch astrometry.Angle
}

// Result is the outcome of evaluating one star over a window
type Result struct {
	Star       string
	Valid      bool
	Samples    []Sample
	Violations int
}

// SunAngles returns the sun angle series in degrees
func (r Result) SunAngles() []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.Sun.Degrees()
	}
	return out
}

// PitchAngles returns the pitch series in degrees
func (r Result) PitchAngles() []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.Pitch.Degrees()
	}
	return out
}

// FirstViolation returns the first sample whose sun angle falls inside b
func (r Result) FirstViolation(b SunBand) (Sample, bool) {
	for _, s := range r.Samples {
		if !b.Allows(s.Sun) {
			return s, true
		}
	}
	return Sample{}, false
}

// MaxAbsPitchDelta returns the largest |a.pitch - b.pitch| over paired instants
// both results must come from the same window and sample count
func MaxAbsPitchDelta(a, b Result) (astrometry.Angle, error) {
	if len(a.Samples) != len(b.Samples) {
		return 0, perr.InvalidArgf("pitch series differ in length: %d vs %d", len(a.Samples), len(b.Samples))
	}
	var worst float64
	for i := range a.Samples {
		d := math.Abs(a.Samples[i].Pitch.Degrees() - b.Samples[i].Pitch.Degrees())
		if d > worst {
			worst = d
		}
	}
	return astrometry.Deg(worst), nil
}
