package pointing

import (
	"refstar/internal/core/astrometry"
	perr "refstar/internal/platform/errors"
)

// Default keep out limits in degrees
const (
	DefaultSunMin = 54.0
	DefaultSunMax = 126.0
)

// SunBand is the forbidden open interval (Min, Max) of sun angles
// an angle equal to either limit is allowed
type SunBand struct {
	Min astrometry.Angle
	Max astrometry.Angle
}

// DefaultBand returns the (54, 126) degree band
func DefaultBand() SunBand {
	return SunBand{Min: astrometry.Deg(DefaultSunMin), Max: astrometry.Deg(DefaultSunMax)}
}

// Allows reports whether sun lies outside the open band
func (b SunBand) Allows(sun astrometry.Angle) bool {
	return sun <= b.Min || sun >= b.Max
}

// Validate requires 0 <= Min < Max <= 180
func (b SunBand) Validate() error {
	if b.Min < 0 || b.Max > 180 || b.Min >= b.Max {
		return perr.InvalidArgf("sun band (%.3f, %.3f) must satisfy 0 <= min < max <= 180", b.Min.Degrees(), b.Max.Degrees())
	}
	return nil
}
