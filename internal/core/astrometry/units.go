// Package astrometry holds the unit tagged star quantities shared by the pointing
// evaluator, the selector and the catalog
// Values carry their unit in the type so degrees never meet radians by accident
package astrometry

import (
	"math"
	"time"
)

const (
	auPerParsec          = 206264.80624709636
	kmPerAU              = 149597870.7
	secondsPerJulianYear = 365.25 * 86400
	masPerDegree         = 3.6e6
)

// J2000 is the reference epoch of every catalog position
var J2000 = time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC)

// JulianYearsSince returns the signed number of Julian years between J2000 and t
func JulianYearsSince(t time.Time) float64 {
	return t.Sub(J2000).Seconds() / secondsPerJulianYear
}

// Angle is an angle in degrees
type Angle float64

// Deg builds an Angle from degrees
func Deg(d float64) Angle { return Angle(d) }

// Rad builds an Angle from radians
func Rad(r float64) Angle { return Angle(r * 180 / math.Pi) }

// Degrees returns the angle in degrees
func (a Angle) Degrees() float64 { return float64(a) }

// Radians returns the angle in radians
func (a Angle) Radians() float64 { return float64(a) * math.Pi / 180 }

// Abs returns the magnitude of a
func (a Angle) Abs() Angle { return Angle(math.Abs(float64(a))) }

// Wrap180 maps a into (-180, 180]
func (a Angle) Wrap180() Angle {
	d := math.Mod(float64(a), 360)
	switch {
	case d > 180:
		d -= 360
	case d <= -180:
		d += 360
	}
	return Angle(d)
}

// Distance is a distance in parsecs
type Distance float64

// Parsecs builds a Distance from parsecs
func Parsecs(pc float64) Distance { return Distance(pc) }

// Parsecs returns the distance in parsecs
func (d Distance) Parsecs() float64 { return float64(d) }

// AU returns the distance in astronomical units
func (d Distance) AU() float64 { return float64(d) * auPerParsec }

// ProperMotion is an angular rate in milliarcseconds per Julian year
type ProperMotion float64

// MasPerYear builds a ProperMotion from milliarcseconds per year
func MasPerYear(v float64) ProperMotion { return ProperMotion(v) }

// MasPerYear returns the rate in milliarcseconds per year
func (p ProperMotion) MasPerYear() float64 { return float64(p) }

// RadPerYear returns the rate in radians per Julian year
func (p ProperMotion) RadPerYear() float64 {
	return float64(p) / masPerDegree * math.Pi / 180
}

// Velocity is a speed in kilometres per second
type Velocity float64

// KmPerSec builds a Velocity from km/s
func KmPerSec(v float64) Velocity { return Velocity(v) }

// KmPerSec returns the speed in km/s
func (v Velocity) KmPerSec() float64 { return float64(v) }

// AUPerYear returns the speed in AU per Julian year
func (v Velocity) AUPerYear() float64 {
	return float64(v) * secondsPerJulianYear / kmPerAU
}

// KmToAU converts kilometres to astronomical units
func KmToAU(km float64) float64 { return km / kmPerAU }
