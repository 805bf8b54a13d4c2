package astrometry

import (
	"math"
	"time"
)

// Frame names the reference frame a SkyCoord is expressed in
type Frame string

const (
	// FrameICRS is the International Celestial Reference System
	FrameICRS Frame = "icrs"
	// FrameEcliptic is the barycentric mean ecliptic and equinox of J2000
	FrameEcliptic Frame = "barycentric_mean_ecliptic"
)

// obliquityJ2000 is the IAU 2006 mean obliquity of the ecliptic at J2000 (84381.406 arcsec)
const obliquityJ2000 = Angle(84381.406 / 3600)

// Vec3 is a cartesian vector, units depend on use (AU or AU per year here)
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v - o
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v * k
func (v Vec3) Scale(k float64) Vec3 { return Vec3{v.X * k, v.Y * k, v.Z * k} }

// Dot returns the dot product
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns v x o
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Norm returns the Euclidean length
func (v Vec3) Norm() float64 { return math.Sqrt(v.Dot(v)) }

// Unit returns v scaled to length 1, the zero vector stays zero
func (v Vec3) Unit() Vec3 {
	n := v.Norm()
	if n == 0 {
		return Vec3{}
	}
	return v.Scale(1 / n)
}

// AngleTo returns the angle between v and o
func (v Vec3) AngleTo(o Vec3) Angle {
	// atan2 keeps precision near 0 and 180 where acos does not
	return Rad(math.Atan2(v.Cross(o).Norm(), v.Dot(o)))
}

// SkyCoord is the space state of a star at Epoch: barycentric position in AU
// and space velocity in AU per Julian year
type SkyCoord struct {
	Frame    Frame
	Epoch    time.Time
	Position Vec3
	Velocity Vec3
}

// SkyCoord builds the ICRS state of r at J2000 from position, distance,
// proper motion and radial velocity
func (r Record) SkyCoord() SkyCoord {
	ra, dec := r.RA.Radians(), r.Dec.Radians()
	sa, ca := math.Sin(ra), math.Cos(ra)
	sd, cd := math.Sin(dec), math.Cos(dec)

	radial := Vec3{cd * ca, cd * sa, sd}
	east := Vec3{-sa, ca, 0}
	north := Vec3{-sd * ca, -sd * sa, cd}

	d := r.Distance.AU()
	vel := radial.Scale(r.RadialVelocity.AUPerYear()).
		Add(east.Scale(d * r.PMRA.RadPerYear())).
		Add(north.Scale(d * r.PMDec.RadPerYear()))

	return SkyCoord{
		Frame:    FrameICRS,
		Epoch:    J2000,
		Position: radial.Scale(d),
		Velocity: vel,
	}
}

// Ecliptic rotates an ICRS state into the barycentric mean ecliptic of J2000
// states already in that frame are returned unchanged
func (c SkyCoord) Ecliptic() SkyCoord {
	if c.Frame == FrameEcliptic {
		return c
	}
	eps := obliquityJ2000.Radians()
	se, ce := math.Sin(eps), math.Cos(eps)
	rot := func(v Vec3) Vec3 {
		return Vec3{
			X: v.X,
			Y: ce*v.Y + se*v.Z,
			Z: -se*v.Y + ce*v.Z,
		}
	}
	return SkyCoord{
		Frame:    FrameEcliptic,
		Epoch:    c.Epoch,
		Position: rot(c.Position),
		Velocity: rot(c.Velocity),
	}
}

// PositionAt propagates the position linearly along the space velocity to t
func (c SkyCoord) PositionAt(t time.Time) Vec3 {
	years := t.Sub(c.Epoch).Seconds() / secondsPerJulianYear
	return c.Position.Add(c.Velocity.Scale(years))
}

// Spherical returns longitude in [0, 360), latitude and distance of a position vector
func Spherical(v Vec3) (lon, lat Angle, distAU float64) {
	distAU = v.Norm()
	if distAU == 0 {
		return 0, 0, 0
	}
	l := Rad(math.Atan2(v.Y, v.X))
	if l < 0 {
		l += 360
	}
	return l, Rad(math.Asin(math.Max(-1, math.Min(1, v.Z/distAU)))), distAU
}

// EquatorialOf converts J2000 ecliptic longitude and latitude to ICRS right ascension and declination
func EquatorialOf(lon, lat Angle) (ra, dec Angle) {
	eps := obliquityJ2000.Radians()
	se, ce := math.Sin(eps), math.Cos(eps)
	l, b := lon.Radians(), lat.Radians()
	v := Vec3{X: math.Cos(b) * math.Cos(l), Y: math.Cos(b) * math.Sin(l), Z: math.Sin(b)}
	eq := Vec3{X: v.X, Y: ce*v.Y - se*v.Z, Z: se*v.Y + ce*v.Z}
	ra, dec, _ = Spherical(eq)
	return ra, dec
}
