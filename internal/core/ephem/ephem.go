// Package ephem is a low precision astrodynamics model for an observatory near Sun-Earth L2
//
// The Sun follows the Astronomical Almanac low precision formulae, good to about 0.01 degree
// over several decades around J2000. Star positions are propagated linearly in the
// barycentric mean ecliptic of J2000 so proper motion, radial velocity and parallax all apply.
package ephem

import (
	"context"
	"math"
	"time"

	"refstar/internal/core/astrometry"
	"refstar/internal/core/pointing"
	perr "refstar/internal/platform/errors"

	"github.com/joshuaferrara/go-satellite"
)

// DefaultL2DistanceKm is the mean Earth to L2 distance
const DefaultL2DistanceKm = 1.5e6

const (
	jdJ2000 = 2451545.0

	// general precession in longitude, degrees per Julian day
	precessionPerDay = 1.396971 / 36525
)

// Model computes attitudes toward a target from an observatory beyond Earth on the Sun line
type Model struct {
	l2AU float64
}

// Option configures a Model
type Option func(*Model)

// WithL2Distance sets the Earth to observatory distance in km, zero places the observatory at Earth
func WithL2Distance(km float64) Option {
	return func(m *Model) { m.l2AU = astrometry.KmToAU(km) }
}

// New builds a Model
func New(opts ...Option) *Model {
	m := &Model{l2AU: astrometry.KmToAU(DefaultL2DistanceKm)}
	for _, o := range opts {
		o(m)
	}
	return m
}

var _ pointing.AngleService = (*Model)(nil)

// Angles returns the attitude toward target at every instant
func (m *Model) Angles(ctx context.Context, target astrometry.SkyCoord, at []time.Time) ([]pointing.Attitude, error) {
	if m.l2AU < 0 || math.IsNaN(m.l2AU) {
		return nil, perr.InvalidArgf("observatory distance %v AU is invalid", m.l2AU)
	}
	target = target.Ecliptic()

	out := make([]pointing.Attitude, len(at))
	for i, t := range at {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		obs := m.Observatory(t)
		bore := target.PositionAt(t).Sub(obs)
		out[i] = Attitude(bore, obs.Scale(-1))
	}
	return out, nil
}

// Observatory returns the barycentric ecliptic position of the observatory in AU
func (m *Model) Observatory(t time.Time) astrometry.Vec3 {
	earth := SunFromEarth(t).Scale(-1)
	r := earth.Norm()
	if r == 0 {
		return earth
	}
	return earth.Scale(1 + m.l2AU/r)
}

// Attitude derives sun angle, pitch and yaw for a boresight with the Sun in direction sun
func Attitude(bore, sun astrometry.Vec3) pointing.Attitude {
	sunAngle := bore.AngleTo(sun)

	// yaw is the boresight azimuth about the Sun line, zero toward ecliptic north
	s := sun.Unit()
	north := astrometry.Vec3{Z: 1}
	ref := north.Sub(s.Scale(north.Dot(s)))
	if ref.Norm() < 1e-12 {
		// Sun on the ecliptic pole never happens for a real orbit but keep the frame defined
		ref = astrometry.Vec3{X: 1}.Sub(s.Scale(s.X))
	}
	ref = ref.Unit()
	side := s.Cross(ref)
	b := bore.Unit()
	yaw := astrometry.Rad(math.Atan2(b.Dot(side), b.Dot(ref))).Wrap180()

	return pointing.Attitude{
		Sun:   sunAngle,
		Pitch: sunAngle - 90,
		Yaw:   yaw,
	}
}

// JulianDate converts t to a Julian date in UT
func JulianDate(t time.Time) float64 {
	t = t.UTC()
	jd := satellite.JDay(t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())
	return jd + float64(t.Nanosecond())/1e9/86400
}

// SunFromEarth returns the geocentric position of the Sun in AU, ecliptic and equinox of J2000
func SunFromEarth(t time.Time) astrometry.Vec3 {
	n := JulianDate(t) - jdJ2000
	L := astrometry.Deg(280.460 + 0.9856474*n)
	g := astrometry.Deg(357.528 + 0.9856003*n).Radians()

	// the almanac longitude is referred to the equinox of date
	lambda := (L + astrometry.Deg(1.915*math.Sin(g)+0.020*math.Sin(2*g)-precessionPerDay*n)).Radians()
	r := 1.00014 - 0.01671*math.Cos(g) - 0.00014*math.Cos(2*g)

	return astrometry.Vec3{X: r * math.Cos(lambda), Y: r * math.Sin(lambda)}
}
