package astrometry

import (
	"math"
	"strings"

	perr "refstar/internal/platform/errors"

	"golang.org/x/text/unicode/norm"
)

var (
	// ErrIncompleteRecord is wrapped by every error caused by a missing astrometric column
	ErrIncompleteRecord = perr.New(perr.ErrorCodeValidation, "incomplete astrometric record")

	// ErrInvalidRecord is wrapped by every error caused by an out of range astrometric value
	ErrInvalidRecord = perr.New(perr.ErrorCodeInvalidArgument, "invalid astrometric record")
)

// Entry is one catalog row as stored, every astrometric column may be NULL
// Column names follow the planning catalog: ra, dec, sy_dist, sy_pmra, sy_pmdec, st_radv, st_psfgrade
type Entry struct {
	Name           string
	RA             *float64 // degrees
	Dec            *float64 // degrees
	Distance       *float64 // parsecs
	PMRA           *float64 // mas/yr, cos(dec) applied
	PMDec          *float64 // mas/yr
	RadialVelocity *float64 // km/s
	Grade          *string
}

// Class returns the parsed grade, ClassNone when absent or unknown
func (e Entry) Class() Class { return gradeOf(e.Grade) }

// Record is a complete astrometric solution for one star at J2000
type Record struct {
	Name           string
	RA             Angle
	Dec            Angle
	Distance       Distance
	PMRA           ProperMotion // cos(dec) applied
	PMDec          ProperMotion
	RadialVelocity Velocity
	Class          Class
}

// Record normalizes the entry into a Record
// a NULL or NaN column fails with ErrIncompleteRecord and the column as field
func (e Entry) Record() (Record, error) {
	cols := []struct {
		name string
		v    *float64
	}{
		{"ra", e.RA},
		{"dec", e.Dec},
		{"sy_dist", e.Distance},
		{"sy_pmra", e.PMRA},
		{"sy_pmdec", e.PMDec},
		{"st_radv", e.RadialVelocity},
	}
	for _, c := range cols {
		if c.v == nil || math.IsNaN(*c.v) {
			err := perr.Wrapf(ErrIncompleteRecord, perr.ErrorCodeValidation, "star %q has no %s", e.Name, c.name)
			return Record{}, perr.WithField(err, c.name)
		}
	}

	r := Record{
		Name:           e.Name,
		RA:             Deg(*e.RA),
		Dec:            Deg(*e.Dec),
		Distance:       Parsecs(*e.Distance),
		PMRA:           MasPerYear(*e.PMRA),
		PMDec:          MasPerYear(*e.PMDec),
		RadialVelocity: KmPerSec(*e.RadialVelocity),
		Class:          e.Class(),
	}
	if err := r.Validate(); err != nil {
		return Record{}, err
	}
	return r, nil
}

// Validate checks ranges: RA in [0, 360), Dec in [-90, 90], distance positive and all values finite
func (r Record) Validate() error {
	bad := func(field, format string, a ...any) error {
		err := perr.Wrapf(ErrInvalidRecord, perr.ErrorCodeInvalidArgument, format, a...)
		return perr.WithField(err, field)
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"ra", float64(r.RA)},
		{"dec", float64(r.Dec)},
		{"sy_dist", float64(r.Distance)},
		{"sy_pmra", float64(r.PMRA)},
		{"sy_pmdec", float64(r.PMDec)},
		{"st_radv", float64(r.RadialVelocity)},
	} {
		if math.IsInf(f.v, 0) || math.IsNaN(f.v) {
			return bad(f.name, "star %q has non finite %s", r.Name, f.name)
		}
	}
	if r.RA < 0 || r.RA >= 360 {
		return bad("ra", "star %q ra %.6f outside [0, 360)", r.Name, r.RA.Degrees())
	}
	if r.Dec < -90 || r.Dec > 90 {
		return bad("dec", "star %q dec %.6f outside [-90, 90]", r.Name, r.Dec.Degrees())
	}
	if r.Distance <= 0 {
		return bad("sy_dist", "star %q distance %.6f pc is not positive", r.Name, r.Distance.Parsecs())
	}
	return nil
}

// CanonicalName trims surrounding space and applies Unicode NFC so lookups
// match catalog names typed with decomposed characters
func CanonicalName(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
