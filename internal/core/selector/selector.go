// Package selector picks a reference star for a target over an observation window
//
// The target must satisfy the solar constraint on its own. Candidates are then taken
// class by class in order and the first pointing valid star whose pitch tracks the
// target within the tolerance wins.
package selector

import (
	"context"
	"errors"

	"refstar/internal/core/astrometry"
	"refstar/internal/core/pointing"
	perr "refstar/internal/platform/errors"
	"refstar/internal/platform/logger"
)

// DefaultTolerance is the pitch tracking limit in degrees, exclusive
const DefaultTolerance = 5.0

var (
	// ErrTargetNotFound is wrapped when no catalog row has the target name
	ErrTargetNotFound = perr.New(perr.ErrorCodeNotFound, "target not found")

	// ErrAmbiguousTarget is wrapped when more than one catalog row has the target name
	ErrAmbiguousTarget = perr.New(perr.ErrorCodeConflict, "target name is not unique")
)

// Catalog is a read session over the star catalog
type Catalog interface {
	// Lookup returns every row whose name equals name exactly
	Lookup(ctx context.Context, name string) ([]astrometry.Entry, error)
	// ByClass returns every row of class c in catalog order
	ByClass(ctx context.Context, c astrometry.Class) ([]astrometry.Entry, error)
}

// Checker evaluates the solar constraint for one star
type Checker interface {
	Check(ctx context.Context, star astrometry.Entry, w pointing.Window) (pointing.Result, error)
}

// Selector runs reference star searches
type Selector struct {
	check         Checker
	tolerance     astrometry.Angle
	classes       []astrometry.Class
	excludeTarget bool
}

// Option configures a Selector
type Option func(*Selector)

// WithTolerance sets the exclusive pitch tracking limit
func WithTolerance(deg float64) Option {
	return func(s *Selector) { s.tolerance = astrometry.Deg(deg) }
}

// WithClasses sets the class search order
func WithClasses(cs ...astrometry.Class) Option {
	return func(s *Selector) {
		if len(cs) > 0 {
			s.classes = append([]astrometry.Class(nil), cs...)
		}
	}
}

// WithExcludeTarget keeps a graded target out of its own candidate lists
// by default the target is a candidate like any other row of its class
func WithExcludeTarget() Option {
	return func(s *Selector) { s.excludeTarget = true }
}

// New builds a Selector, it panics on a nil checker
func New(check Checker, opts ...Option) *Selector {
	if check == nil {
		panic("selector.New: nil Checker")
	}
	s := &Selector{
		check:     check,
		tolerance: astrometry.Deg(DefaultTolerance),
		classes:   astrometry.Classes(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Classes returns the search order
func (s *Selector) Classes() []astrometry.Class {
	return append([]astrometry.Class(nil), s.classes...)
}

// Tolerance returns the pitch tracking limit
func (s *Selector) Tolerance() astrometry.Angle { return s.tolerance }

// Target resolves name to exactly one catalog entry, the name is matched as given
func Target(ctx context.Context, cat Catalog, name string) (astrometry.Entry, error) {
	if name == "" {
		return astrometry.Entry{}, perr.WithField(perr.InvalidArgf("target name is required"), "target")
	}
	rows, err := cat.Lookup(ctx, name)
	if err != nil {
		return astrometry.Entry{}, err
	}
	switch len(rows) {
	case 0:
		return astrometry.Entry{}, perr.WithField(perr.Wrapf(ErrTargetNotFound, perr.ErrorCodeNotFound, "star %q not found", name), "target")
	case 1:
		return rows[0], nil
	default:
		return astrometry.Entry{}, perr.WithField(perr.Wrapf(ErrAmbiguousTarget, perr.ErrorCodeConflict, "star %q matches %d catalog rows", name, len(rows)), "target")
	}
}

// Select finds a reference star for target over w
// constraint outcomes come back as Outcome values; lookup, astrometry and collaborator failures as errors
func (s *Selector) Select(ctx context.Context, cat Catalog, target string, w pointing.Window) (Outcome, error) {
	log := logger.C(ctx).With().Str("component", "selector").Logger()

	star, err := Target(ctx, cat, target)
	if err != nil {
		return Outcome{}, err
	}
	out := Outcome{Target: star.Name, Window: w, Classes: s.Classes()}

	tres, err := s.check.Check(ctx, star, w)
	if err != nil {
		return Outcome{}, err
	}
	if !tres.Valid {
		out.Status = StatusTargetInvalid
		log.Info().Str("target", star.Name).Int("violations", tres.Violations).Msg("target violates solar constraint")
		return out, nil
	}

	for _, c := range s.classes {
		st, err := s.searchClass(ctx, cat, c, star.Name, tres, &out)
		if err != nil {
			return Outcome{}, err
		}
		log.Debug().Str("target", star.Name).Stringer("class", c).Bool("found", st.kind == stepFound).Msg("class searched")
		if st.kind == stepFound {
			out.Status = StatusFound
			out.Reference = st.name
			out.Class = c
			out.MaxPitchOffset = st.offset
			log.Info().Str("target", star.Name).Str("reference", st.name).Stringer("class", c).
				Float64("max_pitch_offset_deg", st.offset.Degrees()).Msg("reference star selected")
			return out, nil
		}
	}

	out.Status = StatusExhausted
	log.Info().Str("target", star.Name).Int("evaluated", out.Evaluated).Msg("no reference star found")
	return out, nil
}

type stepKind uint8

const (
	stepNotFound stepKind = iota
	stepFound
)

// step is the result of searching one class
type step struct {
	kind   stepKind
	name   string
	offset astrometry.Angle
}

func (s *Selector) searchClass(ctx context.Context, cat Catalog, c astrometry.Class, target string, tres pointing.Result, out *Outcome) (step, error) {
	rows, err := cat.ByClass(ctx, c)
	if err != nil {
		return step{}, err
	}
	for _, cand := range rows {
		if err := ctx.Err(); err != nil {
			return step{}, err
		}
		if s.excludeTarget && cand.Name == target {
			continue
		}

		res, err := s.check.Check(ctx, cand, out.Window)
		if err != nil {
			if isBadRow(err) {
				out.Skipped = append(out.Skipped, Skip{Name: cand.Name, Class: c, Reason: err.Error()})
				logger.C(ctx).Warn().Err(err).Str("candidate", cand.Name).Stringer("class", c).Msg("skipping candidate with unusable astrometry")
				continue
			}
			return step{}, err
		}
		out.Evaluated++
		if !res.Valid {
			continue
		}

		off, err := pointing.MaxAbsPitchDelta(tres, res)
		if err != nil {
			return step{}, err
		}
		if off < s.tolerance {
			return step{kind: stepFound, name: cand.Name, offset: off}, nil
		}
	}
	return step{kind: stepNotFound}, nil
}

func isBadRow(err error) bool {
	return errors.Is(err, astrometry.ErrIncompleteRecord) || errors.Is(err, astrometry.ErrInvalidRecord)
}
