package pointing

import (
	"context"
	"time"

	"refstar/internal/core/astrometry"
	perr "refstar/internal/platform/errors"
)

// DefaultSamples is the instant count used by Check
const DefaultSamples = 100

// Attitude is the spacecraft geometry toward one target at one instant
type Attitude struct {
	Sun   astrometry.Angle // angle between boresight and the Sun, [0, 180]
	Yaw   astrometry.Angle
	Pitch astrometry.Angle
}

// AngleService computes attitudes for a target at each instant, one result per instant in order
type AngleService interface {
	Angles(ctx context.Context, target astrometry.SkyCoord, at []time.Time) ([]Attitude, error)
}

// AngleServiceFunc adapts a function to AngleService
type AngleServiceFunc func(ctx context.Context, target astrometry.SkyCoord, at []time.Time) ([]Attitude, error)

// Angles calls f
func (f AngleServiceFunc) Angles(ctx context.Context, target astrometry.SkyCoord, at []time.Time) ([]Attitude, error) {
	return f(ctx, target, at)
}

// Evaluator checks stars against a sun band using an AngleService
type Evaluator struct {
	svc     AngleService
	band    SunBand
	samples int
}

// Option configures an Evaluator
type Option func(*Evaluator)

// WithBand overrides the keep out band
func WithBand(b SunBand) Option { return func(e *Evaluator) { e.band = b } }

// WithSamples overrides the default instant count used by Check
func WithSamples(n int) Option { return func(e *Evaluator) { e.samples = n } }

// NewEvaluator builds an Evaluator, it panics on a nil service
func NewEvaluator(svc AngleService, opts ...Option) *Evaluator {
	if svc == nil {
		panic("pointing.NewEvaluator: nil AngleService")
	}
	e := &Evaluator{svc: svc, band: DefaultBand(), samples: DefaultSamples}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Band returns the configured keep out band
func (e *Evaluator) Band() SunBand { return e.band }

// Samples returns the default instant count
func (e *Evaluator) Samples() int { return e.samples }

// Check evaluates star over w with the default sample count
func (e *Evaluator) Check(ctx context.Context, star astrometry.Entry, w Window) (Result, error) {
	return e.CheckSamples(ctx, star, w, e.samples)
}

// CheckSamples evaluates star over w at n instants
// an incomplete star fails with astrometry.ErrIncompleteRecord before the angle service is called;
// angle service errors are returned as is
func (e *Evaluator) CheckSamples(ctx context.Context, star astrometry.Entry, w Window, n int) (Result, error) {
	at, err := w.Instants(n)
	if err != nil {
		return Result{}, err
	}
	rec, err := star.Record()
	if err != nil {
		return Result{}, err
	}

	coord := rec.SkyCoord().Ecliptic()
	atts, err := e.svc.Angles(ctx, coord, at)
	if err != nil {
		return Result{}, err
	}
	if len(atts) != len(at) {
		return Result{}, perr.Internalf("angle service returned %d attitudes for %d instants", len(atts), len(at))
	}

	res := Result{Star: rec.Name, Valid: true, Samples: make([]Sample, len(at))}
	for i, a := range atts {
		res.Samples[i] = Sample{Time: at[i], Sun: a.Sun, Yaw: a.Yaw, Pitch: a.Pitch}
		if !e.band.Allows(a.Sun) {
			res.Valid = false
			res.Violations++
		}
	}
	return res, nil
}
