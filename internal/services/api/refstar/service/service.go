// Package service runs reference star selections and pointing checks against the catalog
package service

import (
	"context"
	"time"

	"refstar/internal/core/astrometry"
	"refstar/internal/core/pointing"
	"refstar/internal/core/selector"
	perr "refstar/internal/platform/errors"
	"refstar/internal/platform/logger"
	"refstar/internal/platform/metrics"
	"refstar/internal/platform/tracing"
	"refstar/internal/services/api/refstar/domain"
	catdomain "refstar/internal/services/catalog/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// MaxSamples caps the per request sample count
const MaxSamples = 100000

// Service defines the refstar service contract
type Service interface {
	domain.ServicePort
}

// Config holds the constraint settings
type Config struct {
	Samples   int
	Band      pointing.SunBand
	Tolerance float64
	Classes   []astrometry.Class

	// ExcludeTarget keeps a graded target from being chosen as its own reference, off by default
	ExcludeTarget bool
}

// DefaultConfig returns the planning defaults: 100 samples, (54, 126) band, 5 degree tolerance, A then B then C
func DefaultConfig() Config {
	return Config{
		Samples:   pointing.DefaultSamples,
		Band:      pointing.DefaultBand(),
		Tolerance: selector.DefaultTolerance,
		Classes:   astrometry.Classes(),
	}
}

// Validate checks the settings
func (c Config) Validate() error {
	if c.Samples < 2 || c.Samples > MaxSamples {
		return perr.WithField(perr.InvalidArgf("samples %d outside [2, %d]", c.Samples, MaxSamples), "samples")
	}
	if err := c.Band.Validate(); err != nil {
		return err
	}
	if !(c.Tolerance > 0) {
		return perr.WithField(perr.InvalidArgf("pitch tolerance %v must be positive", c.Tolerance), "tolerance")
	}
	if len(c.Classes) == 0 {
		return perr.WithField(perr.InvalidArgf("class list is empty"), "classes")
	}
	return nil
}

// Svc implements the refstar service
type Svc struct {
	view    catdomain.ViewPort
	stats   catdomain.StatsPort
	eval    *pointing.Evaluator
	cfg     Config
	metrics *metrics.Collector
	tracer  trace.Tracer
}

// Option configures a Svc
type Option func(*Svc)

// WithMetrics records selections and pointing checks on c
func WithMetrics(c *metrics.Collector) Option { return func(s *Svc) { s.metrics = c } }

// New constructs a refstar service, it panics on nil collaborators or an invalid config
func New(view catdomain.ViewPort, stats catdomain.StatsPort, angles pointing.AngleService, cfg Config, opts ...Option) *Svc {
	if view == nil {
		panic("refstar.Service requires a non nil catalog ViewPort")
	}
	if angles == nil {
		panic("refstar.Service requires a non nil AngleService")
	}
	if err := cfg.Validate(); err != nil {
		panic("refstar.Service config: " + err.Error())
	}
	s := &Svc{
		view:   view,
		stats:  stats,
		eval:   pointing.NewEvaluator(angles, pointing.WithBand(cfg.Band), pointing.WithSamples(cfg.Samples)),
		cfg:    cfg,
		tracer: tracing.Tracer(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Select finds a reference star for in.Target over the requested window
func (s *Svc) Select(ctx context.Context, in domain.SelectInput) (out domain.SelectOutput, err error) {
	began := time.Now()
	ctx, span := s.tracer.Start(ctx, "refstar.Select", trace.WithAttributes(attribute.String("refstar.target", in.Target)))
	var res selector.Outcome
	defer func() {
		status := string(res.Status)
		if err != nil {
			status = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.SetAttributes(attribute.String("refstar.status", status), attribute.Int("refstar.evaluated", res.Evaluated))
		span.End()
		s.metrics.ObserveSelection(status, res.Evaluated, len(res.Skipped), time.Since(began))
	}()

	w, n, err := s.window(in.WindowInput)
	if err != nil {
		return domain.SelectOutput{}, err
	}
	target, err := domain.ParseName(in.Target, "target")
	if err != nil {
		return domain.SelectOutput{}, err
	}
	opts := []selector.Option{selector.WithTolerance(s.cfg.Tolerance), selector.WithClasses(s.cfg.Classes...)}
	if s.cfg.ExcludeTarget {
		opts = append(opts, selector.WithExcludeTarget())
	}
	sel := selector.New(s.checker(n), opts...)

	err = s.view.View(ctx, func(r catdomain.Reader) error {
		var err error
		res, err = sel.Select(ctx, r, target, w)
		return err
	})
	if err != nil {
		return domain.SelectOutput{}, err
	}
	logger.C(ctx).Debug().Str("target", res.Target).Str("status", string(res.Status)).
		Dur("took", time.Since(began)).Msg("selection finished")
	return selectOutput(res), nil
}

// Pointing reports the solar constraint series for one catalog star
func (s *Svc) Pointing(ctx context.Context, in domain.PointingInput) (domain.PointingOutput, error) {
	ctx, span := s.tracer.Start(ctx, "refstar.Pointing", trace.WithAttributes(attribute.String("refstar.star", in.Star)))
	defer span.End()

	w, n, err := s.window(in.WindowInput)
	if err != nil {
		return domain.PointingOutput{}, err
	}
	name, err := domain.ParseName(in.Star, "star")
	if err != nil {
		return domain.PointingOutput{}, err
	}
	var res pointing.Result
	err = s.view.View(ctx, func(r catdomain.Reader) error {
		star, err := selector.Target(ctx, r, name)
		if err != nil {
			return err
		}
		res, err = s.checker(n).Check(ctx, star, w)
		return err
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return domain.PointingOutput{}, err
	}
	span.SetAttributes(attribute.Bool("refstar.valid", res.Valid))
	return s.pointingOutput(res, w), nil
}

// Catalog summarizes the catalog by grade
func (s *Svc) Catalog(ctx context.Context) (domain.CatalogOutput, error) {
	if s.stats == nil {
		return domain.CatalogOutput{}, perr.Unavailablef("catalog statistics are not available")
	}
	st, err := s.stats.Stats(ctx)
	if err != nil {
		return domain.CatalogOutput{}, err
	}
	return domain.CatalogOutput{Total: st.Total, ByClass: st.ByClass}, nil
}

func (s *Svc) window(in domain.WindowInput) (pointing.Window, int, error) {
	w, err := in.Window()
	if err != nil {
		return pointing.Window{}, 0, err
	}
	n := s.cfg.Samples
	if in.Samples != 0 {
		n = in.Samples
	}
	if n < 2 || n > MaxSamples {
		return pointing.Window{}, 0, perr.WithField(perr.InvalidArgf("samples %d outside [2, %d]", n, MaxSamples), "samples")
	}
	return w, n, nil
}

func (s *Svc) checker(n int) checker {
	return checker{eval: s.eval, n: n, metrics: s.metrics}
}

// checker runs the evaluator at a fixed sample count and counts each check
type checker struct {
	eval    *pointing.Evaluator
	n       int
	metrics *metrics.Collector
}

func (c checker) Check(ctx context.Context, star astrometry.Entry, w pointing.Window) (pointing.Result, error) {
	began := time.Now()
	res, err := c.eval.CheckSamples(ctx, star, w, c.n)
	if err == nil {
		c.metrics.ObservePointing(res.Valid, time.Since(began))
	}
	return res, err
}

func selectOutput(o selector.Outcome) domain.SelectOutput {
	out := domain.SelectOutput{
		Status:    string(o.Status),
		Message:   o.Message(),
		Target:    o.Target,
		Reference: o.Reference,
		Start:     o.Window.Start().Format(pointing.TimeLayout),
		End:       o.Window.End().Format(pointing.TimeLayout),
		Evaluated: o.Evaluated,
	}
	if o.Found() {
		off := o.MaxPitchOffset.Degrees()
		out.Class = o.Class.String()
		out.MaxPitchOffsetDeg = &off
	}
	for _, c := range o.Classes {
		out.Classes = append(out.Classes, c.String())
	}
	for _, sk := range o.Skipped {
		out.Skipped = append(out.Skipped, domain.SkipRow{Name: sk.Name, Class: sk.Class.String(), Reason: sk.Reason})
	}
	return out
}

func (s *Svc) pointingOutput(r pointing.Result, w pointing.Window) domain.PointingOutput {
	b := s.eval.Band()
	out := domain.PointingOutput{
		Star:       r.Star,
		Valid:      r.Valid,
		Violations: r.Violations,
		SunMinDeg:  b.Min.Degrees(),
		SunMaxDeg:  b.Max.Degrees(),
		Start:      w.Start().Format(pointing.TimeLayout),
		End:        w.End().Format(pointing.TimeLayout),
		Samples:    make([]domain.SampleRow, len(r.Samples)),
	}
	for i, smp := range r.Samples {
		out.Samples[i] = domain.SampleRow{
			Time:     smp.Time.UTC().Format(pointing.TimeLayout),
			SunDeg:   smp.Sun.Degrees(),
			PitchDeg: smp.Pitch.Degrees(),
			YawDeg:   smp.Yaw.Degrees(),
		}
	}
	return out
}
