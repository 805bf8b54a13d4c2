// Package metrics holds the Prometheus collectors for selections and the HTTP surface
package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the refstar metrics, a nil *Collector records nothing
type Collector struct {
	gatherer prometheus.Gatherer

	Selections        *prometheus.CounterVec
	SelectionDuration *prometheus.HistogramVec
	Candidates        prometheus.Counter
	SkippedCandidates prometheus.Counter
	PointingChecks    *prometheus.CounterVec

	HTTPRequests  *prometheus.CounterVec
	HTTPDurations *prometheus.HistogramVec
}

// New registers the collectors against reg, the default registry when nil
// registering twice on one registry reuses the existing collectors
func New(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	c := &Collector{gatherer: gatherer}
	var err error

	if c.Selections, err = registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "refstar_selections_total",
		Help: "Reference star selections by outcome status.",
	}, []string{"status"})); err != nil {
		return nil, err
	}
	if c.SelectionDuration, err = registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "refstar_operation_duration_seconds",
		Help:    "Latency of select and pointing operations in seconds.",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"op"})); err != nil {
		return nil, err
	}
	if c.Candidates, err = registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "refstar_candidates_evaluated_total",
		Help: "Candidate reference stars evaluated against the solar constraint.",
	})); err != nil {
		return nil, err
	}
	if c.SkippedCandidates, err = registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "refstar_candidates_skipped_total",
		Help: "Candidates skipped for missing or invalid astrometry.",
	})); err != nil {
		return nil, err
	}
	if c.PointingChecks, err = registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "refstar_pointing_checks_total",
		Help: "Single star pointing checks by validity.",
	}, []string{"valid"})); err != nil {
		return nil, err
	}
	if c.HTTPRequests, err = registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "refstar_http_requests_total",
		Help: "HTTP requests by method, route pattern and status code.",
	}, []string{"method", "route", "code"})); err != nil {
		return nil, err
	}
	if c.HTTPDurations, err = registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "refstar_http_request_duration_seconds",
		Help:    "HTTP latency in seconds by method and route pattern.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})); err != nil {
		return nil, err
	}
	return c, nil
}

// ObserveSelection records one selection outcome
func (c *Collector) ObserveSelection(status string, evaluated, skipped int, took time.Duration) {
	if c == nil {
		return
	}
	c.Selections.WithLabelValues(status).Inc()
	c.Candidates.Add(float64(evaluated))
	c.SkippedCandidates.Add(float64(skipped))
	c.SelectionDuration.WithLabelValues("select").Observe(took.Seconds())
}

// ObservePointing records one single star pointing check
func (c *Collector) ObservePointing(valid bool, took time.Duration) {
	if c == nil {
		return
	}
	c.PointingChecks.WithLabelValues(strconv.FormatBool(valid)).Inc()
	c.SelectionDuration.WithLabelValues("pointing").Observe(took.Seconds())
}

// Handler exposes the gathered metrics
func (c *Collector) Handler() http.Handler {
	g := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		g = c.gatherer
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency labeled by the chi route pattern
func (c *Collector) Middleware(next http.Handler) http.Handler {
	if c == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		code := ww.Status()
		if code == 0 {
			code = http.StatusOK
		}

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		c.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(code)).Inc()
		c.HTTPDurations.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	return register(reg, vec)
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec) (*prometheus.HistogramVec, error) {
	return register(reg, vec)
}

func registerCounter(reg prometheus.Registerer, c prometheus.Counter) (prometheus.Counter, error) {
	return register(reg, c)
}

// register adds col to reg or returns the collector already registered under the same descriptor
func register[T prometheus.Collector](reg prometheus.Registerer, col T) (T, error) {
	if err := reg.Register(col); err != nil {
		var zero T
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return zero, err
		}
		existing, ok := are.ExistingCollector.(T)
		if !ok {
			return zero, fmt.Errorf("collector already registered with incompatible type %T", are.ExistingCollector)
		}
		return existing, nil
	}
	return col, nil
}
