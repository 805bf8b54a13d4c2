// Package http serves the meta endpoints: liveness, readiness against the catalog stores and build info
package http

import (
	"context"
	"net/http"
	"time"

	"refstar/internal/core/version"
	"refstar/internal/modkit/httpkit"

	"golang.org/x/sync/errgroup"
)

// readyTimeout bounds all readiness pings together
const readyTimeout = 2 * time.Second

// Pinger is a store that can report reachability
type Pinger interface {
	Ping(context.Context) error
}

// Deps are what the meta handlers report on, a nil store is reported as skipped
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	PG          any
	Lite        any

	// Now is the clock, time.Now when nil
	Now func() time.Time
}

type handlers struct{ Deps }

// Register mounts /health, /ready, /version and /service on r
func Register(r httpkit.Router, d Deps) {
	if d.Now == nil {
		d.Now = time.Now
	}
	h := handlers{d}
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

// HealthResponse reports the process is serving
type HealthResponse struct {
	OK      bool   `json:"ok" example:"true"`
	Service string `json:"service" example:"refstar-api"`
	Started string `json:"started" example:"2027-01-01T00:00:00Z"`
	Now     string `json:"now" example:"2027-01-01T00:05:00Z"`
}

// Check states
const (
	CheckOK      = "ok"
	CheckFail    = "fail"
	CheckSkipped = "skipped"
	CheckUnknown = "unknown"
)

// ReadyCheck is one store's ping result
type ReadyCheck struct {
	Name   string `json:"name" example:"pg"`
	Status string `json:"status" enums:"ok,fail,skipped,unknown" example:"ok"`
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432: connect: connection refused"`
}

// ReadyResponse is ok when a store answers and none fails, degraded when one answers and another fails, fail otherwise
type ReadyResponse struct {
	Status string       `json:"status" enums:"ok,degraded,fail" example:"ok"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now" example:"2027-01-01T00:05:00Z"`
}

// ServiceResponse reports name and uptime in seconds
type ServiceResponse struct {
	Name    string `json:"name" example:"refstar-api"`
	Started string `json:"started" example:"2027-01-01T00:00:00Z"`
	Uptime  int64  `json:"uptime" example:"300"`
}

func (h handlers) stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (h handlers) health(*http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.ServiceName,
		Started: h.stamp(h.StartedAt),
		Now:     h.stamp(h.Now()),
	}, nil
}

// @Summary Readiness probe with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Router /meta/ready [get]
func (h handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	stores := []struct {
		name string
		c    any
	}{{"pg", h.PG}, {"sqlite", h.Lite}}

	checks := make([]ReadyCheck, len(stores))
	var g errgroup.Group
	for i, s := range stores {
		g.Go(func() error {
			checks[i] = ping(ctx, s.name, s.c)
			return nil
		})
	}
	_ = g.Wait()

	return ReadyResponse{Status: overall(checks), Checks: checks, Now: h.stamp(h.Now())}, nil
}

func ping(ctx context.Context, name string, c any) ReadyCheck {
	if c == nil {
		return ReadyCheck{Name: name, Status: CheckSkipped}
	}
	p, ok := c.(Pinger)
	if !ok {
		return ReadyCheck{Name: name, Status: CheckUnknown}
	}
	if err := p.Ping(ctx); err != nil {
		return ReadyCheck{Name: name, Status: CheckFail, Error: err.Error()}
	}
	return ReadyCheck{Name: name, Status: CheckOK}
}

// overall needs one usable catalog store to serve
func overall(checks []ReadyCheck) string {
	var ok, failed bool
	for _, c := range checks {
		ok = ok || c.Status == CheckOK
		failed = failed || c.Status == CheckFail
	}
	switch {
	case ok && failed:
		return "degraded"
	case ok:
		return "ok"
	default:
		return "fail"
	}
}

// @Summary Build information
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (h handlers) version(*http.Request) (any, error) { return version.Info(), nil }

// @Summary Service name and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse
// @Router /meta/service [get]
func (h handlers) service(*http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.ServiceName,
		Started: h.stamp(h.StartedAt),
		Uptime:  int64(h.Now().Sub(h.StartedAt) / time.Second),
	}, nil
}
