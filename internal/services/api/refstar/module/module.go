// Package module wires reference star selection into the API
package module

import (
	"refstar/internal/core/ephem"
	"refstar/internal/modkit"
	"refstar/internal/modkit/httpkit"
	refhttp "refstar/internal/services/api/refstar/http"
	refsvc "refstar/internal/services/api/refstar/service"
	catdomain "refstar/internal/services/catalog/domain"
)

// Ports are the catalog ports the module is built over, inject them with modkit.WithPorts
type Ports struct {
	View  catdomain.ViewPort
	Stats catdomain.StatsPort
}

// Module serves /refstar and exports its service as its port set
type Module struct {
	modkit.Routes
	svc refsvc.Service
}

// New builds the module; it panics without an injected View port
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("refstar"), modkit.WithPrefix("/refstar")}, opts...)...)

	in, _ := b.Ports.(Ports)
	if in.View == nil {
		panic("refstar module requires the catalog View port")
	}

	cfg := FromConfig(deps.Cfg)
	m := &Module{
		svc: refsvc.New(in.View, in.Stats, ephem.New(ephem.WithL2Distance(cfg.L2DistanceKm)), cfg.Service,
			refsvc.WithMetrics(deps.Metrics)),
	}
	m.Routes = b.Routes(func(r httpkit.Router) { refhttp.Register(r, m.svc) })
	return m
}

// Ports exports the selection service
func (m *Module) Ports() any { return m.svc }
