// Package module implements the catalog service module
package module

import (
	"refstar/internal/modkit"
	"refstar/internal/modkit/httpkit"
	"refstar/internal/modkit/repokit"
	"refstar/internal/services/catalog/domain"
	"refstar/internal/services/catalog/repo"
	"refstar/internal/services/catalog/service"
)

// Name is the registry name of the catalog module
const Name = "catalog"

// Ports exposed by the catalog module
type Ports struct {
	View  domain.ViewPort
	Stats domain.StatsPort
}

// Module implements the catalog service module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a catalog module over the postgres seam when present, else sqlite
// it panics when neither is configured or the table name is unusable
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)

	var svcOpts []service.Option
	if deps.PG != nil {
		svcOpts = append(svcOpts, service.WithReadHooks(repokit.ReadOnly))
	}
	svc := service.New(deps.Catalog(), repo.NewSQL(opts.Table), svcOpts...)

	m := &Module{deps: deps}
	m.ports = Ports{
		View:  svc,
		Stats: svc,
	}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return Name }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
